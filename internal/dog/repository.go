package dog

import (
	"errors"
	"sync"
)

var (
	ErrNotFound   = errors.New("dog not found")
	ErrNameExists = errors.New("dog name already exists")
)

type Repository interface {
	List() ([]Dog, error)
	GetByID(id int) (Dog, error)
	GetByName(name string) (Dog, error)
	Create(d Dog) (Dog, error)
	Update(id int, d Dog) (Dog, error)
	Delete(id int) error
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	dogs   []Dog
	nextID int
}

func NewInMemoryRepository(seed []Dog) *InMemoryRepository {
	repo := &InMemoryRepository{
		dogs:   make([]Dog, 0, len(seed)),
		nextID: 1,
	}

	maxID := 0
	for _, d := range seed {
		repo.dogs = append(repo.dogs, d)
		if d.ID > maxID {
			maxID = d.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) List() ([]Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dogs := make([]Dog, len(r.dogs))
	copy(dogs, r.dogs)
	return dogs, nil
}

func (r *InMemoryRepository) GetByID(id int) (Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.dogs {
		if d.ID == id {
			return d, nil
		}
	}

	return Dog{}, ErrNotFound
}

func (r *InMemoryRepository) GetByName(name string) (Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.dogs {
		if d.Name == name {
			return d, nil
		}
	}

	return Dog{}, ErrNotFound
}

func (r *InMemoryRepository) Create(d Dog) (Dog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == 0 {
		d.ID = r.nextID
		r.nextID++
	}

	r.dogs = append(r.dogs, d)
	return d, nil
}

func (r *InMemoryRepository) Update(id int, update Dog) (Dog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, d := range r.dogs {
		if d.ID == id {
			update.ID = id
			r.dogs[i] = update
			return update, nil
		}
	}

	return Dog{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, d := range r.dogs {
		if d.ID == id {
			r.dogs = append(r.dogs[:i], r.dogs[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}
