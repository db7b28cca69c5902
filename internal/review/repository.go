package review

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("review not found")

type Repository interface {
	ListAll() ([]Review, error)
	GetByID(id int) (Review, error)
	ListByUser(userID int) ([]Review, error)
	ListByDog(dogID int) ([]Review, error)
	Create(rev Review) (Review, error)
	Update(id int, rev Review) (Review, error)
	Delete(id int) error
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	reviews []Review
	nextID  int
}

func NewInMemoryRepository(seed []Review) *InMemoryRepository {
	repo := &InMemoryRepository{
		reviews: make([]Review, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, rev := range seed {
		repo.reviews = append(repo.reviews, rev)
		if rev.ID > maxID {
			maxID = rev.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) ListAll() ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviews := make([]Review, len(r.reviews))
	copy(reviews, r.reviews)
	return reviews, nil
}

func (r *InMemoryRepository) GetByID(id int) (Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rev := range r.reviews {
		if rev.ID == id {
			return rev, nil
		}
	}

	return Review{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviews := make([]Review, 0)
	for _, rev := range r.reviews {
		if rev.UserID == userID {
			reviews = append(reviews, rev)
		}
	}

	return reviews, nil
}

func (r *InMemoryRepository) ListByDog(dogID int) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviews := make([]Review, 0)
	for _, rev := range r.reviews {
		if rev.DogID == dogID {
			reviews = append(reviews, rev)
		}
	}

	return reviews, nil
}

func (r *InMemoryRepository) Create(rev Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rev.ID == 0 {
		rev.ID = r.nextID
		r.nextID++
	}

	r.reviews = append(r.reviews, rev)
	return rev, nil
}

func (r *InMemoryRepository) Update(id int, update Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rev := range r.reviews {
		if rev.ID == id {
			rev.Text = update.Text
			rev.Rating = update.Rating
			r.reviews[i] = rev
			return rev, nil
		}
	}

	return Review{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rev := range r.reviews {
		if rev.ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}
