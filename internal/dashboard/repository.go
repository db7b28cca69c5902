package dashboard

import (
	"sync"

	"github.com/pawmart/pawmart-backend/internal/auth"
	"github.com/pawmart/pawmart-backend/internal/user"
)

type Repository interface {
	Stats() (Stats, error)
	// Customers returns the non-admin accounts.
	Customers() ([]user.User, error)
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	users   []user.User
	pets    int
	orders  int
	reviews int
}

func NewInMemoryRepository(users []user.User, pets, orders, reviews int) *InMemoryRepository {
	return &InMemoryRepository{
		users:   users,
		pets:    pets,
		orders:  orders,
		reviews: reviews,
	}
}

func (r *InMemoryRepository) Stats() (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := 0
	for _, u := range r.users {
		if u.Role == auth.RoleUser {
			customers++
		}
	}

	return Stats{
		TotalUsers:   customers,
		TotalPets:    r.pets,
		TotalOrders:  r.orders,
		TotalReviews: r.reviews,
	}, nil
}

func (r *InMemoryRepository) Customers() ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]user.User, 0)
	for _, u := range r.users {
		if u.Role == auth.RoleUser {
			customers = append(customers, u)
		}
	}

	return customers, nil
}
