package order

import (
	"errors"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Place validates the request shape, then hands the whole sequence to the
// repository as one atomic operation.
func (s *Service) Place(userID int, lines []Line, shippingAddress, billingAddress string) (Order, error) {
	if userID <= 0 {
		return Order{}, errors.New("invalid user")
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyOrder
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return Order{}, ErrInvalidQuantity
		}
	}

	ord := Order{
		OrderDate:       time.Now().UTC().Format(time.RFC3339),
		Status:          StatusPending,
		ShippingAddress: shippingAddress,
		BillingAddress:  billingAddress,
		UserID:          userID,
	}

	return s.repo.Place(ord, lines)
}

func (s *Service) ListAll() ([]Order, error) {
	return s.repo.ListAll()
}

func (s *Service) GetByID(id int) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) Update(id int, ord Order) (Order, error) {
	return s.repo.Update(id, ord)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
