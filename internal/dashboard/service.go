package dashboard

import "github.com/pawmart/pawmart-backend/internal/user"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Stats() (Stats, error) {
	return s.repo.Stats()
}

func (s *Service) Customers() ([]user.User, error) {
	return s.repo.Customers()
}
