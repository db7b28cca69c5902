package dog

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Dog, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Dog, error) {
	return s.repo.GetByID(id)
}

// Create rejects listings whose name is already taken. Uniqueness is only
// checked on create, matching the store contract.
func (s *Service) Create(d Dog) (Dog, error) {
	if _, err := s.repo.GetByName(d.Name); err == nil {
		return Dog{}, ErrNameExists
	} else if err != ErrNotFound {
		return Dog{}, err
	}

	return s.repo.Create(d)
}

func (s *Service) Update(id int, d Dog) (Dog, error) {
	return s.repo.Update(id, d)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
