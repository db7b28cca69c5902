package review

import (
	"errors"
	"fmt"
	"time"

	"github.com/pawmart/pawmart-backend/internal/dog"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// DogNotFoundError reports a review referencing a missing dog.
type DogNotFoundError struct {
	DogID int
}

func (e *DogNotFoundError) Error() string {
	return fmt.Sprintf("Dog with ID %d not found", e.DogID)
}

// DogDirectory looks up dogs so new reviews can reject ids that do not
// exist instead of tripping the store's foreign key.
type DogDirectory interface {
	GetByID(id int) (dog.Dog, error)
}

type Service struct {
	repo Repository
	dogs DogDirectory
}

func NewService(repo Repository, dogs DogDirectory) *Service {
	return &Service{repo: repo, dogs: dogs}
}

func (s *Service) ListAll() ([]Review, error) {
	return s.repo.ListAll()
}

func (s *Service) GetByID(id int) (Review, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByUser(userID int) ([]Review, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) ListByDog(dogID int) ([]Review, error) {
	return s.repo.ListByDog(dogID)
}

func (s *Service) Create(rev Review) (Review, error) {
	if rev.Rating < 1 || rev.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	if _, err := s.dogs.GetByID(rev.DogID); err != nil {
		if err == dog.ErrNotFound {
			return Review{}, &DogNotFoundError{DogID: rev.DogID}
		}
		return Review{}, err
	}
	if rev.Date == "" {
		rev.Date = time.Now().UTC().Format(time.RFC3339)
	}

	return s.repo.Create(rev)
}

func (s *Service) Update(id int, rev Review) (Review, error) {
	if rev.Rating < 1 || rev.Rating > 5 {
		return Review{}, ErrInvalidRating
	}

	return s.repo.Update(id, rev)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
