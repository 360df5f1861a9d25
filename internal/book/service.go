package book

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates b, assigns an id and timestamps, and stores it.
func (s *Service) Create(ctx context.Context, b Book) (Book, error) {
	now := s.now().UTC()
	b = normalize(b)
	if err := apperror.Validation(Validate(b, now)); err != nil {
		return Book{}, err
	}
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now
	return s.repo.Create(ctx, b)
}

// Update replaces every editable field of the book with id.
func (s *Service) Update(ctx context.Context, id string, b Book) (Book, error) {
	now := s.now().UTC()
	b = normalize(b)
	if err := apperror.Validation(Validate(b, now)); err != nil {
		return Book{}, err
	}
	b.UpdatedAt = now
	return s.repo.Update(ctx, id, b)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Seed inserts books when the catalog is empty. It returns how many were added.
func (s *Service) Seed(ctx context.Context, books []Book) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, b := range books {
		if _, err := s.Create(ctx, b); err != nil {
			return i, err
		}
	}
	return len(books), nil
}
