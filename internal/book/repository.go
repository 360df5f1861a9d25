package book

import (
	"context"
	"sync"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
)

var (
	ErrNotFound   = apperror.New(apperror.KindNotFound, "Book not found")
	ErrISBNExists = apperror.New(apperror.KindConflict, "A book with this ISBN already exists. Please use a different ISBN.")
)

type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id string) (Book, error)
	Create(ctx context.Context, b Book) (Book, error)
	Update(ctx context.Context, id string, b Book) (Book, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// local runs. It enforces ISBN uniqueness like the database indexes do.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Book
}

func NewInMemoryRepository(seed []Book) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Book, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) List(context.Context) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.storage {
		if b.ID == id {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, b Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isbnTaken(b.ISBN, "") {
		return Book{}, ErrISBNExists
	}
	r.storage = append(r.storage, b)
	return b, nil
}

func (r *InMemoryRepository) Update(_ context.Context, id string, b Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			if r.isbnTaken(b.ISBN, id) {
				return Book{}, ErrISBNExists
			}
			b.ID = id
			b.CreatedAt = r.storage[i].CreatedAt
			r.storage[i] = b
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) isbnTaken(isbn, exceptID string) bool {
	for _, b := range r.storage {
		if b.ISBN == isbn && b.ID != exceptID {
			return true
		}
	}
	return false
}
