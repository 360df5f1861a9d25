package cart

import (
	"context"
	"sync"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
)

var (
	ErrNotFound     = apperror.New(apperror.KindNotFound, "Cart not found")
	ErrItemNotFound = apperror.New(apperror.KindNotFound, "Book is not in the cart")
)

// Repository stores each cart as a single record that Save overwrites wholesale.
type Repository interface {
	Load(ctx context.Context, id string) (Cart, error)
	Save(ctx context.Context, c Cart) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[string]Cart)}
}

func (r *InMemoryRepository) Load(_ context.Context, id string) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[id]
	if !ok {
		return Cart{}, ErrNotFound
	}
	c.Items = append([]LineItem{}, c.Items...)
	return c, nil
}

func (r *InMemoryRepository) Save(_ context.Context, c Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.Items = append([]LineItem{}, c.Items...)
	r.carts[c.ID] = c
	return nil
}
