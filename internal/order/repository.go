package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
)

var (
	ErrNotFound          = apperror.New(apperror.KindNotFound, "Order not found")
	ErrInvalidTransition = apperror.New(apperror.KindPrecondition, "order status cannot be changed")
	ErrStale             = apperror.New(apperror.KindPrecondition, "order was modified by another request, reload it and try again")
)

// Repository persists orders. UpdateStatus is a conditional write: it only
// applies when the stored order still has status from and version, and
// returns ErrStale otherwise.
type Repository interface {
	Create(ctx context.Context, o Order) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	// List returns orders newest first. An empty statuses slice matches every order.
	List(ctx context.Context, statuses []Status) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, from Status, version int, to Status, at time.Time) (Order, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[string]Order)}
}

func (r *InMemoryRepository) Create(_ context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = clone(o)
	return clone(o), nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return clone(o), nil
}

func (r *InMemoryRepository) List(_ context.Context, statuses []Status) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		if matchesStatus(o.Status, statuses) {
			out = append(out, clone(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(_ context.Context, id string, from Status, version int, to Status, at time.Time) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	if o.Status != from || o.Version != version {
		return Order{}, ErrStale
	}
	o.Status = to
	o.Version++
	o.UpdatedAt = at
	r.orders[id] = o
	return clone(o), nil
}

// clone detaches the item snapshot from the stored order.
func clone(o Order) Order {
	o.Items = append([]Item(nil), o.Items...)
	return o
}

func matchesStatus(s Status, statuses []Status) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, want := range statuses {
		if s == want {
			return true
		}
	}
	return false
}
