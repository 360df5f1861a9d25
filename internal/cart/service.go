package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
	"github.com/wichananm65/page-flow-backend/internal/book"
	"github.com/wichananm65/page-flow-backend/internal/checkout"
	"github.com/wichananm65/page-flow-backend/internal/order"
)

// Catalog resolves the book being added to a cart.
type Catalog interface {
	GetByID(ctx context.Context, id string) (book.Book, error)
}

// OrderPlacer turns a validated checkout into an order.
type OrderPlacer interface {
	Create(ctx context.Context, customer checkout.CustomerInfo, items []order.Item, total decimal.Decimal) (order.Order, error)
}

// Service runs every cart mutation as load, mutate, save under a per-cart lock.
type Service struct {
	repo    Repository
	catalog Catalog
	orders  OrderPlacer
	locks   *keyedMutex
	now     func() time.Time
}

func NewService(repo Repository, catalog Catalog, orders OrderPlacer) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		orders:  orders,
		locks:   newKeyedMutex(),
		now:     time.Now,
	}
}

// Create starts an empty cart under a fresh id.
func (s *Service) Create(ctx context.Context) (Cart, error) {
	c := Cart{ID: uuid.NewString(), Items: []LineItem{}, UpdatedAt: s.now().UTC()}
	if err := s.repo.Save(ctx, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (Cart, error) {
	return s.repo.Load(ctx, id)
}

// AddItem adds quantity copies of bookID, merging with an existing line.
func (s *Service) AddItem(ctx context.Context, id, bookID string, quantity int) (Cart, error) {
	if quantity < 1 {
		return Cart{}, apperror.Validation(map[string]string{"quantity": "Quantity must be at least 1"})
	}
	if quantity > MaxQuantity {
		return Cart{}, apperror.Validation(map[string]string{"quantity": fmt.Sprintf("Quantity must be at most %d", MaxQuantity)})
	}
	b, err := s.catalog.GetByID(ctx, bookID)
	if err != nil {
		return Cart{}, err
	}
	return s.mutate(ctx, id, func(c *Cart) error {
		c.AddItem(lineItemFrom(b), quantity)
		return nil
	})
}

func (s *Service) SetQuantity(ctx context.Context, id, bookID string, delta int) (Cart, error) {
	return s.mutate(ctx, id, func(c *Cart) error {
		if !c.SetQuantity(bookID, delta) {
			return ErrItemNotFound
		}
		return nil
	})
}

func (s *Service) RemoveItem(ctx context.Context, id, bookID string) (Cart, error) {
	return s.mutate(ctx, id, func(c *Cart) error {
		c.RemoveItem(bookID)
		return nil
	})
}

func (s *Service) Clear(ctx context.Context, id string) (Cart, error) {
	return s.mutate(ctx, id, func(c *Cart) error {
		c.Clear()
		return nil
	})
}

// Checkout places an order for the cart's contents and then empties the cart.
// The cart is left untouched when the order cannot be created.
func (s *Service) Checkout(ctx context.Context, id string, customer checkout.CustomerInfo) (order.Order, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	c, err := s.repo.Load(ctx, id)
	if err != nil {
		return order.Order{}, err
	}

	items := make([]order.Item, len(c.Items))
	for i, it := range c.Items {
		items[i] = order.Item{BookID: it.BookID, Title: it.Title, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	placed, err := s.orders.Create(ctx, customer, items, c.Total())
	if err != nil {
		return order.Order{}, err
	}

	c.Clear()
	c.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, c); err != nil {
		zap.L().Error("clear cart after checkout",
			zap.String("cart_id", id),
			zap.String("order_id", placed.ID),
			zap.Error(err),
		)
	}
	return placed, nil
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*Cart) error) (Cart, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	c, err := s.repo.Load(ctx, id)
	if err != nil {
		return Cart{}, err
	}
	if err := fn(&c); err != nil {
		return Cart{}, err
	}
	c.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// keyedMutex hands out one mutex per cart id and forgets it once no caller
// holds or waits on it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
