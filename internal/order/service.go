package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
	"github.com/wichananm65/page-flow-backend/internal/checkout"
	"github.com/wichananm65/page-flow-backend/internal/events"
)

const (
	FieldStatus = "status"
	FieldTotal  = "total"
)

// Service creates orders and moves them through their status lifecycle.
type Service struct {
	repo      Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(repo Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{repo: repo, publisher: publisher, now: time.Now}
}

// Create validates the customer and items, snapshots them and stores a
// pending order. A zero total means the caller leaves it to the server; any
// other value must match the sum of the items.
func (s *Service) Create(ctx context.Context, customer checkout.CustomerInfo, items []Item, total decimal.Decimal) (Order, error) {
	if err := checkout.ValidateSubmission(customer, len(items)); err != nil {
		return Order{}, err
	}
	if err := apperror.Validation(validateItems(items)); err != nil {
		return Order{}, err
	}

	computed := Total(items)
	if !total.IsZero() && !total.Equal(computed) {
		return Order{}, apperror.Validation(map[string]string{
			FieldTotal: fmt.Sprintf("Order total %s does not match the items (%s)", total.StringFixed(2), computed.StringFixed(2)),
		})
	}

	now := s.now().UTC()
	o := Order{
		ID:        uuid.NewString(),
		Customer:  customer,
		Items:     append([]Item(nil), items...),
		Total:     computed,
		Status:    StatusPending,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return Order{}, err
	}

	s.publish(ctx, events.Event{
		Type:       events.OrderCreated,
		OrderID:    created.ID,
		Status:     string(created.Status),
		Total:      created.Total.StringFixed(2),
		OccurredAt: now,
	})
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, statuses []Status) ([]Order, error) {
	for _, st := range statuses {
		if !st.Valid() {
			return nil, invalidStatus()
		}
	}
	return s.repo.List(ctx, statuses)
}

// UpdateStatus moves the order to status. When version is set it must match
// the stored version.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status, version *int) (Order, error) {
	if !status.Valid() {
		return Order{}, invalidStatus()
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if version != nil && *version != current.Version {
		return Order{}, ErrStale
	}
	if !CanTransition(current.Status, status) {
		return Order{}, apperror.Wrap(apperror.KindPrecondition,
			fmt.Sprintf("Cannot change order status from %s to %s", current.Status, status), ErrInvalidTransition)
	}

	now := s.now().UTC()
	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, current.Version, status, now)
	if err != nil {
		return Order{}, err
	}

	s.publish(ctx, events.Event{
		Type:       events.OrderStatusChanged,
		OrderID:    updated.ID,
		Status:     string(updated.Status),
		Previous:   string(current.Status),
		OccurredAt: now,
	})
	return updated, nil
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		zap.L().Warn("publish order event",
			zap.String("type", e.Type),
			zap.String("order_id", e.OrderID),
			zap.Error(err),
		)
	}
}

func validateItems(items []Item) map[string]string {
	for i, it := range items {
		var msg string
		switch {
		case strings.TrimSpace(it.Title) == "":
			msg = fmt.Sprintf("item %d is missing a title", i+1)
		case it.Quantity < 1:
			msg = fmt.Sprintf("item %d must have a quantity of at least 1", i+1)
		case it.UnitPrice.IsNegative():
			msg = fmt.Sprintf("item %d has a negative price", i+1)
		}
		if msg != "" {
			return map[string]string{checkout.FieldItems: msg}
		}
	}
	return nil
}

func invalidStatus() error {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return apperror.Validation(map[string]string{
		FieldStatus: "status must be one of " + strings.Join(names, ", "),
	})
}

// ParseStatuses splits a comma separated status filter. Blank entries are ignored.
func ParseStatuses(raw string) []Status {
	var out []Status
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(strings.ToLower(part)); p != "" {
			out = append(out, Status(p))
		}
	}
	return out
}
