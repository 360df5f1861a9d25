package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wichananm65/page-flow-backend/internal/checkout"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
// Only pending orders move, and only to a terminal status.
func CanTransition(from, to Status) bool {
	return from == StatusPending && (to == StatusCompleted || to == StatusCancelled)
}

// Item is the snapshot of one purchased book taken when the order is placed.
// BookID is kept when the item came from the catalog.
type Item struct {
	BookID    string          `json:"bookId,omitempty"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a placed purchase. Only Status, Version and UpdatedAt change after creation.
type Order struct {
	ID        string                `json:"id"`
	Customer  checkout.CustomerInfo `json:"customer"`
	Items     []Item                `json:"items"`
	Total     decimal.Decimal       `json:"total"`
	Status    Status                `json:"status"`
	Version   int                   `json:"version"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// Total sums the line totals of items.
func Total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}
