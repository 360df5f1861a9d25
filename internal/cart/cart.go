package cart

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wichananm65/page-flow-backend/internal/book"
)

// LineItem is a book in the cart. The book fields are a snapshot taken when
// the book was first added.
type LineItem struct {
	BookID          string          `json:"bookId"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	Description     string          `json:"description"`
	ISBN            string          `json:"isbn"`
	AvailableCopies int             `json:"availableCopies"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Quantity        int             `json:"quantity"`
	ImageURL        string          `json:"imageUrl"`
}

func lineItemFrom(b book.Book) LineItem {
	return LineItem{
		BookID:          b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Description:     b.Description,
		ISBN:            b.ISBN,
		AvailableCopies: b.AvailableCopies,
		UnitPrice:       b.Price,
		ImageURL:        b.ImageURL,
	}
}

// Cart holds at most one line item per book, in the order they were added.
// MaxQuantity bounds the quantity of a single line.
const MaxQuantity = 999

type Cart struct {
	ID        string     `json:"id"`
	Items     []LineItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// AddItem merges quantity into the existing line for the same book or
// appends a new line. A line never exceeds MaxQuantity.
func (c *Cart) AddItem(item LineItem, quantity int) {
	for i := range c.Items {
		if c.Items[i].BookID == item.BookID {
			c.Items[i].Quantity = adjust(c.Items[i].Quantity, quantity)
			return
		}
	}
	item.Quantity = adjust(0, quantity)
	c.Items = append(c.Items, item)
}

// SetQuantity adjusts the quantity of bookID by delta, keeping it within
// [1, MaxQuantity]. It reports whether the book was in the cart.
func (c *Cart) SetQuantity(bookID string, delta int) bool {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			c.Items[i].Quantity = adjust(c.Items[i].Quantity, delta)
			return true
		}
	}
	return false
}

// RemoveItem drops bookID from the cart. Removing an absent book is a no-op.
func (c *Cart) RemoveItem(bookID string) {
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.BookID != bookID {
			kept = append(kept, it)
		}
	}
	c.Items = kept
}

func (c *Cart) Clear() {
	c.Items = []LineItem{}
}

func (c Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.Items {
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// MarshalJSON adds the computed total to the cart body.
func (c Cart) MarshalJSON() ([]byte, error) {
	type alias Cart
	if c.Items == nil {
		c.Items = []LineItem{}
	}
	return json.Marshal(struct {
		alias
		Total decimal.Decimal `json:"total"`
	}{alias(c), c.Total()})
}

// adjust adds delta to a quantity in [0, MaxQuantity] and clamps the result
// to [1, MaxQuantity] without overflowing.
func adjust(quantity, delta int) int {
	switch {
	case delta >= MaxQuantity:
		return MaxQuantity
	case delta <= -MaxQuantity:
		return 1
	}
	return min(MaxQuantity, max(1, quantity+delta))
}
