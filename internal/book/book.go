package book

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Book is a catalog entry. ISBN is unique across the catalog.
type Book struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Author          string          `json:"author"`
	Description     string          `json:"description"`
	ISBN            string          `json:"isbn"`
	PublishedYear   int             `json:"publishedYear"`
	Genre           string          `json:"genre"`
	AvailableCopies int             `json:"availableCopies"`
	ImageURL        string          `json:"imageUrl"`
	Price           decimal.Decimal `json:"price"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// DefaultPrice applies when a request omits the price. An explicit 0 is kept.
var DefaultPrice = decimal.RequireFromString("29.99")

// Validate returns one message per invalid field, following the admin form rules.
func Validate(b Book, now time.Time) map[string]string {
	errs := map[string]string{}
	required := map[string]string{
		"title":       b.Title,
		"author":      b.Author,
		"description": b.Description,
		"isbn":        b.ISBN,
		"genre":       b.Genre,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			errs[field] = field + " is required"
		}
	}

	year := now.Year()
	switch {
	case b.PublishedYear == 0:
		errs["publishedYear"] = "publishedYear is required"
	case b.PublishedYear < 1 || b.PublishedYear > year:
		errs["publishedYear"] = "Published Year must be between 1 and " + strconv.Itoa(year)
	}
	if b.AvailableCopies < 0 {
		errs["availableCopies"] = "Available Copies must be a positive number"
	}
	if b.Price.IsNegative() {
		errs["price"] = "price must be >= 0"
	}
	return errs
}

func normalize(b Book) Book {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.ISBN = strings.TrimSpace(b.ISBN)
	b.Genre = strings.TrimSpace(b.Genre)
	return b
}
