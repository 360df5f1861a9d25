package book

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/page-flow-backend/internal/session"
)

func fakeSession(role session.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role != "" {
			session.Attach(c, session.Session{ID: "sess-1", UserID: "user-1", Email: "admin@example.com", Role: role})
		}
		return c.Next()
	}
}

func newTestApp(repo Repository, role session.Role) *fiber.App {
	h := NewHandler(NewService(repo))
	app := fiber.New()
	app.Use(fakeSession(role))
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func sampleBook(id, isbn string) Book {
	return Book{
		ID:              id,
		Title:           "Dune",
		Author:          "Frank Herbert",
		Description:     "Spice",
		ISBN:            isbn,
		PublishedYear:   1965,
		Genre:           "Science Fiction",
		AvailableCopies: 3,
		Price:           decimal.RequireFromString("12.50"),
	}
}

const validPayload = `{"title":"Emma","author":"Jane Austen","description":"A comedy of manners","isbn":"978-0141439587","publishedYear":1815,"genre":"Classic","availableCopies":4}`

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out
}

func TestGetBooks(t *testing.T) {
	app := newTestApp(NewInMemoryRepository([]Book{sampleBook("b1", "111"), sampleBook("b2", "222")}), "")

	res, err := app.Test(httptest.NewRequest("GET", "/api/books", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	var books []Book
	require.NoError(t, json.NewDecoder(res.Body).Decode(&books))
	require.Len(t, books, 2)
	assert.True(t, books[0].Price.Equal(decimal.RequireFromString("12.50")))
}

func TestGetBook_NotFound(t *testing.T) {
	app := newTestApp(NewInMemoryRepository(nil), "")

	status, body := doJSON(t, app, "GET", "/api/books/missing", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Book not found", body["message"])
}

func TestCreateBook_RequiresAdmin(t *testing.T) {
	status, _ := doJSON(t, newTestApp(NewInMemoryRepository(nil), ""), "POST", "/api/books", validPayload)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, newTestApp(NewInMemoryRepository(nil), session.RoleCustomer), "POST", "/api/books", validPayload)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestCreateBook_AppliesDefaultPrice(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := newTestApp(repo, session.RoleAdmin)

	status, body := doJSON(t, app, "POST", "/api/books", validPayload)
	require.Equal(t, fiber.StatusCreated, status)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "29.99", body["price"])

	books, _ := repo.List(context.Background())
	assert.Len(t, books, 1)
}

func TestCreateBook_KeepsExplicitZeroPrice(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	app := newTestApp(repo, session.RoleAdmin)

	payload := strings.Replace(validPayload, `"availableCopies":4`, `"availableCopies":4,"price":0`, 1)
	status, body := doJSON(t, app, "POST", "/api/books", payload)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "0", body["price"])

	books, _ := repo.List(context.Background())
	require.Len(t, books, 1)
	assert.True(t, books[0].Price.IsZero())
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	app := newTestApp(NewInMemoryRepository([]Book{sampleBook("b1", "978-0141439587")}), session.RoleAdmin)

	status, body := doJSON(t, app, "POST", "/api/books", validPayload)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, ErrISBNExists.Message, body["message"])
}

func TestCreateBook_ValidationErrors(t *testing.T) {
	app := newTestApp(NewInMemoryRepository(nil), session.RoleAdmin)

	status, body := doJSON(t, app, "POST", "/api/books", `{"title":"Emma","publishedYear":3000,"availableCopies":-1}`)
	require.Equal(t, fiber.StatusBadRequest, status)

	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, "expected errors map, got %v", body)
	for _, field := range []string{"author", "description", "isbn", "genre", "publishedYear", "availableCopies"} {
		assert.Contains(t, errs, field)
	}
	assert.NotContains(t, errs, "title")
}

func TestCreateBook_InvalidBody(t *testing.T) {
	app := newTestApp(NewInMemoryRepository(nil), session.RoleAdmin)

	status, body := doJSON(t, app, "POST", "/api/books", `{"title":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid request body", body["message"])
}

func TestUpdateBook(t *testing.T) {
	repo := NewInMemoryRepository([]Book{sampleBook("b1", "111"), sampleBook("b2", "978-0141439587")})
	app := newTestApp(repo, session.RoleAdmin)

	status, _ := doJSON(t, app, "PUT", "/api/books/b1", validPayload)
	assert.Equal(t, fiber.StatusBadRequest, status, "isbn owned by b2")

	payload := strings.Replace(validPayload, "978-0141439587", "111", 1)
	status, body := doJSON(t, app, "PUT", "/api/books/b1", payload)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Emma", body["title"])
	assert.Equal(t, "b1", body["id"])

	status, _ = doJSON(t, app, "PUT", "/api/books/nope", strings.Replace(validPayload, "978-0141439587", "333", 1))
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDeleteBook(t *testing.T) {
	repo := NewInMemoryRepository([]Book{sampleBook("b1", "111")})
	app := newTestApp(repo, session.RoleAdmin)

	status, body := doJSON(t, app, "DELETE", "/api/books/b1", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Book deleted successfully", body["message"])

	status, _ = doJSON(t, app, "DELETE", "/api/books/b1", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}
