package cart

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/page-flow-backend/internal/order"
)

type cartBody struct {
	ID    string     `json:"id"`
	Items []LineItem `json:"items"`
	Total string     `json:"total"`
}

func makeAppWithCartHandler(t *testing.T) *fiber.App {
	t.Helper()
	svc, _, _ := newService(t)
	app := fiber.New()
	NewHandler(svc).RegisterPublicRoutes(app)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, raw
}

func decodeCart(t *testing.T, raw []byte) cartBody {
	t.Helper()
	var out cartBody
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestCartRoutes_Basic(t *testing.T) {
	app := makeAppWithCartHandler(t)

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Method+" "+r.Path] = true
		}
	}
	for _, want := range []string{
		"POST /api/carts",
		"GET /api/carts/:id",
		"POST /api/carts/:id/items",
		"PATCH /api/carts/:id/items/:bookId",
		"POST /api/carts/:id/checkout",
	} {
		assert.True(t, routes[want], "expected route %q to be registered", want)
	}

	status, raw := call(t, app, "POST", "/api/carts", "")
	require.Equal(t, fiber.StatusCreated, status)
	created := decodeCart(t, raw)
	require.NotEmpty(t, created.ID)
	assert.Empty(t, created.Items)
	assert.Equal(t, "0", created.Total)
	base := "/api/carts/" + created.ID

	// quantity defaults to one
	status, raw = call(t, app, "POST", base+"/items", `{"bookId":"b1"}`)
	require.Equal(t, fiber.StatusOK, status, string(raw))
	status, raw = call(t, app, "POST", base+"/items", `{"bookId":"b1","quantity":2}`)
	require.Equal(t, fiber.StatusOK, status)
	c := decodeCart(t, raw)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, "89.97", c.Total)

	status, raw = call(t, app, "PATCH", base+"/items/b1", `{"delta":-1}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 2, decodeCart(t, raw).Items[0].Quantity)

	status, raw = call(t, app, "DELETE", base+"/items/b1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, decodeCart(t, raw).Items)
}

func TestCartRoutes_Errors(t *testing.T) {
	app := makeAppWithCartHandler(t)

	status, _ := call(t, app, "GET", "/api/carts/unknown", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	_, raw := call(t, app, "POST", "/api/carts", "")
	base := "/api/carts/" + decodeCart(t, raw).ID

	status, _ = call(t, app, "POST", base+"/items", `{"quantity":1}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = call(t, app, "POST", base+"/items", `{"bookId":"b1","quantity":0}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, raw = call(t, app, "POST", base+"/items", `{"bookId":"missing"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Contains(t, string(raw), "Book not found")

	status, _ = call(t, app, "PATCH", base+"/items/b2", `{"delta":1}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCartRoutes_Checkout(t *testing.T) {
	app := makeAppWithCartHandler(t)
	_, raw := call(t, app, "POST", "/api/carts", "")
	base := "/api/carts/" + decodeCart(t, raw).ID

	status, raw := call(t, app, "POST", base+"/checkout", `{"customer":{"fullName":"Ada"}}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(raw), "Email is required")

	customer := `{"customer":{"fullName":"Ada Lovelace","email":"ada@example.com","phone":"0812345678","address":"12 Analytical Lane","city":"London","paymentMethod":"credit"}}`
	status, raw = call(t, app, "POST", base+"/checkout", customer)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(raw), "Your cart is empty")

	_, _ = call(t, app, "POST", base+"/items", `{"bookId":"b2","quantity":2}`)
	status, raw = call(t, app, "POST", base+"/checkout", customer)
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	var placed order.Order
	require.NoError(t, json.Unmarshal(raw, &placed))
	assert.Equal(t, order.StatusPending, placed.Status)
	assert.Equal(t, "20.00", placed.Total.StringFixed(2))

	_, raw = call(t, app, "GET", base, "")
	assert.Empty(t, decodeCart(t, raw).Items)

	status, raw = call(t, app, "DELETE", base, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, decodeCart(t, raw).Items)
}
