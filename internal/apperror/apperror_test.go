package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSentinel = New(KindNotFound, "book not found")

func TestKindOf_FollowsWrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", errSentinel)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, errSentinel))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
}

func TestValidation_EmptyFieldsIsNil(t *testing.T) {
	assert.NoError(t, Validation(nil))
	assert.NoError(t, Validation(map[string]string{}))

	err := Validation(map[string]string{"email": "Email is required"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Email is required", FieldsOf(err)["email"])
}

func TestMessageOf_HidesUnavailableDetails(t *testing.T) {
	err := Wrap(KindUnavailable, "postgres", errors.New("dial tcp 10.0.0.1:5432: connection refused"))
	assert.Equal(t, "server unavailable", MessageOf(err))
	assert.Equal(t, "Something went wrong!", MessageOf(errors.New("raw")))
}

func TestRespond_StatusAndBody(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", Validation(map[string]string{"phone": "Phone number is required"}), fiber.StatusBadRequest},
		{"conflict", New(KindConflict, "A book with this ISBN already exists"), fiber.StatusBadRequest},
		{"not found", errSentinel, fiber.StatusNotFound},
		{"precondition", New(KindPrecondition, "order already completed"), fiber.StatusConflict},
		{"unauthorized", New(KindUnauthorized, "unauthorized"), fiber.StatusUnauthorized},
		{"forbidden", New(KindForbidden, "forbidden"), fiber.StatusForbidden},
		{"unavailable", Wrap(KindUnavailable, "store", errors.New("timeout")), fiber.StatusServiceUnavailable},
		{"internal", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return Respond(c, tc.err) })

			res, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, res.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestRespond_IncludesFieldErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Respond(c, Validation(map[string]string{"city": "City is required"}))
	})

	res, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "City is required", body.Errors["city"])
}
