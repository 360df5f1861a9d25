package session

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
)

// Manager issues signed tokens for sessions kept in a Store.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Begin creates a session for the user and returns it with its bearer token.
func (m *Manager) Begin(ctx context.Context, userID, email string, role Role) (Session, string, error) {
	now := m.now().UTC()
	s := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     email,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	claims := jwt.MapClaims{
		"sid":     s.ID,
		"user_id": s.UserID,
		"email":   s.Email,
		"role":    string(s.Role),
		"iat":     s.IssuedAt.Unix(),
		"exp":     s.ExpiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Session{}, "", err
	}

	if err := m.store.Save(ctx, s); err != nil {
		return Session{}, "", err
	}
	return s, signed, nil
}

// End deletes the session; its token stops resolving immediately.
func (m *Manager) End(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

// Middleware verifies bearer tokens and attaches the session. Requests
// without an Authorization header pass through anonymously; handlers decide
// whether they need a session.
func (m *Manager) Middleware() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: m.secret,
		Filter: func(c *fiber.Ctx) bool {
			return c.Get(fiber.HeaderAuthorization) == ""
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return apperror.Respond(c, apperror.Wrap(apperror.KindUnauthorized, "invalid or expired token", err))
		},
		SuccessHandler: m.resolve,
	})
}

func (m *Manager) resolve(c *fiber.Ctx) error {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return apperror.Respond(c, ErrUnauthorized)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return apperror.Respond(c, ErrUnauthorized)
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return apperror.Respond(c, ErrUnauthorized)
	}

	s, err := m.store.Get(c.UserContext(), sid)
	if err != nil {
		return apperror.Respond(c, err)
	}
	if s.Expired(m.now()) {
		if err := m.store.Delete(c.UserContext(), sid); err != nil && !errors.Is(err, ErrNotFound) {
			return apperror.Respond(c, err)
		}
		return apperror.Respond(c, ErrExpired)
	}

	Attach(c, s)
	return c.Next()
}
