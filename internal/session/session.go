// Package session replaces ambient "current user" state with an explicit
// Session value. Login begins a session, logout ends it, and the middleware
// resolves the bearer token of each request back to its Session.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

const localsKey = "session"

var (
	ErrUnauthorized = apperror.New(apperror.KindUnauthorized, "unauthorized")
	ErrForbidden    = apperror.New(apperror.KindForbidden, "administrator access required")
	ErrNotFound     = apperror.New(apperror.KindUnauthorized, "session not found")
	ErrExpired      = apperror.New(apperror.KindUnauthorized, "session expired")
)

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Attach stores s on the request.
func Attach(c *fiber.Ctx, s Session) {
	c.Locals(localsKey, s)
}

// FromCtx returns the session resolved for this request.
func FromCtx(c *fiber.Ctx) (Session, error) {
	s, ok := c.Locals(localsKey).(Session)
	if !ok || s.ID == "" {
		return Session{}, ErrUnauthorized
	}
	return s, nil
}

// RequireRole returns the request's session when it carries role.
func RequireRole(c *fiber.Ctx, role Role) (Session, error) {
	s, err := FromCtx(c)
	if err != nil {
		return Session{}, err
	}
	if s.Role != role {
		return Session{}, ErrForbidden
	}
	return s, nil
}
