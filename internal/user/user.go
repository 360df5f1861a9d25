package user

import (
	"strings"
	"time"

	"github.com/wichananm65/page-flow-backend/internal/session"
)

// User is a registered account. Password holds the bcrypt hash and is never
// written to a response.
type User struct {
	ID        string       `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Email     string       `json:"email"`
	Password  string       `json:"-"`
	Role      session.Role `json:"role"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ValidatePassword applies the sign-up password policy and returns "" when
// the password is acceptable.
func ValidatePassword(p string) string {
	var missing []string
	if len(p) < 8 {
		missing = append(missing, "At least 8 characters")
	}
	if !strings.ContainsAny(p, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		missing = append(missing, "One uppercase letter")
	}
	if !strings.ContainsAny(p, "0123456789") {
		missing = append(missing, "One number")
	}
	if !strings.ContainsAny(p, "!@#$%^&*") {
		missing = append(missing, "One special character (!@#$%^&*)")
	}
	if len(missing) == 0 {
		return ""
	}
	return "Password requirements: " + strings.Join(missing, ", ")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
