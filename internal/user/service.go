package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
	"github.com/wichananm65/page-flow-backend/internal/checkout"
	"github.com/wichananm65/page-flow-backend/internal/session"
)

type Options struct {
	// AdminEmails are granted the admin role when they register.
	AdminEmails []string
	// RejectSharedPasswords refuses a password already used by another account.
	RejectSharedPasswords bool
}

type Service struct {
	repo   Repository
	opts   Options
	admins map[string]bool
	cost   int
	now    func() time.Time
}

func NewService(repo Repository, opts Options) *Service {
	admins := make(map[string]bool, len(opts.AdminEmails))
	for _, e := range opts.AdminEmails {
		admins[normalizeEmail(e)] = true
	}
	return &Service{repo: repo, opts: opts, admins: admins, cost: bcrypt.DefaultCost, now: time.Now}
}

type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (r Registration) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if msg := checkout.ValidateEmail(strings.TrimSpace(r.Email)); msg != "" {
		errs["email"] = msg
	}
	if r.Password == "" {
		errs["password"] = "Password is required"
	} else if msg := ValidatePassword(r.Password); msg != "" {
		errs["password"] = msg
	}
	return errs
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Register creates a customer account, or an admin account for a configured
// admin e-mail.
func (s *Service) Register(ctx context.Context, r Registration) (User, error) {
	if err := apperror.Validation(r.validate()); err != nil {
		return User{}, err
	}

	email := normalizeEmail(r.Email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	if s.opts.RejectSharedPasswords {
		if err := s.checkSharedPassword(ctx, r.Password); err != nil {
			return User{}, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.cost)
	if err != nil {
		return User{}, err
	}

	role := session.RoleCustomer
	if s.admins[email] {
		role = session.RoleAdmin
	}
	return s.repo.Create(ctx, User{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: s.now().UTC(),
	})
}

// Authenticate returns the account matching email and password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) checkSharedPassword(ctx context.Context, password string) error {
	hashes, err := s.repo.PasswordHashes(ctx)
	if err != nil {
		return err
	}
	for _, h := range hashes {
		if bcrypt.CompareHashAndPassword([]byte(h), []byte(password)) == nil {
			return ErrPasswordExists
		}
	}
	return nil
}
