package user

import (
	"context"
	"sync"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
)

var (
	ErrNotFound           = apperror.New(apperror.KindNotFound, "User not found")
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "Invalid email or password")
	ErrEmailExists        = apperror.New(apperror.KindConflict, "Email already exists")
	ErrPasswordExists     = apperror.New(apperror.KindConflict, "Password already exists")
)

// Repository stores users keyed by id with a unique lower-cased email.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	// PasswordHashes returns the stored hash of every account.
	PasswordHashes(ctx context.Context) ([]string, error)
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	users []User
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	repo := &InMemoryRepository{users: make([]User, 0, len(seed))}
	repo.users = append(repo.users, seed...)
	return repo
}

func (r *InMemoryRepository) List(context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, len(r.users))
	copy(users, r.users)
	return users, nil
}

func (r *InMemoryRepository) GetByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = normalizeEmail(email)
	for _, u := range r.users {
		if normalizeEmail(u.Email) == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if normalizeEmail(existing.Email) == normalizeEmail(u.Email) {
			return User{}, ErrEmailExists
		}
	}
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryRepository) PasswordHashes(context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hashes := make([]string, len(r.users))
	for i, u := range r.users {
		hashes[i] = u.Password
	}
	return hashes, nil
}
