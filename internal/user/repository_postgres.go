package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
	"github.com/wichananm65/page-flow-backend/internal/infrastructure/database/postgres"
	"github.com/wichananm65/page-flow-backend/internal/session"
)

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	userColumns = `id, first_name, last_name, email, password, role, created_at`

	listUsersQuery      = `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`
	getUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	insertUserQuery     = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	passwordHashesQuery = `SELECT password FROM users`
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersQuery)
	if err != nil {
		return nil, postgres.Translate(err, "")
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, postgres.Translate(rows.Err(), "")
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, getUserByEmailQuery, email))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, postgres.Translate(err, "")
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, u User) (User, error) {
	_, err := r.db.ExecContext(ctx, insertUserQuery,
		u.ID, u.FirstName, u.LastName, u.Email, u.Password, string(u.Role), u.CreatedAt)
	if err != nil {
		err = postgres.Translate(err, ErrEmailExists.Message)
		if apperror.Is(err, apperror.KindConflict) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) PasswordHashes(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, passwordHashesQuery)
	if err != nil {
		return nil, postgres.Translate(err, "")
	}
	defer rows.Close()

	hashes := make([]string, 0)
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}
	return hashes, postgres.Translate(rows.Err(), "")
}

func scanUser(row rowScanner) (User, error) {
	var (
		u    User
		role string
	)
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &role, &u.CreatedAt); err != nil {
		return User{}, err
	}
	u.Role = session.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}
