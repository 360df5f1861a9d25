package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/page-flow-backend/internal/session"
)

var userRowColumns = []string{"id", "first_name", "last_name", "email", "password", "role", "created_at"}

func TestPostgresRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("WHERE lower\\(email\\) = lower\\(\\$1\\)").
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow("u1", "Ada", "Lovelace", "ada@example.com", "$2a$hash", "admin", ts))

	u, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, session.RoleAdmin, u.Role)
	assert.Equal(t, "$2a$hash", u.Password)

	mock.ExpectQuery("FROM users").WithArgs("ghost@example.com").WillReturnRows(sqlmock.NewRows(userRowColumns))
	_, err = repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err = NewPostgresRepository(db).Create(context.Background(), User{ID: "u1", Email: "ada@example.com", Role: session.RoleCustomer})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestPostgresRepository_PasswordHashes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT password FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"password"}).AddRow("h1").AddRow("h2"))

	hashes, err := NewPostgresRepository(db).PasswordHashes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"h1", "h2"}, hashes)
}
