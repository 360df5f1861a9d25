package session

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_RoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewPostgresStore(db)
	ctx := context.Background()

	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := Session{ID: "s1", UserID: "u1", Email: "u@example.com", Role: RoleAdmin, IssuedAt: issued, ExpiresAt: issued.Add(time.Hour)}

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs("s1", "u1", "u@example.com", "admin", issued, issued.Add(time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.Save(ctx, s))

	rows := sqlmock.NewRows([]string{"id", "user_id", "email", "role", "issued_at", "expires_at"}).
		AddRow("s1", "u1", "u@example.com", "admin", issued, issued.Add(time.Hour))
	mock.ExpectQuery("SELECT id, user_id, email, role, issued_at, expires_at FROM sessions").WithArgs("s1").WillReturnRows(rows)
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, s, got)

	mock.ExpectQuery("FROM sessions").WithArgs("missing").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectExec("DELETE FROM sessions").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.Delete(ctx, "s1"))

	mock.ExpectExec("DELETE FROM sessions").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, store.Delete(ctx, "s1"), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
