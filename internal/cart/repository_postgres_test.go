package cart

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepository_SaveOverwritesWholesale(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO carts").
		WithArgs("c1", []byte(`[]`), at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgresRepository(db).Save(context.Background(), Cart{ID: "c1", UpdatedAt: at}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"items", "updated_at"}).
		AddRow([]byte(`[{"bookId":"b1","title":"Dune","unitPrice":"29.99","quantity":2}]`), at)
	mock.ExpectQuery("SELECT items, updated_at FROM carts").WithArgs("c1").WillReturnRows(rows)

	c, err := repo.Load(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, "59.98", c.Total().StringFixed(2))

	mock.ExpectQuery("SELECT items").WithArgs("c2").WillReturnRows(sqlmock.NewRows([]string{"items", "updated_at"}))
	_, err = repo.Load(context.Background(), "c2")
	assert.ErrorIs(t, err, ErrNotFound)
}
