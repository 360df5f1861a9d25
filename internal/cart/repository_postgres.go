package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/wichananm65/page-flow-backend/internal/infrastructure/database/postgres"
)

const (
	loadCartQuery = `SELECT items, updated_at FROM carts WHERE id = $1`
	saveCartQuery = `
		INSERT INTO carts (id, items, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at
	`
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Load(ctx context.Context, id string) (Cart, error) {
	c := Cart{ID: id}
	var itemsJSON []byte
	err := r.db.QueryRowContext(ctx, loadCartQuery, id).Scan(&itemsJSON, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Cart{}, ErrNotFound
	}
	if err != nil {
		return Cart{}, postgres.Translate(err, "")
	}
	if err := json.Unmarshal(itemsJSON, &c.Items); err != nil {
		return Cart{}, err
	}
	if c.Items == nil {
		c.Items = []LineItem{}
	}
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func (r *PostgresRepository) Save(ctx context.Context, c Cart) error {
	items := c.Items
	if items == nil {
		items = []LineItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, saveCartQuery, c.ID, itemsJSON, c.UpdatedAt)
	return postgres.Translate(err, "")
}
