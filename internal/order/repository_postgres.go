package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/wichananm65/page-flow-backend/internal/infrastructure/database/postgres"
)

const (
	orderColumns = `id, customer, items, total, status, version, created_at, updated_at`

	insertOrderQuery = `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	getOrderQuery        = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	listOrdersQuery      = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id`
	listOrdersByStatuses = `SELECT ` + orderColumns + ` FROM orders WHERE status = ANY($1::text[]) ORDER BY created_at DESC, id`
	updateStatusQuery    = `
		UPDATE orders
		SET status = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND status = $4 AND version = $5
		RETURNING ` + orderColumns
)

type rowScanner interface {
	Scan(dest ...any) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, o Order) (Order, error) {
	customerJSON, err := json.Marshal(o.Customer)
	if err != nil {
		return Order{}, err
	}
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return Order{}, err
	}

	_, err = r.db.ExecContext(ctx, insertOrderQuery,
		o.ID, customerJSON, itemsJSON, o.Total, string(o.Status), o.Version, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return Order{}, postgres.Translate(err, "order already exists")
	}
	return o, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, getOrderQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, postgres.Translate(err, "")
	}
	return o, nil
}

func (r *PostgresRepository) List(ctx context.Context, statuses []Status) ([]Order, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if len(statuses) == 0 {
		rows, err = r.db.QueryContext(ctx, listOrdersQuery)
	} else {
		names := make([]string, len(statuses))
		for i, s := range statuses {
			names[i] = string(s)
		}
		rows, err = r.db.QueryContext(ctx, listOrdersByStatuses, pq.Array(names))
	}
	if err != nil {
		return nil, postgres.Translate(err, "")
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, postgres.Translate(rows.Err(), "")
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, from Status, version int, to Status, at time.Time) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, updateStatusQuery, string(to), at, id, string(from), version))
	if errors.Is(err, sql.ErrNoRows) {
		// nothing matched: either the order is gone or someone else moved it
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return Order{}, getErr
		}
		return Order{}, ErrStale
	}
	if err != nil {
		return Order{}, postgres.Translate(err, "")
	}
	return o, nil
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		o            Order
		status       string
		customerJSON []byte
		itemsJSON    []byte
	)
	if err := row.Scan(&o.ID, &customerJSON, &itemsJSON, &o.Total, &status, &o.Version, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(customerJSON, &o.Customer); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return Order{}, err
	}
	o.Status = Status(status)
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	return o, nil
}
