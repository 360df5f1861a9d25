package book

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
	"github.com/wichananm65/page-flow-backend/internal/infrastructure/database/postgres"
)

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	bookColumns = `id, title, author, description, isbn, published_year, genre, available_copies, image_url, price, created_at, updated_at`

	listBooksQuery   = `SELECT ` + bookColumns + ` FROM books ORDER BY created_at, id`
	getBookByIDQuery = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	insertBookQuery  = `
		INSERT INTO books (` + bookColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`
	updateBookQuery = `
		UPDATE books
		SET title = $1,
			author = $2,
			description = $3,
			isbn = $4,
			published_year = $5,
			genre = $6,
			available_copies = $7,
			image_url = $8,
			price = $9,
			updated_at = $10
		WHERE id = $11
		RETURNING created_at
	`
	deleteBookQuery = `DELETE FROM books WHERE id = $1`
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Book, error) {
	rows, err := r.db.QueryContext(ctx, listBooksQuery)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := make([]Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, translate(rows.Err())
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx, getBookByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, translate(err)
	}
	return b, nil
}

func (r *PostgresRepository) Create(ctx context.Context, b Book) (Book, error) {
	_, err := r.db.ExecContext(ctx, insertBookQuery,
		b.ID, b.Title, b.Author, b.Description, b.ISBN, b.PublishedYear, b.Genre,
		b.AvailableCopies, b.ImageURL, b.Price, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return Book{}, translate(err)
	}
	return b, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, b Book) (Book, error) {
	err := r.db.QueryRowContext(ctx, updateBookQuery,
		b.Title, b.Author, b.Description, b.ISBN, b.PublishedYear, b.Genre,
		b.AvailableCopies, b.ImageURL, b.Price, b.UpdatedAt, id).Scan(&b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, translate(err)
	}
	b.ID = id
	return b, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteBookQuery, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBook(row rowScanner) (Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.ISBN, &b.PublishedYear, &b.Genre,
		&b.AvailableCopies, &b.ImageURL, &b.Price, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Book{}, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, nil
}

func translate(err error) error {
	err = postgres.Translate(err, ErrISBNExists.Message)
	if apperror.Is(err, apperror.KindConflict) {
		return ErrISBNExists
	}
	return err
}
