package session

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wichananm65/page-flow-backend/internal/infrastructure/database/postgres"
)

const (
	insertSessionQuery = `
		INSERT INTO sessions (id, user_id, email, role, issued_at, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	getSessionQuery    = `SELECT id, user_id, email, role, issued_at, expires_at FROM sessions WHERE id = $1`
	deleteSessionQuery = `DELETE FROM sessions WHERE id = $1`
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, sess Session) error {
	_, err := s.db.ExecContext(ctx, insertSessionQuery, sess.ID, sess.UserID, sess.Email, string(sess.Role), sess.IssuedAt, sess.ExpiresAt)
	return postgres.Translate(err, "session already exists")
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Session, error) {
	var sess Session
	var role string
	err := s.db.QueryRowContext(ctx, getSessionQuery, id).Scan(&sess.ID, &sess.UserID, &sess.Email, &role, &sess.IssuedAt, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, postgres.Translate(err, "")
	}
	sess.Role = Role(role)
	return sess, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, deleteSessionQuery, id)
	if err != nil {
		return postgres.Translate(err, "")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
