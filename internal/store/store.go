package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the catalog tables. Rows are scanned in position order,
// which is the lookup order.
const Schema = `
CREATE TABLE IF NOT EXISTS faq_entries (
	position integer PRIMARY KEY,
	phrase   text    NOT NULL,
	answer   text    NOT NULL
);
CREATE TABLE IF NOT EXISTS departments (
	position integer PRIMARY KEY,
	name     text    NOT NULL,
	keywords text[]  NOT NULL DEFAULT '{}',
	response text    NOT NULL
);`

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the catalog tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
