package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MikeSquared-Agency/frontdesk/internal/catalog"
)

// KnowledgeEntries reads the FAQ table in position order.
func (s *Store) KnowledgeEntries(ctx context.Context) ([]catalog.Entry, error) {
	rows, err := s.pool.Query(ctx, `SELECT phrase, answer FROM faq_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query faq entries: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.Entry, error) {
		var e catalog.Entry
		err := row.Scan(&e.Phrase, &e.Answer)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan faq entries: %w", err)
	}
	return entries, nil
}

// DepartmentList reads the department table in position order.
func (s *Store) DepartmentList(ctx context.Context) ([]catalog.Department, error) {
	rows, err := s.pool.Query(ctx, `SELECT name, keywords, response FROM departments ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query departments: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (catalog.Department, error) {
		var d catalog.Department
		err := row.Scan(&d.Name, &d.Keywords, &d.Response)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan departments: %w", err)
	}
	return list, nil
}

// ReplaceCatalog overwrites both tables inside one transaction, numbering
// rows in slice order.
func (s *Store) ReplaceCatalog(ctx context.Context, entries []catalog.Entry, departments []catalog.Department) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM faq_entries`); err != nil {
		return fmt.Errorf("clear faq entries: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM departments`); err != nil {
		return fmt.Errorf("clear departments: %w", err)
	}

	batch := &pgx.Batch{}
	for i, e := range entries {
		batch.Queue(`INSERT INTO faq_entries (position, phrase, answer) VALUES ($1, $2, $3)`, i, e.Phrase, e.Answer)
	}
	for i, d := range departments {
		keywords := d.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		batch.Queue(`INSERT INTO departments (position, name, keywords, response) VALUES ($1, $2, $3, $4)`, i, d.Name, keywords, d.Response)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert catalog: %w", err)
	}

	return tx.Commit(ctx)
}
