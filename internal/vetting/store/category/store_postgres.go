package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vetting/internal/vetting/models"
	"vetting/pkg/platform/sentinel"
)

// PostgresStore persists categories in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed category store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, c models.Category) error {
	if err := validate(&c); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, kind)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, kind = EXCLUDED.kind
	`, int(c.ID), c.Name, string(c.Kind))
	if err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id models.CategoryID) (*models.Category, error) {
	var (
		c    models.Category
		raw  int
		kind string
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, name, kind FROM categories WHERE id = $1`, int(id)).
		Scan(&raw, &c.Name, &kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	c.ID = models.CategoryID(raw)
	c.Kind = models.Kind(kind)
	return &c, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, kind FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var (
			c    models.Category
			raw  int
			kind string
		)
		if err := rows.Scan(&raw, &c.Name, &kind); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.ID = models.CategoryID(raw)
		c.Kind = models.Kind(kind)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}
