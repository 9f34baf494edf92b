package etl

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/fleetdepot/depot/internal/domain"
)

// SQLSource reads the upstream parts feed table.
type SQLSource struct {
	db    *sqlx.DB
	query string
}

func OpenSource(ctx context.Context, dsn, table string) (*SQLSource, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.ConnectContext -> %w", err)
	}

	return NewSQLSource(db, table), nil
}

func NewSQLSource(db *sqlx.DB, table string) *SQLSource {
	return &SQLSource{
		db: db,
		query: `SELECT id, part_number, description, uom, unit_cost, updated_at
			FROM ` + pgx.Identifier{table}.Sanitize() + `
			WHERE (updated_at, id) > ($1, $2)
			ORDER BY updated_at, id
			LIMIT $3`,
	}
}

// Fetch returns up to limit rows that sort after the cursor, oldest first.
func (s *SQLSource) Fetch(ctx context.Context, after domain.ETLCursor, limit int) ([]domain.SourcePart, error) {
	var rows []domain.SourcePart
	if err := s.db.SelectContext(ctx, &rows, s.query, after.UpdatedAt, after.SourceID, limit); err != nil {
		return nil, fmt.Errorf("s.db.SelectContext -> %w", err)
	}

	return rows, nil
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}
