package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the catalog table. SKUs are stored normalized (uppercase,
// trimmed); the unique index is the authoritative arbiter for duplicate
// SKUs, including under concurrent writes.
const Schema = `
	CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		sku VARCHAR(50) NOT NULL,
		name VARCHAR(100) NOT NULL,
		display_case VARCHAR(10) NOT NULL,
		case_column INTEGER NOT NULL,
		case_row INTEGER NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_products_sku ON products (sku);
`

// EnsureSchema creates the products table and its unique SKU index if
// they do not already exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
