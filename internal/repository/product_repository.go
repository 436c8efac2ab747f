package repository

import (
	"context"
	"errors"
	"fmt"

	"shelf-locator/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// isUniqueViolation reports whether err is the unique-index violation
// raised when two rows would share a SKU. The index, not the pre-check
// in the service layer, is the final arbiter under concurrent writes.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create inserts a new product and fills in its assigned ID.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (sku, name, display_case, case_column, case_row)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, p.SKU, p.Name, p.DisplayCase, p.Column, p.Row).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().Str("sku", p.SKU).Msg("duplicate SKU on insert")
			return model.ErrDuplicateSKU
		}
		r.logger.Error().Err(err).Str("sku", p.SKU).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	r.logger.Debug().
		Int64("product_id", p.ID).
		Str("sku", p.SKU).
		Msg("product created")

	return nil
}

// Update rewrites every mutable field of the product addressed by p.ID.
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET sku = $1, name = $2, display_case = $3, case_column = $4, case_row = $5
		WHERE id = $6
	`

	tag, err := r.pool.Exec(ctx, query, p.SKU, p.Name, p.DisplayCase, p.Column, p.Row, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().Str("sku", p.SKU).Msg("duplicate SKU on update")
			return model.ErrDuplicateSKU
		}
		r.logger.Error().Err(err).Int64("product_id", p.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes the product with the given ID.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT id, sku, name, display_case, case_column, case_row
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.SKU, &p.Name, &p.DisplayCase, &p.Column, &p.Row)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetBySKU retrieves a single product by its normalized SKU.
func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	query := `
		SELECT id, sku, name, display_case, case_column, case_row
		FROM products
		WHERE sku = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, sku).Scan(&p.ID, &p.SKU, &p.Name, &p.DisplayCase, &p.Column, &p.Row)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("sku", sku).Msg("product not found by SKU")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("sku", sku).Msg("failed to query product by SKU")
		return nil, fmt.Errorf("failed to query product by SKU: %w", err)
	}

	return &p, nil
}

// List retrieves one page of products with the total count for the filter.
func (r *productRepository) List(ctx context.Context, limit, offset int, nameFilter string) ([]model.Product, int, error) {
	countQuery := `SELECT COUNT(*) FROM products`
	listQuery := `
		SELECT id, sku, name, display_case, case_column, case_row
		FROM products
		ORDER BY sku, display_case, case_row
		LIMIT $1 OFFSET $2
	`
	countArgs := []interface{}{}
	listArgs := []interface{}{limit, offset}
	if nameFilter != "" {
		countQuery = `SELECT COUNT(*) FROM products WHERE name ILIKE '%' || $1 || '%'`
		listQuery = `
			SELECT id, sku, name, display_case, case_column, case_row
			FROM products
			WHERE name ILIKE '%' || $3 || '%'
			ORDER BY sku, display_case, case_row
			LIMIT $1 OFFSET $2
		`
		countArgs = append(countArgs, nameFilter)
		listArgs = append(listArgs, nameFilter)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Str("filter", nameFilter).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	rows, err := r.pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan product rows")
		return nil, 0, err
	}

	return products, total, nil
}

// SearchByName retrieves all products whose name contains the term.
func (r *productRepository) SearchByName(ctx context.Context, term string) ([]model.Product, error) {
	query := `
		SELECT id, sku, name, display_case, case_column, case_row
		FROM products
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY display_case
	`

	rows, err := r.pool.Query(ctx, query, term)
	if err != nil {
		r.logger.Error().Err(err).Str("term", term).Msg("failed to search products by name")
		return nil, fmt.Errorf("failed to search products by name: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan product rows")
		return nil, err
	}

	return products, nil
}

// UpsertBatch writes all products in one transaction. The ON CONFLICT
// clause lets the unique SKU index decide insert-vs-update, so a row
// matching an existing SKU keeps its ID and only its location fields
// and name change.
func (r *productRepository) UpsertBatch(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	query := `
		INSERT INTO products (sku, name, display_case, case_column, case_row)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (sku) DO UPDATE
		SET name = EXCLUDED.name,
		    display_case = EXCLUDED.display_case,
		    case_column = EXCLUDED.case_column,
		    case_row = EXCLUDED.case_row
	`

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(query, p.SKU, p.Name, p.DisplayCase, p.Column, p.Row)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < len(products); i++ {
		if _, err = results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("sku", products[i].SKU).
				Msg("failed to upsert product")
			results.Close()
			return fmt.Errorf("failed to upsert product %s: %w", products[i].SKU, err)
		}
	}
	if err = results.Close(); err != nil {
		r.logger.Error().Err(err).Msg("failed to close batch results")
		return fmt.Errorf("failed to close batch results: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Int("count", len(products)).Msg("failed to commit upsert batch")
		return fmt.Errorf("failed to commit upsert batch: %w", err)
	}

	r.logger.Debug().Int("count", len(products)).Msg("upsert batch committed")

	return nil
}

// scanProducts collects product rows, always returning a non-nil slice.
func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.DisplayCase, &p.Column, &p.Row); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
