package repository

import (
	"context"

	"shelf-locator/internal/model"
)

// ProductRepository defines the interface for catalog data access.
// SKUs passed in are expected to be normalized already; see the sku
// package.
type ProductRepository interface {
	// Create inserts a new product and fills in its assigned ID.
	// Returns model.ErrDuplicateSKU if the SKU is already taken.
	Create(ctx context.Context, p *model.Product) error

	// Update rewrites every mutable field of the product addressed by
	// p.ID. Returns model.ErrProductNotFound if the ID is absent and
	// model.ErrDuplicateSKU if the new SKU collides with another row.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes the product with the given ID.
	// Returns model.ErrProductNotFound if the ID is absent.
	Delete(ctx context.Context, id int64) error

	// GetByID retrieves a single product by its ID, or nil if absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetBySKU retrieves a single product by its normalized SKU, or nil
	// if absent.
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)

	// List retrieves one page of products ordered by (sku, display_case,
	// row), optionally filtered by a case-insensitive name substring,
	// along with the total count matching the filter.
	List(ctx context.Context, limit, offset int, nameFilter string) ([]model.Product, int, error)

	// SearchByName retrieves all products whose name contains the term
	// (case-insensitive), ordered by display case.
	SearchByName(ctx context.Context, term string) ([]model.Product, error)

	// UpsertBatch writes all products in one transaction: rows whose SKU
	// already exists have their name, display case, column and row
	// overwritten in place (ID unchanged); the rest are inserted. Either
	// every row commits or none do.
	UpsertBatch(ctx context.Context, products []model.Product) error
}
