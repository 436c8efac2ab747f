package service

import (
	"context"
	"io"

	"shelf-locator/internal/model"
)

// ProductService defines catalog maintenance operations.
type ProductService interface {
	// List retrieves one page of products, optionally filtered by a
	// case-insensitive name substring.
	List(ctx context.Context, page, perPage int, nameFilter string) (*model.ProductPage, error)

	// Get retrieves a single product by ID.
	Get(ctx context.Context, id int64) (*model.Product, error)

	// Create validates and stores a new product.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update validates and rewrites the product with the given ID.
	Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error)

	// Delete removes the product with the given ID.
	Delete(ctx context.Context, id int64) error
}

// SearchService locates products for clerks.
type SearchService interface {
	// Search dispatches to an exact-SKU lookup (mode "sku", the default)
	// or a substring name search (mode "name").
	Search(ctx context.Context, term, mode string) (*model.SearchResult, error)
}

// ImportService reconciles bulk CSV input against the catalog.
type ImportService interface {
	// ImportCSV reads rows of sku,name,display_case,row,column, skipping
	// the first record, and upserts every valid row in one transaction.
	// Invalid rows are reported in the result and never abort the batch.
	ImportCSV(ctx context.Context, r io.Reader) (*model.BulkResult, error)
}
