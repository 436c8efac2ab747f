package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"shelf-locator/internal/model"
	"shelf-locator/internal/repository"
	"shelf-locator/internal/sku"

	"github.com/rs/zerolog"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// validated is a ProductRequest after normalization and parsing.
type validated struct {
	sku         string
	name        string
	displayCase string
	column      int
	row         int
}

// validate applies the shared create/update checks in order:
// required fields, then numeric parse, then range. The order matters so
// that non-numeric input is reported as "must be numbers" rather than
// as an out-of-range value.
func validate(req *model.ProductRequest) (*validated, error) {
	v := &validated{
		sku:         sku.Normalize(req.SKU),
		name:        strings.TrimSpace(req.Name),
		displayCase: strings.TrimSpace(req.DisplayCase),
	}

	columnRaw := strings.TrimSpace(req.Column.String())
	rowRaw := strings.TrimSpace(req.Row.String())

	if v.sku == "" || v.name == "" || v.displayCase == "" || columnRaw == "" || rowRaw == "" {
		return nil, model.ErrFieldsRequired
	}

	if len(v.sku) > 50 {
		return nil, model.ErrSKUTooLong
	}
	if len(v.name) > 100 {
		return nil, model.ErrNameTooLong
	}

	column, colErr := strconv.Atoi(columnRaw)
	row, rowErr := strconv.Atoi(rowRaw)
	if colErr != nil || rowErr != nil {
		return nil, model.ErrNotNumeric
	}

	if (column != 1 && column != 2) || row < 1 || row > 7 {
		return nil, model.ErrInvalidPosition
	}

	v.column = column
	v.row = row
	return v, nil
}

// List retrieves one page of products with pagination metadata.
func (s *productService) List(ctx context.Context, page, perPage int, nameFilter string) (*model.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	nameFilter = strings.TrimSpace(nameFilter)

	offset := (page - 1) * perPage
	products, total, err := s.productRepo.List(ctx, perPage, offset, nameFilter)
	if err != nil {
		s.logger.Error().Err(err).
			Int("page", page).
			Int("per_page", perPage).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	pages := (total + perPage - 1) / perPage

	s.logger.Debug().
		Int("count", len(products)).
		Int("total", total).
		Int("page", page).
		Msg("listed products")

	return &model.ProductPage{
		Products: products,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
		Pages:    pages,
	}, nil
}

// Get retrieves a single product by ID.
func (s *productService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create validates and stores a new product. The SKU pre-check gives
// the friendly duplicate message on the fast path; the repository still
// maps a lost race on the unique index to the same error.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	v, err := validate(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetBySKU(ctx, v.sku)
	if err != nil {
		s.logger.Error().Err(err).Str("sku", v.sku).Msg("failed to check for existing SKU")
		return nil, fmt.Errorf("failed to check for existing SKU: %w", err)
	}
	if existing != nil {
		return nil, model.ErrDuplicateSKU
	}

	product := &model.Product{
		SKU:         v.sku,
		Name:        v.name,
		DisplayCase: v.displayCase,
		Column:      v.column,
		Row:         v.row,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("sku", product.SKU).
		Msg("product created")

	return product, nil
}

// Update validates and rewrites the product with the given ID. Keeping
// the same SKU is always allowed; changing it runs the duplicate check
// against other rows.
func (s *productService) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error) {
	v, err := validate(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to load product for update")
		return nil, fmt.Errorf("failed to load product for update: %w", err)
	}
	if existing == nil {
		return nil, model.ErrProductNotFound
	}

	if v.sku != existing.SKU {
		taken, err := s.productRepo.GetBySKU(ctx, v.sku)
		if err != nil {
			s.logger.Error().Err(err).Str("sku", v.sku).Msg("failed to check for existing SKU")
			return nil, fmt.Errorf("failed to check for existing SKU: %w", err)
		}
		if taken != nil {
			return nil, model.ErrDuplicateSKU
		}
	}

	product := &model.Product{
		ID:          id,
		SKU:         v.sku,
		Name:        v.name,
		DisplayCase: v.displayCase,
		Column:      v.column,
		Row:         v.row,
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("product_id", id).
		Str("sku", product.SKU).
		Msg("product updated")

	return product, nil
}

// Delete removes the product with the given ID.
func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}
