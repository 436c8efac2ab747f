package service

import (
	"context"
	"fmt"
	"strings"

	"shelf-locator/internal/model"
	"shelf-locator/internal/repository"
	"shelf-locator/internal/sku"

	"github.com/rs/zerolog"
)

// Search modes. Anything other than ModeName falls back to ModeSKU.
const (
	ModeSKU  = "sku"
	ModeName = "name"
)

// searchService implements SearchService.
type searchService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(productRepo repository.ProductRepository, logger zerolog.Logger) SearchService {
	return &searchService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "search").Logger(),
	}
}

// Search dispatches a clerk's query. SKU mode is an exact lookup on the
// normalized code; name mode is a case-insensitive substring match over
// all products, ordered by display case.
func (s *searchService) Search(ctx context.Context, term, mode string) (*model.SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return &model.SearchResult{Found: false, Products: []model.Product{}}, nil
	}

	if mode == ModeName {
		products, err := s.productRepo.SearchByName(ctx, term)
		if err != nil {
			s.logger.Error().Err(err).Str("term", term).Msg("name search failed")
			return nil, fmt.Errorf("name search failed: %w", err)
		}

		s.logger.Debug().
			Str("term", term).
			Int("matches", len(products)).
			Msg("name search")

		return &model.SearchResult{
			Found:    len(products) > 0,
			Multiple: len(products) > 1,
			Products: products,
		}, nil
	}

	product, err := s.productRepo.GetBySKU(ctx, sku.Normalize(term))
	if err != nil {
		s.logger.Error().Err(err).Str("term", term).Msg("SKU search failed")
		return nil, fmt.Errorf("SKU search failed: %w", err)
	}

	result := &model.SearchResult{Found: false, Products: []model.Product{}}
	if product != nil {
		result.Found = true
		result.Products = []model.Product{*product}
	}

	s.logger.Debug().
		Str("term", term).
		Bool("found", result.Found).
		Msg("SKU search")

	return result, nil
}
