package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shelf-locator/internal/model"
	"shelf-locator/internal/repository"
	"shelf-locator/internal/sku"

	"github.com/rs/zerolog"
)

// csvFieldCount is the expected shape of an import row:
// sku,name,display_case,row,column. Note that row comes before column,
// the reverse of the JSON API payload; the CSV column order is part of
// the published import format.
const csvFieldCount = 5

// importService implements ImportService.
type importService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewImportService creates a new bulk import service.
func NewImportService(productRepo repository.ProductRepository, logger zerolog.Logger) ImportService {
	return &importService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "import").Logger(),
	}
}

// ImportCSV reconciles CSV rows against the catalog. Row-level failures
// are collected as diagnostics and never abort the batch; every valid
// row is then committed in a single transaction, with rows matching an
// existing SKU overwriting that row in place. The first record is
// always discarded as a header.
func (s *importService) ImportCSV(ctx context.Context, r io.Reader) (*model.BulkResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &model.BulkResult{Errors: []string{}}
	var pending []model.Product

	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Row could not be parsed: %v", err))
			continue
		}

		// The first record is discarded unconditionally, header or not.
		if first {
			first = false
			continue
		}

		if len(record) != csvFieldCount {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Row has incorrect number of columns: %v", record))
			continue
		}

		code := sku.Normalize(record[0])
		name := strings.TrimSpace(record[1])
		displayCase := strings.TrimSpace(record[2])

		row, rowErr := strconv.Atoi(strings.TrimSpace(record[3]))
		column, colErr := strconv.Atoi(strings.TrimSpace(record[4]))
		if rowErr != nil || colErr != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Column and row must be numbers for SKU %s", code))
			continue
		}

		if column != 1 && column != 2 {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid column value for SKU %s. Column must be 1 or 2.", code))
			continue
		}

		if row < 1 || row > 7 {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid row value for SKU %s. Row must be between 1 and 7.", code))
			continue
		}

		pending = append(pending, model.Product{
			SKU:         code,
			Name:        name,
			DisplayCase: displayCase,
			Column:      column,
			Row:         row,
		})
		result.SuccessCount++
	}

	if len(pending) > 0 {
		if err := s.productRepo.UpsertBatch(ctx, pending); err != nil {
			// All-or-nothing: a failed commit fails the whole batch.
			s.logger.Error().Err(err).Int("rows", len(pending)).Msg("bulk import commit failed")
			return nil, err
		}
	}

	s.logger.Info().
		Int("imported", result.SuccessCount).
		Int("rejected", result.ErrorCount).
		Msg("bulk import processed")

	return result, nil
}
