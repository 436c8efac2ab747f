package service

import (
	"context"
	"errors"
	"testing"

	"shelf-locator/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchService_Search_SKU(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	ring := model.Product{ID: 1, SKU: "ABC-123", Name: "Gold Ring", DisplayCase: "A", Column: 1, Row: 3}

	t.Run("Exact match found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewSearchService(mockRepo, logger)

		mockRepo.On("GetBySKU", ctx, "ABC-123").Return(&ring, nil)

		result, err := service.Search(ctx, "abc-123", ModeSKU)

		require.NoError(t, err)
		assert.True(t, result.Found)
		assert.False(t, result.Multiple)
		assert.Equal(t, []model.Product{ring}, result.Products)
	})

	t.Run("Term is trimmed and upper-cased before lookup", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewSearchService(mockRepo, logger)

		mockRepo.On("GetBySKU", ctx, "ABC-123").Return(&ring, nil)

		result, err := service.Search(ctx, "  abc-123  ", ModeSKU)

		require.NoError(t, err)
		assert.True(t, result.Found)
		mockRepo.AssertExpectations(t)
	})

	t.Run("No match", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewSearchService(mockRepo, logger)

		mockRepo.On("GetBySKU", ctx, "NOPE").Return(nil, nil)

		result, err := service.Search(ctx, "nope", ModeSKU)

		require.NoError(t, err)
		assert.False(t, result.Found)
		assert.Empty(t, result.Products)
		assert.NotNil(t, result.Products)
	})

	t.Run("Unknown mode falls back to SKU lookup", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewSearchService(mockRepo, logger)

		mockRepo.On("GetBySKU", ctx, "ABC-123").Return(&ring, nil)

		result, err := service.Search(ctx, "abc-123", "barcode")

		require.NoError(t, err)
		assert.True(t, result.Found)
		mockRepo.AssertNotCalled(t, "SearchByName")
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewSearchService(mockRepo, logger)

		mockRepo.On("GetBySKU", ctx, "ABC-123").Return(nil, errors.New("database error"))

		result, err := service.Search(ctx, "abc-123", ModeSKU)

		require.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestSearchService_Search_Name(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	matches := []model.Product{
		{ID: 1, SKU: "ABC-123", Name: "Gold Ring", DisplayCase: "A", Column: 1, Row: 3},
		{ID: 2, SKU: "DEF-456", Name: "Gold Ring Deluxe", DisplayCase: "B", Column: 2, Row: 1},
	}

	t.Run("Multiple matches", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewSearchService(mockRepo, logger)

		mockRepo.On("SearchByName", ctx, "ring").Return(matches, nil)

		result, err := service.Search(ctx, "ring", ModeName)

		require.NoError(t, err)
		assert.True(t, result.Found)
		assert.True(t, result.Multiple)
		assert.Len(t, result.Products, 2)
	})

	t.Run("Single match", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewSearchService(mockRepo, logger)

		mockRepo.On("SearchByName", ctx, "deluxe").Return(matches[1:], nil)

		result, err := service.Search(ctx, "deluxe", ModeName)

		require.NoError(t, err)
		assert.True(t, result.Found)
		assert.False(t, result.Multiple)
	})

	t.Run("No matches", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewSearchService(mockRepo, logger)

		mockRepo.On("SearchByName", ctx, "necklace").Return([]model.Product{}, nil)

		result, err := service.Search(ctx, "necklace", ModeName)

		require.NoError(t, err)
		assert.False(t, result.Found)
		assert.False(t, result.Multiple)
		assert.Empty(t, result.Products)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewSearchService(mockRepo, logger)

		mockRepo.On("SearchByName", ctx, "ring").Return(nil, errors.New("database error"))

		result, err := service.Search(ctx, "ring", ModeName)

		require.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestSearchService_Search_EmptyTerm(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	for _, mode := range []string{ModeSKU, ModeName} {
		t.Run(mode, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewSearchService(mockRepo, logger)

			result, err := service.Search(ctx, "   ", mode)

			require.NoError(t, err)
			assert.False(t, result.Found)
			assert.Empty(t, result.Products)
			mockRepo.AssertNotCalled(t, "GetBySKU")
			mockRepo.AssertNotCalled(t, "SearchByName")
		})
	}
}
