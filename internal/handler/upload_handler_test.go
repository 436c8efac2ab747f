package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"shelf-locator/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockImportService is a mock implementation of service.ImportService.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportCSV(ctx context.Context, r io.Reader) (*model.BulkResult, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BulkResult), args.Error(1)
}

func uploadRequest(t *testing.T, fieldName, fileName, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-csv", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadHandler_Upload(t *testing.T) {
	logger := zerolog.Nop()

	csvContent := "sku,name,display_case,row,column\nabc-123,Gold Ring,A,3,1\n"

	t.Run("Success reports counts and diagnostics", func(t *testing.T) {
		mockService := new(MockImportService)
		handler := NewUploadHandler(mockService, logger)

		result := &model.BulkResult{
			SuccessCount: 3,
			ErrorCount:   1,
			Errors:       []string{"Invalid row value for SKU X1. Row must be between 1 and 7."},
		}
		mockService.On("ImportCSV", mock.Anything, mock.Anything).Return(result, nil)

		rec := httptest.NewRecorder()
		handler.Upload(rec, uploadRequest(t, "file", "catalog.csv", csvContent))

		assert.Equal(t, http.StatusOK, rec.Code)

		var got uploadResponse
		decodeBody(t, rec.Body, &got)
		assert.True(t, got.Success)
		assert.Equal(t, "Processed 3 products successfully, 1 errors", got.Message)
		assert.Len(t, got.Errors, 1)
	})

	t.Run("Missing file part", func(t *testing.T) {
		mockService := new(MockImportService)
		handler := NewUploadHandler(mockService, logger)

		rec := httptest.NewRecorder()
		handler.Upload(rec, uploadRequest(t, "attachment", "catalog.csv", csvContent))

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var got FailureResponse
		decodeBody(t, rec.Body, &got)
		assert.Equal(t, "No file part", got.Message)
		mockService.AssertNotCalled(t, "ImportCSV")
	})

	t.Run("Non-CSV extension rejected", func(t *testing.T) {
		mockService := new(MockImportService)
		handler := NewUploadHandler(mockService, logger)

		rec := httptest.NewRecorder()
		handler.Upload(rec, uploadRequest(t, "file", "catalog.xlsx", csvContent))

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var got FailureResponse
		decodeBody(t, rec.Body, &got)
		assert.Equal(t, "File must be a CSV", got.Message)
		mockService.AssertNotCalled(t, "ImportCSV")
	})

	t.Run("Uppercase extension accepted", func(t *testing.T) {
		mockService := new(MockImportService)
		handler := NewUploadHandler(mockService, logger)

		result := &model.BulkResult{SuccessCount: 1, Errors: []string{}}
		mockService.On("ImportCSV", mock.Anything, mock.Anything).Return(result, nil)

		rec := httptest.NewRecorder()
		handler.Upload(rec, uploadRequest(t, "file", "CATALOG.CSV", csvContent))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Commit failure is a 500 failure envelope", func(t *testing.T) {
		mockService := new(MockImportService)
		handler := NewUploadHandler(mockService, logger)

		mockService.On("ImportCSV", mock.Anything, mock.Anything).
			Return(nil, errors.New("deadlock detected"))

		rec := httptest.NewRecorder()
		handler.Upload(rec, uploadRequest(t, "file", "catalog.csv", csvContent))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var got FailureResponse
		decodeBody(t, rec.Body, &got)
		assert.False(t, got.Success)
	})

	t.Run("GET is a 405", func(t *testing.T) {
		mockService := new(MockImportService)
		handler := NewUploadHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodGet, "/upload-csv", nil)
		rec := httptest.NewRecorder()

		handler.Upload(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
