// Package seed provides sources for the optional catalog seed import
// run at startup: a local CSV file, an S3 object, or S3 with local
// fallback.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Loader opens a catalog CSV by path. The caller owns the returned
// reader and must close it.
type Loader interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// fileLoader implements Loader for the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Open opens a local catalog CSV file.
func (l *fileLoader) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	l.logger.Info().Str("file", path).Msg("opening seed file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}

	return file, nil
}
