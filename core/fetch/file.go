package fetch

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/tenqz/tagparser/core"
)

// FileLoader reads markup from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a FileLoader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Fetch reads the file at path and decodes it to UTF-8.
func (l *FileLoader) Fetch(ctx context.Context, path string) (*core.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("loaded file")

	return &core.FetchResult{
		Source: path,
		HTML:   Decode(data, ""),
	}, nil
}
