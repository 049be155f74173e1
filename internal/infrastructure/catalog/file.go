package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
)

// FileSource reads a catalog export from disk on every fetch
type FileSource struct {
	path   string
	format string
}

// NewFileSource creates a source for path. The format follows the file extension.
func NewFileSource(path string) (*FileSource, error) {
	format, err := formatFromName(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: path, format: format}, nil
}

// Fetch reads and decodes the file
func (s *FileSource) Fetch(ctx context.Context) ([]domain.RawProductRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceFailure, err)
	}
	records, err := Decode(s.format, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceFailure, s.path, err)
	}
	return records, nil
}

// String names the source in logs
func (s *FileSource) String() string {
	return "file:" + s.path
}

func formatFromName(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("cannot infer catalog format of %q", name)
}
