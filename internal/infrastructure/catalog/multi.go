package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

const defaultFetchConcurrency = 4

// MultiSource fetches several sources concurrently and concatenates their records
// in configuration order, so source order stays deterministic.
type MultiSource struct {
	sources     []domain.CatalogSource
	concurrency int
}

// NewMultiSource combines sources. Any failing source fails the whole fetch,
// leaving the previous snapshot in place.
func NewMultiSource(sources ...domain.CatalogSource) *MultiSource {
	return &MultiSource{sources: sources, concurrency: defaultFetchConcurrency}
}

// Fetch reads every source and joins the results
func (m *MultiSource) Fetch(ctx context.Context) ([]domain.RawProductRecord, error) {
	if len(m.sources) == 0 {
		return nil, fmt.Errorf("%w: no sources configured", domain.ErrSourceFailure)
	}

	results := make([][]domain.RawProductRecord, len(m.sources))
	errs := make([]error, len(m.sources))

	p := pool.New().WithMaxGoroutines(m.concurrency)
	for i, src := range m.sources {
		p.Go(func() {
			results[i], errs[i] = src.Fetch(ctx)
		})
	}
	p.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]domain.RawProductRecord, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// NewSource builds a source from a location: an http(s) URL or a file path
func NewSource(location string, timeout time.Duration, logger zerolog.Logger) (domain.CatalogSource, error) {
	location = strings.TrimSpace(location)
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, timeout, logger)
	}
	return NewFileSource(location)
}

// NewSources builds one combined source from several locations
func NewSources(locations []string, timeout time.Duration, debug bool, logger zerolog.Logger) (*MultiSource, error) {
	sources := make([]domain.CatalogSource, 0, len(locations))
	for _, loc := range locations {
		src, err := NewSource(loc, timeout, logger)
		if err != nil {
			return nil, err
		}
		if hs, ok := src.(*HTTPSource); ok {
			hs.SetDebug(debug)
		}
		sources = append(sources, src)
	}
	return NewMultiSource(sources...), nil
}
