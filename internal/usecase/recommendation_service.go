package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
	"github.com/mahyar-jbr/pet-ai-assistant/internal/metrics"
	"github.com/rs/zerolog"
)

// RecommendationServiceConfig holds configuration for the recommendation service
type RecommendationServiceConfig struct {
	Pipeline PipelineConfig
	CacheTTL time.Duration
}

// RecommendationService owns the current catalog snapshot and serves
// recommendations, product listings and comparisons from it.
// Refresh replaces the snapshot wholesale; readers never see a partial catalog.
type RecommendationService struct {
	source   domain.CatalogSource
	cache    domain.CacheRepository
	pipeline *CatalogPipeline
	cacheTTL time.Duration
	logger   zerolog.Logger

	catalog   atomic.Pointer[domain.Catalog]
	version   atomic.Uint64
	refreshMu sync.Mutex
}

// NewRecommendationService creates a service with no snapshot loaded
func NewRecommendationService(
	source domain.CatalogSource,
	cache domain.CacheRepository,
	config RecommendationServiceConfig,
	logger zerolog.Logger,
) *RecommendationService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &RecommendationService{
		source:   source,
		cache:    cache,
		pipeline: NewCatalogPipeline(config.Pipeline, logger),
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "recommendations").Logger(),
	}
}

// Refresh fetches the source and swaps in a new snapshot. On failure the previous
// snapshot stays in place. Memoized results of older snapshots are dropped.
func (s *RecommendationService) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()
	records, err := s.source.Fetch(ctx)
	if err != nil {
		metrics.RecordCatalogRefresh(time.Since(start), 0, 0, 0, err)
		s.logger.Error().Err(err).Msg("catalog refresh failed")
		return fmt.Errorf("%w: %v", domain.ErrSourceFailure, err)
	}

	version := s.version.Add(1)
	catalog, dups := s.pipeline.BuildCatalog(records, version)

	s.catalog.Store(catalog)
	s.cache.Clear()

	metrics.RecordCatalogRefresh(time.Since(start), version, catalog.Len(), len(dups), nil)
	return nil
}

// StartRefresher refreshes the catalog every interval until ctx is done.
// A non-positive interval disables periodic refreshes.
func (s *RecommendationService) StartRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// errors are logged by Refresh
				_ = s.Refresh(ctx)
			}
		}
	}()
}

// Catalog returns the current snapshot, or nil before the first refresh
func (s *RecommendationService) Catalog() *domain.Catalog {
	return s.catalog.Load()
}

func (s *RecommendationService) currentCatalog() (*domain.Catalog, error) {
	c := s.catalog.Load()
	if c == nil {
		return nil, domain.ErrCatalogUnavailable
	}
	return c, nil
}

// Recommend returns the products suitable for profile, ordered by criterion and
// grouped into shelves for the profile's weight goal.
func (s *RecommendationService) Recommend(ctx context.Context, profile domain.PetProfile, criterion SortCriterion) (*domain.RecommendationSet, error) {
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}
	catalog, err := s.currentCatalog()
	if err != nil {
		return nil, err
	}

	profile = profile.Normalized()
	key := fmt.Sprintf("rec:%d:%s:%s", catalog.Version, profile.Fingerprint(), criterion)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		if set, ok := cached.(*domain.RecommendationSet); ok {
			metrics.RecordCacheLookup("recommendations", true)
			return set, nil
		}
	}
	metrics.RecordCacheLookup("recommendations", false)

	recs, err := s.pipeline.Recommend(catalog, profile)
	if err != nil {
		return nil, err
	}
	recs = SortRecommendations(recs, criterion)

	set := &domain.RecommendationSet{
		CatalogVersion:  catalog.Version,
		Sort:            string(criterion),
		ResultsLabel:    ResultsLabel(len(recs)),
		Recommendations: recs,
		Sections:        GroupBySection(recs, profile.WeightGoal),
	}

	if err := s.cache.Set(ctx, key, set, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to memoize recommendations")
	}
	metrics.RecordRecommendation(string(criterion), len(recs))
	return set, nil
}

// Products lists the whole snapshot ordered by criterion
func (s *RecommendationService) Products(ctx context.Context, criterion SortCriterion) ([]domain.CanonicalProduct, uint64, error) {
	catalog, err := s.currentCatalog()
	if err != nil {
		return nil, 0, err
	}
	return SortProducts(catalog.Products, criterion), catalog.Version, nil
}

// Product looks up one product by compareId
func (s *RecommendationService) Product(ctx context.Context, compareID string) (*domain.CanonicalProduct, error) {
	catalog, err := s.currentCatalog()
	if err != nil {
		return nil, err
	}
	p, ok := catalog.Lookup(compareID)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// Compare builds the comparison of two products of the current snapshot.
// Unknown or identical ids give an empty comparison, not an error.
func (s *RecommendationService) Compare(ctx context.Context, idA, idB string) ([]domain.ComparisonSection, error) {
	catalog, err := s.currentCatalog()
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("cmp:%d:%s:%s", catalog.Version, idA, idB)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		if sections, ok := cached.([]domain.ComparisonSection); ok {
			metrics.RecordCacheLookup("comparisons", true)
			return sections, nil
		}
	}
	metrics.RecordCacheLookup("comparisons", false)

	a, _ := catalog.Lookup(idA)
	b, _ := catalog.Lookup(idB)
	sections := Compare(a, b)
	if sections == nil {
		sections = []domain.ComparisonSection{}
	}

	if err := s.cache.Set(ctx, key, sections, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to memoize comparison")
	}
	metrics.RecordComparison()
	return sections, nil
}
