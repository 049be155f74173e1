package usecase

import (
	"cmp"
	"slices"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
	"github.com/rs/zerolog"
)

// PipelineConfig holds configuration for the catalog pipeline
type PipelineConfig struct {
	// MinScore drops included products scoring below it. Zero keeps everything.
	MinScore float64
	// Limit caps the number of recommendations. Zero means no cap.
	Limit int
	// RankByScore orders recommendations by descending score instead of source order.
	RankByScore        bool
	EnableDebugLogging bool
}

// CatalogPipeline canonicalizes raw records and filters them for a pet profile
type CatalogPipeline struct {
	matcher *ProfileMatcher
	config  PipelineConfig
	logger  zerolog.Logger
}

// NewCatalogPipeline creates a pipeline with its own profile matcher
func NewCatalogPipeline(config PipelineConfig, logger zerolog.Logger) *CatalogPipeline {
	if config.Limit < 0 {
		config.Limit = 0
	}
	return &CatalogPipeline{
		matcher: NewProfileMatcher(MatcherConfig{EnableDebugLogging: config.EnableDebugLogging}, logger),
		config:  config,
		logger:  logger.With().Str("component", "pipeline").Logger(),
	}
}

// BuildCatalog canonicalizes every raw record into a new snapshot and returns the
// duplicated compareIds. Duplicates are logged as data-quality warnings; lookups
// resolve to the last product carrying the id.
func (p *CatalogPipeline) BuildCatalog(records []domain.RawProductRecord, version uint64) (*domain.Catalog, []string) {
	products := make([]domain.CanonicalProduct, len(records))
	for i, raw := range records {
		products[i] = Canonicalize(raw, i)
	}

	catalog, dups := domain.NewCatalog(version, products)
	for _, id := range dups {
		p.logger.Warn().Str("compare_id", id).Msg("duplicate compareId in catalog, last record wins lookups")
	}

	if p.config.EnableDebugLogging {
		for i := range products {
			if warnings := ProductWarnings(&products[i]); len(warnings) > 0 {
				p.logger.Debug().Str("compare_id", products[i].CompareID).Strs("warnings", warnings).Msg("product data quality")
			}
		}
	}

	p.logger.Info().Uint64("version", version).Int("products", len(products)).Int("duplicates", len(dups)).Msg("catalog built")
	return catalog, dups
}

// Recommend matches every product of the snapshot against the profile.
// The profile is validated first; an invalid profile yields a *domain.ConfigurationError
// and no matching is attempted.
func (p *CatalogPipeline) Recommend(catalog *domain.Catalog, profile domain.PetProfile) ([]domain.Recommendation, error) {
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, domain.ErrCatalogUnavailable
	}

	profile = profile.Normalized()
	recs := make([]domain.Recommendation, 0, len(catalog.Products))
	for i := range catalog.Products {
		product := &catalog.Products[i]
		result := p.matcher.Match(product, profile)
		if !result.Included {
			continue
		}
		if p.config.MinScore > 0 && result.Score < p.config.MinScore {
			continue
		}
		recs = append(recs, domain.Recommendation{Product: *product, Match: result})
	}

	if p.config.RankByScore {
		slices.SortStableFunc(recs, func(a, b domain.Recommendation) int {
			return cmp.Compare(b.Match.Score, a.Match.Score)
		})
	}
	if p.config.Limit > 0 && len(recs) > p.config.Limit {
		recs = recs[:p.config.Limit]
	}
	return recs, nil
}

// BuildRecommendations runs the whole pipeline over raw records and returns the
// included products. With a zero config the order is the source order.
func (p *CatalogPipeline) BuildRecommendations(records []domain.RawProductRecord, profile domain.PetProfile) ([]domain.CanonicalProduct, error) {
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}
	catalog, _ := p.BuildCatalog(records, 0)
	recs, err := p.Recommend(catalog, profile)
	if err != nil {
		return nil, err
	}
	return RecommendedProducts(recs), nil
}

// RecommendedProducts extracts the products of recs in order.
func RecommendedProducts(recs []domain.Recommendation) []domain.CanonicalProduct {
	out := make([]domain.CanonicalProduct, len(recs))
	for i, r := range recs {
		out[i] = r.Product
	}
	return out
}
