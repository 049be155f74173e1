package usecase

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
	"github.com/rs/zerolog"
)

func compareIDs(products []domain.CanonicalProduct) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.CompareID
	}
	return ids
}

func TestBuildRecommendations(t *testing.T) {
	pipeline := NewCatalogPipeline(PipelineConfig{}, zerolog.Nop())

	got, err := pipeline.BuildRecommendations(sampleRecords(), adultMediumProfile())
	if err != nil {
		t.Fatalf("BuildRecommendations() error = %v", err)
	}

	want := []string{"p1::acme::chow", "p2::bark-co::lean", "p4::wolf::wild-beef"}
	if ids := compareIDs(got); !reflect.DeepEqual(ids, want) {
		t.Errorf("BuildRecommendations() = %v, want %v", ids, want)
	}
}

func TestBuildRecommendations_Deterministic(t *testing.T) {
	pipeline := NewCatalogPipeline(PipelineConfig{}, zerolog.Nop())
	profile := adultMediumProfile()

	first, _ := pipeline.BuildRecommendations(sampleRecords(), profile)
	for i := 0; i < 5; i++ {
		again, _ := pipeline.BuildRecommendations(sampleRecords(), profile)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs from the first run", i)
		}
	}
}

func TestBuildRecommendations_InvalidProfile(t *testing.T) {
	pipeline := NewCatalogPipeline(PipelineConfig{}, zerolog.Nop())
	profile := adultMediumProfile()
	profile.AgeGroup = ""

	got, err := pipeline.BuildRecommendations(sampleRecords(), profile)

	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("BuildRecommendations() error = %v, want ConfigurationError", err)
	}
	if got != nil {
		t.Errorf("BuildRecommendations() = %v, want nil on invalid profile", got)
	}
}

func TestBuildCatalog_Duplicates(t *testing.T) {
	pipeline := NewCatalogPipeline(PipelineConfig{EnableDebugLogging: true}, zerolog.Nop())
	records := []domain.RawProductRecord{
		{"id": "d1", "brand": "Acme", "line": "Chow", "price": "10"},
		{"id": "d1", "brand": "Acme", "line": "Chow", "price": "20"},
	}

	catalog, dups := pipeline.BuildCatalog(records, 3)

	if catalog.Version != 3 || catalog.Len() != 2 {
		t.Errorf("catalog version/len = %d/%d, want 3/2", catalog.Version, catalog.Len())
	}
	if !reflect.DeepEqual(dups, []string{"d1::acme::chow"}) {
		t.Errorf("dups = %v", dups)
	}
	p, ok := catalog.Lookup("d1::acme::chow")
	if !ok || *p.Price != 20 {
		t.Errorf("Lookup() did not resolve to the last duplicate")
	}
}

func TestRecommend_Config(t *testing.T) {
	profile := adultMediumProfile()

	t.Run("min score", func(t *testing.T) {
		pipeline := NewCatalogPipeline(PipelineConfig{MinScore: 150}, zerolog.Nop())
		catalog, _ := pipeline.BuildCatalog(sampleRecords(), 1)
		recs, err := pipeline.Recommend(catalog, profile)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		want := []string{"p1::acme::chow", "p4::wolf::wild-beef"}
		if ids := compareIDs(RecommendedProducts(recs)); !reflect.DeepEqual(ids, want) {
			t.Errorf("Recommend() = %v, want %v", ids, want)
		}
	})

	t.Run("rank by score", func(t *testing.T) {
		pipeline := NewCatalogPipeline(PipelineConfig{RankByScore: true}, zerolog.Nop())
		catalog, _ := pipeline.BuildCatalog(sampleRecords(), 1)
		recs, _ := pipeline.Recommend(catalog, profile)
		want := []string{"p1::acme::chow", "p4::wolf::wild-beef", "p2::bark-co::lean"}
		if ids := compareIDs(RecommendedProducts(recs)); !reflect.DeepEqual(ids, want) {
			t.Errorf("Recommend() = %v, want %v", ids, want)
		}
	})

	t.Run("limit", func(t *testing.T) {
		pipeline := NewCatalogPipeline(PipelineConfig{Limit: 1}, zerolog.Nop())
		catalog, _ := pipeline.BuildCatalog(sampleRecords(), 1)
		recs, _ := pipeline.Recommend(catalog, profile)
		if len(recs) != 1 || recs[0].Product.CompareID != "p1::acme::chow" {
			t.Errorf("Recommend() = %v, want only p1", compareIDs(RecommendedProducts(recs)))
		}
	})

	t.Run("nil catalog", func(t *testing.T) {
		pipeline := NewCatalogPipeline(PipelineConfig{}, zerolog.Nop())
		if _, err := pipeline.Recommend(nil, profile); !errors.Is(err, domain.ErrCatalogUnavailable) {
			t.Errorf("Recommend(nil) error = %v, want %v", err, domain.ErrCatalogUnavailable)
		}
	})
}

func TestProductWarnings(t *testing.T) {
	catalog, _ := NewCatalogPipeline(PipelineConfig{}, zerolog.Nop()).BuildCatalog(sampleRecords(), 1)

	t.Run("complete product", func(t *testing.T) {
		if w := ProductWarnings(&catalog.Products[0]); len(w) != 0 {
			t.Errorf("ProductWarnings() = %v, want none", w)
		}
	})

	t.Run("missing fat and ingredients", func(t *testing.T) {
		w := ProductWarnings(&catalog.Products[2])
		want := []string{"missing recommended field: fat_pct"}
		if !reflect.DeepEqual(w, want) {
			t.Errorf("ProductWarnings() = %v, want %v", w, want)
		}
	})

	t.Run("implausible values", func(t *testing.T) {
		p := domain.CanonicalProduct{Brand: "X", Name: "Y"}
		p.Nutrition.Protein = floatPtr(60)
		p.Nutrition.Fat = floatPtr(2)
		p.Detail.IngredientsText = "beef"
		want := []string{"unusual protein percentage: 60%", "unusual fat percentage: 2%"}
		if w := ProductWarnings(&p); !reflect.DeepEqual(w, want) {
			t.Errorf("ProductWarnings() = %v, want %v", w, want)
		}
	})
}
