package usecase

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
)

// SortCriterion selects the ordering of a product list
type SortCriterion string

const (
	SortDefault     SortCriterion = "default"
	SortPriceAsc    SortCriterion = "price-asc"
	SortPriceDesc   SortCriterion = "price-desc"
	SortProteinDesc SortCriterion = "protein-desc"
	SortFatAsc      SortCriterion = "fat-asc"
)

// sortAliases maps the option names used by the catalog view
var sortAliases = map[string]SortCriterion{
	"":             SortDefault,
	"price-low":    SortPriceAsc,
	"price-high":   SortPriceDesc,
	"protein-high": SortProteinDesc,
	"fat-low":      SortFatAsc,
}

type sortKey struct {
	value     func(p *domain.CanonicalProduct) *float64
	ascending bool
}

var sortKeys = map[SortCriterion]sortKey{
	SortPriceAsc:    {func(p *domain.CanonicalProduct) *float64 { return p.Price }, true},
	SortPriceDesc:   {func(p *domain.CanonicalProduct) *float64 { return p.Price }, false},
	SortProteinDesc: {func(p *domain.CanonicalProduct) *float64 { return p.Nutrition.Protein }, false},
	SortFatAsc:      {func(p *domain.CanonicalProduct) *float64 { return p.Nutrition.Fat }, true},
}

// ParseSortCriterion accepts canonical names and their catalog aliases.
func ParseSortCriterion(s string) (SortCriterion, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := sortAliases[s]; ok {
		return c, nil
	}
	c := SortCriterion(s)
	if c == SortDefault {
		return c, nil
	}
	if _, ok := sortKeys[c]; ok {
		return c, nil
	}
	return SortDefault, fmt.Errorf("%w: unknown sort option %q", domain.ErrInvalidRequest, s)
}

// SortProducts returns a stably sorted copy of products. Missing values sink to the
// end in both directions. SortDefault and unknown criteria keep the input order.
func SortProducts(products []domain.CanonicalProduct, criterion SortCriterion) []domain.CanonicalProduct {
	out := slices.Clone(products)
	key, ok := sortKeys[criterion]
	if !ok {
		return out
	}
	slices.SortStableFunc(out, func(a, b domain.CanonicalProduct) int {
		return compareByKey(key, &a, &b)
	})
	return out
}

// SortRecommendations orders recommendations by their product, like SortProducts.
func SortRecommendations(recs []domain.Recommendation, criterion SortCriterion) []domain.Recommendation {
	out := slices.Clone(recs)
	key, ok := sortKeys[criterion]
	if !ok {
		return out
	}
	slices.SortStableFunc(out, func(a, b domain.Recommendation) int {
		return compareByKey(key, &a.Product, &b.Product)
	})
	return out
}

func compareByKey(key sortKey, a, b *domain.CanonicalProduct) int {
	if key.ascending {
		return cmp.Compare(sortValue(key.value(a), math.Inf(1)), sortValue(key.value(b), math.Inf(1)))
	}
	return cmp.Compare(sortValue(key.value(b), math.Inf(-1)), sortValue(key.value(a), math.Inf(-1)))
}

func sortValue(v *float64, missing float64) float64 {
	if v == nil {
		return missing
	}
	return *v
}
