package domain

// Product sections, in derivation priority order
const (
	SectionHighProtein = "high-protein"
	SectionLowFat      = "low-fat"
	SectionHighCalorie = "high-calorie"
	SectionMostPopular = "most-popular"
	SectionBestValue   = "best-value"
)

// PrimaryTags are the merit tags that drive section derivation and match scoring.
var PrimaryTags = []string{
	SectionHighProtein,
	SectionLowFat,
	SectionHighCalorie,
	SectionMostPopular,
	SectionBestValue,
}

// Tags is an insertion-ordered set of canonical tags.
type Tags []string

// Has reports whether tag is present.
func (t Tags) Has(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}

// HasAny reports whether any of tags is present.
func (t Tags) HasAny(tags ...string) bool {
	for _, tag := range tags {
		if t.Has(tag) {
			return true
		}
	}
	return false
}

// LabeledValue is one display pair in a product detail table.
type LabeledValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Nutrition holds guaranteed-analysis values in percent. Nil means not reported.
type Nutrition struct {
	Protein    *float64 `json:"protein"`
	Fat        *float64 `json:"fat"`
	Fiber      *float64 `json:"fiber"`
	Moisture   *float64 `json:"moisture"`
	Ash        *float64 `json:"ash"`
	Omega3     *float64 `json:"omega3"`
	Omega6     *float64 `json:"omega6"`
	DHA        *float64 `json:"dha"`
	EPA        *float64 `json:"epa"`
	Calcium    *float64 `json:"calcium"`
	Phosphorus *float64 `json:"phosphorus"`
}

// Feeding holds calorie density facts. Nil means not reported.
type Feeding struct {
	KcalPerCup *float64 `json:"kcalPerCup"`
	KcalPerKg  *float64 `json:"kcalPerKg"`
}

// ProductDetail is the expandable detail payload of a product.
type ProductDetail struct {
	IngredientsText string         `json:"ingredientsText"`
	AnalysisPairs   []LabeledValue `json:"analysisPairs"`
	FeedingPairs    []LabeledValue `json:"feedingPairs"`
	AAFCOStatement  string         `json:"aafcoStatement"`
	Notes           string         `json:"notes"`
}

// CanonicalProduct is the normalized product entity the engine works on.
// It is created once per raw record per catalog load and never mutated afterwards.
type CanonicalProduct struct {
	CompareID       string        `json:"compareId"`
	ID              string        `json:"id"`
	Order           int           `json:"order"`
	Brand           string        `json:"brand"`
	Line            string        `json:"line"`
	Name            string        `json:"name"`
	Image           string        `json:"image,omitempty"`
	URL             string        `json:"url,omitempty"`
	Tags            Tags          `json:"tags"`
	Section         string        `json:"section"`
	Price           *float64      `json:"price"`
	BagWeightLb     *float64      `json:"bagWeightLb"`
	UnitPricePerLb  *float64      `json:"unitPricePerLb"`
	Nutrition       Nutrition     `json:"nutrition"`
	Feeding         Feeding       `json:"feeding"`
	Detail          ProductDetail `json:"detail"`
	PrimaryProteins string        `json:"primaryProteins,omitempty"`
}

// MatchResult is the outcome of matching one product against one profile.
// Score and Reasons are only meaningful when Included is true.
type MatchResult struct {
	Included bool     `json:"included"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons"`
}

// Recommendation pairs an included product with its match result.
type Recommendation struct {
	Product CanonicalProduct `json:"product"`
	Match   MatchResult      `json:"match"`
}

// SectionGroup is one titled shelf of the recommendations view.
type SectionGroup struct {
	Section         string           `json:"section"`
	Recommendations []Recommendation `json:"recommendations"`
}

// RecommendationSet is the recommendations view of one profile against one snapshot.
type RecommendationSet struct {
	CatalogVersion  uint64           `json:"catalogVersion"`
	Sort            string           `json:"sort"`
	ResultsLabel    string           `json:"resultsLabel"`
	Recommendations []Recommendation `json:"recommendations"`
	Sections        []SectionGroup   `json:"sections"`
}

// Catalog is one immutable snapshot of canonical products.
type Catalog struct {
	Version  uint64
	Products []CanonicalProduct
	byID     map[string]int
}

// NewCatalog indexes products by compareId. On duplicate ids the last product wins
// the lookup slot; the returned list names every duplicated id once.
func NewCatalog(version uint64, products []CanonicalProduct) (*Catalog, []string) {
	c := &Catalog{
		Version:  version,
		Products: products,
		byID:     make(map[string]int, len(products)),
	}
	var dups []string
	reported := make(map[string]bool)
	for i, p := range products {
		if _, exists := c.byID[p.CompareID]; exists && !reported[p.CompareID] {
			dups = append(dups, p.CompareID)
			reported[p.CompareID] = true
		}
		c.byID[p.CompareID] = i
	}
	return c, dups
}

// Lookup returns the product with the given compareId.
func (c *Catalog) Lookup(compareID string) (*CanonicalProduct, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.byID[compareID]
	if !ok {
		return nil, false
	}
	return &c.Products[i], true
}

// Len returns the number of products in the snapshot.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Products)
}
