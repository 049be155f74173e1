package usecase

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
)

// KgToLb converts bag weights from kilograms to pounds
const KgToLb = 2.20462

var (
	// numericNoiseRegex drops everything except digits and separators
	numericNoiseRegex = regexp.MustCompile(`[^0-9.,\-]`)
	// leadingNumberRegex matches the longest parseable numeric prefix
	leadingNumberRegex = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// nutrientField maps a guaranteed-analysis table row to its raw field names.
type nutrientField struct {
	label  string
	keys   []string
	target func(n *domain.Nutrition) **float64
}

// analysisFields is the declared display order of the guaranteed analysis table.
var analysisFields = []nutrientField{
	{"Crude Protein (minimum)", []string{"protein_pct", "crude_protein", "protein"}, func(n *domain.Nutrition) **float64 { return &n.Protein }},
	{"Crude Fat (minimum)", []string{"fat_pct", "crude_fat", "fat"}, func(n *domain.Nutrition) **float64 { return &n.Fat }},
	{"Crude Fiber (maximum)", []string{"fiber_pct", "crude_fiber", "fiber"}, func(n *domain.Nutrition) **float64 { return &n.Fiber }},
	{"Moisture (maximum)", []string{"moisture_pct", "moisture"}, func(n *domain.Nutrition) **float64 { return &n.Moisture }},
	{"Ash (maximum)", []string{"ash_pct", "ash"}, func(n *domain.Nutrition) **float64 { return &n.Ash }},
	{"Omega-3 Fatty Acids (minimum)", []string{"omega_3_fatty_acids", "omega3", "omega_3"}, func(n *domain.Nutrition) **float64 { return &n.Omega3 }},
	{"Omega-6 Fatty Acids (minimum)", []string{"omega_6_fatty_acids", "omega6", "omega_6"}, func(n *domain.Nutrition) **float64 { return &n.Omega6 }},
	{"DHA (minimum)", []string{"DHA", "dha"}, func(n *domain.Nutrition) **float64 { return &n.DHA }},
	{"EPA (minimum)", []string{"EPA", "epa"}, func(n *domain.Nutrition) **float64 { return &n.EPA }},
	{"Calcium (minimum)", []string{"calcium_pct", "calcium"}, func(n *domain.Nutrition) **float64 { return &n.Calcium }},
	{"Phosphorus (minimum)", []string{"phosphorus_pct", "phosphorus"}, func(n *domain.Nutrition) **float64 { return &n.Phosphorus }},
}

type feedingField struct {
	label  string
	keys   []string
	target func(f *domain.Feeding) **float64
}

var feedingFields = []feedingField{
	{"Calories per cup", []string{"kcal_per_cup", "calories_per_cup"}, func(f *domain.Feeding) **float64 { return &f.KcalPerCup }},
	{"Calories per kg", []string{"kcal_per_kg", "calories_per_kg"}, func(f *domain.Feeding) **float64 { return &f.KcalPerKg }},
}

// sectionPriority is the order in which tags claim a product's section
var sectionPriority = domain.PrimaryTags

// Canonicalize converts one raw record into a CanonicalProduct. It never fails:
// malformed fields resolve to nil or "". The result depends only on raw and index.
func Canonicalize(raw domain.RawProductRecord, index int) domain.CanonicalProduct {
	id := raw.Text("id")
	line := raw.Text("line")

	p := domain.CanonicalProduct{
		CompareID:       CompareID(raw, index),
		ID:              id,
		Order:           index,
		Brand:           raw.Text("brand"),
		Line:            firstNonEmpty(line, id),
		Name:            firstNonEmpty(line, id, raw.Text("name")),
		Image:           raw.Text("image"),
		URL:             raw.FirstText("url", "source_url"),
		Tags:            NormalizeTags(raw),
		PrimaryProteins: raw.Text("primary_proteins"),
	}
	if p.ID == "" {
		p.ID = p.CompareID
	}

	p.Section = resolveSection(raw.Text("section"), p.Tags)

	p.Price = numberField(raw, "price")
	if kg := numberField(raw, "size_kg"); kg != nil {
		p.BagWeightLb = floatPtr(*kg * KgToLb)
	}
	if p.Price != nil && p.BagWeightLb != nil && *p.BagWeightLb > 0 {
		p.UnitPricePerLb = floatPtr(*p.Price / *p.BagWeightLb)
	}

	for _, f := range analysisFields {
		v := firstNumber(raw, f.keys)
		*f.target(&p.Nutrition) = v
		if v != nil {
			p.Detail.AnalysisPairs = append(p.Detail.AnalysisPairs, domain.LabeledValue{Label: f.label, Value: formatNumber(*v)})
		}
	}
	for _, f := range feedingFields {
		v := firstNumber(raw, f.keys)
		*f.target(&p.Feeding) = v
		if v != nil {
			p.Detail.FeedingPairs = append(p.Detail.FeedingPairs, domain.LabeledValue{Label: f.label, Value: formatNumber(*v)})
		}
	}

	p.Detail.IngredientsText = raw.FirstText("ingredients", "ingredient_list", "ingredients_list")
	if p.Detail.IngredientsText == "" {
		p.Detail.IngredientsText = joinTrimmed(raw.Text("primary_proteins"))
	}
	p.Detail.AAFCOStatement = raw.FirstText("aafco_statement", "aafco")
	p.Detail.Notes = raw.Text("notes")

	return p
}

// CompareID builds the stable selection key of a record:
// lowercase(hyphenate(join("::", [id, brand, line]))) with food-<index> as fallback.
// The line component falls back to name and then id.
func CompareID(raw domain.RawProductRecord, index int) string {
	id := raw.Text("id")
	parts := make([]string, 0, 3)
	for _, part := range []string{id, raw.Text("brand"), firstNonEmpty(raw.Text("line"), raw.Text("name"), id)} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	base := strings.Join(parts, "::")
	if base == "" {
		base = fmt.Sprintf("food-%d", index)
	}
	return strings.ToLower(whitespaceRegex.ReplaceAllString(base, "-"))
}

// DeriveSection picks the first primary tag present, or "" when none is.
func DeriveSection(tags domain.Tags) string {
	for _, s := range sectionPriority {
		if tags.Has(s) {
			return s
		}
	}
	return ""
}

func resolveSection(explicit string, tags domain.Tags) string {
	if s := strings.ToLower(strings.TrimSpace(explicit)); s != "" {
		return s
	}
	if s := DeriveSection(tags); s != "" {
		return s
	}
	return domain.SectionMostPopular
}

// ParseNumber is the tolerant numeric parser used for every numeric raw field.
// It keeps digits, '.', ',' and '-', turns the first comma into a decimal point
// even when a '.' is also present, and parses the leading number.
// It returns nil instead of failing.
func ParseNumber(s string) *float64 {
	cleaned := numericNoiseRegex.ReplaceAllString(s, "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	m := leadingNumberRegex.FindString(cleaned)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// numberField reads a numeric field, accepting native numbers from JSON sources.
func numberField(raw domain.RawProductRecord, key string) *float64 {
	switch v := raw[key].(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return floatPtr(v)
	case int:
		return floatPtr(float64(v))
	case int64:
		return floatPtr(float64(v))
	case bool:
		return nil
	}
	return ParseNumber(raw.Text(key))
}

func firstNumber(raw domain.RawProductRecord, keys []string) *float64 {
	for _, k := range keys {
		if v := numberField(raw, k); v != nil {
			return v
		}
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// joinTrimmed normalizes a comma separated list to "a, b, c".
func joinTrimmed(list string) string {
	var parts []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func floatPtr(v float64) *float64 {
	return &v
}
