package usecase

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
)

// Comparison section titles and icons
const (
	SectionOverview    = "Overview"
	SectionAnalysis    = "Guaranteed Analysis"
	SectionFeeding     = "Feeding Information"
	SectionIngredients = "Ingredients & Formulation"

	emptyCell         = "—"
	unknownBrand      = "Unknown Brand"
	unnamedProduct    = "Unnamed Product"
	maxHighlightCount = 8
)

// Preference tells which side of a numeric row wins
type Preference int

const (
	PreferNone Preference = iota
	PreferHigher
	PreferLower
)

var (
	crudePrefixRegex   = regexp.MustCompile(`(?i)^crude\s+`)
	minimumSuffixRegex = regexp.MustCompile(`(?i)\(minimum\)`)
	maximumSuffixRegex = regexp.MustCompile(`(?i)\(maximum\)`)
	plainNumberRegex   = regexp.MustCompile(`^\d+(\.\d+)?$`)
	percentLabelRegex  = regexp.MustCompile(`(?i)moisture|fiber|ash|protein|fat`)
)

// Compare builds the side-by-side comparison of two products.
// It returns nil when either product is missing or both share a compareId.
// Swapping the arguments swaps the A and B sides of every row.
func Compare(a, b *domain.CanonicalProduct) []domain.ComparisonSection {
	if a == nil || b == nil || a.CompareID == b.CompareID {
		return nil
	}

	candidates := []domain.ComparisonSection{
		{Title: SectionOverview, Icon: "🏷️", Rows: overviewRows(a, b)},
		{Title: SectionAnalysis, Icon: "🔬", Rows: pairRows(a.Detail.AnalysisPairs, b.Detail.AnalysisPairs, AnalysisPreference, ShortenAnalysisLabel, formatAnalysisValue)},
		{Title: SectionFeeding, Icon: "📊", Rows: pairRows(a.Detail.FeedingPairs, b.Detail.FeedingPairs, FeedingPreference, nil, formatFeedingValue)},
		{Title: SectionIngredients, Icon: "🌾", Rows: ingredientRows(a, b)},
	}

	var sections []domain.ComparisonSection
	for _, s := range candidates {
		if len(s.Rows) > 0 {
			sections = append(sections, s)
		}
	}
	return sections
}

// AnalysisPreference decides the winner direction of a guaranteed-analysis label.
func AnalysisPreference(label string) Preference {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "protein"), strings.Contains(l, "omega"):
		return PreferHigher
	case strings.Contains(l, "fiber"), strings.Contains(l, "ash"), strings.Contains(l, "moisture"):
		return PreferLower
	}
	return PreferNone
}

// FeedingPreference decides the winner direction of a feeding label.
func FeedingPreference(label string) Preference {
	if strings.Contains(strings.ToLower(label), "calorie") {
		return PreferHigher
	}
	return PreferNone
}

// ShortenAnalysisLabel turns "Crude Protein (minimum)" into "Protein (min)".
func ShortenAnalysisLabel(label string) string {
	s := crudePrefixRegex.ReplaceAllString(label, "")
	s = minimumSuffixRegex.ReplaceAllString(s, "(min)")
	return maximumSuffixRegex.ReplaceAllString(s, "(max)")
}

func overviewRows(a, b *domain.CanonicalProduct) []domain.ComparisonRow {
	rows := []domain.ComparisonRow{
		{Label: "Brand", ValueA: firstNonEmpty(a.Brand, unknownBrand), ValueB: firstNonEmpty(b.Brand, unknownBrand)},
		{Label: "Product", ValueA: productName(a), ValueB: productName(b)},
	}
	rows = appendRow(rows, "Price", formatPrice(a.Price), formatPrice(b.Price), a.Price, b.Price, PreferLower)
	rows = appendRow(rows, "Unit Price", formatUnitPrice(a.UnitPricePerLb), formatUnitPrice(b.UnitPricePerLb), a.UnitPricePerLb, b.UnitPricePerLb, PreferLower)
	rows = appendRow(rows, "Bag Size", formatBagSize(a.BagWeightLb), formatBagSize(b.BagWeightLb), nil, nil, PreferNone)
	return rows
}

// pairRows aligns two label/value lists on the original label, sorted alphabetically,
// and shortens the label only for display.
func pairRows(pairsA, pairsB []domain.LabeledValue, pref func(string) Preference, display func(string) string, format func(label, value string) string) []domain.ComparisonRow {
	valuesA, valuesB := pairMap(pairsA), pairMap(pairsB)

	labels := make([]string, 0, len(valuesA)+len(valuesB))
	for label := range valuesA {
		labels = append(labels, label)
	}
	for label := range valuesB {
		if _, ok := valuesA[label]; !ok {
			labels = append(labels, label)
		}
	}
	slices.Sort(labels)

	var rows []domain.ComparisonRow
	for _, label := range labels {
		rawA, rawB := valuesA[label], valuesB[label]
		shown := label
		if display != nil {
			shown = display(label)
		}
		rows = appendRow(rows, shown, format(label, rawA), format(label, rawB), leadingFloat(rawA), leadingFloat(rawB), pref(label))
	}
	return rows
}

func ingredientRows(a, b *domain.CanonicalProduct) []domain.ComparisonRow {
	var rows []domain.ComparisonRow
	rows = appendRow(rows, "Highlights", FormatTagList(a.Tags, maxHighlightCount), FormatTagList(b.Tags, maxHighlightCount), nil, nil, PreferNone)
	rows = appendRow(rows, "Top Ingredients", joinTrimmed(a.Detail.IngredientsText), joinTrimmed(b.Detail.IngredientsText), nil, nil, PreferNone)
	rows = appendRow(rows, "AAFCO Statement", strings.TrimSpace(a.Detail.AAFCOStatement), strings.TrimSpace(b.Detail.AAFCOStatement), nil, nil, PreferNone)
	return rows
}

// appendRow adds a row unless both sides are empty. A winner is flagged only when both
// numbers are known, differ and the label has a preference.
func appendRow(rows []domain.ComparisonRow, label, valueA, valueB string, numA, numB *float64, pref Preference) []domain.ComparisonRow {
	if valueA == "" && valueB == "" {
		return rows
	}
	row := domain.ComparisonRow{
		Label:  label,
		ValueA: firstNonEmpty(valueA, emptyCell),
		ValueB: firstNonEmpty(valueB, emptyCell),
	}
	if pref != PreferNone && numA != nil && numB != nil && *numA != *numB {
		aLower := *numA < *numB
		if pref == PreferLower {
			row.WinnerA, row.WinnerB = aLower, !aLower
		} else {
			row.WinnerA, row.WinnerB = !aLower, aLower
		}
	}
	return append(rows, row)
}

func pairMap(pairs []domain.LabeledValue) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if p.Label != "" {
			m[p.Label] = p.Value
		}
	}
	return m
}

// leadingFloat parses the number a value starts with, or nil.
func leadingFloat(value string) *float64 {
	m := leadingNumberRegex.FindString(strings.TrimSpace(value))
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return &v
}

func productName(p *domain.CanonicalProduct) string {
	return strings.TrimSpace(firstNonEmpty(p.Name, p.Line, p.ID, unnamedProduct))
}

func formatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return "$" + strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatUnitPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return formatPrice(v) + "/lb"
}

// formatBagSize prints whole weights without decimals and others with one.
func formatBagSize(v *float64) string {
	if v == nil || *v <= 0 {
		return ""
	}
	precision := 0
	if math.Mod(*v, 1) != 0 {
		precision = 1
	}
	return strconv.FormatFloat(*v, 'f', precision, 64) + " lb"
}

func formatAnalysisValue(label, value string) string {
	v := strings.TrimSpace(value)
	if plainNumberRegex.MatchString(v) && percentLabelRegex.MatchString(label) {
		return v + "%"
	}
	return v
}

func formatFeedingValue(label, value string) string {
	v := strings.TrimSpace(value)
	if !plainNumberRegex.MatchString(v) {
		return v
	}
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "cup"):
		return v + " kcal"
	case strings.Contains(l, "kg"):
		return v + " kcal/kg"
	}
	return v
}

// FormatTagList renders tags as "Grain free, Chicken", deduplicated and capped at limit.
func FormatTagList(tags domain.Tags, limit int) string {
	var out []string
	for _, t := range tags {
		t = capitalizeFirst(strings.ReplaceAll(t, "-", " "))
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return strings.Join(out, ", ")
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// SelectComparisonPair reconciles a compare selection with the products on display.
// A primary that is no longer listed falls back to the first product; the secondary
// falls back to the first product that differs from the primary.
func SelectComparisonPair(products []domain.CanonicalProduct, primary, secondary string) (string, string) {
	if len(products) == 0 {
		return "", ""
	}
	listed := func(id string) bool {
		return id != "" && slices.ContainsFunc(products, func(p domain.CanonicalProduct) bool { return p.CompareID == id })
	}

	if !listed(primary) {
		primary = products[0].CompareID
	}
	if !listed(secondary) || secondary == primary {
		secondary = ""
		for _, p := range products {
			if p.CompareID != primary {
				secondary = p.CompareID
				break
			}
		}
	}
	return primary, secondary
}
