package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Derived tag values
const (
	TagSmall        = "small"
	TagRegular      = "regular"
	TagLarge        = "large"
	TagGiant        = "giant"
	TagPuppy        = "puppy"
	TagAdult        = "adult"
	TagSenior       = "senior"
	TagDry          = "dry"
	TagWet          = "wet"
	TagRaw          = "raw"
	TagGrainFree    = "grain-free"
	TagWeightLoss   = "weight-loss"
	TagJointSupport = "joint-support"
)

var (
	tagSeparatorRegex = regexp.MustCompile(`[,\s]+`)
	whitespaceRegex   = regexp.MustCompile(`\s+`)
)

// tagPhrases rewrites multi-word phrases to their hyphenated canonical form.
// Applied before splitting so the words stay together.
var tagPhrases = []struct{ from, to string }{
	{"low fat", "low-fat"},
	{"high protein", "high-protein"},
	{"high calorie", "high-calorie"},
}

// tagSingulars maps whole tokens to their singular form
var tagSingulars = map[string]string{
	"eggs": "egg",
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldText lowercases s and strips accents, so "Pâté" and "pate" yield the same tag.
func foldText(s string) string {
	folded, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// NormalizeTags derives the canonical tag set for a raw record.
// Absent or malformed fields contribute nothing.
func NormalizeTags(raw domain.RawProductRecord) domain.Tags {
	var b tagBuilder

	b.add(parseTagText(raw.Text("tags"))...)
	b.add(parseTagText(raw.Text("allergen_tags"))...)
	b.add(sizeToTag(raw.Text("breed_size"))...)
	b.add(stageToTag(raw.Text("life_stage"))...)
	b.add(formatToTag(raw.Text("format"))...)

	if raw.Truthy("grain_free") {
		b.add(TagGrainFree)
	}
	b.add(splitProteins(raw.Text("primary_proteins"))...)

	if b.remove(TagWeightLoss) {
		b.add(domain.SectionLowFat)
	}

	return b.tags
}

// parseTagText splits free text on commas and whitespace into canonical tokens.
func parseTagText(text string) []string {
	s := foldText(text)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	for _, p := range tagPhrases {
		s = strings.ReplaceAll(s, p.from, p.to)
	}

	var out []string
	for _, tok := range tagSeparatorRegex.Split(s, -1) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if singular, ok := tagSingulars[tok]; ok {
			tok = singular
		}
		out = append(out, tok)
	}
	return out
}

// sizeToTag maps a breed size description to a size tag.
// The containment checks run in a fixed order: small, medium, giant, large.
func sizeToTag(size string) []string {
	s := strings.ToLower(size)
	switch {
	case strings.Contains(s, "small"):
		return []string{TagSmall}
	case strings.Contains(s, "medium"):
		return []string{TagRegular}
	case strings.Contains(s, "giant"):
		return []string{TagGiant}
	case strings.Contains(s, "large"):
		return []string{TagLarge}
	}
	return nil
}

func stageToTag(stage string) []string {
	s := strings.ToLower(stage)
	switch {
	case strings.Contains(s, "puppy"):
		return []string{TagPuppy}
	case strings.Contains(s, "senior"):
		return []string{TagSenior}
	case s != "":
		return []string{TagAdult}
	}
	return nil
}

func formatToTag(format string) []string {
	f := strings.ToLower(format)
	switch {
	case strings.Contains(f, "dry"):
		return []string{TagDry}
	case strings.Contains(f, "wet"):
		return []string{TagWet}
	case strings.Contains(f, "raw"):
		return []string{TagRaw}
	}
	return nil
}

// splitProteins turns "Chicken, Turkey" into ["chicken", "turkey"].
func splitProteins(list string) []string {
	var out []string
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(foldText(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// tagBuilder accumulates tags in first-seen order without duplicates.
type tagBuilder struct {
	tags domain.Tags
}

func (b *tagBuilder) add(tags ...string) {
	for _, t := range tags {
		if t != "" && !b.tags.Has(t) {
			b.tags = append(b.tags, t)
		}
	}
}

func (b *tagBuilder) remove(tag string) bool {
	for i, t := range b.tags {
		if t == tag {
			b.tags = append(b.tags[:i], b.tags[i+1:]...)
			return true
		}
	}
	return false
}
