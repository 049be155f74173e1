package usecase

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
)

var (
	ageTags  = []string{TagPuppy, TagAdult, TagSenior}
	sizeTags = []string{TagSmall, TagRegular, TagLarge, TagGiant}
	formTags = []string{TagDry, TagWet, TagRaw}
)

// TagDisplay splits a product's tags into the groups a product card shows.
// Age and Size are empty when they add nothing to what the profile already says.
type TagDisplay struct {
	Primary     []string `json:"primary"`
	Age         string   `json:"age,omitempty"`
	Size        string   `json:"size,omitempty"`
	Ingredients []string `json:"ingredients"`
}

// SplitTagsForDisplay groups tags for a product card viewed with profile.
func SplitTagsForDisplay(tags domain.Tags, profile domain.PetProfile) TagDisplay {
	profile = profile.Normalized()
	profileSize := profile.BreedSize
	if profileSize == domain.BreedMedium {
		profileSize = TagRegular
	}

	var d TagDisplay
	if age := firstOf(tags, ageTags); age != profile.AgeGroup && age != TagAdult {
		d.Age = age
	}
	if size := firstOf(tags, sizeTags); size != profileSize {
		d.Size = size
	}
	for _, t := range tags {
		switch {
		case slices.Contains(domain.PrimaryTags, t):
			d.Primary = appendUnique(d.Primary, t)
		case slices.Contains(ageTags, t), slices.Contains(sizeTags, t), slices.Contains(formTags, t):
		default:
			d.Ingredients = appendUnique(d.Ingredients, t)
		}
	}
	return d
}

// ArrangeSections returns the visible shelves in display order for a weight goal.
// The goal's own shelf leads; most-popular and best-value always follow.
func ArrangeSections(goal string) []string {
	switch strings.ToLower(strings.TrimSpace(goal)) {
	case domain.GoalWeightLoss:
		return []string{domain.SectionLowFat, domain.SectionMostPopular, domain.SectionBestValue}
	case domain.GoalMuscleGain:
		return []string{domain.SectionHighProtein, domain.SectionMostPopular, domain.SectionBestValue}
	}
	return []string{domain.SectionMostPopular, domain.SectionBestValue}
}

// GroupBySection places every recommendation on its section's shelf. Recommendations
// whose section is not shown for the goal land on the most-popular shelf.
// Shelves left empty are omitted.
func GroupBySection(recs []domain.Recommendation, goal string) []domain.SectionGroup {
	order := ArrangeSections(goal)
	groups := make([]domain.SectionGroup, len(order))
	index := make(map[string]int, len(order))
	for i, s := range order {
		groups[i].Section = s
		index[s] = i
	}

	fallback := index[domain.SectionMostPopular]
	for _, r := range recs {
		i, ok := index[r.Product.Section]
		if !ok {
			i = fallback
		}
		groups[i].Recommendations = append(groups[i].Recommendations, r)
	}

	return slices.DeleteFunc(groups, func(g domain.SectionGroup) bool {
		return len(g.Recommendations) == 0
	})
}

// ResultsLabel renders a result count such as "1 product" or "3 products".
func ResultsLabel(count int) string {
	if count == 1 {
		return "1 product"
	}
	return fmt.Sprintf("%d products", count)
}

func appendUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}

func firstOf(tags domain.Tags, group []string) string {
	for _, t := range tags {
		if slices.Contains(group, t) {
			return t
		}
	}
	return ""
}
