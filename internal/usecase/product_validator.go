package usecase

import (
	"fmt"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
)

// Plausible guaranteed-analysis ranges for dry dog food
const (
	minPlausibleProtein = 15.0
	maxPlausibleProtein = 50.0
	minPlausibleFat     = 5.0
	maxPlausibleFat     = 30.0
)

// ProductWarnings lists data-quality problems of a canonical product.
// Warnings never block a product from the catalog.
func ProductWarnings(p *domain.CanonicalProduct) []string {
	var warnings []string

	if p.Brand == "" {
		warnings = append(warnings, "missing required field: brand")
	}
	if p.Name == "" {
		warnings = append(warnings, "missing required field: name")
	}

	if p.Nutrition.Protein == nil {
		warnings = append(warnings, "missing recommended field: protein_pct")
	} else if v := *p.Nutrition.Protein; v < minPlausibleProtein || v > maxPlausibleProtein {
		warnings = append(warnings, fmt.Sprintf("unusual protein percentage: %g%%", v))
	}

	if p.Nutrition.Fat == nil {
		warnings = append(warnings, "missing recommended field: fat_pct")
	} else if v := *p.Nutrition.Fat; v < minPlausibleFat || v > maxPlausibleFat {
		warnings = append(warnings, fmt.Sprintf("unusual fat percentage: %g%%", v))
	}

	if p.Detail.IngredientsText == "" {
		warnings = append(warnings, "missing recommended field: ingredients")
	}

	return warnings
}
