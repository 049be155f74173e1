package usecase

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
	"github.com/rs/zerolog"
)

// Scoring weights. One primary merit tag always outweighs the whole nutrition fit,
// so more matching primary tags means a higher score.
const (
	primaryTagWeight   = 100.0
	maxActivityFit     = 40.0
	maxNutritionFit    = 25.0
	maxIngredientFit   = 10.0
	maxMatchReasons    = 2
	freshIngredientWin = 3 // leading ingredients inspected for fresh meat
)

// Reason texts
const (
	ReasonConditioning = "High-protein for conditioning"
	ReasonWeightLoss   = "Lower fat to aid weight control"
	ReasonJoints       = "Supports joint health"
	ReasonGrainFree    = "Grain-free formula"
)

var (
	freshKeywords        = []string{"fresh", "raw", "whole"}
	controversialKeyword = []string{"by-product", "meal", "digest", "artificial"}
)

// reasonRule produces a reason when its predicate holds
type reasonRule struct {
	text string
	when func(p domain.PetProfile, tags domain.Tags) bool
}

// reasonRules are evaluated in order; the first two matches are kept.
var reasonRules = []reasonRule{
	{ReasonConditioning, func(p domain.PetProfile, t domain.Tags) bool {
		return p.WeightGoal == domain.GoalMuscleGain && t.Has(domain.SectionHighProtein)
	}},
	{ReasonWeightLoss, func(p domain.PetProfile, t domain.Tags) bool {
		return p.WeightGoal == domain.GoalWeightLoss && t.Has(domain.SectionLowFat)
	}},
	{ReasonJoints, func(_ domain.PetProfile, t domain.Tags) bool { return t.Has(TagJointSupport) }},
	{ReasonGrainFree, func(_ domain.PetProfile, t domain.Tags) bool { return t.Has(TagGrainFree) }},
}

// MatcherConfig holds configuration for the profile matcher
type MatcherConfig struct {
	EnableDebugLogging bool
}

// ProfileMatcher decides whether a product suits a pet and how well.
// It holds no mutable state and is safe for concurrent use.
type ProfileMatcher struct {
	enableDebugLogging bool
	logger             zerolog.Logger
}

// NewProfileMatcher creates a matcher that logs through logger
func NewProfileMatcher(config MatcherConfig, logger zerolog.Logger) *ProfileMatcher {
	return &ProfileMatcher{
		enableDebugLogging: config.EnableDebugLogging,
		logger:             logger.With().Str("component", "matcher").Logger(),
	}
}

// Match applies the age, size and allergen filters and scores included products.
// The profile is expected to have passed ValidateProfile.
func (m *ProfileMatcher) Match(product *domain.CanonicalProduct, profile domain.PetProfile) domain.MatchResult {
	profile = profile.Normalized()

	if reason := exclusionReason(product.Tags, profile); reason != "" {
		if m.enableDebugLogging {
			m.logger.Debug().Str("compare_id", product.CompareID).Str("reason", reason).Msg("product excluded")
		}
		return domain.MatchResult{Included: false}
	}

	score := primaryTagScore(product.Tags) + nutritionFit(product, profile)
	reasons := matchReasons(profile, product.Tags)

	if m.enableDebugLogging {
		m.logger.Debug().
			Str("compare_id", product.CompareID).
			Float64("score", score).
			Strs("reasons", reasons).
			Msg("product included")
	}

	return domain.MatchResult{Included: true, Score: score, Reasons: reasons}
}

// exclusionReason returns why a product is filtered out, or "" when it is kept.
func exclusionReason(tags domain.Tags, profile domain.PetProfile) string {
	switch profile.AgeGroup {
	case domain.AgePuppy:
		if !tags.Has(TagPuppy) {
			return "not a puppy formula"
		}
	case domain.AgeSenior:
		if !tags.Has(TagSenior) {
			return "not a senior formula"
		}
	default:
		if tags.HasAny(TagPuppy, TagSenior) {
			return "life stage formula for puppy or senior"
		}
	}

	switch profile.BreedSize {
	case domain.BreedSmall:
		if !tags.HasAny(TagSmall, TagRegular) {
			return "kibble not suited to small breed"
		}
	case domain.BreedLarge, domain.BreedGiant:
		if !tags.HasAny(TagLarge, TagRegular) {
			return "kibble not suited to large breed"
		}
	case domain.BreedMedium:
		if !tags.Has(TagRegular) {
			return "kibble not suited to medium breed"
		}
	}

	allergies := profile.AllergySet()
	for _, t := range tags {
		if allergies[t] {
			return "contains allergen " + t
		}
	}
	return ""
}

func primaryTagScore(tags domain.Tags) float64 {
	n := 0
	for _, t := range domain.PrimaryTags {
		if tags.Has(t) {
			n++
		}
	}
	return float64(n) * primaryTagWeight
}

func matchReasons(profile domain.PetProfile, tags domain.Tags) []string {
	var reasons []string
	for _, rule := range reasonRules {
		if len(reasons) == maxMatchReasons {
			break
		}
		if rule.when(profile, tags) {
			reasons = append(reasons, rule.text)
		}
	}
	return reasons
}

// nutritionFit ranks products with the same primary tags by how well their analysis
// suits the pet. Missing values count as zero. The sum stays below primaryTagWeight.
func nutritionFit(p *domain.CanonicalProduct, profile domain.PetProfile) float64 {
	protein := valueOrZero(p.Nutrition.Protein)
	fat := valueOrZero(p.Nutrition.Fat)
	fiber := valueOrZero(p.Nutrition.Fiber)

	return activityGoalFit(profile.ActivityLevel, profile.WeightGoal, protein, fat, fiber) +
		nutritionalQualityFit(protein, fat, p.Nutrition.Omega3, p.Nutrition.DHA, p.Tags.Has(TagGrainFree)) +
		ingredientQualityFit(p.Detail.IngredientsText, p.PrimaryProteins)
}

func activityGoalFit(activity, goal string, protein, fat, fiber float64) float64 {
	score := 0.0
	switch activity {
	case domain.ActivityHigh:
		switch goal {
		case domain.GoalMuscleGain:
			score += tiered(protein >= 38, 20, protein >= 35, 15)
			score += tiered(fat >= 15, 20, fat >= 12, 10)
		case domain.GoalMaintenance:
			score += tiered(protein >= 35, 20, protein >= 30, 15)
			score += tiered(fat >= 12 && fat <= 18, 20, fat >= 15, 15)
		case domain.GoalWeightLoss:
			score += tiered(protein >= 35, 20, false, 0)
			score += tiered(fat < 12 && fiber >= 5, 20, fat < 15, 10)
		}
	case domain.ActivityMedium:
		switch goal {
		case domain.GoalMaintenance:
			score += tiered(protein >= 30 && protein <= 38, 20, protein >= 28, 15)
			score += tiered(fat >= 12 && fat <= 18, 20, false, 0)
		case domain.GoalMuscleGain:
			score += tiered(protein >= 35, 20, false, 0)
			score += tiered(fat >= 15, 15, false, 0)
		case domain.GoalWeightLoss:
			score += tiered(protein >= 30, 15, false, 0)
			score += tiered(fat < 12, 20, fat < 15, 10)
		}
	case domain.ActivityLow:
		switch goal {
		case domain.GoalWeightLoss:
			score += tiered(protein >= 28, 15, false, 0)
			score += tiered(fat < 12 && fiber >= 5, 25, fat < 12, 15)
		case domain.GoalMaintenance:
			score += tiered(protein >= 28 && protein <= 35, 20, false, 0)
			score += tiered(fat >= 10 && fat <= 15, 20, false, 0)
		case domain.GoalMuscleGain:
			score += tiered(protein >= 35, 15, false, 0)
			score += tiered(fat >= 12, 10, false, 0)
		}
	}
	return min(score, maxActivityFit)
}

func nutritionalQualityFit(protein, fat float64, omega3, dha *float64, grainFree bool) float64 {
	score := tiered(protein >= 38, 10, protein >= 35, 8)
	if score == 0 && protein >= 30 {
		score = 5
	}
	o3, d := valueOrZero(omega3), valueOrZero(dha)
	score += tiered(o3 >= 0.8, 3, o3 >= 0.5, 2)
	score += tiered(d >= 0.3, 2, d >= 0.2, 1)
	if grainFree {
		score += 5
	}
	score += tiered(fat >= 12 && fat <= 18, 5, fat >= 10 && fat <= 20, 3)
	return min(score, maxNutritionFit)
}

func ingredientQualityFit(ingredients, primaryProteins string) float64 {
	score := 0.0
	lower := strings.ToLower(ingredients)

	leading := strings.Split(lower, ",")
	if len(leading) > freshIngredientWin {
		leading = leading[:freshIngredientWin]
	}
fresh:
	for _, ing := range leading {
		for _, kw := range freshKeywords {
			if strings.Contains(ing, kw) {
				score += 5
				break fresh
			}
		}
	}

	proteins := 0
	for _, p := range strings.Split(primaryProteins, ",") {
		if strings.TrimSpace(p) != "" {
			proteins++
		}
	}
	score += tiered(proteins >= 3, 3, proteins >= 2, 2)

	if lower != "" && !containsAny(lower, controversialKeyword) {
		score += 2
	}
	return min(score, maxIngredientFit)
}

// tiered returns high when first holds, else low when second holds, else 0.
func tiered(first bool, high float64, second bool, low float64) float64 {
	switch {
	case first:
		return high
	case second:
		return low
	}
	return 0
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

var (
	profileValidator     *validator.Validate
	profileValidatorOnce sync.Once
)

func getProfileValidator() *validator.Validate {
	profileValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		profileValidator = v
	})
	return profileValidator
}

// ValidateProfile checks that every enum field of the profile is present and known.
// It returns a *domain.ConfigurationError naming the offending fields.
func ValidateProfile(profile domain.PetProfile) error {
	n := profile.Normalized()
	err := getProfileValidator().Struct(n)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &domain.ConfigurationError{Reason: err.Error()}
	}

	cfgErr := &domain.ConfigurationError{}
	missing := false
	for _, fe := range verrs {
		cfgErr.Fields = append(cfgErr.Fields, fe.Field())
		if fe.Tag() == "required" {
			missing = true
		}
	}
	if missing {
		cfgErr.Reason = "required fields are empty"
	} else {
		cfgErr.Reason = "unsupported values"
	}
	return cfgErr
}
