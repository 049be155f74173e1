package usecase

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
	"github.com/rs/zerolog"
)

func newTestMatcher() *ProfileMatcher {
	return NewProfileMatcher(MatcherConfig{EnableDebugLogging: true}, zerolog.Nop())
}

func productWithTags(tags ...string) *domain.CanonicalProduct {
	return &domain.CanonicalProduct{CompareID: "test", Tags: domain.Tags(tags)}
}

func TestMatch_AllergenExclusion(t *testing.T) {
	m := newTestMatcher()
	profile := adultMediumProfile()
	profile.Allergies = []string{"Chicken"}

	got := m.Match(productWithTags("chicken", "adult", "regular", "high-protein"), profile)
	if got.Included {
		t.Errorf("Match() included a product containing an allergen")
	}
}

func TestMatch_AgeExclusion(t *testing.T) {
	m := newTestMatcher()
	puppyFood := productWithTags("puppy", "regular")

	for _, age := range []string{domain.AgeAdult, domain.AgeSenior} {
		t.Run(age, func(t *testing.T) {
			profile := adultMediumProfile()
			profile.AgeGroup = age
			if m.Match(puppyFood, profile).Included {
				t.Errorf("puppy food included for %s profile", age)
			}
		})
	}

	t.Run("puppy", func(t *testing.T) {
		profile := adultMediumProfile()
		profile.AgeGroup = domain.AgePuppy
		if !m.Match(puppyFood, profile).Included {
			t.Errorf("puppy food excluded for puppy profile")
		}
	})

	t.Run("puppy profile needs a puppy formula", func(t *testing.T) {
		profile := adultMediumProfile()
		profile.AgeGroup = domain.AgePuppy
		if m.Match(productWithTags("adult", "regular"), profile).Included {
			t.Errorf("adult food included for puppy profile")
		}
	})
}

func TestMatch_SizeRules(t *testing.T) {
	m := newTestMatcher()
	tests := []struct {
		size string
		tags []string
		want bool
	}{
		{domain.BreedSmall, []string{"small"}, true},
		{domain.BreedSmall, []string{"regular"}, true},
		{domain.BreedSmall, []string{"large"}, false},
		{domain.BreedMedium, []string{"regular"}, true},
		{domain.BreedMedium, []string{"small"}, false},
		{domain.BreedLarge, []string{"large"}, true},
		{domain.BreedGiant, []string{"regular"}, true},
		{domain.BreedGiant, []string{"giant"}, false},
		{domain.BreedLarge, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			profile := adultMediumProfile()
			profile.BreedSize = tt.size
			if got := m.Match(productWithTags(tt.tags...), profile).Included; got != tt.want {
				t.Errorf("Match(%v) for %s = %v, want %v", tt.tags, tt.size, got, tt.want)
			}
		})
	}
}

func TestMatch_ScoreCountsPrimaryTags(t *testing.T) {
	m := newTestMatcher()
	profile := adultMediumProfile()

	one := m.Match(productWithTags("regular", "high-protein"), profile)
	two := m.Match(productWithTags("regular", "high-protein", "best-value"), profile)
	none := m.Match(productWithTags("regular"), profile)

	if !(two.Score > one.Score && one.Score > none.Score) {
		t.Errorf("scores not monotonic: none=%v one=%v two=%v", none.Score, one.Score, two.Score)
	}
	if none.Score >= primaryTagWeight {
		t.Errorf("nutrition fit %v reaches a primary tag weight", none.Score)
	}
}

func TestMatch_NutritionBreaksTies(t *testing.T) {
	m := newTestMatcher()
	profile := adultMediumProfile()

	lean := productWithTags("regular", "most-popular")
	rich := productWithTags("regular", "most-popular")
	rich.Nutrition.Protein = floatPtr(34)
	rich.Nutrition.Fat = floatPtr(15)

	if m.Match(rich, profile).Score <= m.Match(lean, profile).Score {
		t.Errorf("better nutrition did not raise the score")
	}
}

func TestMatch_Reasons(t *testing.T) {
	m := newTestMatcher()

	t.Run("muscle gain with high protein", func(t *testing.T) {
		profile := adultMediumProfile()
		profile.WeightGoal = domain.GoalMuscleGain
		got := m.Match(productWithTags("regular", "high-protein", "grain-free"), profile).Reasons
		want := []string{ReasonConditioning, ReasonGrainFree}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Reasons = %v, want %v", got, want)
		}
	})

	t.Run("at most two reasons", func(t *testing.T) {
		profile := adultMediumProfile()
		profile.WeightGoal = domain.GoalWeightLoss
		got := m.Match(productWithTags("regular", "low-fat", "joint-support", "grain-free"), profile).Reasons
		want := []string{ReasonWeightLoss, ReasonJoints}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Reasons = %v, want %v", got, want)
		}
	})

	t.Run("no reasons", func(t *testing.T) {
		got := m.Match(productWithTags("regular"), adultMediumProfile()).Reasons
		if len(got) != 0 {
			t.Errorf("Reasons = %v, want none", got)
		}
	})
}

func TestValidateProfile(t *testing.T) {
	t.Run("valid profile", func(t *testing.T) {
		if err := ValidateProfile(adultMediumProfile()); err != nil {
			t.Errorf("ValidateProfile() error = %v", err)
		}
	})

	t.Run("case and spacing are tolerated", func(t *testing.T) {
		p := adultMediumProfile()
		p.AgeGroup = " Adult "
		if err := ValidateProfile(p); err != nil {
			t.Errorf("ValidateProfile() error = %v", err)
		}
	})

	t.Run("missing age group", func(t *testing.T) {
		p := adultMediumProfile()
		p.AgeGroup = ""
		err := ValidateProfile(p)

		var cfgErr *domain.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("ValidateProfile() error = %v, want ConfigurationError", err)
		}
		if !reflect.DeepEqual(cfgErr.Fields, []string{"ageGroup"}) {
			t.Errorf("Fields = %v, want [ageGroup]", cfgErr.Fields)
		}
		if !errors.Is(err, domain.ErrInvalidProfile) {
			t.Errorf("error does not unwrap to ErrInvalidProfile")
		}
	})

	t.Run("unsupported value", func(t *testing.T) {
		p := adultMediumProfile()
		p.WeightGoal = "bulk"
		var cfgErr *domain.ConfigurationError
		if err := ValidateProfile(p); !errors.As(err, &cfgErr) || cfgErr.Reason != "unsupported values" {
			t.Errorf("ValidateProfile() error = %v, want unsupported values", err)
		}
	})
}
