package domain

import (
	"sort"
	"strings"
)

// Age groups accepted in a pet profile
const (
	AgePuppy  = "puppy"
	AgeAdult  = "adult"
	AgeSenior = "senior"
)

// Breed sizes accepted in a pet profile
const (
	BreedSmall  = "small"
	BreedMedium = "medium"
	BreedLarge  = "large"
	BreedGiant  = "giant"
)

// Activity levels accepted in a pet profile
const (
	ActivityLow    = "low"
	ActivityMedium = "medium"
	ActivityHigh   = "high"
)

// Dietary goals accepted in a pet profile
const (
	GoalMaintenance = "maintenance"
	GoalWeightLoss  = "weight-loss"
	GoalMuscleGain  = "muscle-gain"
)

// PetProfile describes the dog the recommendations are computed for.
// It is immutable for one recommendation session and replaced wholesale on edit.
type PetProfile struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name"`
	AgeGroup      string   `json:"ageGroup" validate:"required,oneof=puppy adult senior"`
	BreedSize     string   `json:"breedSize" validate:"required,oneof=small medium large giant"`
	ActivityLevel string   `json:"activityLevel" validate:"required,oneof=low medium high"`
	WeightGoal    string   `json:"weightGoal" validate:"required,oneof=maintenance weight-loss muscle-gain"`
	Allergies     []string `json:"allergies"`
}

// Normalized returns a copy with lowercased enum fields and a cleaned,
// deduplicated allergy list.
func (p PetProfile) Normalized() PetProfile {
	out := p
	out.Name = strings.TrimSpace(p.Name)
	out.AgeGroup = strings.ToLower(strings.TrimSpace(p.AgeGroup))
	out.BreedSize = strings.ToLower(strings.TrimSpace(p.BreedSize))
	out.ActivityLevel = strings.ToLower(strings.TrimSpace(p.ActivityLevel))
	out.WeightGoal = strings.ToLower(strings.TrimSpace(p.WeightGoal))

	out.Allergies = nil
	seen := make(map[string]bool, len(p.Allergies))
	for _, a := range p.Allergies {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out.Allergies = append(out.Allergies, a)
	}
	return out
}

// AllergySet returns the profile allergies as a lookup set.
func (p PetProfile) AllergySet() map[string]bool {
	set := make(map[string]bool, len(p.Allergies))
	for _, a := range p.Allergies {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			set[a] = true
		}
	}
	return set
}

// Fingerprint is a stable key for the matching-relevant fields of the profile.
// Name and ID do not influence matching and are left out.
func (p PetProfile) Fingerprint() string {
	n := p.Normalized()
	allergies := append([]string(nil), n.Allergies...)
	sort.Strings(allergies)
	return strings.Join([]string{
		n.AgeGroup, n.BreedSize, n.ActivityLevel, n.WeightGoal, strings.Join(allergies, ","),
	}, "|")
}
