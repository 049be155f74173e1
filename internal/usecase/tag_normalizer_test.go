package usecase

import (
	"reflect"
	"testing"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		raw  domain.RawProductRecord
		want domain.Tags
	}{
		{
			name: "weight-loss is aliased to low-fat",
			raw:  domain.RawProductRecord{"tags": "weight-loss"},
			want: domain.Tags{"low-fat"},
		},
		{
			name: "alias does not duplicate an existing low-fat",
			raw:  domain.RawProductRecord{"tags": "low fat, weight-loss"},
			want: domain.Tags{"low-fat"},
		},
		{
			name: "phrases are hyphenated before splitting",
			raw:  domain.RawProductRecord{"tags": "High  Protein, Chicken"},
			want: domain.Tags{"high-protein", "chicken"},
		},
		{
			name: "plural eggs becomes egg",
			raw:  domain.RawProductRecord{"allergen_tags": "Eggs"},
			want: domain.Tags{"egg"},
		},
		{
			name: "accents are folded",
			raw:  domain.RawProductRecord{"tags": "Pâté"},
			want: domain.Tags{"pate"},
		},
		{
			name: "giant wins over large",
			raw:  domain.RawProductRecord{"breed_size": "Large & Giant"},
			want: domain.Tags{"giant"},
		},
		{
			name: "medium maps to regular",
			raw:  domain.RawProductRecord{"breed_size": "Medium Breed"},
			want: domain.Tags{"regular"},
		},
		{
			name: "small wins over medium",
			raw:  domain.RawProductRecord{"breed_size": "Small/Medium"},
			want: domain.Tags{"small"},
		},
		{
			name: "any other life stage is adult",
			raw:  domain.RawProductRecord{"life_stage": "All Life Stages"},
			want: domain.Tags{"adult"},
		},
		{
			name: "derived tags follow field order",
			raw: domain.RawProductRecord{
				"primary_proteins": "Chicken, Turkey",
				"grain_free":       "yes",
				"format":           "Dry Kibble",
				"life_stage":       "Senior",
				"breed_size":       "Large",
				"tags":             "joint-support",
			},
			want: domain.Tags{"joint-support", "large", "senior", "dry", "grain-free", "chicken", "turkey"},
		},
		{
			name: "native boolean grain_free",
			raw:  domain.RawProductRecord{"grain_free": true},
			want: domain.Tags{"grain-free"},
		},
		{
			name: "false grain_free adds nothing",
			raw:  domain.RawProductRecord{"grain_free": "no"},
			want: nil,
		},
		{
			name: "duplicates are collapsed",
			raw:  domain.RawProductRecord{"tags": "chicken chicken", "primary_proteins": "Chicken"},
			want: domain.Tags{"chicken"},
		},
		{
			name: "empty record",
			raw:  domain.RawProductRecord{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeTags_NoWeightLossSurvives(t *testing.T) {
	raws := []domain.RawProductRecord{
		{"tags": "weight-loss"},
		{"tags": "Weight-Loss, chicken"},
		{"allergen_tags": "weight-loss"},
	}
	for _, raw := range raws {
		tags := NormalizeTags(raw)
		if tags.Has(TagWeightLoss) {
			t.Errorf("NormalizeTags(%v) = %v, still contains weight-loss", raw, tags)
		}
		if !tags.Has(domain.SectionLowFat) {
			t.Errorf("NormalizeTags(%v) = %v, missing low-fat", raw, tags)
		}
	}
}

func TestFoldText(t *testing.T) {
	if got := foldText("Crème BRÛLÉE"); got != "creme brulee" {
		t.Errorf("foldText() = %q, want %q", got, "creme brulee")
	}
}
