package parser

import (
	"testing"

	"github.com/appengine-ltd/hydrostress/internal/stresskind"
)

func TestNormalisationTable(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  WATER  ", want: "water"},
		{in: "nutrient_uptake", want: "nutrient uptake"},
		{in: "Dissolved-Oxygen!!", want: "dissolved oxygen"},
		{in: "pH", want: "ph"},
		{in: "   ", want: ""},
	}
	for _, tc := range tests {
		got := normaliseInput(tc.in)
		if got != tc.want {
			t.Fatalf("normaliseInput(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestParseStressTypeAliases(t *testing.T) {
	tests := []struct {
		in     string
		want   stresskind.StressType
		source MatchSource
	}{
		{in: "water", want: stresskind.Water, source: SourceExact},
		{in: "Temperature", want: stresskind.Temperature, source: SourceExact},
		{in: "temp", want: stresskind.Temperature, source: SourceAlias},
		{in: "nitrogen", want: stresskind.Nutrient, source: SourceAlias},
		{in: "pH", want: stresskind.PH, source: SourceExact},
		{in: "O2", want: stresskind.Oxygen, source: SourceAlias},
		{in: "EC", want: stresskind.Salinity, source: SourceAlias},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, m, ok := ParseStressType(tc.in)
			if !ok {
				t.Fatalf("expected %q to resolve, got %+v", tc.in, m)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
			if m.Source != tc.source {
				t.Fatalf("expected source %q, got %q", tc.source, m.Source)
			}
		})
	}
}

func TestTypoIsSuggestedNotResolved(t *testing.T) {
	_, m, ok := ParseStressType("salinty")
	if ok {
		t.Fatalf("did not expect typo to resolve: %+v", m)
	}
	if m.Suggestion != "salinity" {
		t.Fatalf("expected suggestion salinity, got %q", m.Suggestion)
	}
	if m.Score < 0.6 {
		t.Fatalf("expected decent suggestion score, got %.2f", m.Score)
	}
}

func TestPrefixIsSuggestedNotResolved(t *testing.T) {
	_, m, ok := ParseStressType("sal")
	if ok {
		t.Fatalf("did not expect prefix to resolve")
	}
	if m.Suggestion != "salinity" || m.Source != SourceNone {
		t.Fatalf("expected salinity suggestion, got %+v", m)
	}
}

func TestUnknownKeyHasNoSuggestion(t *testing.T) {
	_, m, ok := ParseStressType("magnetism")
	if ok || m.Suggestion != "" {
		t.Fatalf("expected no match and no suggestion, got %+v", m)
	}
}

func TestParseProcessType(t *testing.T) {
	p, _, ok := ParseProcessType("nutrient uptake")
	if !ok || p != stresskind.NutrientUptake {
		t.Fatalf("expected nutrient_uptake, got %v ok=%v", p, ok)
	}
	p, _, ok = ParseProcessType("Photosynthesis")
	if !ok || p != stresskind.Photosynthesis {
		t.Fatalf("expected photosynthesis, got %v ok=%v", p, ok)
	}
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		in   string
		want stresskind.Pair
		ok   bool
	}{
		{in: "water_temperature", want: stresskind.NewPair(stresskind.Water, stresskind.Temperature), ok: true},
		{in: "temperature_water", want: stresskind.NewPair(stresskind.Water, stresskind.Temperature), ok: true},
		{in: "nutrient_ph", want: stresskind.NewPair(stresskind.Nutrient, stresskind.PH), ok: true},
		{in: "dissolved_oxygen_salinity", want: stresskind.NewPair(stresskind.Oxygen, stresskind.Salinity), ok: true},
		{in: "water_water", ok: false},
		{in: "water", ok: false},
	}
	for _, tc := range tests {
		got, ok := ParsePair(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParsePair(%q) ok=%v want=%v", tc.in, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ParsePair(%q)=%+v want=%+v", tc.in, got, tc.want)
		}
	}
}

func TestLevenshteinLimit(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{length: 2, want: 1},
		{length: 4, want: 1},
		{length: 8, want: 2},
		{length: 12, want: 3},
	}
	for _, tc := range tests {
		if got := levenshteinLimit(tc.length); got != tc.want {
			t.Fatalf("levenshteinLimit(%d)=%d want=%d", tc.length, got, tc.want)
		}
	}
}
