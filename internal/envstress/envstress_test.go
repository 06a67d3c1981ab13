package envstress

import (
	"math"
	"testing"

	"github.com/appengine-ltd/hydrostress/internal/config"
	"github.com/appengine-ltd/hydrostress/internal/stresskind"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestConverters(t *testing.T) {
	p := config.DefaultEnvironmentParams()
	tests := []struct {
		name string
		conv func(config.EnvironmentParams, float64) float64
		in   float64
		want float64
	}{
		{"vpd optimal", VPD, 0.8, 1},
		{"vpd edge of band", VPD, 1.3, 1},
		{"vpd beyond band", VPD, 2.3, 0.8},
		{"vpd capped", VPD, 5, 0.7},
		{"vpd low", VPD, 0, 0.94},
		{"light full", Light, 12, 1},
		{"light half", Light, 6, 0.5},
		{"light saturated", Light, 30, 1},
		{"light negative", Light, -3, 0},
		{"nitrate severe", Nitrate, 10, 0.2},
		{"nitrate deficient", Nitrate, 60, 0.6},
		{"nitrate optimal", Nitrate, 250, 1},
		{"nitrate excess", Nitrate, 500, 0.9},
		{"nitrate excess capped", Nitrate, 2000, 0.7},
		{"ec fine", Salinity, 1.5, 1},
		{"ec high", Salinity, 2.8, 0.5},
		{"ec extreme", Salinity, 10, 0},
		{"ph in band", PH, 6, 1},
		{"ph acid", PH, 4.5, 0.8},
		{"ph alkaline", PH, 7.5, 0.8},
		{"oxygen optimal", Oxygen, 8, 1},
		{"oxygen mid", Oxygen, 4, 0.5},
		{"oxygen anoxic", Oxygen, 1, 0},
		{"root in band", RootTemperature, 22, 1},
		{"root warm", RootTemperature, 27, 0.8},
		{"root frozen", RootTemperature, -30, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.conv(p, tc.in); !near(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFromIntensity(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 1}, {1, 0}, {0.3, 0.7}, {1.5, 0}, {-1, 1},
	}
	for _, tc := range tests {
		if got := FromIntensity(tc.in); !near(got, tc.want) {
			t.Fatalf("FromIntensity(%v)=%v want=%v", tc.in, got, tc.want)
		}
	}
}

func TestNitrateIsContinuousAtBandEdges(t *testing.T) {
	p := config.DefaultEnvironmentParams()
	if got := Nitrate(p, p.NitrateSevere); !near(got, 1-p.NitrateSevereStress) {
		t.Fatalf("expected severe level at the lower edge, got %v", got)
	}
	if got := Nitrate(p, p.NitrateOptimalMin-1e-9); !near(got, 1) {
		t.Fatalf("expected near-optimal level just below the band, got %v", got)
	}
}

func TestLevelsSkipsUnmeasured(t *testing.T) {
	p := config.DefaultEnvironmentParams()
	ph, ec, nan := 4.5, 2.8, math.NaN()
	levels := Levels(p, Readings{PH: &ph, EC: &ec, Nitrate: &nan})
	if len(levels) != 2 {
		t.Fatalf("expected two levels, got %+v", levels)
	}
	if !near(levels[stresskind.PH], 0.8) || !near(levels[stresskind.Salinity], 0.5) {
		t.Fatalf("unexpected levels %+v", levels)
	}
	if _, ok := levels[stresskind.Nutrient]; ok {
		t.Fatalf("expected NaN nitrate to be skipped")
	}
}
