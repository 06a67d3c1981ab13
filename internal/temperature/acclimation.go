package temperature

import (
	"math"

	"github.com/appengine-ltd/hydrostress/internal/config"
	"github.com/appengine-ltd/hydrostress/internal/numeric"
)

// Acclimation tracks heat and cold hardening. History holds the most recent
// daily temperatures, bounded by max_acclimation_days.
type Acclimation struct {
	Heat    float64
	Cold    float64
	history *numeric.Ring[float64]
}

func newAcclimation(days int) Acclimation {
	return Acclimation{history: numeric.NewRing[float64](days)}
}

// update moves the matching acclimation toward a target proportional to the
// severity of the exposure and decays the opposite one.
func (a *Acclimation) update(p config.TemperatureParams, t float64, z Zone) {
	a.history.Push(t)
	decay := 1 - p.AcclimationDecayRate

	switch {
	case z == ZoneHeat:
		target := math.Min(1, numeric.SafeDivide(t-p.OptimalMax, p.HeatSevere-p.OptimalMax, 1))
		a.Heat += p.AcclimationRate * (target - a.Heat)
		a.Cold *= decay
	case z.IsColdSide():
		target := math.Min(1, numeric.SafeDivide(p.OptimalMin-t, p.OptimalMin-p.ColdSevere, 1))
		a.Cold += p.AcclimationRate * (target - a.Cold)
		a.Heat *= decay
	default:
		a.Heat *= decay
		a.Cold *= decay
	}

	a.Heat = numeric.Clamp01(a.Heat)
	a.Cold = numeric.Clamp01(a.Cold)
}

// apply reduces base stress by the acclimation fraction, capped per side.
func (a Acclimation) apply(p config.TemperatureParams, base float64, z Zone) float64 {
	switch {
	case z == ZoneHeat:
		return base * (1 - a.Heat*p.Curve.HeatAcclimationCap)
	case z.IsColdSide():
		return base * (1 - a.Cold*p.Curve.ColdAcclimationCap)
	default:
		return base
	}
}

// AcclimationState is a copy of the acclimation tracker.
type AcclimationState struct {
	Heat    float64   `json:"heat_acclimation"`
	Cold    float64   `json:"cold_acclimation"`
	History []float64 `json:"history"`
}

func (a Acclimation) snapshot() AcclimationState {
	return AcclimationState{Heat: a.Heat, Cold: a.Cold, History: a.history.Values()}
}
