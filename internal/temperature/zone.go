// Package temperature models heat, cold and frost stress on a crop: zone
// classification, base stress, acclimation, damage and the resulting
// per-process factors.
package temperature

import (
	"math"

	"github.com/appengine-ltd/hydrostress/internal/config"
	"github.com/appengine-ltd/hydrostress/internal/numeric"
)

type Zone uint8

const (
	ZoneOptimal Zone = iota
	ZoneHeat
	ZoneCold
	ZoneFrost
)

func (z Zone) String() string {
	switch z {
	case ZoneOptimal:
		return "optimal"
	case ZoneHeat:
		return "heat"
	case ZoneCold:
		return "cold"
	case ZoneFrost:
		return "frost"
	default:
		return "unknown"
	}
}

func (z Zone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// IsColdSide reports whether the zone lies below the optimal band.
func (z Zone) IsColdSide() bool {
	return z == ZoneCold || z == ZoneFrost
}

// Classify maps a temperature onto a zone using the cardinal temperatures.
func Classify(p config.TemperatureParams, t float64) Zone {
	switch {
	case t >= p.OptimalMin && t <= p.OptimalMax:
		return ZoneOptimal
	case t < p.Frost:
		return ZoneFrost
	case t < p.OptimalMin:
		return ZoneCold
	default:
		return ZoneHeat
	}
}

// BaseStress is the stress intensity (0 none, 1 lethal) before acclimation
// and memory. It is zero in the optimal zone and piecewise linear in the
// distance from the band, saturating at the lethal and frost extremes.
func BaseStress(p config.TemperatureParams, t float64, z Zone) float64 {
	c := p.Curve
	var s float64
	switch z {
	case ZoneOptimal:
		return 0
	case ZoneHeat:
		switch {
		case t <= p.HeatMild:
			s = c.HeatAtMild * ramp(t-p.OptimalMax, p.HeatMild-p.OptimalMax)
		case t <= p.HeatSevere:
			s = c.HeatAtMild + (c.HeatAtSevere-c.HeatAtMild)*ramp(t-p.HeatMild, p.HeatSevere-p.HeatMild)
		default:
			s = c.HeatAtSevere + (1-c.HeatAtSevere)*math.Min(1, ramp(t-p.HeatSevere, p.HeatLethal-p.HeatSevere))
		}
	case ZoneCold, ZoneFrost:
		switch {
		case t >= p.ColdMild:
			s = c.ColdAtMild * ramp(p.OptimalMin-t, p.OptimalMin-p.ColdMild)
		case t >= p.ColdSevere:
			s = c.ColdAtMild + (c.ColdAtSevere-c.ColdAtMild)*ramp(p.ColdMild-t, p.ColdMild-p.ColdSevere)
		case t >= p.Frost:
			s = c.ColdAtSevere + (c.ColdAtFrost-c.ColdAtSevere)*ramp(p.ColdSevere-t, p.ColdSevere-p.Frost)
		default:
			s = c.ColdAtFrost + (1-c.ColdAtFrost)*math.Min(1, ramp(math.Abs(t-p.Frost), c.FrostSpan))
		}
	default:
		return 0
	}
	return numeric.Clamp01(s)
}

func ramp(excess, span float64) float64 {
	return numeric.Clamp(numeric.SafeDivide(excess, span, 1), 0, math.Inf(1))
}

// Deviation is the distance in degrees from the nearest edge of the optimal
// band, zero inside it.
func Deviation(p config.TemperatureParams, t float64, z Zone) float64 {
	switch {
	case z == ZoneHeat:
		return t - p.OptimalMax
	case z.IsColdSide():
		return p.OptimalMin - t
	default:
		return 0
	}
}
