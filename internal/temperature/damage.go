package temperature

import (
	"math"

	"github.com/appengine-ltd/hydrostress/internal/config"
)

// Damage holds the cumulative injury pools, each within [0, 1].
type Damage struct {
	Heat         float64 `json:"heat_damage"`
	Cold         float64 `json:"cold_damage"`
	Frost        float64 `json:"frost_damage"`
	RecoveryRate float64 `json:"damage_recovery_rate"`
}

// Total is the largest pool; it drives the process factor discount.
func (d Damage) Total() float64 {
	return math.Max(d.Heat, math.Max(d.Cold, d.Frost))
}

// discount scales the factors affected by accumulated damage.
func (d Damage) discount(p config.TemperatureParams, f ProcessFactors) ProcessFactors {
	total := d.Total()
	if total <= 0 {
		return f
	}
	k := 1 - total*p.Curve.DamageDiscount
	f.Photosynthesis *= k
	f.Growth *= k
	f.Development *= k
	f.Overall *= k
	return f
}

// update accrues damage above the zone's threshold and lets every pool
// recover under optimal conditions. Frost injury accrues per hour of exposure.
func (d *Damage) update(p config.TemperatureParams, stress float64, z Zone, hours float64) {
	switch {
	case z == ZoneHeat:
		if stress > p.HeatDamageThreshold {
			d.Heat = math.Min(1, d.Heat+(stress-p.HeatDamageThreshold)*p.Curve.HeatDamageScale)
			d.RecoveryRate = p.RecoveryRateHeat
		}
	case z.IsColdSide():
		if z == ZoneFrost {
			d.Frost = math.Min(1, d.Frost+p.FrostDamageRate/24*hours)
		}
		if stress > p.ColdDamageThreshold {
			d.Cold = math.Min(1, d.Cold+(stress-p.ColdDamageThreshold)*p.Curve.ColdDamageScale)
			d.RecoveryRate = p.RecoveryRateCold
		}
	default:
		d.Heat = math.Max(0, d.Heat-p.RecoveryRateHeat)
		d.Cold = math.Max(0, d.Cold-p.RecoveryRateCold)
		d.Frost = math.Max(0, d.Frost-p.RecoveryRateCold*p.Curve.FrostRecoveryShare)
	}
}
