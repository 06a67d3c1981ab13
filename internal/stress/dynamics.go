package stress

import (
	"math"

	"github.com/appengine-ltd/hydrostress/internal/numeric"
)

const (
	minFunction        = 0.1
	severeMidpoint     = 0.5
	chronicAmplifier   = 1.5
	acclimationOnset   = 3
	maxAcclimation     = 0.3
	minAcclimationEff  = 0.2
	recoveryGate       = 0.8
	maxDamage          = 0.5
	damageRateScale    = 0.01
	interactionPenalty = 0.1
	acclimationBonus   = 0.1
	recoveryBonus      = 0.05
	damagePenalty      = 0.2
	activeCutoff       = 0.9
	limitingCutoff     = 0.8
	maxLimiting        = 3
	maxDominant        = 3
	chronicWeight      = 0.8
)

// AcuteStress is the immediate factor for a level: 1 at or above the onset
// threshold, linear down to the midpoint and quadratic below it, floored at
// 0.1.
func AcuteStress(level, onset float64) float64 {
	if level >= onset {
		return 1
	}
	f := level
	if level < severeMidpoint {
		f = math.Pow(level/severeMidpoint, 2)
	}
	return math.Max(minFunction, f)
}

// ChronicStress weights the history (oldest first) by exp(-age/(memory/3)).
// Once stress has lasted longer than the memory window the deficit is
// amplified by half again.
func ChronicStress(history []float64, daysUnderStress, memory int) float64 {
	if len(history) == 0 {
		return 1
	}
	weighted := numeric.ExponentialRecencyAverage(history, float64(memory)/3)
	f := weighted
	if daysUnderStress > memory {
		f = 1 - (1-weighted)*chronicAmplifier
	}
	return numeric.Clamp(f, minFunction, 1)
}

// AcclimationEffect starts after three stressed days and is less effective
// the more severe the current stress.
func AcclimationEffect(daysUnderStress int, rate, level float64) float64 {
	if daysUnderStress < acclimationOnset {
		return 0
	}
	potential := math.Min(maxAcclimation, float64(daysUnderStress)*rate)
	return potential * math.Max(minAcclimationEff, level)
}

// RecoveryEffect advances recovery only while the level is at least 0.8.
// Milder prior chronic stress recovers faster.
func RecoveryEffect(level, chronic, progress, rate float64) float64 {
	if level < recoveryGate {
		return 0
	}
	daily := rate
	switch {
	case chronic > 0.7:
	case chronic > 0.4:
		daily = rate * 0.7
	default:
		daily = rate * 0.3
	}
	return math.Min(1, progress+daily)
}

// DamageIncrement is the daily damage accrued below the damage threshold.
func DamageIncrement(level, threshold float64) float64 {
	if level >= threshold || threshold <= 0 {
		return 0
	}
	return (threshold - level) / threshold * damageRateScale
}
