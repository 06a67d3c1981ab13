// Package envstress turns raw hydroponic readings into stress levels on the
// 1 = optimal scale used by the coordinator.
package envstress

import (
	"math"

	"github.com/appengine-ltd/hydrostress/internal/config"
	"github.com/appengine-ltd/hydrostress/internal/numeric"
	"github.com/appengine-ltd/hydrostress/internal/stress"
	"github.com/appengine-ltd/hydrostress/internal/stresskind"
)

// FromIntensity converts a 0 = none, 1 = maximal stress intensity into a
// level.
func FromIntensity(x float64) float64 {
	return numeric.Clamp01(1 - x)
}

// VPD maps vapour pressure deficit (kPa) to a water level.
func VPD(p config.EnvironmentParams, kpa float64) float64 {
	dev := math.Abs(kpa - p.VPDOptimal)
	if dev <= p.VPDTolerance {
		return 1
	}
	return 1 - math.Min(p.VPDMaxStress, (dev-p.VPDTolerance)*p.VPDStressPerKPa)
}

// Light maps daily radiation (MJ m-2 d-1) to a light level.
func Light(p config.EnvironmentParams, radiation float64) float64 {
	return numeric.Clamp01(numeric.SafeDivide(radiation, p.LightSaturation, 1))
}

// Nitrate maps solution nitrate (mg/L) to a nutrient level. Excess above the
// optimal band is penalised less than deficiency.
func Nitrate(p config.EnvironmentParams, mgL float64) float64 {
	switch {
	case mgL < p.NitrateSevere:
		return 1 - p.NitrateSevereStress
	case mgL < p.NitrateOptimalMin:
		span := p.NitrateOptimalMin - p.NitrateSevere
		return 1 - p.NitrateSevereStress*numeric.SafeDivide(p.NitrateOptimalMin-mgL, span, 1)
	case mgL <= p.NitrateOptimalMax:
		return 1
	default:
		excess := numeric.SafeDivide(mgL-p.NitrateOptimalMax, p.NitrateExcessScale, 0)
		return 1 - math.Min(p.NitrateExcessMax, excess)
	}
}

// Salinity maps electrical conductivity (dS/m) to a salinity level.
func Salinity(p config.EnvironmentParams, ec float64) float64 {
	if ec <= p.ECThreshold {
		return 1
	}
	return numeric.Clamp01(1 - numeric.SafeDivide(ec-p.ECThreshold, p.ECSpan, 1))
}

// PH maps solution pH to a pH level.
func PH(p config.EnvironmentParams, ph float64) float64 {
	var dev float64
	switch {
	case ph < p.PHMin:
		dev = p.PHMin - ph
	case ph > p.PHMax:
		dev = ph - p.PHMax
	default:
		return 1
	}
	return numeric.Clamp01(1 - dev*p.PHStressPerUnit)
}

// Oxygen maps dissolved oxygen (mg/L) to an oxygen level, linear between the
// critical and optimal concentrations.
func Oxygen(p config.EnvironmentParams, mgL float64) float64 {
	switch {
	case mgL >= p.OxygenOptimal:
		return 1
	case mgL <= p.OxygenCritical:
		return 0
	}
	return (mgL - p.OxygenCritical) / (p.OxygenOptimal - p.OxygenCritical)
}

// RootTemperature maps root-zone temperature (°C) to a factor.
func RootTemperature(p config.EnvironmentParams, c float64) float64 {
	dev := math.Abs(c - p.RootTempOptimal)
	if dev <= p.RootTempTolerance {
		return 1
	}
	return math.Max(0, 1-(dev-p.RootTempTolerance)*p.RootTempPerDegree)
}

// Readings are one day's raw measurements. Nil fields are not measured.
type Readings struct {
	VPD             *float64 `yaml:"vpd_kpa,omitempty" json:"vpd_kpa,omitempty"`
	Radiation       *float64 `yaml:"radiation_mj,omitempty" json:"radiation_mj,omitempty"`
	Nitrate         *float64 `yaml:"nitrate_mg_l,omitempty" json:"nitrate_mg_l,omitempty"`
	EC              *float64 `yaml:"ec_ds_m,omitempty" json:"ec_ds_m,omitempty"`
	PH              *float64 `yaml:"ph,omitempty" json:"ph,omitempty"`
	DissolvedOxygen *float64 `yaml:"dissolved_oxygen_mg_l,omitempty" json:"dissolved_oxygen_mg_l,omitempty"`
}

// Levels converts the measured readings. NaN readings are skipped.
func Levels(p config.EnvironmentParams, r Readings) stress.Levels {
	out := stress.Levels{}
	set := func(st stresskind.StressType, v *float64, conv func(config.EnvironmentParams, float64) float64) {
		if v == nil || math.IsNaN(*v) {
			return
		}
		out[st] = conv(p, *v)
	}
	set(stresskind.Water, r.VPD, VPD)
	set(stresskind.Light, r.Radiation, Light)
	set(stresskind.Nutrient, r.Nitrate, Nitrate)
	set(stresskind.Salinity, r.EC, Salinity)
	set(stresskind.PH, r.PH, PH)
	set(stresskind.Oxygen, r.DissolvedOxygen, Oxygen)
	return out
}
