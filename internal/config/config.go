// Package config holds the immutable parameter set for the stress engine.
//
// A Config is built once, validated, and then only read. The default
// factories reproduce the lettuce calibration; Build overlays values read
// from a Source on top of them.
package config

import (
	"sort"

	"github.com/appengine-ltd/hydrostress/internal/stresskind"
)

type Config struct {
	Temperature TemperatureParams
	Coordinator CoordinatorParams
	Environment EnvironmentParams
	Limits      InputLimits
}

// TemperatureParams are the cardinal temperatures and rates for the
// temperature sub-model. Temperatures are in degrees Celsius.
type TemperatureParams struct {
	OptimalMin float64
	OptimalMax float64
	HeatMild   float64
	HeatSevere float64
	HeatLethal float64
	ColdMild   float64
	ColdSevere float64
	Frost      float64

	Sensitivity ThermalSensitivity
	Curve       StressCurve
	Overall     OverallWeights

	AcclimationRate      float64
	MaxAcclimationDays   int
	AcclimationDecayRate float64

	HeatDamageThreshold float64
	ColdDamageThreshold float64
	FrostDamageRate     float64
	RecoveryRateHeat    float64
	RecoveryRateCold    float64

	StressMemoryDuration int
	MemoryEffectStrength float64
	DurationTolerance    float64
}

// ThermalSensitivity is the per-process response to heat and cold stress.
type ThermalSensitivity struct {
	PhotosynthesisHeat float64
	PhotosynthesisCold float64
	RespirationHeat    float64
	RespirationCold    float64
	GrowthHeat         float64
	GrowthCold         float64
	DevelopmentHeat    float64
	DevelopmentCold    float64
}

// StressCurve holds the stress intensities reached at each cardinal
// temperature, plus the acclimation and damage scaling constants.
type StressCurve struct {
	HeatAtMild   float64
	HeatAtSevere float64
	ColdAtMild   float64
	ColdAtSevere float64
	ColdAtFrost  float64
	FrostSpan    float64

	HeatAcclimationCap float64
	ColdAcclimationCap float64
	DamageDiscount     float64
	HeatDamageScale    float64
	ColdDamageScale    float64
	FrostRecoveryShare float64
}

// OverallWeights combine the four process factors into the overall factor.
type OverallWeights struct {
	Photosynthesis float64
	Growth         float64
	Development    float64
	Respiration    float64
}

// InteractionRule describes how an unordered pair of stresses combines when
// both are active for a process.
type InteractionRule struct {
	Pair   stresskind.Pair
	Kind   stresskind.InteractionKind
	Factor float64
}

// CoordinatorParams are the per-type tables of the multi-stress coordinator.
// Every table is indexed by StressType and always fully populated.
type CoordinatorParams struct {
	Weights          stresskind.StressValues
	Memory           [stresskind.NumStressTypes]int
	RecoveryRates    stresskind.StressValues
	AcclimationRates stresskind.StressValues
	OnsetThresholds  stresskind.StressValues
	DamageThresholds stresskind.StressValues

	// Processes lists the evaluated processes in evaluation order.
	// Sensitivity rows for processes not listed are ignored.
	Processes   []stresskind.ProcessType
	Sensitivity [stresskind.NumProcessTypes]stresskind.StressValues

	Interactions []InteractionRule
}

// EnvironmentParams drive the conversion of raw hydroponic readings into
// stress levels.
type EnvironmentParams struct {
	VPDOptimal      float64
	VPDTolerance    float64
	VPDStressPerKPa float64
	VPDMaxStress    float64

	LightSaturation float64

	NitrateSevere       float64
	NitrateOptimalMin   float64
	NitrateOptimalMax   float64
	NitrateSevereStress float64
	NitrateExcessScale  float64
	NitrateExcessMax    float64

	ECThreshold float64
	ECSpan      float64

	PHMin           float64
	PHMax           float64
	PHStressPerUnit float64

	OxygenOptimal  float64
	OxygenCritical float64

	RootTempOptimal   float64
	RootTempTolerance float64
	RootTempPerDegree float64
}

// InputLimits bound daily inputs before they reach the models.
type InputLimits struct {
	MinTemperature float64
	MaxTemperature float64
}

// Default returns the full default configuration.
func Default() Config {
	return Config{
		Temperature: DefaultTemperatureParams(),
		Coordinator: DefaultCoordinatorParams(),
		Environment: DefaultEnvironmentParams(),
		Limits:      DefaultInputLimits(),
	}
}

func DefaultTemperatureParams() TemperatureParams {
	return TemperatureParams{
		OptimalMin: 18,
		OptimalMax: 24,
		HeatMild:   28,
		HeatSevere: 35,
		HeatLethal: 45,
		ColdMild:   12,
		ColdSevere: 5,
		Frost:      -1,
		Sensitivity: ThermalSensitivity{
			PhotosynthesisHeat: 0.85,
			PhotosynthesisCold: 0.75,
			RespirationHeat:    0.60,
			RespirationCold:    0.70,
			GrowthHeat:         0.90,
			GrowthCold:         0.80,
			DevelopmentHeat:    0.70,
			DevelopmentCold:    0.65,
		},
		Curve: StressCurve{
			HeatAtMild:         0.3,
			HeatAtSevere:       0.7,
			ColdAtMild:         0.2,
			ColdAtSevere:       0.5,
			ColdAtFrost:        0.8,
			FrostSpan:          5,
			HeatAcclimationCap: 0.4,
			ColdAcclimationCap: 0.5,
			DamageDiscount:     0.5,
			HeatDamageScale:    0.01,
			ColdDamageScale:    0.008,
			FrostRecoveryShare: 0.5,
		},
		Overall: OverallWeights{
			Photosynthesis: 0.35,
			Growth:         0.35,
			Development:    0.20,
			Respiration:    0.10,
		},
		AcclimationRate:      0.05,
		MaxAcclimationDays:   14,
		AcclimationDecayRate: 0.02,
		HeatDamageThreshold:  0.7,
		ColdDamageThreshold:  0.6,
		FrostDamageRate:      0.2,
		RecoveryRateHeat:     0.08,
		RecoveryRateCold:     0.05,
		StressMemoryDuration: 7,
		MemoryEffectStrength: 0.15,
		DurationTolerance:    2.0,
	}
}

// Fallbacks for per-type entries a configuration leaves out.
const (
	FallbackSensitivity = 0.5
	FallbackWeight      = 0.1
	FallbackMemory      = 5
	FallbackRecovery    = 0.2
	FallbackAcclimation = 0.1
	FallbackOnset       = 0.8
	FallbackDamage      = 0.3
)

// MaxDays bounds every day-count setting.
const MaxDays = 3650

func DefaultCoordinatorParams() CoordinatorParams {
	var p CoordinatorParams

	p.Weights = stresskind.StressValues{
		stresskind.Water:       0.25,
		stresskind.Temperature: 0.20,
		stresskind.Nutrient:    0.20,
		stresskind.Light:       0.15,
		stresskind.Salinity:    0.10,
		stresskind.Oxygen:      0.05,
		stresskind.PH:          0.03,
	}
	p.Memory = [stresskind.NumStressTypes]int{
		stresskind.Water:       3,
		stresskind.Temperature: 5,
		stresskind.Nutrient:    7,
		stresskind.Light:       2,
		stresskind.Salinity:    10,
		stresskind.Oxygen:      1,
		stresskind.PH:          2,
	}
	p.RecoveryRates = stresskind.StressValues{
		stresskind.Water:       0.3,
		stresskind.Temperature: 0.2,
		stresskind.Nutrient:    0.1,
		stresskind.Light:       0.5,
		stresskind.Salinity:    0.05,
		stresskind.Oxygen:      0.8,
		stresskind.PH:          0.4,
	}
	p.AcclimationRates = stresskind.Fill(FallbackAcclimation)
	p.AcclimationRates[stresskind.Water] = 0.1
	p.AcclimationRates[stresskind.Temperature] = 0.15
	p.AcclimationRates[stresskind.Nutrient] = 0.08
	p.AcclimationRates[stresskind.Light] = 0.2
	p.AcclimationRates[stresskind.Salinity] = 0.05

	p.OnsetThresholds = stresskind.StressValues{
		stresskind.Water:       0.8,
		stresskind.Temperature: 0.9,
		stresskind.Nutrient:    0.7,
		stresskind.Light:       0.6,
		stresskind.Salinity:    0.9,
		stresskind.Oxygen:      0.8,
		stresskind.PH:          0.8,
	}
	p.DamageThresholds = stresskind.StressValues{
		stresskind.Water:       0.3,
		stresskind.Temperature: 0.2,
		stresskind.Nutrient:    0.4,
		stresskind.Light:       0.2,
		stresskind.Salinity:    0.4,
		stresskind.Oxygen:      0.3,
		stresskind.PH:          0.3,
	}

	p.Processes = []stresskind.ProcessType{
		stresskind.Photosynthesis,
		stresskind.Growth,
		stresskind.Development,
		stresskind.NutrientUptake,
		stresskind.Senescence,
	}
	for i := range p.Sensitivity {
		p.Sensitivity[i] = stresskind.Fill(FallbackSensitivity)
	}
	setRow := func(proc stresskind.ProcessType, vals map[stresskind.StressType]float64) {
		for st, v := range vals {
			p.Sensitivity[proc][st] = v
		}
	}
	setRow(stresskind.Photosynthesis, map[stresskind.StressType]float64{
		stresskind.Water: 0.9, stresskind.Temperature: 0.8, stresskind.Light: 0.9,
		stresskind.Nutrient: 0.7, stresskind.Salinity: 0.6,
	})
	setRow(stresskind.Growth, map[stresskind.StressType]float64{
		stresskind.Water: 0.8, stresskind.Temperature: 0.7, stresskind.Nutrient: 0.9,
		stresskind.Light: 0.6, stresskind.Salinity: 0.7,
	})
	setRow(stresskind.NutrientUptake, map[stresskind.StressType]float64{
		stresskind.Water: 0.6, stresskind.Temperature: 0.5, stresskind.Salinity: 0.9,
		stresskind.Oxygen: 0.8, stresskind.PH: 0.7,
	})
	setRow(stresskind.Development, map[stresskind.StressType]float64{
		stresskind.Temperature: 0.9, stresskind.Water: 0.7, stresskind.Light: 0.6,
		stresskind.Nutrient: 0.5,
	})
	setRow(stresskind.Senescence, map[stresskind.StressType]float64{
		stresskind.Water: 0.8, stresskind.Nutrient: 0.7, stresskind.Temperature: 0.6,
		stresskind.Light: 0.5,
	})

	p.Interactions = DefaultInteractions()
	return p
}

// DefaultInteractions is the interaction table, one rule per unordered pair,
// sorted by pair.
func DefaultInteractions() []InteractionRule {
	rule := func(a, b stresskind.StressType, kind stresskind.InteractionKind, factor float64) InteractionRule {
		return InteractionRule{Pair: stresskind.NewPair(a, b), Kind: kind, Factor: factor}
	}
	rules := []InteractionRule{
		rule(stresskind.Water, stresskind.Temperature, stresskind.Synergistic, 1.3),
		rule(stresskind.Water, stresskind.Salinity, stresskind.Synergistic, 1.4),
		rule(stresskind.Water, stresskind.Nutrient, stresskind.Multiplicative, 1.2),
		rule(stresskind.Temperature, stresskind.Light, stresskind.Additive, 1.1),
		rule(stresskind.Temperature, stresskind.Oxygen, stresskind.Multiplicative, 1.2),
		rule(stresskind.Nutrient, stresskind.PH, stresskind.Synergistic, 1.5),
		rule(stresskind.Nutrient, stresskind.Salinity, stresskind.Multiplicative, 1.1),
		rule(stresskind.Light, stresskind.Water, stresskind.Multiplicative, 1.1),
		rule(stresskind.Salinity, stresskind.Oxygen, stresskind.Multiplicative, 1.2),
	}
	sortRules(rules)
	return rules
}

func sortRules(rules []InteractionRule) {
	sort.Slice(rules, func(i, j int) bool { return rules[i].Pair.Index() < rules[j].Pair.Index() })
}

func DefaultEnvironmentParams() EnvironmentParams {
	return EnvironmentParams{
		VPDOptimal:      0.8,
		VPDTolerance:    0.5,
		VPDStressPerKPa: 0.2,
		VPDMaxStress:    0.3,

		LightSaturation: 12.0,

		NitrateSevere:       20,
		NitrateOptimalMin:   100,
		NitrateOptimalMax:   400,
		NitrateSevereStress: 0.8,
		NitrateExcessScale:  1000,
		NitrateExcessMax:    0.3,

		ECThreshold: 1.8,
		ECSpan:      2.0,

		PHMin:           5.5,
		PHMax:           6.5,
		PHStressPerUnit: 0.2,

		OxygenOptimal:  6.0,
		OxygenCritical: 2.0,

		RootTempOptimal:   20.0,
		RootTempTolerance: 3.0,
		RootTempPerDegree: 0.05,
	}
}

func DefaultInputLimits() InputLimits {
	return InputLimits{
		MinTemperature: -50,
		MaxTemperature: 60,
	}
}

// Interaction returns the rule for a pair, if one is configured.
func (p CoordinatorParams) Interaction(pair stresskind.Pair) (InteractionRule, bool) {
	for _, r := range p.Interactions {
		if r.Pair == pair {
			return r, true
		}
	}
	return InteractionRule{}, false
}
