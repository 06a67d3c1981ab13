package config

import (
	"github.com/appengine-ltd/hydrostress/internal/stresskind"
)

// Validate reports the first invalid value in cfg as a *ConfigurationError.
func Validate(cfg Config) error {
	if err := validateTemperature(cfg.Temperature); err != nil {
		return err
	}
	if err := validateCoordinator(cfg.Coordinator); err != nil {
		return err
	}
	if err := validateEnvironment(cfg.Environment); err != nil {
		return err
	}
	if cfg.Limits.MinTemperature >= cfg.Limits.MaxTemperature {
		return configErr(SectionLimits, "min_temperature", "must be below max_temperature (%g >= %g)",
			cfg.Limits.MinTemperature, cfg.Limits.MaxTemperature)
	}
	return nil
}

func validateTemperature(p TemperatureParams) error {
	const section = SectionTemperature

	order := []struct {
		key    string
		v      float64
		strict bool
	}{
		{"frost_threshold", p.Frost, true},
		{"cold_threshold_severe", p.ColdSevere, true},
		{"cold_threshold_mild", p.ColdMild, true},
		{"optimal_temp_min", p.OptimalMin, false},
		{"optimal_temp_max", p.OptimalMax, true},
		{"heat_threshold_mild", p.HeatMild, true},
		{"heat_threshold_severe", p.HeatSevere, true},
		{"heat_lethal_temperature", p.HeatLethal, true},
	}
	// strict refers to the comparison with the next entry.
	for i := 0; i+1 < len(order); i++ {
		cur, next := order[i], order[i+1]
		if cur.strict && cur.v >= next.v {
			return configErr(section, cur.key, "must be below %s (%g >= %g)", next.key, cur.v, next.v)
		}
		if !cur.strict && cur.v > next.v {
			return configErr(section, cur.key, "must not exceed %s (%g > %g)", next.key, cur.v, next.v)
		}
	}

	c := p.Curve
	if !(c.HeatAtMild > 0 && c.HeatAtMild < c.HeatAtSevere && c.HeatAtSevere <= 1) {
		return configErr(section, "heat_stress_at_mild", "heat curve must satisfy 0 < mild < severe <= 1")
	}
	if !(c.ColdAtMild > 0 && c.ColdAtMild < c.ColdAtSevere && c.ColdAtSevere < c.ColdAtFrost && c.ColdAtFrost <= 1) {
		return configErr(section, "cold_stress_at_mild", "cold curve must satisfy 0 < mild < severe < frost <= 1")
	}
	if c.FrostSpan <= 0 {
		return configErr(section, "frost_span", "must be positive, got %g", c.FrostSpan)
	}
	if c.HeatDamageScale < 0 {
		return configErr(section, "heat_damage_scale", "must not be negative, got %g", c.HeatDamageScale)
	}
	if c.ColdDamageScale < 0 {
		return configErr(section, "cold_damage_scale", "must not be negative, got %g", c.ColdDamageScale)
	}

	w := p.Overall
	if w.Photosynthesis < 0 || w.Growth < 0 || w.Development < 0 || w.Respiration < 0 {
		return configErr(section, "overall_weight_photosynthesis", "overall weights must not be negative")
	}
	if w.Photosynthesis+w.Growth+w.Development+w.Respiration <= 0 {
		return configErr(section, "overall_weight_photosynthesis", "overall weights must sum to more than zero")
	}

	unit := []struct {
		key string
		v   float64
	}{
		{"photosynthesis_heat_sensitivity", p.Sensitivity.PhotosynthesisHeat},
		{"photosynthesis_cold_sensitivity", p.Sensitivity.PhotosynthesisCold},
		{"respiration_heat_sensitivity", p.Sensitivity.RespirationHeat},
		{"respiration_cold_sensitivity", p.Sensitivity.RespirationCold},
		{"growth_heat_sensitivity", p.Sensitivity.GrowthHeat},
		{"growth_cold_sensitivity", p.Sensitivity.GrowthCold},
		{"development_heat_sensitivity", p.Sensitivity.DevelopmentHeat},
		{"development_cold_sensitivity", p.Sensitivity.DevelopmentCold},
		{"heat_acclimation_cap", c.HeatAcclimationCap},
		{"cold_acclimation_cap", c.ColdAcclimationCap},
		{"damage_discount", c.DamageDiscount},
		{"frost_recovery_share", c.FrostRecoveryShare},
		{"acclimation_rate", p.AcclimationRate},
		{"acclimation_decay_rate", p.AcclimationDecayRate},
		{"heat_damage_threshold", p.HeatDamageThreshold},
		{"cold_damage_threshold", p.ColdDamageThreshold},
		{"frost_damage_rate", p.FrostDamageRate},
		{"recovery_rate_heat", p.RecoveryRateHeat},
		{"recovery_rate_cold", p.RecoveryRateCold},
		{"memory_effect_strength", p.MemoryEffectStrength},
	}
	for _, u := range unit {
		if err := checkUnit(section, u.key, u.v); err != nil {
			return err
		}
	}

	if err := checkDays(section, "max_acclimation_days", p.MaxAcclimationDays); err != nil {
		return err
	}
	if err := checkDays(section, "stress_memory_duration", p.StressMemoryDuration); err != nil {
		return err
	}
	if p.DurationTolerance < 0 {
		return configErr(section, "duration_tolerance", "must not be negative, got %g", p.DurationTolerance)
	}
	return nil
}

func validateCoordinator(p CoordinatorParams) error {
	const section = SectionCoordinator

	for _, tbl := range coordinatorTables(&p) {
		for _, st := range stresskind.AllStressTypes() {
			if err := checkUnit(section, tbl.key+"."+st.String(), tbl.dst[st]); err != nil {
				return err
			}
		}
	}
	for _, st := range stresskind.AllStressTypes() {
		if err := checkDays(section, "stress_memory_duration."+st.String(), p.Memory[st]); err != nil {
			return err
		}
	}

	seen := map[stresskind.ProcessType]bool{}
	for _, proc := range p.Processes {
		if !proc.Valid() {
			return configErr(section, "process_sensitivity", "invalid process %d", proc)
		}
		if seen[proc] {
			return configErr(section, "process_sensitivity", "process %s listed twice", proc)
		}
		seen[proc] = true
		for _, st := range stresskind.AllStressTypes() {
			key := "process_sensitivity." + proc.String() + "." + st.String()
			if err := checkUnit(section, key, p.Sensitivity[proc][st]); err != nil {
				return err
			}
		}
	}

	if _, err := mergeInteractions(p.Interactions); err != nil {
		return err
	}
	for _, r := range p.Interactions {
		key := "stress_interactions." + r.Pair.Key()
		if r.Pair.A == r.Pair.B || !r.Pair.A.Valid() || !r.Pair.B.Valid() {
			return configErr(section, key, "interaction needs two distinct stress types")
		}
		if !r.Kind.Valid() {
			return configErr(section, key, "unknown interaction type %q", r.Kind)
		}
		if r.Factor <= 0 {
			return configErr(section, key, "factor must be positive, got %g", r.Factor)
		}
	}
	return nil
}

func validateEnvironment(p EnvironmentParams) error {
	const section = SectionEnvironment

	nonNeg := []struct {
		key string
		v   float64
	}{
		{"vpd_tolerance", p.VPDTolerance},
		{"vpd_stress_per_kpa", p.VPDStressPerKPa},
		{"nitrate_severe", p.NitrateSevere},
		{"ec_threshold", p.ECThreshold},
		{"ph_stress_per_unit", p.PHStressPerUnit},
		{"root_temp_tolerance", p.RootTempTolerance},
		{"root_temp_stress_per_degree", p.RootTempPerDegree},
	}
	for _, n := range nonNeg {
		if n.v < 0 {
			return configErr(section, n.key, "must not be negative, got %g", n.v)
		}
	}
	for _, u := range []struct {
		key string
		v   float64
	}{
		{"vpd_max_stress", p.VPDMaxStress},
		{"nitrate_severe_stress", p.NitrateSevereStress},
		{"nitrate_excess_max", p.NitrateExcessMax},
	} {
		if err := checkUnit(section, u.key, u.v); err != nil {
			return err
		}
	}

	if p.LightSaturation <= 0 {
		return configErr(section, "light_saturation", "must be positive, got %g", p.LightSaturation)
	}
	if p.NitrateExcessScale <= 0 {
		return configErr(section, "nitrate_excess_scale", "must be positive, got %g", p.NitrateExcessScale)
	}
	if !(p.NitrateSevere < p.NitrateOptimalMin && p.NitrateOptimalMin <= p.NitrateOptimalMax) {
		return configErr(section, "nitrate_optimal_min", "nitrate bands must satisfy severe < optimal_min <= optimal_max")
	}
	if p.ECSpan <= 0 {
		return configErr(section, "ec_span", "must be positive, got %g", p.ECSpan)
	}
	if p.PHMin > p.PHMax {
		return configErr(section, "ph_min", "must not exceed ph_max (%g > %g)", p.PHMin, p.PHMax)
	}
	if p.OxygenCritical >= p.OxygenOptimal {
		return configErr(section, "oxygen_critical", "must be below oxygen_optimal (%g >= %g)", p.OxygenCritical, p.OxygenOptimal)
	}
	return nil
}

func checkUnit(section, key string, v float64) error {
	if v < 0 || v > 1 {
		return configErr(section, key, "must be within [0, 1], got %g", v)
	}
	return nil
}

func checkDays(section, key string, v int) error {
	if v < 1 || v > MaxDays {
		return configErr(section, key, "must be between 1 and %d days, got %d", MaxDays, v)
	}
	return nil
}
