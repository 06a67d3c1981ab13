package config

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/hydrostress/internal/parser"
	"github.com/appengine-ltd/hydrostress/internal/stresskind"
)

// Section names read by Build.
const (
	SectionTemperature = "temperature_stress"
	SectionCoordinator = "integrated_stress"
	SectionEnvironment = "environment"
	SectionLimits      = "limits"
)

type floatField struct {
	key string
	ptr *float64
}

type intField struct {
	key string
	ptr *int
}

func temperatureFloats(p *TemperatureParams) []floatField {
	return []floatField{
		{"optimal_temp_min", &p.OptimalMin},
		{"optimal_temp_max", &p.OptimalMax},
		{"heat_threshold_mild", &p.HeatMild},
		{"heat_threshold_severe", &p.HeatSevere},
		{"heat_lethal_temperature", &p.HeatLethal},
		{"cold_threshold_mild", &p.ColdMild},
		{"cold_threshold_severe", &p.ColdSevere},
		{"frost_threshold", &p.Frost},

		{"photosynthesis_heat_sensitivity", &p.Sensitivity.PhotosynthesisHeat},
		{"photosynthesis_cold_sensitivity", &p.Sensitivity.PhotosynthesisCold},
		{"respiration_heat_sensitivity", &p.Sensitivity.RespirationHeat},
		{"respiration_cold_sensitivity", &p.Sensitivity.RespirationCold},
		{"growth_heat_sensitivity", &p.Sensitivity.GrowthHeat},
		{"growth_cold_sensitivity", &p.Sensitivity.GrowthCold},
		{"development_heat_sensitivity", &p.Sensitivity.DevelopmentHeat},
		{"development_cold_sensitivity", &p.Sensitivity.DevelopmentCold},

		{"heat_stress_at_mild", &p.Curve.HeatAtMild},
		{"heat_stress_at_severe", &p.Curve.HeatAtSevere},
		{"cold_stress_at_mild", &p.Curve.ColdAtMild},
		{"cold_stress_at_severe", &p.Curve.ColdAtSevere},
		{"cold_stress_at_frost", &p.Curve.ColdAtFrost},
		{"frost_span", &p.Curve.FrostSpan},
		{"heat_acclimation_cap", &p.Curve.HeatAcclimationCap},
		{"cold_acclimation_cap", &p.Curve.ColdAcclimationCap},
		{"damage_discount", &p.Curve.DamageDiscount},
		{"heat_damage_scale", &p.Curve.HeatDamageScale},
		{"cold_damage_scale", &p.Curve.ColdDamageScale},
		{"frost_recovery_share", &p.Curve.FrostRecoveryShare},

		{"overall_weight_photosynthesis", &p.Overall.Photosynthesis},
		{"overall_weight_growth", &p.Overall.Growth},
		{"overall_weight_development", &p.Overall.Development},
		{"overall_weight_respiration", &p.Overall.Respiration},

		{"acclimation_rate", &p.AcclimationRate},
		{"acclimation_decay_rate", &p.AcclimationDecayRate},
		{"heat_damage_threshold", &p.HeatDamageThreshold},
		{"cold_damage_threshold", &p.ColdDamageThreshold},
		{"frost_damage_rate", &p.FrostDamageRate},
		{"recovery_rate_heat", &p.RecoveryRateHeat},
		{"recovery_rate_cold", &p.RecoveryRateCold},
		{"memory_effect_strength", &p.MemoryEffectStrength},
		{"duration_tolerance", &p.DurationTolerance},
	}
}

func temperatureInts(p *TemperatureParams) []intField {
	return []intField{
		{"max_acclimation_days", &p.MaxAcclimationDays},
		{"stress_memory_duration", &p.StressMemoryDuration},
	}
}

func environmentFloats(p *EnvironmentParams) []floatField {
	return []floatField{
		{"vpd_optimal", &p.VPDOptimal},
		{"vpd_tolerance", &p.VPDTolerance},
		{"vpd_stress_per_kpa", &p.VPDStressPerKPa},
		{"vpd_max_stress", &p.VPDMaxStress},
		{"light_saturation", &p.LightSaturation},
		{"nitrate_severe", &p.NitrateSevere},
		{"nitrate_optimal_min", &p.NitrateOptimalMin},
		{"nitrate_optimal_max", &p.NitrateOptimalMax},
		{"nitrate_severe_stress", &p.NitrateSevereStress},
		{"nitrate_excess_scale", &p.NitrateExcessScale},
		{"nitrate_excess_max", &p.NitrateExcessMax},
		{"ec_threshold", &p.ECThreshold},
		{"ec_span", &p.ECSpan},
		{"ph_min", &p.PHMin},
		{"ph_max", &p.PHMax},
		{"ph_stress_per_unit", &p.PHStressPerUnit},
		{"oxygen_optimal", &p.OxygenOptimal},
		{"oxygen_critical", &p.OxygenCritical},
		{"root_temp_optimal", &p.RootTempOptimal},
		{"root_temp_tolerance", &p.RootTempTolerance},
		{"root_temp_stress_per_degree", &p.RootTempPerDegree},
	}
}

func limitFloats(p *InputLimits) []floatField {
	return []floatField{
		{"min_temperature", &p.MinTemperature},
		{"max_temperature", &p.MaxTemperature},
	}
}

type typeTable struct {
	key      string
	fallback float64
	dst      *stresskind.StressValues
}

func coordinatorTables(p *CoordinatorParams) []typeTable {
	return []typeTable{
		{"stress_weights", FallbackWeight, &p.Weights},
		{"recovery_rates", FallbackRecovery, &p.RecoveryRates},
		{"acclimation_rates", FallbackAcclimation, &p.AcclimationRates},
		{"stress_onset_thresholds", FallbackOnset, &p.OnsetThresholds},
		{"damage_thresholds", FallbackDamage, &p.DamageThresholds},
	}
}

// Build overlays the values in src on the defaults and validates the result.
// A per-type table that is present replaces the default table; entries it
// leaves out take the neutral fallback.
func Build(src Source) (Config, error) {
	if src == nil {
		src = DefaultSource{}
	}
	cfg := Default()

	if err := readFloats(src, SectionTemperature, temperatureFloats(&cfg.Temperature)); err != nil {
		return Config{}, err
	}
	if err := readInts(src, SectionTemperature, temperatureInts(&cfg.Temperature)); err != nil {
		return Config{}, err
	}
	if err := readCoordinator(src, &cfg.Coordinator); err != nil {
		return Config{}, err
	}
	if err := readFloats(src, SectionEnvironment, environmentFloats(&cfg.Environment)); err != nil {
		return Config{}, err
	}
	if err := readFloats(src, SectionLimits, limitFloats(&cfg.Limits)); err != nil {
		return Config{}, err
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML configuration file and builds a Config from it.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, &ConfigurationError{Reason: fmt.Sprintf("parse %s: %v", path, err)}
	}
	return Build(MapSource(raw))
}

func readFloats(src Source, section string, fields []floatField) error {
	for _, f := range fields {
		raw := src.Get(section, f.key, nil)
		if raw == nil {
			continue
		}
		v, err := toFloat(raw)
		if err != nil {
			return configErr(section, f.key, "%v", err)
		}
		*f.ptr = v
	}
	return nil
}

func readInts(src Source, section string, fields []intField) error {
	for _, f := range fields {
		raw := src.Get(section, f.key, nil)
		if raw == nil {
			continue
		}
		v, err := toWholeDays(raw)
		if err != nil {
			return configErr(section, f.key, "%v", err)
		}
		*f.ptr = v
	}
	return nil
}

func toFloat(raw any) (float64, error) {
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %v", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("expected a finite number, got %v", raw)
	}
	return v, nil
}

func toWholeDays(raw any) (int, error) {
	v, err := toFloat(raw)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("expected whole days, got %v", raw)
	}
	if math.Abs(v) > MaxDays {
		return 0, fmt.Errorf("expected at most %d days, got %v", MaxDays, raw)
	}
	return int(v), nil
}

func readCoordinator(src Source, p *CoordinatorParams) error {
	const section = SectionCoordinator

	for _, tbl := range coordinatorTables(p) {
		m, ok, err := readTable(src, section, tbl.key)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		entries, err := stressEntries(section, tbl.key, m)
		if err != nil {
			return err
		}
		vals := stresskind.Fill(tbl.fallback)
		for _, e := range entries {
			v, err := toFloat(e.raw)
			if err != nil {
				return configErr(section, tbl.key+"."+e.key, "%v", err)
			}
			vals[e.st] = v
		}
		*tbl.dst = vals
	}

	if m, ok, err := readTable(src, section, "stress_memory_duration"); err != nil {
		return err
	} else if ok {
		entries, err := stressEntries(section, "stress_memory_duration", m)
		if err != nil {
			return err
		}
		var mem [stresskind.NumStressTypes]int
		for i := range mem {
			mem[i] = FallbackMemory
		}
		for _, e := range entries {
			v, err := toWholeDays(e.raw)
			if err != nil {
				return configErr(section, "stress_memory_duration."+e.key, "%v", err)
			}
			mem[e.st] = v
		}
		p.Memory = mem
	}

	if err := readSensitivity(src, p); err != nil {
		return err
	}
	return readInteractions(src, p)
}

func readTable(src Source, section, key string) (map[string]any, bool, error) {
	raw := src.Get(section, key, nil)
	if raw == nil {
		return nil, false, nil
	}
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		return nil, false, configErr(section, key, "expected a table, got %T", raw)
	}
	return m, true, nil
}

func resolveStressKey(section, table, key string) (stresskind.StressType, error) {
	st, m, ok := parser.ParseStressType(key)
	if ok {
		return st, nil
	}
	if m.Suggestion != "" {
		return 0, configErr(section, table, "unknown stress type %q (did you mean %q?)", key, m.Suggestion)
	}
	return 0, configErr(section, table, "unknown stress type %q (expected one of %s)",
		key, strings.Join(parser.StressTypes().Canonicals(), ", "))
}

func resolveProcessKey(section, table, key string) (stresskind.ProcessType, error) {
	p, m, ok := parser.ParseProcessType(key)
	if ok {
		return p, nil
	}
	if m.Suggestion != "" {
		return 0, configErr(section, table, "unknown process %q (did you mean %q?)", key, m.Suggestion)
	}
	return 0, configErr(section, table, "unknown process %q (expected one of %s)",
		key, strings.Join(parser.Processes().Canonicals(), ", "))
}

type stressEntry struct {
	key string
	st  stresskind.StressType
	raw any
}

// stressEntries resolves the keys of a per-type table in sorted order. Two
// keys naming the same type, such as "pH" and "ph", are rejected.
func stressEntries(section, table string, m map[string]any) ([]stressEntry, error) {
	var seen [stresskind.NumStressTypes]string
	out := make([]stressEntry, 0, len(m))
	for _, k := range sortedKeys(m) {
		st, err := resolveStressKey(section, table, k)
		if err != nil {
			return nil, err
		}
		if prev := seen[st]; prev != "" {
			return nil, configErr(section, table, "%q and %q both name %s", prev, k, st)
		}
		seen[st] = k
		out = append(out, stressEntry{key: k, st: st, raw: m[k]})
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func readSensitivity(src Source, p *CoordinatorParams) error {
	const section, key = SectionCoordinator, "process_sensitivity"
	m, ok, err := readTable(src, section, key)
	if err != nil || !ok {
		return err
	}

	var rows [stresskind.NumProcessTypes]stresskind.StressValues
	for i := range rows {
		rows[i] = stresskind.Fill(FallbackSensitivity)
	}
	seen := map[stresskind.ProcessType]bool{}
	for _, pk := range sortedKeys(m) {
		rawRow := m[pk]
		proc, err := resolveProcessKey(section, key, pk)
		if err != nil {
			return err
		}
		if seen[proc] {
			return configErr(section, key, "process %s listed twice", proc)
		}
		seen[proc] = true
		row, err := cast.ToStringMapE(rawRow)
		if err != nil {
			return configErr(section, key+"."+pk, "expected a table, got %T", rawRow)
		}
		entries, err := stressEntries(section, key+"."+pk, row)
		if err != nil {
			return err
		}
		for _, e := range entries {
			v, err := toFloat(e.raw)
			if err != nil {
				return configErr(section, key+"."+pk+"."+e.key, "%v", err)
			}
			rows[proc][e.st] = v
		}
	}

	procs := make([]stresskind.ProcessType, 0, len(seen))
	for proc := range seen {
		procs = append(procs, proc)
	}
	sort.Slice(procs, func(i, j int) bool { return procs[i] < procs[j] })

	p.Processes = procs
	p.Sensitivity = rows
	return nil
}

// readInteractions accepts the nested form a -> b -> {type, factor} and the
// flat form a_b -> {type, factor}. Rules for (a, b) and (b, a) describe the
// same pair and must agree.
func readInteractions(src Source, p *CoordinatorParams) error {
	const section, key = SectionCoordinator, "stress_interactions"
	m, ok, err := readTable(src, section, key)
	if err != nil || !ok {
		return err
	}

	var rules []InteractionRule
	for _, ak := range sortedKeys(m) {
		if _, _, single := parser.ParseStressType(ak); !single {
			if pair, ok := parser.ParsePair(ak); ok {
				rule, err := readRule(section, key+"."+ak, pair, m[ak])
				if err != nil {
					return err
				}
				rules = append(rules, rule)
				continue
			}
		}

		a, err := resolveStressKey(section, key, ak)
		if err != nil {
			return err
		}
		inner, err := cast.ToStringMapE(m[ak])
		if err != nil {
			return configErr(section, key+"."+ak, "expected a table, got %T", m[ak])
		}
		entries, err := stressEntries(section, key+"."+ak, inner)
		if err != nil {
			return err
		}
		for _, e := range entries {
			path := key + "." + ak + "." + e.key
			if a == e.st {
				return configErr(section, path, "a stress cannot interact with itself")
			}
			rule, err := readRule(section, path, stresskind.NewPair(a, e.st), e.raw)
			if err != nil {
				return err
			}
			rules = append(rules, rule)
		}
	}

	merged, err := mergeInteractions(rules)
	if err != nil {
		return err
	}
	sortRules(merged)
	p.Interactions = merged
	return nil
}

func readRule(section, path string, pair stresskind.Pair, raw any) (InteractionRule, error) {
	entry, err := cast.ToStringMapE(raw)
	if err != nil {
		return InteractionRule{}, configErr(section, path, "expected {type, factor}, got %T", raw)
	}
	kind := stresskind.InteractionKind(cast.ToString(entry["type"]))
	factor, err := toFloat(entry["factor"])
	if err != nil {
		return InteractionRule{}, configErr(section, path+".factor", "%v", err)
	}
	return InteractionRule{Pair: pair, Kind: kind, Factor: factor}, nil
}

func mergeInteractions(rules []InteractionRule) ([]InteractionRule, error) {
	var seen [stresskind.NumPairs]int // index+1 into out
	out := make([]InteractionRule, 0, len(rules))
	for _, r := range rules {
		idx := seen[r.Pair.Index()]
		if idx == 0 {
			out = append(out, r)
			seen[r.Pair.Index()] = len(out)
			continue
		}
		prev := out[idx-1]
		if prev.Kind != r.Kind || prev.Factor != r.Factor {
			return nil, configErr(SectionCoordinator, "stress_interactions",
				"conflicting rules for %s: %s %.3g vs %s %.3g",
				r.Pair.Key(), prev.Kind, prev.Factor, r.Kind, r.Factor)
		}
	}
	return out, nil
}
