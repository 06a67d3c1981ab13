package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/appengine-ltd/hydrostress/internal/stresskind"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestBuildWithDefaultSourceMatchesDefault(t *testing.T) {
	cfg, err := Build(DefaultSource{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected Build(DefaultSource) to equal Default()")
	}
}

func TestToMapRoundTrip(t *testing.T) {
	cfg, err := Build(MapSource(ToMap(Default())))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected rendered defaults to rebuild the same config")
	}
}

func TestBuildOverridesScalars(t *testing.T) {
	src := MapSource{
		"temperature_stress": map[string]any{
			"optimal_temp_max":       "26",
			"stress_memory_duration": 5,
		},
	}
	cfg, err := Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cfg.Temperature.OptimalMax != 26 {
		t.Fatalf("expected optimal max 26, got %v", cfg.Temperature.OptimalMax)
	}
	if cfg.Temperature.StressMemoryDuration != 5 {
		t.Fatalf("expected memory 5, got %d", cfg.Temperature.StressMemoryDuration)
	}
}

func TestPartialTableTakesFallbacks(t *testing.T) {
	src := MapSource{
		"integrated_stress": map[string]any{
			"stress_weights": map[string]any{"water": 0.5, "pH": 0.2},
		},
	}
	cfg, err := Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	w := cfg.Coordinator.Weights
	if w[stresskind.Water] != 0.5 || w[stresskind.PH] != 0.2 {
		t.Fatalf("expected supplied weights, got %+v", w)
	}
	if w[stresskind.Light] != FallbackWeight {
		t.Fatalf("expected fallback weight for light, got %v", w[stresskind.Light])
	}
}

func TestBuildRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		src     MapSource
		wantKey string
	}{
		{
			name:    "unordered cardinal temperatures",
			src:     MapSource{"temperature_stress": map[string]any{"heat_threshold_mild": 40}},
			wantKey: "heat_threshold_mild",
		},
		{
			name:    "rate above one",
			src:     MapSource{"temperature_stress": map[string]any{"acclimation_rate": 1.5}},
			wantKey: "acclimation_rate",
		},
		{
			name:    "fractional memory",
			src:     MapSource{"temperature_stress": map[string]any{"stress_memory_duration": 2.5}},
			wantKey: "stress_memory_duration",
		},
		{
			name:    "zero memory",
			src:     MapSource{"temperature_stress": map[string]any{"max_acclimation_days": 0}},
			wantKey: "max_acclimation_days",
		},
		{
			name: "memory beyond the day cap",
			src: MapSource{"integrated_stress": map[string]any{
				"stress_memory_duration": map[string]any{"water": 1e15},
			}},
			wantKey: "stress_memory_duration.water",
		},
		{
			name:    "acclimation days beyond the day cap",
			src:     MapSource{"temperature_stress": map[string]any{"max_acclimation_days": MaxDays + 1}},
			wantKey: "max_acclimation_days",
		},
		{
			name: "two aliases for one type",
			src: MapSource{"integrated_stress": map[string]any{
				"recovery_rates": map[string]any{"pH": 0.2, "acidity": 0.3},
			}},
			wantKey: "recovery_rates",
		},
		{
			name:    "not a number",
			src:     MapSource{"limits": map[string]any{"min_temperature": "cold"}},
			wantKey: "min_temperature",
		},
		{
			name: "unknown stress key",
			src: MapSource{"integrated_stress": map[string]any{
				"recovery_rates": map[string]any{"wind": 0.2},
			}},
			wantKey: "recovery_rates",
		},
		{
			name: "zero interaction factor",
			src: MapSource{"integrated_stress": map[string]any{
				"stress_interactions": map[string]any{
					"water": map[string]any{"light": map[string]any{"type": "additive", "factor": 0}},
				},
			}},
			wantKey: "stress_interactions.water_light",
		},
		{
			name: "unknown interaction kind",
			src: MapSource{"integrated_stress": map[string]any{
				"stress_interactions": map[string]any{
					"water": map[string]any{"light": map[string]any{"type": "subtractive", "factor": 1.1}},
				},
			}},
			wantKey: "stress_interactions.water_light",
		},
		{
			name: "conflicting interaction directions",
			src: MapSource{"integrated_stress": map[string]any{
				"stress_interactions": map[string]any{
					"water":       map[string]any{"temperature": map[string]any{"type": "synergistic", "factor": 1.3}},
					"temperature": map[string]any{"water": map[string]any{"type": "additive", "factor": 1.3}},
				},
			}},
			wantKey: "stress_interactions",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.src)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
			var cerr *ConfigurationError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigurationError, got %T", err)
			}
			if cerr.Key != tc.wantKey {
				t.Fatalf("expected key %q, got %q (%v)", tc.wantKey, cerr.Key, err)
			}
		})
	}
}

func TestValidateBoundsDayCounts(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{
			name:    "coordinator memory",
			mutate:  func(c *Config) { c.Coordinator.Memory[stresskind.Oxygen] = MaxDays + 1 },
			wantKey: "stress_memory_duration.oxygen",
		},
		{
			name:    "temperature memory",
			mutate:  func(c *Config) { c.Temperature.StressMemoryDuration = 10 * MaxDays },
			wantKey: "stress_memory_duration",
		},
		{
			name:    "acclimation days",
			mutate:  func(c *Config) { c.Temperature.MaxAcclimationDays = -3 },
			wantKey: "max_acclimation_days",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			var cerr *ConfigurationError
			if err := Validate(cfg); !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigurationError, got %v", err)
			}
			if cerr.Key != tc.wantKey {
				t.Fatalf("expected key %q, got %q", tc.wantKey, cerr.Key)
			}
		})
	}

	cfg := Default()
	cfg.Coordinator.Memory[stresskind.Water] = MaxDays
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected the cap itself to be valid, got %v", err)
	}
}

func TestUnknownStressKeySuggests(t *testing.T) {
	src := MapSource{"integrated_stress": map[string]any{
		"damage_thresholds": map[string]any{"salinty": 0.4},
	}}
	_, err := Build(src)
	if err == nil || !strings.Contains(err.Error(), `did you mean "salinity"`) {
		t.Fatalf("expected suggestion in error, got %v", err)
	}
}

func TestAgreeingInteractionDirectionsMerge(t *testing.T) {
	src := MapSource{"integrated_stress": map[string]any{
		"stress_interactions": map[string]any{
			"water":       map[string]any{"temperature": map[string]any{"type": "synergistic", "factor": 1.3}},
			"temperature": map[string]any{"water": map[string]any{"type": "synergistic", "factor": 1.3}},
		},
	}}
	cfg, err := Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(cfg.Coordinator.Interactions) != 1 {
		t.Fatalf("expected a single merged rule, got %+v", cfg.Coordinator.Interactions)
	}
	r, ok := cfg.Coordinator.Interaction(stresskind.NewPair(stresskind.Temperature, stresskind.Water))
	if !ok || r.Kind != stresskind.Synergistic || r.Factor != 1.3 {
		t.Fatalf("unexpected rule %+v ok=%v", r, ok)
	}
}

func TestUnknownStressKeyListsCanonicalNames(t *testing.T) {
	src := MapSource{"integrated_stress": map[string]any{
		"stress_weights": map[string]any{"zzzz": 0.4},
	}}
	_, err := Build(src)
	if err == nil || !strings.Contains(err.Error(), "expected one of light, nutrient, oxygen, ph, salinity, temperature, water") {
		t.Fatalf("expected canonical names in error, got %v", err)
	}
}

func TestFlatInteractionKeysMergeWithNested(t *testing.T) {
	src := MapSource{"integrated_stress": map[string]any{
		"stress_interactions": map[string]any{
			"water_temperature": map[string]any{"type": "synergistic", "factor": 1.3},
			"temperature":       map[string]any{"water": map[string]any{"type": "synergistic", "factor": 1.3}},
			"nutrient-ph":       map[string]any{"type": "multiplicative", "factor": 1.5},
		},
	}}
	cfg, err := Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(cfg.Coordinator.Interactions) != 2 {
		t.Fatalf("expected two rules, got %+v", cfg.Coordinator.Interactions)
	}
	r, ok := cfg.Coordinator.Interaction(stresskind.NewPair(stresskind.PH, stresskind.Nutrient))
	if !ok || r.Kind != stresskind.Multiplicative || r.Factor != 1.5 {
		t.Fatalf("unexpected rule %+v ok=%v", r, ok)
	}

	src = MapSource{"integrated_stress": map[string]any{
		"stress_interactions": map[string]any{
			"water_light": map[string]any{"type": "additive", "factor": 1.1},
			"light":       map[string]any{"water": map[string]any{"type": "additive", "factor": 1.2}},
		},
	}}
	if _, err := Build(src); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected conflicting flat and nested rules to fail, got %v", err)
	}
}

func TestMapSourceCaseFoldIsDeterministic(t *testing.T) {
	src := MapSource{"Integrated_Stress": map[string]any{
		"Recovery_Rates": map[string]any{"water": 0.3},
		"RECOVERY_RATES": map[string]any{"water": 0.4},
	}}
	for range 50 {
		cfg, err := Build(src)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if got := cfg.Coordinator.RecoveryRates[stresskind.Water]; got != 0.4 {
			t.Fatalf("expected the first key in sorted order to win, got %v", got)
		}
	}

	exact := MapSource{"integrated_stress": map[string]any{
		"recovery_rates": map[string]any{"water": 0.25},
		"RECOVERY_RATES": map[string]any{"water": 0.4},
	}}
	cfg, err := Build(exact)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := cfg.Coordinator.RecoveryRates[stresskind.Water]; got != 0.25 {
		t.Fatalf("expected the exact key to win, got %v", got)
	}
}

func TestProcessSensitivityReplacesProcessSet(t *testing.T) {
	src := MapSource{"integrated_stress": map[string]any{
		"process_sensitivity": map[string]any{
			"transpiration": map[string]any{"water": 0.9},
		},
	}}
	cfg, err := Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(cfg.Coordinator.Processes) != 1 || cfg.Coordinator.Processes[0] != stresskind.Transpiration {
		t.Fatalf("expected transpiration only, got %v", cfg.Coordinator.Processes)
	}
	row := cfg.Coordinator.Sensitivity[stresskind.Transpiration]
	if row[stresskind.Water] != 0.9 || row[stresskind.Light] != FallbackSensitivity {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hydrostress.yaml")
	doc := `
temperature_stress:
  optimal_temp_min: 16
integrated_stress:
  stress_memory_duration:
    water: 4
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Temperature.OptimalMin != 16 {
		t.Fatalf("expected optimal min 16, got %v", cfg.Temperature.OptimalMin)
	}
	if cfg.Coordinator.Memory[stresskind.Water] != 4 || cfg.Coordinator.Memory[stresskind.Light] != FallbackMemory {
		t.Fatalf("unexpected memory table %+v", cfg.Coordinator.Memory)
	}
}

func TestLoadFileRendersAndReloadsDefaults(t *testing.T) {
	data, err := MarshalYAML(Default())
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected reloaded defaults to equal Default()")
	}
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("temperature_stress: [unterminated"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestViperSource(t *testing.T) {
	v := viper.New()
	v.Set("temperature_stress.heat_threshold_mild", 30.0)
	v.Set("integrated_stress.stress_weights", map[string]any{"water": 0.4})

	cfg, err := Build(NewViperSource(v))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cfg.Temperature.HeatMild != 30 {
		t.Fatalf("expected heat mild 30, got %v", cfg.Temperature.HeatMild)
	}
	if cfg.Coordinator.Weights[stresskind.Water] != 0.4 {
		t.Fatalf("expected water weight 0.4, got %v", cfg.Coordinator.Weights[stresskind.Water])
	}
}
