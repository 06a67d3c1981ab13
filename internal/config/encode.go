package config

import (
	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/hydrostress/internal/stresskind"
)

// ToMap renders cfg in the layout Build reads, so
// Build(MapSource(ToMap(cfg))) reproduces cfg.
func ToMap(cfg Config) map[string]any {
	out := map[string]any{}

	temp := map[string]any{}
	for _, f := range temperatureFloats(&cfg.Temperature) {
		temp[f.key] = *f.ptr
	}
	for _, f := range temperatureInts(&cfg.Temperature) {
		temp[f.key] = *f.ptr
	}
	out[SectionTemperature] = temp

	coord := map[string]any{}
	for _, tbl := range coordinatorTables(&cfg.Coordinator) {
		coord[tbl.key] = valuesMap(*tbl.dst)
	}
	mem := map[string]any{}
	for _, st := range stresskind.AllStressTypes() {
		mem[st.String()] = cfg.Coordinator.Memory[st]
	}
	coord["stress_memory_duration"] = mem

	sens := map[string]any{}
	for _, proc := range cfg.Coordinator.Processes {
		sens[proc.String()] = valuesMap(cfg.Coordinator.Sensitivity[proc])
	}
	coord["process_sensitivity"] = sens

	inter := map[string]any{}
	for _, r := range cfg.Coordinator.Interactions {
		a := r.Pair.A.String()
		row, ok := inter[a].(map[string]any)
		if !ok {
			row = map[string]any{}
			inter[a] = row
		}
		row[r.Pair.B.String()] = map[string]any{"type": string(r.Kind), "factor": r.Factor}
	}
	coord["stress_interactions"] = inter
	out[SectionCoordinator] = coord

	env := map[string]any{}
	for _, f := range environmentFloats(&cfg.Environment) {
		env[f.key] = *f.ptr
	}
	out[SectionEnvironment] = env

	lim := map[string]any{}
	for _, f := range limitFloats(&cfg.Limits) {
		lim[f.key] = *f.ptr
	}
	out[SectionLimits] = lim

	return out
}

func valuesMap(v stresskind.StressValues) map[string]any {
	out := make(map[string]any, stresskind.NumStressTypes)
	for name, x := range v.Map() {
		out[name] = x
	}
	return out
}

// MarshalYAML renders cfg as a YAML document LoadFile accepts.
func MarshalYAML(cfg Config) ([]byte, error) {
	return yaml.Marshal(ToMap(cfg))
}
