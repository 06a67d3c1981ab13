package parser

import "github.com/appengine-ltd/hydrostress/internal/stresskind"

var stressNameDefs = []NameDef{
	{Canonical: "water", Aliases: []string{"water stress", "drought", "moisture", "h2o", "vpd"}},
	{Canonical: "temperature", Aliases: []string{"temp", "thermal", "air temperature"}},
	{Canonical: "nutrient", Aliases: []string{"nutrients", "nitrogen", "nitrate", "n", "fertility"}},
	{Canonical: "light", Aliases: []string{"radiation", "par", "irradiance"}},
	{Canonical: "salinity", Aliases: []string{"salt", "ec", "conductivity"}},
	{Canonical: "oxygen", Aliases: []string{"o2", "dissolved oxygen", "do", "root oxygen"}},
	{Canonical: "ph", Aliases: []string{"p h", "acidity"}},
}

var processNameDefs = []NameDef{
	{Canonical: "photosynthesis", Aliases: []string{"assimilation", "photo"}},
	{Canonical: "respiration", Aliases: []string{"resp"}},
	{Canonical: "transpiration", Aliases: []string{"transp", "et"}},
	{Canonical: "growth", Aliases: []string{"expansion"}},
	{Canonical: "development", Aliases: []string{"phenology", "dev"}},
	{Canonical: "nutrient_uptake", Aliases: []string{"uptake", "nutrient uptake"}},
	{Canonical: "senescence", Aliases: []string{"ageing", "aging"}},
	{Canonical: "flowering", Aliases: []string{"bolting"}},
}

var (
	stressRegistry  = buildRegistry(stressNameDefs)
	processRegistry = buildRegistry(processNameDefs)
)

func buildRegistry(defs []NameDef) *Registry {
	r := NewRegistry()
	for _, def := range defs {
		r.Register(def)
	}
	return r
}

// StressTypes returns the shared stress type registry. It is read-only after
// package init.
func StressTypes() *Registry {
	return stressRegistry
}

func Processes() *Registry {
	return processRegistry
}

// ParseStressType resolves a free-form key such as "pH" or "nitrogen".
// ok is false for anything that is not an exact or alias match; the Match
// still carries a suggestion when one was found.
func ParseStressType(raw string) (stresskind.StressType, Match, bool) {
	m := stressRegistry.Resolve(raw)
	if !m.Resolved() {
		return 0, m, false
	}
	st, ok := stresskind.StressTypeByName(m.Canonical)
	return st, m, ok
}

func ParseProcessType(raw string) (stresskind.ProcessType, Match, bool) {
	m := processRegistry.Resolve(raw)
	if !m.Resolved() {
		return 0, m, false
	}
	p, ok := stresskind.ProcessTypeByName(m.Canonical)
	return p, m, ok
}

// ParsePair resolves an interaction key of the form "<a>_<b>" or "<a>-<b>".
// Compound names such as nutrient_uptake are not stress types, so the first
// split that resolves both halves wins.
func ParsePair(raw string) (stresskind.Pair, bool) {
	words := splitWords(normaliseInput(raw))
	for i := 1; i < len(words); i++ {
		a, _, okA := ParseStressType(joinWords(words[:i]))
		b, _, okB := ParseStressType(joinWords(words[i:]))
		if okA && okB && a != b {
			return stresskind.NewPair(a, b), true
		}
	}
	return stresskind.Pair{}, false
}
