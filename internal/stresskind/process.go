package stresskind

// ProcessType identifies a plant process scaled by stress factors.
type ProcessType uint8

const (
	Photosynthesis ProcessType = iota
	Respiration
	Transpiration
	Growth
	Development
	NutrientUptake
	Senescence
	Flowering

	numProcessTypes
)

const NumProcessTypes = int(numProcessTypes)

var processTypeNames = [NumProcessTypes]string{
	Photosynthesis: "photosynthesis",
	Respiration:    "respiration",
	Transpiration:  "transpiration",
	Growth:         "growth",
	Development:    "development",
	NutrientUptake: "nutrient_uptake",
	Senescence:     "senescence",
	Flowering:      "flowering",
}

func (p ProcessType) String() string {
	if !p.Valid() {
		return "unknown"
	}
	return processTypeNames[p]
}

func (p ProcessType) Valid() bool {
	return p < numProcessTypes
}

func (p ProcessType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// AllProcessTypes returns every process in canonical order.
func AllProcessTypes() []ProcessType {
	out := make([]ProcessType, 0, NumProcessTypes)
	for p := ProcessType(0); p < numProcessTypes; p++ {
		out = append(out, p)
	}
	return out
}

// ProcessTypeByName resolves an exact canonical name.
func ProcessTypeByName(name string) (ProcessType, bool) {
	for i, n := range processTypeNames {
		if n == name {
			return ProcessType(i), true
		}
	}
	return 0, false
}
