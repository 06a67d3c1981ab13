// Package stresskind defines the closed tag sets shared by the stress
// sub-models: stress types, plant processes and interaction kinds.
//
// Tables keyed by a tag are fixed-size arrays indexed by the tag value, so a
// lookup never misses and adding a tag is a compile-time change.
package stresskind

// StressType identifies one environmental stress. Levels for every type use
// the same convention: 1.0 is optimal, 0.0 is maximal stress.
type StressType uint8

const (
	Water StressType = iota
	Temperature
	Nutrient
	Light
	Salinity
	Oxygen
	PH

	numStressTypes
)

// NumStressTypes is the size of every per-type table.
const NumStressTypes = int(numStressTypes)

var stressTypeNames = [NumStressTypes]string{
	Water:       "water",
	Temperature: "temperature",
	Nutrient:    "nutrient",
	Light:       "light",
	Salinity:    "salinity",
	Oxygen:      "oxygen",
	PH:          "ph",
}

func (t StressType) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return stressTypeNames[t]
}

func (t StressType) Valid() bool {
	return t < numStressTypes
}

// MarshalText lets stress types be used as JSON/YAML map keys.
func (t StressType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// AllStressTypes returns every stress type in canonical order.
func AllStressTypes() []StressType {
	out := make([]StressType, 0, NumStressTypes)
	for t := StressType(0); t < numStressTypes; t++ {
		out = append(out, t)
	}
	return out
}

// StressTypeByName resolves an exact canonical name.
func StressTypeByName(name string) (StressType, bool) {
	for i, n := range stressTypeNames {
		if n == name {
			return StressType(i), true
		}
	}
	return 0, false
}

// StressValues is a per-type table of floats.
type StressValues [NumStressTypes]float64

// Fill returns a table with every entry set to v.
func Fill(v float64) StressValues {
	var out StressValues
	for i := range out {
		out[i] = v
	}
	return out
}

// Map converts the table into a name-keyed map, mainly for reporting.
func (v StressValues) Map() map[string]float64 {
	out := make(map[string]float64, NumStressTypes)
	for i, x := range v {
		out[stressTypeNames[i]] = x
	}
	return out
}
