package stresskind

// InteractionKind selects how two simultaneously active stresses combine.
type InteractionKind string

const (
	Multiplicative InteractionKind = "multiplicative"
	Additive       InteractionKind = "additive"
	Synergistic    InteractionKind = "synergistic"
	Antagonistic   InteractionKind = "antagonistic"
	Threshold      InteractionKind = "threshold"
)

func (k InteractionKind) Valid() bool {
	switch k {
	case Multiplicative, Additive, Synergistic, Antagonistic, Threshold:
		return true
	default:
		return false
	}
}

// Pair is an unordered pair of distinct stress types. A always precedes B in
// canonical order.
type Pair struct {
	A StressType
	B StressType
}

// NewPair orders a and b canonically.
func NewPair(a, b StressType) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Key is the interaction key reported in responses, e.g. "water_temperature".
func (p Pair) Key() string {
	return p.A.String() + "_" + p.B.String()
}

// Index maps the pair onto a dense slot in [0, NumPairs).
func (p Pair) Index() int {
	return int(p.A)*NumStressTypes + int(p.B)
}

// NumPairs bounds Pair.Index.
const NumPairs = NumStressTypes * NumStressTypes
