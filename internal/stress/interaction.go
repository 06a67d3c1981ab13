package stress

import (
	"math"

	"github.com/appengine-ltd/hydrostress/internal/config"
	"github.com/appengine-ltd/hydrostress/internal/stresskind"
)

// interactionTable is the configured rules indexed by Pair.Index.
type interactionTable struct {
	rules [stresskind.NumPairs]*config.InteractionRule
}

func newInteractionTable(rules []config.InteractionRule) interactionTable {
	var t interactionTable
	for i := range rules {
		r := rules[i]
		t.rules[r.Pair.Index()] = &r
	}
	return t
}

func (t *interactionTable) lookup(a, b stresskind.StressType) (config.InteractionRule, bool) {
	r := t.rules[stresskind.NewPair(a, b).Index()]
	if r == nil {
		return config.InteractionRule{}, false
	}
	return *r, true
}

// InteractionEffect combines two stress intensities (0 none, 1 maximal).
func InteractionEffect(kind stresskind.InteractionKind, factor, x, y float64) float64 {
	var v float64
	switch kind {
	case stresskind.Multiplicative:
		v = x * y * factor
	case stresskind.Synergistic, stresskind.Additive:
		v = (x + y) * factor
	default:
		v = math.Max(x, y) * factor
	}
	return math.Min(1, v)
}

// interactions evaluates every configured pair among the active types and
// returns the effects with their sum, accumulated in pair order. factors holds
// process stress factors; intensities are 1 - factor.
func (t *interactionTable) interactions(active []stresskind.StressType, factors *stresskind.StressValues) (map[string]float64, float64) {
	out := map[string]float64{}
	var total float64
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i], active[j]
			rule, ok := t.lookup(a, b)
			if !ok {
				continue
			}
			v := InteractionEffect(rule.Kind, rule.Factor, 1-factors[a], 1-factors[b])
			out[rule.Pair.Key()] = v
			total += v
		}
	}
	return out, total
}
