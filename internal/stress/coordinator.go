// Package stress coordinates the seven environmental stresses acting on a
// plant: per-type acute and chronic dynamics, acclimation, recovery and
// damage, pairwise interactions, and the per-process responses built from
// them.
package stress

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/appengine-ltd/hydrostress/internal/config"
	"github.com/appengine-ltd/hydrostress/internal/logging"
	"github.com/appengine-ltd/hydrostress/internal/numeric"
	"github.com/appengine-ltd/hydrostress/internal/stresskind"
)

// Levels maps stress types to today's level (1 = optimal). Types left out
// keep their previous state.
type Levels map[stresskind.StressType]float64

// Coordinator owns one plant's stress states. It is not safe for concurrent
// use.
type Coordinator struct {
	params       config.CoordinatorParams
	interactions interactionTable
	states       [stresskind.NumStressTypes]State
	cumulative   stresskind.StressValues
	history      []HistoryRecord
	day          int
	log          *slog.Logger
}

func NewCoordinator(p config.CoordinatorParams, log *slog.Logger) *Coordinator {
	c := &Coordinator{
		params:       p,
		interactions: newInteractionTable(p.Interactions),
		log:          logging.OrDiscard(log),
	}
	for _, st := range stresskind.AllStressTypes() {
		c.states[st] = newState(st, p.Memory[st])
	}
	return c
}

func (c *Coordinator) Params() config.CoordinatorParams {
	return c.params
}

// State returns a snapshot of one type's state.
func (c *Coordinator) State(t stresskind.StressType) StateSnapshot {
	return c.states[t].snapshot()
}

// UpdateStates applies today's levels. Levels are clamped to [0, 1]; NaN
// entries and invalid types are skipped.
func (c *Coordinator) UpdateStates(levels Levels) {
	p := c.params
	for _, st := range stresskind.AllStressTypes() {
		level, ok := levels[st]
		if !ok || math.IsNaN(level) {
			continue
		}
		level = numeric.Clamp01(level)
		s := &c.states[st]

		s.CurrentLevel = level
		s.history.Push(level)
		if level < p.OnsetThresholds[st] {
			s.DaysUnderStress++
		} else {
			s.DaysUnderStress = max(0, s.DaysUnderStress-1)
		}

		s.Acute = AcuteStress(level, p.OnsetThresholds[st])
		s.Chronic = ChronicStress(s.history.Values(), s.DaysUnderStress, p.Memory[st])
		s.Acclimation = AcclimationEffect(s.DaysUnderStress, p.AcclimationRates[st], level)
		s.RecoveryProgress = RecoveryEffect(level, s.Chronic, s.RecoveryProgress, p.RecoveryRates[st])

		if inc := DamageIncrement(level, p.DamageThresholds[st]); inc > 0 {
			c.cumulative[st] = math.Min(maxDamage, c.cumulative[st]+inc)
		}
		s.Damage = c.cumulative[st]
	}
}

// ProcessResponse evaluates one process against the current states.
func (c *Coordinator) ProcessResponse(proc stresskind.ProcessType) Response {
	sens := c.params.Sensitivity[proc]
	resp := Response{
		Process:            proc,
		Individual:         map[stresskind.StressType]float64{},
		Interactions:       map[string]float64{},
		AcclimationBenefit: map[stresskind.StressType]float64{},
		Recovery:           map[stresskind.StressType]float64{},
		Damage:             map[stresskind.StressType]float64{},
	}

	var factors, accl, recovery, damage stresskind.StressValues
	var active []stresskind.StressType
	for _, st := range stresskind.AllStressTypes() {
		if sens[st] <= 0 {
			continue
		}
		s := c.states[st]
		combined := math.Min(s.Acute, s.Chronic*chronicWeight+s.Acute*(1-chronicWeight))
		ps := 1 - (1-combined)*sens[st]

		factors[st] = ps
		resp.Individual[st] = ps
		if ps < activeCutoff {
			active = append(active, st)
		}
		accl[st] = s.Acclimation * maxAcclimation
		recovery[st] = s.RecoveryProgress
		damage[st] = c.cumulative[st]
		resp.AcclimationBenefit[st] = accl[st]
		resp.Recovery[st] = recovery[st]
		resp.Damage[st] = damage[st]
	}

	var interactionTotal float64
	resp.Interactions, interactionTotal = c.interactions.interactions(active, &factors)

	if len(resp.Individual) == 0 {
		resp.Combined = 1
		return resp
	}

	// Sums run in canonical type order.
	base := math.Inf(1)
	for _, st := range stresskind.AllStressTypes() {
		if sens[st] > 0 {
			base = math.Min(base, factors[st])
		}
	}
	combined := base -
		interactionTotal*interactionPenalty +
		sumValues(&accl)*acclimationBonus +
		sumValues(&recovery)*recoveryBonus -
		sumValues(&damage)*damagePenalty
	resp.Combined = numeric.Clamp(combined, minFunction, 1)
	resp.Limiting = limiting(resp.Individual)
	return resp
}

// DailyUpdate applies today's levels and evaluates every configured process.
func (c *Coordinator) DailyUpdate(levels Levels) IntegratedResponse {
	c.UpdateStates(levels)
	c.day++

	out := IntegratedResponse{Day: c.day}
	for _, st := range stresskind.AllStressTypes() {
		out.States[st] = c.states[st].snapshot()
	}

	out.Overall = 1
	if len(c.params.Processes) > 0 {
		var sum float64
		for _, proc := range c.params.Processes {
			resp := c.ProcessResponse(proc)
			out.Processes = append(out.Processes, resp)
			sum += resp.Combined
		}
		out.Overall = sum / float64(len(out.Processes))
	}
	out.Severity = SeverityFor(out.Overall)
	out.Dominant = c.dominant()

	seen := map[string]bool{}
	for _, resp := range out.Processes {
		for key := range resp.Interactions {
			if !seen[key] {
				seen[key] = true
				out.ActiveInteractions = append(out.ActiveInteractions, key)
			}
		}
	}
	sort.Strings(out.ActiveInteractions)

	for _, st := range stresskind.AllStressTypes() {
		if c.states[st].Acclimation > 0.1 {
			out.Acclimating = append(out.Acclimating, st)
		}
		if c.states[st].RecoveryProgress > 0.1 {
			out.Recovering = append(out.Recovering, st)
		}
	}

	c.history = append(c.history, HistoryRecord{
		Day:                c.day,
		Overall:            out.Overall,
		Severity:           out.Severity,
		Dominant:           out.Dominant,
		ActiveInteractions: len(out.ActiveInteractions),
	})

	if c.log.Enabled(context.Background(), logging.LevelTrace) {
		for _, resp := range out.Processes {
			c.log.Log(context.Background(), logging.LevelTrace, "process response",
				"day", c.day,
				"process", resp.Process.String(),
				"combined", resp.Combined,
				"limiting", resp.Limiting,
			)
		}
	}
	return out
}

// dominant ranks types by (1 - acute) * weight, highest first.
func (c *Coordinator) dominant() []stresskind.StressType {
	types := stresskind.AllStressTypes()
	impact := func(st stresskind.StressType) float64 {
		return (1 - c.states[st].Acute) * c.params.Weights[st]
	}
	sort.SliceStable(types, func(i, j int) bool {
		return impact(types[i]) > impact(types[j])
	})
	return types[:maxDominant]
}

// limiting returns up to three types with an effect below 0.8, most limiting
// first.
func limiting(effects map[stresskind.StressType]float64) []stresskind.StressType {
	var out []stresskind.StressType
	for _, st := range stresskind.AllStressTypes() {
		if v, ok := effects[st]; ok && v < limitingCutoff {
			out = append(out, st)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return effects[out[i]] < effects[out[j]]
	})
	if len(out) > maxLimiting {
		out = out[:maxLimiting]
	}
	return out
}

func sumValues(v *stresskind.StressValues) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

// History returns a copy of the run history.
func (c *Coordinator) History() []HistoryRecord {
	out := make([]HistoryRecord, len(c.history))
	copy(out, c.history)
	return out
}

// TypeSummary is one row of Summary.
type TypeSummary struct {
	CurrentLevel    float64 `json:"current_level"`
	Acute           float64 `json:"acute_stress"`
	Chronic         float64 `json:"chronic_stress"`
	DaysUnderStress int     `json:"days_under_stress"`
}

type Summary struct {
	Current          map[stresskind.StressType]TypeSummary `json:"current_stresses"`
	Acclimation      map[stresskind.StressType]float64     `json:"acclimation_status"`
	CumulativeDamage map[stresskind.StressType]float64     `json:"cumulative_damage"`
	TotalDamage      float64                               `json:"total_damage"`
	HistoryLength    int                                   `json:"stress_history_length"`
}

func (c *Coordinator) Summary() Summary {
	out := Summary{
		Current:          map[stresskind.StressType]TypeSummary{},
		Acclimation:      map[stresskind.StressType]float64{},
		CumulativeDamage: map[stresskind.StressType]float64{},
		HistoryLength:    len(c.history),
	}
	for _, st := range stresskind.AllStressTypes() {
		s := c.states[st]
		out.Current[st] = TypeSummary{
			CurrentLevel:    s.CurrentLevel,
			Acute:           s.Acute,
			Chronic:         s.Chronic,
			DaysUnderStress: s.DaysUnderStress,
		}
		out.Acclimation[st] = s.Acclimation
		out.CumulativeDamage[st] = c.cumulative[st]
		out.TotalDamage += c.cumulative[st]
	}
	return out
}
