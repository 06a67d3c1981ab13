package stress

import (
	"github.com/appengine-ltd/hydrostress/internal/numeric"
	"github.com/appengine-ltd/hydrostress/internal/stresskind"
)

// State is the running record for one stress type. Levels follow the
// 1 = optimal convention; Acute and Chronic are factors (1 = no effect).
type State struct {
	Type             stresskind.StressType
	CurrentLevel     float64
	Acute            float64
	Chronic          float64
	Acclimation      float64
	Damage           float64
	RecoveryProgress float64
	DaysUnderStress  int

	history *numeric.Ring[float64]
}

func newState(t stresskind.StressType, memory int) State {
	return State{
		Type:         t,
		CurrentLevel: 1,
		Acute:        1,
		Chronic:      1,
		history:      numeric.NewRing[float64](memory),
	}
}

// StateSnapshot is a detached copy of a State.
type StateSnapshot struct {
	Type             stresskind.StressType `json:"stress_type"`
	CurrentLevel     float64               `json:"current_level"`
	Acute            float64               `json:"acute_stress"`
	Chronic          float64               `json:"chronic_stress"`
	Acclimation      float64               `json:"acclimation_level"`
	Damage           float64               `json:"damage_level"`
	RecoveryProgress float64               `json:"recovery_progress"`
	DaysUnderStress  int                   `json:"days_under_stress"`
	History          []float64             `json:"stress_history"`
}

func (s State) snapshot() StateSnapshot {
	return StateSnapshot{
		Type:             s.Type,
		CurrentLevel:     s.CurrentLevel,
		Acute:            s.Acute,
		Chronic:          s.Chronic,
		Acclimation:      s.Acclimation,
		Damage:           s.Damage,
		RecoveryProgress: s.RecoveryProgress,
		DaysUnderStress:  s.DaysUnderStress,
		History:          s.history.Values(),
	}
}
