package stress

import "github.com/appengine-ltd/hydrostress/internal/stresskind"

// Response is the stress response of one process for one day.
type Response struct {
	Process            stresskind.ProcessType            `json:"process_type"`
	Individual         map[stresskind.StressType]float64 `json:"individual_stress_effects"`
	Combined           float64                           `json:"combined_stress_factor"`
	Interactions       map[string]float64                `json:"interaction_effects"`
	AcclimationBenefit map[stresskind.StressType]float64 `json:"acclimation_benefits"`
	Recovery           map[stresskind.StressType]float64 `json:"recovery_effects"`
	Damage             map[stresskind.StressType]float64 `json:"damage_effects"`
	Limiting           []stresskind.StressType           `json:"limiting_stress_types"`
}

// IntegratedResponse is the coordinator's daily result.
type IntegratedResponse struct {
	Day                int                                      `json:"day"`
	States             [stresskind.NumStressTypes]StateSnapshot `json:"stress_states"`
	Processes          []Response                               `json:"process_responses"`
	Overall            float64                                  `json:"overall_stress_factor"`
	Severity           Severity                                 `json:"stress_severity"`
	Dominant           []stresskind.StressType                  `json:"dominant_stresses"`
	ActiveInteractions []string                                 `json:"stress_interactions_active"`
	Acclimating        []stresskind.StressType                  `json:"acclimation_active"`
	Recovering         []stresskind.StressType                  `json:"recovery_active"`
}

// Process returns the response for p, if p was evaluated.
func (r IntegratedResponse) Process(p stresskind.ProcessType) (Response, bool) {
	for _, resp := range r.Processes {
		if resp.Process == p {
			return resp, true
		}
	}
	return Response{}, false
}

// HistoryRecord is the per-day entry kept in the coordinator's run history.
type HistoryRecord struct {
	Day                int                     `json:"day"`
	Overall            float64                 `json:"overall_stress_factor"`
	Severity           Severity                `json:"severity"`
	Dominant           []stresskind.StressType `json:"dominant_stresses"`
	ActiveInteractions int                     `json:"active_interactions"`
}
