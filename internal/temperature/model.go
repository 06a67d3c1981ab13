package temperature

import (
	"context"
	"log/slog"
	"math"

	"github.com/appengine-ltd/hydrostress/internal/config"
	"github.com/appengine-ltd/hydrostress/internal/logging"
	"github.com/appengine-ltd/hydrostress/internal/numeric"
)

// DefaultExposureHours is the exposure assumed for one daily update.
const DefaultExposureHours = 24.0

// Response is the outcome of one daily update.
type Response struct {
	Temperature          float64          `json:"temperature_c"`
	Zone                 Zone             `json:"stress_type"`
	StressLevel          float64          `json:"stress_level"`
	Factors              ProcessFactors   `json:"process_factors"`
	Acclimation          AcclimationState `json:"acclimation_state"`
	Damage               Damage           `json:"damage_state"`
	TemperatureDeviation float64          `json:"temperature_deviation"`
	StressDuration       float64          `json:"stress_duration_hours"`
	MemoryEffect         float64          `json:"memory_effect"`
}

// Model owns one plant's temperature stress state. It is not safe for
// concurrent use; each plant gets its own Model.
type Model struct {
	params      config.TemperatureParams
	acclimation Acclimation
	damage      Damage
	stress      *numeric.Ring[float64]

	duration float64
	last     float64
	hasLast  bool
	log      *slog.Logger
}

func NewModel(p config.TemperatureParams, log *slog.Logger) *Model {
	return &Model{
		params:      p,
		acclimation: newAcclimation(p.MaxAcclimationDays),
		stress:      numeric.NewRing[float64](p.StressMemoryDuration),
		log:         logging.OrDiscard(log),
	}
}

func (m *Model) Params() config.TemperatureParams {
	return m.params
}

func (m *Model) Classify(t float64) Zone {
	return Classify(m.params, t)
}

func (m *Model) BaseStress(t float64, z Zone) float64 {
	return BaseStress(m.params, t, z)
}

// MemoryEffect is the recency-weighted mean of recent final stress levels
// scaled by memory_effect_strength.
func (m *Model) MemoryEffect() float64 {
	return numeric.LinearRecencyAverage(m.stress.Values()) * m.params.MemoryEffectStrength
}

// DailyUpdate advances the model by one day at temperature t. hours is the
// exposure duration; values <= 0 mean a full day.
func (m *Model) DailyUpdate(t, hours float64) Response {
	if hours <= 0 || math.IsNaN(hours) {
		hours = DefaultExposureHours
	}
	p := m.params

	zone := Classify(p, t)
	base := BaseStress(p, t, zone)

	m.acclimation.update(p, t, zone)
	adjusted := m.acclimation.apply(p, base, zone)

	// Memory only carries over while the plant is outside the optimal band.
	var memory float64
	if zone != ZoneOptimal {
		memory = m.MemoryEffect()
	}
	final := numeric.Clamp01(adjusted + memory)

	if m.hasLast && math.Abs(t-m.last) < p.DurationTolerance {
		m.duration += hours
	} else {
		m.duration = hours
	}

	factors := m.damage.discount(p, Factors(p, final, zone))
	m.damage.update(p, final, zone, hours)
	m.stress.Push(final)
	m.last, m.hasLast = t, true

	m.log.Log(context.Background(), logging.LevelTrace, "temperature stress",
		"temperature", t,
		"zone", zone.String(),
		"base", base,
		"stress", final,
		"overall", factors.Overall,
	)

	return Response{
		Temperature:          t,
		Zone:                 zone,
		StressLevel:          final,
		Factors:              factors,
		Acclimation:          m.acclimation.snapshot(),
		Damage:               m.damage,
		TemperatureDeviation: Deviation(p, t, zone),
		StressDuration:       m.duration,
		MemoryEffect:         memory,
	}
}

// Summary reports the model's running state.
type Summary struct {
	HeatAcclimation     float64 `json:"current_heat_acclimation"`
	ColdAcclimation     float64 `json:"current_cold_acclimation"`
	HeatDamage          float64 `json:"cumulative_heat_damage"`
	ColdDamage          float64 `json:"cumulative_cold_damage"`
	FrostDamage         float64 `json:"cumulative_frost_damage"`
	HistoryLength       int     `json:"stress_history_length"`
	AverageRecentStress float64 `json:"average_recent_stress"`
	RecoveryRate        float64 `json:"recovery_rate"`
	StressDurationHours float64 `json:"stress_duration_hours"`
}

const recentStressWindow = 7

func (m *Model) Summary() Summary {
	values := m.stress.Values()
	if len(values) > recentStressWindow {
		values = values[len(values)-recentStressWindow:]
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Summary{
		HeatAcclimation:     m.acclimation.Heat,
		ColdAcclimation:     m.acclimation.Cold,
		HeatDamage:          m.damage.Heat,
		ColdDamage:          m.damage.Cold,
		FrostDamage:         m.damage.Frost,
		HistoryLength:       m.stress.Len(),
		AverageRecentStress: sum / float64(max(recentStressWindow, m.stress.Len())),
		RecoveryRate:        m.damage.RecoveryRate,
		StressDurationHours: m.duration,
	}
}
