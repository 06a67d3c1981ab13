// Package engine drives one plant's temperature model and stress coordinator
// through a daily schedule, and runs independent plants in parallel.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/appengine-ltd/hydrostress/internal/config"
	"github.com/appengine-ltd/hydrostress/internal/envstress"
	"github.com/appengine-ltd/hydrostress/internal/logging"
	"github.com/appengine-ltd/hydrostress/internal/numeric"
	"github.com/appengine-ltd/hydrostress/internal/parser"
	"github.com/appengine-ltd/hydrostress/internal/stress"
	"github.com/appengine-ltd/hydrostress/internal/stresskind"
	"github.com/appengine-ltd/hydrostress/internal/temperature"
)

// Input is one day of raw conditions. Level keys are resolved by name, so
// "pH", "nitrogen" and "dissolved oxygen" are all accepted. Explicit levels
// override levels derived from Readings.
type Input struct {
	Temperature     float64            `json:"temperature_c" yaml:"temperature_c"`
	RootTemperature *float64           `json:"root_temp_c,omitempty" yaml:"root_temp_c,omitempty"`
	Hours           float64            `json:"hours,omitempty" yaml:"hours,omitempty"`
	Levels          map[string]float64 `json:"levels,omitempty" yaml:"levels,omitempty"`
	Readings        envstress.Readings `json:"readings,omitempty" yaml:"readings,omitempty"`
}

// DayResult is everything produced for one simulated day. Temperature is nil
// when the day's air temperature was unusable.
type DayResult struct {
	Day         int                               `json:"day"`
	Temperature *temperature.Response             `json:"temperature,omitempty"`
	Stress      stress.IntegratedResponse         `json:"stress"`
	Applied     map[stresskind.StressType]float64 `json:"applied_levels"`
	Issues      []InputIssue                      `json:"issues,omitempty"`
}

// Plant owns the models for one plant. It is not safe for concurrent use.
type Plant struct {
	ID   uuid.UUID
	Name string

	cfg   config.Config
	temp  *temperature.Model
	coord *stress.Coordinator
	day   int
	log   *slog.Logger
}

// NewPlant validates cfg and builds fresh models.
func NewPlant(name string, cfg config.Config, log *slog.Logger) (*Plant, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("plant %q: %w", name, err)
	}
	id := uuid.New()
	log = logging.OrDiscard(log).With("plant", name, "plant_id", id.String()[:8])
	return &Plant{
		ID:    id,
		Name:  name,
		cfg:   cfg,
		temp:  temperature.NewModel(cfg.Temperature, log),
		coord: stress.NewCoordinator(cfg.Coordinator, log),
		log:   log,
	}, nil
}

func (p *Plant) Day() int {
	return p.day
}

func (p *Plant) TemperatureSummary() temperature.Summary {
	return p.temp.Summary()
}

func (p *Plant) StressSummary() stress.Summary {
	return p.coord.Summary()
}

// Step simulates one day.
func (p *Plant) Step(in Input) DayResult {
	p.day++
	res := DayResult{Day: p.day}
	levels := stress.Levels{}

	for st, v := range envstress.Levels(p.cfg.Environment, in.Readings) {
		levels[st] = v
	}
	p.explicitLevels(in.Levels, levels, &res)

	if t, ok := p.temperatureInput("temperature_c", in.Temperature, &res); ok {
		tr := p.temp.DailyUpdate(t, in.Hours)
		res.Temperature = &tr
		level := tr.Factors.Overall
		if in.RootTemperature != nil {
			if rt, ok := p.temperatureInput("root_temp_c", *in.RootTemperature, &res); ok {
				level = math.Min(level, envstress.RootTemperature(p.cfg.Environment, rt))
			}
		}
		levels[stresskind.Temperature] = level
	}

	res.Stress = p.coord.DailyUpdate(levels)
	res.Applied = map[stresskind.StressType]float64{}
	for st, v := range levels {
		res.Applied[st] = v
	}

	p.log.Debug("daily stress",
		"day", p.day,
		"overall", res.Stress.Overall,
		"severity", res.Stress.Severity.String(),
		"dominant", res.Stress.Dominant,
	)
	return res
}

// Run steps through inputs in order, stopping early if ctx is cancelled.
func (p *Plant) Run(ctx context.Context, inputs []Input) ([]DayResult, error) {
	out := make([]DayResult, 0, len(inputs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("plant %q stopped at day %d: %w", p.Name, p.day, err)
		}
		out = append(out, p.Step(in))
	}
	return out, nil
}

func (p *Plant) explicitLevels(raw map[string]float64, levels stress.Levels, res *DayResult) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := raw[key]
		st, m, ok := parser.ParseStressType(key)
		if !ok {
			p.issue(res, InputIssue{Kind: IssueUnknownType, Key: key, Raw: v, Suggestion: m.Suggestion})
			continue
		}
		if st == stresskind.Temperature {
			// The temperature slot is always derived from the air and root readings.
			p.issue(res, InputIssue{Kind: IssueIgnored, Key: key, Raw: v})
			continue
		}
		if math.IsNaN(v) {
			p.issue(res, InputIssue{Kind: IssueNotANumber, Key: key})
			delete(levels, st)
			continue
		}
		clamped := numeric.Clamp01(v)
		if clamped != v {
			p.issue(res, InputIssue{Kind: IssueOutOfRange, Key: key, Raw: v, Applied: clamped})
		}
		levels[st] = clamped
	}
}

func (p *Plant) temperatureInput(key string, t float64, res *DayResult) (float64, bool) {
	if math.IsNaN(t) {
		p.issue(res, InputIssue{Kind: IssueNotANumber, Key: key})
		return 0, false
	}
	lim := p.cfg.Limits
	clamped := numeric.Clamp(t, lim.MinTemperature, lim.MaxTemperature)
	if clamped != t {
		p.issue(res, InputIssue{Kind: IssueOutOfRange, Key: key, Raw: t, Applied: clamped})
	}
	return clamped, true
}

// issue records i on the day and logs it as a warning.
func (p *Plant) issue(res *DayResult, i InputIssue) {
	res.Issues = append(res.Issues, i)
	p.log.Warn(i.message(), "day", p.day, "key", i.Key, "issue", i.String())
}
