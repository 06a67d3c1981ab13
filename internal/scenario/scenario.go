// Package scenario describes day-by-day growing schedules and expands them
// into engine inputs.
package scenario

import (
	"errors"
	"fmt"
	"math"

	"github.com/appengine-ltd/hydrostress/internal/engine"
	"github.com/appengine-ltd/hydrostress/internal/envstress"
	"github.com/appengine-ltd/hydrostress/internal/numeric"
)

var ErrInvalidScenario = errors.New("invalid scenario")

type ID string

type Scenario struct {
	ID          ID        `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Jitter      Jitter    `yaml:"jitter,omitempty"`
	Segments    []Segment `yaml:"segments"`
}

// Segment holds conditions constant for Days days. TemperatureC is
// required.
type Segment struct {
	Days         int                `yaml:"days"`
	TemperatureC *float64           `yaml:"temperature_c"`
	RootTempC    *float64           `yaml:"root_temp_c,omitempty"`
	Hours        float64            `yaml:"hours,omitempty"`
	Levels       map[string]float64 `yaml:"levels,omitempty"`
	Readings     envstress.Readings `yaml:"readings,omitempty"`
}

// Jitter is the half-width of uniform noise added to each day.
type Jitter struct {
	TemperatureC float64 `yaml:"temperature_c,omitempty"`
	Level        float64 `yaml:"level,omitempty"`
}

func (j Jitter) zero() bool {
	return j.TemperatureC == 0 && j.Level == 0
}

func (s Scenario) Days() int {
	n := 0
	for _, seg := range s.Segments {
		n += seg.Days
	}
	return n
}

func (s Scenario) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidScenario)
	}
	if len(s.Segments) == 0 {
		return fmt.Errorf("%w: %s has no segments", ErrInvalidScenario, s.ID)
	}
	if s.Jitter.TemperatureC < 0 || s.Jitter.Level < 0 {
		return fmt.Errorf("%w: %s jitter must be >= 0", ErrInvalidScenario, s.ID)
	}
	for i, seg := range s.Segments {
		if seg.Days <= 0 {
			return fmt.Errorf("%w: %s segment %d must last at least one day", ErrInvalidScenario, s.ID, i+1)
		}
		if seg.TemperatureC == nil {
			return fmt.Errorf("%w: %s segment %d is missing temperature_c", ErrInvalidScenario, s.ID, i+1)
		}
		if t := *seg.TemperatureC; math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: %s segment %d temperature_c is not finite", ErrInvalidScenario, s.ID, i+1)
		}
	}
	return nil
}

// Inputs expands the segments into one input per day. The same seed always
// produces the same noise. Segments without a temperature give a NaN air
// temperature, which the engine reports and skips.
func (s Scenario) Inputs(seed int64) []engine.Input {
	out := make([]engine.Input, 0, s.Days())
	rng := seededRNG(seed, string(s.ID))
	noise := func(half float64) float64 {
		if half == 0 {
			return 0
		}
		return (rng.Float64()*2 - 1) * half
	}

	for _, seg := range s.Segments {
		for d := 0; d < seg.Days; d++ {
			in := engine.Input{
				Temperature: math.NaN(),
				Hours:       seg.Hours,
				Readings:    seg.Readings,
			}
			if seg.TemperatureC != nil {
				in.Temperature = *seg.TemperatureC
			}
			if seg.RootTempC != nil {
				rt := *seg.RootTempC
				in.RootTemperature = &rt
			}
			if len(seg.Levels) > 0 {
				in.Levels = make(map[string]float64, len(seg.Levels))
				for _, k := range sortedKeys(seg.Levels) {
					in.Levels[k] = seg.Levels[k]
				}
			}
			if !s.Jitter.zero() {
				in.Temperature += noise(s.Jitter.TemperatureC)
				for _, k := range sortedKeys(in.Levels) {
					in.Levels[k] = numeric.Clamp01(in.Levels[k] + noise(s.Jitter.Level))
				}
			}
			out = append(out, in)
		}
	}
	return out
}
