package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/appengine-ltd/hydrostress/internal/config"
	"github.com/appengine-ltd/hydrostress/internal/logging"
	"github.com/appengine-ltd/hydrostress/internal/stress"
	"github.com/appengine-ltd/hydrostress/internal/temperature"
)

// Job is one independent plant schedule.
type Job struct {
	Name   string
	Inputs []Input
}

type Result struct {
	Name        string              `json:"name"`
	PlantID     string              `json:"plant_id"`
	Days        []DayResult         `json:"days"`
	Temperature temperature.Summary `json:"temperature_summary"`
	Stress      stress.Summary      `json:"stress_summary"`
}

// Final is the last day's result, or false for an empty run.
func (r Result) Final() (DayResult, bool) {
	if len(r.Days) == 0 {
		return DayResult{}, false
	}
	return r.Days[len(r.Days)-1], true
}

// Batch runs jobs concurrently, each on its own Plant. Workers <= 0 uses
// GOMAXPROCS.
type Batch struct {
	Config  config.Config
	Workers int
	Log     *slog.Logger
}

// Run returns results in job order. The first failure cancels the rest.
func (b Batch) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	if err := config.Validate(b.Config); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := logging.OrDiscard(b.Log)

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			plant, err := NewPlant(job.Name, b.Config, log)
			if err != nil {
				return err
			}
			days, err := plant.Run(ctx, job.Inputs)
			if err != nil {
				return err
			}
			results[i] = Result{
				Name:        job.Name,
				PlantID:     plant.ID.String(),
				Days:        days,
				Temperature: plant.TemperatureSummary(),
				Stress:      plant.StressSummary(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info("batch complete", "jobs", len(jobs), "workers", workers)
	return results, nil
}
