package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/hydrostress/internal/engine"
	"github.com/appengine-ltd/hydrostress/internal/scenario"
	"github.com/appengine-ltd/hydrostress/internal/stresskind"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		file    string
		seed    int64
		workers int
		daily   bool
	)
	cmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Simulate scenarios and report the stress outcome",
		Long: `Run one or more scenarios, each on its own plant, in parallel.

With no arguments every scenario (built-in, or from --file) is run.
Scenario names accept any case and separator style.

Examples:
  hydrostress run heat_acclimation
  hydrostress run "cold snap" frost_night --daily
  hydrostress run --file greenhouse.yaml --seed 7 --json`,
		ValidArgsFunction: completeScenarioIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			scenarios, err := selectScenarios(file, args)
			if err != nil {
				return err
			}

			jobs := make([]engine.Job, len(scenarios))
			for i, s := range scenarios {
				jobs[i] = engine.Job{Name: string(s.ID), Inputs: s.Inputs(seed)}
			}
			batch := engine.Batch{Config: cfg, Workers: workers, Log: a.logger(cmd)}
			results, err := batch.Run(cmd.Context(), jobs)
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			if daily {
				if err := writeDaily(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			}
			return writeSummary(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML scenario file")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for scenario jitter")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel plants (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&daily, "daily", false, "print one row per simulated day")
	return cmd
}

func selectScenarios(file string, names []string) ([]scenario.Scenario, error) {
	var (
		cat *scenario.Catalogue
		err error
	)
	if file != "" {
		loaded, lerr := scenario.LoadFile(file)
		if lerr != nil {
			return nil, fmt.Errorf("load scenarios: %w", lerr)
		}
		cat, err = scenario.NewCatalogue(loaded...)
	} else {
		cat, err = scenario.BuiltInCatalogue()
	}
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return cat.All(), nil
	}

	out := make([]scenario.Scenario, 0, len(names))
	for _, name := range names {
		s, err := cat.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func writeSummary(w io.Writer, results []engine.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tDAYS\tOVERALL\tSEVERITY\tDOMINANT\tHEAT DMG\tCOLD DMG\tFROST DMG\tISSUES")
	for _, r := range results {
		final, ok := r.Final()
		if !ok {
			fmt.Fprintf(tw, "%s\t0\t-\t-\t-\t-\t-\t-\t0\n", r.Name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%s\t%s\t%.4f\t%.4f\t%.4f\t%d\n",
			r.Name,
			len(r.Days),
			final.Stress.Overall,
			final.Stress.Severity,
			joinTypes(final.Stress.Dominant),
			r.Temperature.HeatDamage,
			r.Temperature.ColdDamage,
			r.Temperature.FrostDamage,
			countIssues(r.Days),
		)
	}
	return tw.Flush()
}

func writeDaily(w io.Writer, results []engine.Result) error {
	for _, r := range results {
		fmt.Fprintf(w, "== %s (%s)\n", r.Name, r.PlantID)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DAY\tTEMP C\tZONE\tTEMP STRESS\tOVERALL\tSEVERITY\tLIMITING\tISSUES")
		for _, d := range r.Days {
			temp, zone, level := "-", "-", "-"
			if d.Temperature != nil {
				temp = fmt.Sprintf("%.1f", d.Temperature.Temperature)
				zone = d.Temperature.Zone.String()
				level = fmt.Sprintf("%.3f", d.Temperature.StressLevel)
			}
			var limiting []stresskind.StressType
			if len(d.Stress.Processes) > 0 {
				limiting = d.Stress.Processes[0].Limiting
			}
			issues := make([]string, 0, len(d.Issues))
			for _, i := range d.Issues {
				issues = append(issues, i.String())
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.3f\t%s\t%s\t%s\n",
				d.Day, temp, zone, level,
				d.Stress.Overall,
				d.Stress.Severity,
				joinTypes(limiting),
				strings.Join(issues, "; "),
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

func joinTypes(types []stresskind.StressType) string {
	if len(types) == 0 {
		return "-"
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}

func countIssues(days []engine.DayResult) int {
	n := 0
	for _, d := range days {
		n += len(d.Issues)
	}
	return n
}
