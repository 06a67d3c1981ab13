package main

import (
	"strings"
	"testing"

	"github.com/appengine-ltd/hydrostress/internal/config"
)

func TestGenerateAllCoversSections(t *testing.T) {
	files := generateAll(config.Default())
	want := map[string]string{
		"temperature.md":  "| optimal_temp_min | 18 |",
		"stress_types.md": "| water | 0.25 | 3 | 0.3 | 0.1 | 0.8 | 0.3 |",
		"sensitivity.md":  "| photosynthesis |",
		"interactions.md": "| water_temperature | synergistic | 1.3 |",
		"environment.md":  "| ec_threshold | 1.8 |",
		"limits.md":       "| max_temperature | 60 |",
		"scenarios.md":    "| cold_snap |",
	}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %d", len(want), len(files))
	}
	for _, f := range files {
		row, ok := want[f.Name]
		if !ok {
			t.Fatalf("unexpected file %s", f.Name)
		}
		if !strings.Contains(f.Content, row) {
			t.Fatalf("%s: expected %q in\n%s", f.Name, row, f.Content)
		}
	}

	index := generateIndex(files)
	if !strings.Contains(index, "- [Scenarios](./scenarios.md)") {
		t.Fatalf("expected index entry, got %q", index)
	}
}

func TestEscape(t *testing.T) {
	if got := escape(" a|b\nc "); got != "a\\|b<br>c" {
		t.Fatalf("expected escaped cell, got %q", got)
	}
}
