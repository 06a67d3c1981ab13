package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/appengine-ltd/hydrostress/internal/config"
	"github.com/appengine-ltd/hydrostress/internal/scenario"
	"github.com/appengine-ltd/hydrostress/internal/stresskind"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	root := flag.String("out", filepath.Join("docs", "reference"), "output directory")
	flag.Parse()

	if err := os.MkdirAll(*root, 0o755); err != nil {
		fatal(err)
	}

	files := generateAll(config.Default())
	for _, f := range files {
		path := filepath.Join(*root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	index := generateIndex(files)
	indexPath := filepath.Join(*root, "README.md")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", indexPath)
}

func generateAll(cfg config.Config) []docFile {
	m := config.ToMap(cfg)
	return []docFile{
		generateSectionDoc("temperature.md", "Temperature Stress", config.SectionTemperature, m),
		generateTypeTablesDoc(cfg.Coordinator),
		generateSensitivityDoc(cfg.Coordinator),
		generateInteractionsDoc(cfg.Coordinator),
		generateSectionDoc("environment.md", "Environment Conversion", config.SectionEnvironment, m),
		generateSectionDoc("limits.md", "Input Limits", config.SectionLimits, m),
		generateScenariosDoc(),
	}
}

func generateIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Default Parameters\n\n")
	b.WriteString("Generated from the current Go source using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

// generateSectionDoc lists the scalar keys of one config section.
func generateSectionDoc(name, title, section string, m map[string]any) docFile {
	values, _ := m[section].(map[string]any)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	b.WriteString(fmt.Sprintf("Config section: `%s`.\n\n", section))
	b.WriteString("| Key | Default |\n")
	b.WriteString("| --- | --- |\n")
	for _, k := range keys {
		b.WriteString("| ")
		b.WriteString(escape(k))
		b.WriteString(" | ")
		b.WriteString(formatValue(values[k]))
		b.WriteString(" |\n")
	}
	return docFile{Name: name, Title: title, Content: b.String()}
}

func generateTypeTablesDoc(p config.CoordinatorParams) docFile {
	var b strings.Builder
	b.WriteString("# Stress Types\n\n")
	b.WriteString(fmt.Sprintf("Config section: `%s`.\n\n", config.SectionCoordinator))
	b.WriteString("| Stress | Weight | Memory (days) | Recovery | Acclimation | Onset | Damage |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
	for _, st := range stresskind.AllStressTypes() {
		b.WriteString("| ")
		b.WriteString(st.String())
		b.WriteString(" | ")
		b.WriteString(formatFloat(p.Weights[st]))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(p.Memory[st]))
		b.WriteString(" | ")
		b.WriteString(formatFloat(p.RecoveryRates[st]))
		b.WriteString(" | ")
		b.WriteString(formatFloat(p.AcclimationRates[st]))
		b.WriteString(" | ")
		b.WriteString(formatFloat(p.OnsetThresholds[st]))
		b.WriteString(" | ")
		b.WriteString(formatFloat(p.DamageThresholds[st]))
		b.WriteString(" |\n")
	}
	return docFile{Name: "stress_types.md", Title: "Stress Types", Content: b.String()}
}

func generateSensitivityDoc(p config.CoordinatorParams) docFile {
	var b strings.Builder
	b.WriteString("# Process Sensitivity\n\n")
	b.WriteString(fmt.Sprintf("Evaluated processes: **%d**.\n\n", len(p.Processes)))
	b.WriteString("| Process |")
	sep := "| --- |"
	for _, st := range stresskind.AllStressTypes() {
		b.WriteString(" " + st.String() + " |")
		sep += " --- |"
	}
	b.WriteString("\n" + sep + "\n")
	for _, proc := range p.Processes {
		b.WriteString("| ")
		b.WriteString(proc.String())
		b.WriteString(" |")
		for _, st := range stresskind.AllStressTypes() {
			b.WriteString(" " + formatFloat(p.Sensitivity[proc][st]) + " |")
		}
		b.WriteString("\n")
	}
	return docFile{Name: "sensitivity.md", Title: "Process Sensitivity", Content: b.String()}
}

func generateInteractionsDoc(p config.CoordinatorParams) docFile {
	var b strings.Builder
	b.WriteString("# Stress Interactions\n\n")
	b.WriteString(fmt.Sprintf("Total rules: **%d**.\n\n", len(p.Interactions)))
	b.WriteString("| Pair | Kind | Factor |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, r := range p.Interactions {
		b.WriteString("| ")
		b.WriteString(r.Pair.Key())
		b.WriteString(" | ")
		b.WriteString(string(r.Kind))
		b.WriteString(" | ")
		b.WriteString(formatFloat(r.Factor))
		b.WriteString(" |\n")
	}
	return docFile{Name: "interactions.md", Title: "Stress Interactions", Content: b.String()}
}

func generateScenariosDoc() docFile {
	items := scenario.BuiltIn()
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	var b strings.Builder
	b.WriteString("# Scenarios\n\n")
	b.WriteString("Source: `internal/scenario/builtin.go` (`BuiltIn`).\n\n")
	b.WriteString(fmt.Sprintf("Total built-in scenarios: **%d**.\n\n", len(items)))
	b.WriteString("| ID | Name | Days | Segments | Jitter | Description |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, s := range items {
		b.WriteString("| ")
		b.WriteString(escape(string(s.ID)))
		b.WriteString(" | ")
		b.WriteString(escape(s.Name))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(s.Days()))
		b.WriteString(" | ")
		b.WriteString(escape(formatSegments(s.Segments)))
		b.WriteString(" | ")
		b.WriteString(formatJitter(s.Jitter))
		b.WriteString(" | ")
		b.WriteString(escape(s.Description))
		b.WriteString(" |\n")
	}
	return docFile{Name: "scenarios.md", Title: "Scenarios", Content: b.String()}
}

func formatSegments(segs []scenario.Segment) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		temp := "?"
		if s.TemperatureC != nil {
			temp = formatFloat(*s.TemperatureC)
		}
		part := fmt.Sprintf("%dd @ %s°C", s.Days, temp)
		if s.RootTempC != nil {
			part += fmt.Sprintf(" (root %s°C)", formatFloat(*s.RootTempC))
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

func formatJitter(j scenario.Jitter) string {
	if j.TemperatureC == 0 && j.Level == 0 {
		return "none"
	}
	return fmt.Sprintf("±%s°C, ±%s level", formatFloat(j.TemperatureC), formatFloat(j.Level))
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return formatFloat(x)
	case int:
		return strconv.Itoa(x)
	default:
		return escape(fmt.Sprint(x))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
