package scenario

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/hydrostress/internal/parser"
)

// Catalogue resolves scenarios by id, with typo suggestions.
type Catalogue struct {
	byID  map[ID]Scenario
	order []ID
	names *parser.Registry
}

func NewCatalogue(scenarios ...Scenario) (*Catalogue, error) {
	c := &Catalogue{byID: map[ID]Scenario{}, names: parser.NewRegistry()}
	for _, s := range scenarios {
		if err := c.Add(s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add registers s, replacing nothing: duplicate ids are an error.
func (c *Catalogue) Add(s Scenario) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if _, ok := c.byID[s.ID]; ok {
		return fmt.Errorf("%w: duplicate id %s", ErrInvalidScenario, s.ID)
	}
	c.byID[s.ID] = s
	c.order = append(c.order, s.ID)
	c.names.Register(parser.NameDef{Canonical: string(s.ID), Aliases: []string{s.Name}})
	return nil
}

// All returns scenarios in insertion order.
func (c *Catalogue) All() []Scenario {
	out := make([]Scenario, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *Catalogue) IDs() []ID {
	out := append([]ID(nil), c.order...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Lookup accepts ids and names in any case or separator style.
func (c *Catalogue) Lookup(raw string) (Scenario, error) {
	m := c.names.Resolve(raw)
	if !m.Resolved() {
		if m.Suggestion != "" {
			return Scenario{}, fmt.Errorf("unknown scenario %q (did you mean %q?)", raw, m.Suggestion)
		}
		return Scenario{}, fmt.Errorf("unknown scenario %q", raw)
	}
	return c.byID[ID(m.Canonical)], nil
}

type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadFile reads a YAML file holding either one scenario or a
// "scenarios:" list.
func LoadFile(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) ([]Scenario, error) {
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if len(f.Scenarios) == 0 {
		var one Scenario
		if err := yaml.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
		f.Scenarios = []Scenario{one}
	}
	for _, s := range f.Scenarios {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Scenarios, nil
}

// Marshal encodes scenarios in the format Parse reads.
func Marshal(scenarios []Scenario) ([]byte, error) {
	return yaml.Marshal(scenarioFile{Scenarios: scenarios})
}
