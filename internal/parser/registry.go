package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type namePhrase struct {
	canonical string
	alias     string
}

type Registry struct {
	names   map[string]NameDef
	phrases []namePhrase
}

func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]NameDef),
	}
}

func (r *Registry) Register(def NameDef) {
	canonical := strings.TrimSpace(def.Canonical)
	if canonical == "" {
		return
	}
	def.Canonical = canonical
	r.names[canonical] = def

	r.phrases = append(r.phrases, namePhrase{
		canonical: canonical,
		alias:     normaliseInput(canonical),
	})
	for _, a := range def.Aliases {
		n := normaliseInput(a)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, namePhrase{
			canonical: canonical,
			alias:     n,
		})
	}
}

// Canonicals lists the registered canonical names in sorted order.
func (r *Registry) Canonicals() []string {
	out := make([]string, 0, len(r.names))
	for name := range r.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type nameCandidate struct {
	Canonical string
	Score     float64
	Source    MatchSource
}

// Resolve maps a raw key onto a canonical name. Exact and alias matches
// resolve; the best prefix or fuzzy candidate is only offered as a suggestion.
func (r *Registry) Resolve(raw string) Match {
	m := Match{Raw: raw, Normalised: normaliseInput(raw)}
	if m.Normalised == "" {
		return m
	}

	cands := r.candidates(m.Normalised)
	if len(cands) == 0 {
		return m
	}
	best := cands[0]
	switch best.Source {
	case SourceExact, SourceAlias:
		m.Canonical = best.Canonical
		m.Score = best.Score
		m.Source = best.Source
	default:
		m.Score = best.Score
		m.Suggestion = best.Canonical
	}
	return m
}

func (r *Registry) candidates(in string) []nameCandidate {
	cands := make([]nameCandidate, 0, 4)
	for _, phrase := range r.phrases {
		if in == phrase.alias {
			score := 1.0
			source := SourceExact
			if phrase.alias != normaliseInput(phrase.canonical) {
				score = 0.97
				source = SourceAlias
			}
			cands = append(cands, nameCandidate{Canonical: phrase.canonical, Score: score, Source: source})
			continue
		}

		if len(in) >= 3 && strings.HasPrefix(phrase.alias, in) {
			cands = append(cands, nameCandidate{Canonical: phrase.canonical, Score: 0.9, Source: SourcePrefix})
			continue
		}

		// Fuzzy: only when there was no exact/prefix hit for this phrase.
		if len(in) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(in, phrase.alias)
		if dist > levenshteinLimit(len(phrase.alias)) {
			continue
		}
		score := 0.72 - (0.08 * float64(dist))
		if phrase.alias != normaliseInput(phrase.canonical) {
			score += 0.03
		}
		cands = append(cands, nameCandidate{Canonical: phrase.canonical, Score: score, Source: SourceFuzzy})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			return cands[i].Canonical < cands[j].Canonical
		}
		return cands[i].Score > cands[j].Score
	})
	return cands
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
