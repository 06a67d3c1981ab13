package parser

type MatchSource string

const (
	SourceExact  MatchSource = "exact"
	SourceAlias  MatchSource = "alias"
	SourcePrefix MatchSource = "prefix"
	SourceFuzzy  MatchSource = "lev"
	SourceNone   MatchSource = ""
)

// Match is the outcome of resolving a raw key against a registry.
// Only exact and alias matches are Resolved; prefix and fuzzy hits are
// reported as a Suggestion so callers can warn without guessing.
type Match struct {
	Raw        string
	Normalised string
	Canonical  string
	Score      float64
	Source     MatchSource
	Suggestion string
}

func (m Match) Resolved() bool {
	return m.Source == SourceExact || m.Source == SourceAlias
}

type NameDef struct {
	Canonical string
	Aliases   []string
}
