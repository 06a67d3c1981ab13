package engine

import "fmt"

type IssueKind string

const (
	IssueOutOfRange  IssueKind = "out_of_range"
	IssueUnknownType IssueKind = "unknown_stress_type"
	IssueNotANumber  IssueKind = "not_a_number"
	IssueIgnored     IssueKind = "ignored"
)

// InputIssue records an input the engine corrected or dropped. Issues never
// stop a day from being simulated. Raw is 0 for not_a_number issues.
type InputIssue struct {
	Kind       IssueKind `json:"kind" yaml:"kind"`
	Key        string    `json:"key" yaml:"key"`
	Raw        float64   `json:"raw" yaml:"raw"`
	Applied    float64   `json:"applied" yaml:"applied"`
	Suggestion string    `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

func (i InputIssue) String() string {
	switch i.Kind {
	case IssueOutOfRange:
		return fmt.Sprintf("%s: %g clamped to %g", i.Key, i.Raw, i.Applied)
	case IssueUnknownType:
		if i.Suggestion != "" {
			return fmt.Sprintf("%s: unknown stress type (did you mean %q?)", i.Key, i.Suggestion)
		}
		return fmt.Sprintf("%s: unknown stress type", i.Key)
	case IssueNotANumber:
		return fmt.Sprintf("%s: not a number, dropped", i.Key)
	default:
		return fmt.Sprintf("%s: ignored", i.Key)
	}
}

func (i InputIssue) message() string {
	switch i.Kind {
	case IssueOutOfRange:
		return "input clamped"
	case IssueUnknownType:
		return "unknown stress type"
	case IssueNotANumber:
		return "input dropped"
	default:
		return "input ignored"
	}
}
