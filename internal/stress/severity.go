package stress

type Severity int

const (
	SeverityMild Severity = iota
	SeverityModerate
	SeveritySevere
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityMild:
		return "mild"
	case SeverityModerate:
		return "moderate"
	case SeveritySevere:
		return "severe"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SeverityFor bands an overall stress factor.
func SeverityFor(overall float64) Severity {
	switch {
	case overall > 0.8:
		return SeverityMild
	case overall > 0.6:
		return SeverityModerate
	case overall > 0.3:
		return SeveritySevere
	default:
		return SeverityCritical
	}
}
