package threshold

import "fmt"

// HealthState is an Elasticsearch health color mapped onto an ordinal scale
// where higher is healthier. The ordering is inverted relative to Severity.
type HealthState int

const (
	HealthRed    HealthState = 1
	HealthYellow HealthState = 2
	HealthGreen  HealthState = 3
)

func (h HealthState) String() string {
	switch h {
	case HealthRed:
		return "red"
	case HealthYellow:
		return "yellow"
	case HealthGreen:
		return "green"
	default:
		return fmt.Sprintf("HealthState(%d)", int(h))
	}
}

// ParseHealthState maps an Elasticsearch status string to its HealthState.
func ParseHealthState(s string) (HealthState, error) {
	switch s {
	case "red":
		return HealthRed, nil
	case "yellow":
		return HealthYellow, nil
	case "green":
		return HealthGreen, nil
	default:
		return 0, fmt.Errorf("unknown health state %q", s)
	}
}

// StateThreshold builds a threshold that triggers when an observed state's
// ordinal is at or below h's ordinal, i.e. the cluster is at least as
// unhealthy as h.
func StateThreshold(h HealthState) Threshold {
	return Threshold{
		inside: true,
		upper:  bound{set: true, value: float64(h)},
		raw:    fmt.Sprintf("@:%d", int(h)),
	}
}
