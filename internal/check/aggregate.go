package check

import (
	"fmt"
	"sort"

	"github.com/dm/escheck-go/internal/format"
	"github.com/dm/escheck-go/internal/threshold"
)

// Selectors supplies the per-entity extraction functions for CheckEach.
// Warning and Critical may depend on the entity name, which is how per-named
// overrides (such as a dedicated threshold for the search thread pool) are
// resolved. Base is optional; when set it supplies the per-entity base value
// for percentage bounds.
type Selectors[T any] struct {
	Value    func(name string, e T) float64
	Base     func(name string, e T) float64
	Warning  func(name string) (*threshold.Threshold, error)
	Critical func(name string) (*threshold.Threshold, error)

	// Describe, when set, supplies a per-entity detail that is appended to
	// the entity's name in non-OK messages.
	Describe func(name string, e T) string
}

// AggregatedMessage groups the entities that landed on one severity.
type AggregatedMessage struct {
	Severity threshold.Severity
	Names    []string
	Message  string
}

// CheckEach evaluates every entity against its thresholds and groups entity
// names by resulting severity. One message is synthesized per severity
// present, prefix followed by the lexicographically sorted name list. OK
// groups carry an empty message since they are never shown.
func CheckEach[T any](entities map[string]T, prefix string, sel Selectors[T]) []AggregatedMessage {
	bySeverity := make(map[threshold.Severity][]string)
	evalErrs := make(map[threshold.Severity]error)

	for name, e := range entities {
		sev, err := evaluateEntity(name, e, sel)
		bySeverity[sev] = append(bySeverity[sev], name)
		if err != nil && evalErrs[sev] == nil {
			evalErrs[sev] = err
		}
	}

	order := []threshold.Severity{
		threshold.SeverityCritical,
		threshold.SeverityWarning,
		threshold.SeverityUnknown,
		threshold.SeverityOK,
	}

	var out []AggregatedMessage
	for _, sev := range order {
		names, ok := bySeverity[sev]
		if !ok {
			continue
		}
		sort.Strings(names)
		m := AggregatedMessage{Severity: sev, Names: names}
		if sev != threshold.SeverityOK {
			items := names
			if sel.Describe != nil {
				items = make([]string, len(names))
				for i, n := range names {
					items[i] = fmt.Sprintf("%s (%s)", n, sel.Describe(n, entities[n]))
				}
			}
			m.Message = fmt.Sprintf("%s: %s", prefix, format.PrettyJoin(items))
			if err := evalErrs[sev]; err != nil {
				m.Message += fmt.Sprintf(" (%v)", err)
			}
		}
		out = append(out, m)
	}
	return out
}

func evaluateEntity[T any](name string, e T, sel Selectors[T]) (threshold.Severity, error) {
	warn, err := sel.Warning(name)
	if err != nil {
		return threshold.SeverityUnknown, err
	}
	crit, err := sel.Critical(name)
	if err != nil {
		return threshold.SeverityUnknown, err
	}

	value := sel.Value(name, e)
	if sel.Base != nil {
		return threshold.EvaluateWithBase(value, sel.Base(name, e), warn, crit)
	}
	return threshold.Evaluate(value, warn, crit)
}

// Apply folds every aggregated message into the report. Only non-OK groups
// carry messages, so OK entities raise nothing.
func Apply(r *Report, msgs []AggregatedMessage) {
	for _, m := range msgs {
		r.Add(m.Severity, m.Message)
	}
}
