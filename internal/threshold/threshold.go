// Package threshold implements the monitoring-plugin range grammar used to
// classify observed values into severities.
//
// An expression has the form [@][low]:[high] where either bound may carry a
// trailing % to mark it as a percentage of a caller-supplied base value. The
// default semantics trigger when the value falls outside the closed
// [low, high] range; a leading @ inverts this so values inside the range
// trigger. An omitted bound is unbounded on that side. A bare value with no
// colon is shorthand for 0:value.
package threshold

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrPercentWithoutBase is returned when an expression with a percentage
// bound is evaluated without a base value to resolve it against.
var ErrPercentWithoutBase = errors.New("percentage bound requires a base value")

type bound struct {
	set     bool
	value   float64
	percent bool
}

// resolve returns the bound's absolute value, multiplying percentage bounds
// against base. hasBase reports whether a base was supplied at all.
func (b bound) resolve(base float64, hasBase bool) (float64, error) {
	if !b.percent {
		return b.value, nil
	}
	if !hasBase {
		return 0, ErrPercentWithoutBase
	}
	return b.value / 100 * base, nil
}

// Threshold is a parsed, immutable threshold expression. Parse it once and
// evaluate it against as many values as needed.
type Threshold struct {
	inside bool
	lower  bound
	upper  bound
	raw    string
}

func (t Threshold) String() string {
	return t.raw
}

// HasPercent reports whether either bound is a percentage of a base value.
func (t Threshold) HasPercent() bool {
	return t.lower.percent || t.upper.percent
}

// Parse parses a threshold expression. An expression with both bounds empty
// is rejected rather than treated as always-ok.
func Parse(expr string) (Threshold, error) {
	t := Threshold{raw: expr}

	s := expr
	if strings.HasPrefix(s, "@") {
		t.inside = true
		s = s[1:]
	}
	if s == "" {
		return Threshold{}, fmt.Errorf("threshold %q: both bounds empty", expr)
	}

	lowPart, highPart, hasColon := strings.Cut(s, ":")
	if !hasColon {
		// Bare value: shorthand for 0:value.
		highPart = lowPart
		lowPart = "0"
	}
	if lowPart == "" && highPart == "" {
		return Threshold{}, fmt.Errorf("threshold %q: both bounds empty", expr)
	}

	var err error
	if t.lower, err = parseBound(lowPart); err != nil {
		return Threshold{}, fmt.Errorf("threshold %q: lower bound: %w", expr, err)
	}
	if t.upper, err = parseBound(highPart); err != nil {
		return Threshold{}, fmt.Errorf("threshold %q: upper bound: %w", expr, err)
	}
	return t, nil
}

func parseBound(s string) (bound, error) {
	if s == "" {
		return bound{}, nil
	}
	b := bound{set: true}
	if strings.HasSuffix(s, "%") {
		b.percent = true
		s = strings.TrimSuffix(s, "%")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return bound{}, fmt.Errorf("not a number: %q", s)
	}
	b.value = v
	return b, nil
}

// triggers reports whether value fires this threshold. Bounds are inclusive:
// a value exactly at a bound is inside the range.
func (t Threshold) triggers(value, base float64, hasBase bool) (bool, error) {
	low := math.Inf(-1)
	high := math.Inf(1)

	var err error
	if t.lower.set {
		if low, err = t.lower.resolve(base, hasBase); err != nil {
			return false, err
		}
	}
	if t.upper.set {
		if high, err = t.upper.resolve(base, hasBase); err != nil {
			return false, err
		}
	}

	inRange := value >= low && value <= high
	if t.inside {
		return inRange, nil
	}
	return !inRange, nil
}

// Evaluate classifies value against the warning and critical thresholds.
// Critical is checked first; a value firing both reports CRITICAL. A nil
// threshold is treated as "no threshold at that level". An evaluation error
// (such as a percentage bound with no base) reports UNKNOWN alongside the
// error.
func Evaluate(value float64, warn, crit *Threshold) (Severity, error) {
	return evaluate(value, warn, crit, 0, false)
}

// EvaluateWithBase is Evaluate with a base value for percentage bounds.
func EvaluateWithBase(value, base float64, warn, crit *Threshold) (Severity, error) {
	return evaluate(value, warn, crit, base, true)
}

func evaluate(value float64, warn, crit *Threshold, base float64, hasBase bool) (Severity, error) {
	if crit != nil {
		fired, err := crit.triggers(value, base, hasBase)
		if err != nil {
			return SeverityUnknown, fmt.Errorf("critical threshold %q: %w", crit.raw, err)
		}
		if fired {
			return SeverityCritical, nil
		}
	}
	if warn != nil {
		fired, err := warn.triggers(value, base, hasBase)
		if err != nil {
			return SeverityUnknown, fmt.Errorf("warning threshold %q: %w", warn.raw, err)
		}
		if fired {
			return SeverityWarning, nil
		}
	}
	return SeverityOK, nil
}

// MustParse parses expr and panics on error. For package-level defaults only.
func MustParse(expr string) Threshold {
	t, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return t
}
