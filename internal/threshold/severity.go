package threshold

// Severity is the monitoring-plugin alert level for a check result.
// The numeric values are the process exit codes the supervisor expects.
type Severity int

const (
	SeverityOK       Severity = 0
	SeverityWarning  Severity = 1
	SeverityCritical Severity = 2
	SeverityUnknown  Severity = 3
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode returns the supervisor exit code for s. Severities outside the
// defined set collapse to the UNKNOWN code.
func (s Severity) ExitCode() int {
	if s < SeverityOK || s > SeverityUnknown {
		return int(SeverityUnknown)
	}
	return int(s)
}

// rank orders severities for worst-case reduction. UNKNOWN outranks CRITICAL
// so a check that could not be evaluated is never masked by a passing one.
func (s Severity) rank() int {
	return int(s)
}

// Worse returns the worse of a and b. The reduction is a max by rank, so it
// is associative, commutative, and monotonic: folding in another severity can
// only raise or preserve the result.
func Worse(a, b Severity) Severity {
	if b.rank() > a.rank() {
		return b
	}
	return a
}
