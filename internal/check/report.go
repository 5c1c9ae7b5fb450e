// Package check contains the probe bodies: threshold aggregation over named
// entities, the cluster and node check logic, and the report accumulator
// that reduces everything to one plugin line and exit code.
package check

import (
	"fmt"
	"strings"

	"github.com/dm/escheck-go/internal/threshold"
)

// Result is one evaluated check outcome.
type Result struct {
	Severity threshold.Severity
	Message  string
}

// Perfdata is one performance-data sample appended to the plugin line.
type Perfdata struct {
	Label    string
	Value    float64
	Warning  string
	Critical string
}

// Report accumulates check results for a single probe run and reduces them
// to the worst severity plus a one-line summary.
type Report struct {
	results  []Result
	perfdata []Perfdata
}

// Add folds a result into the report. OK results contribute to the severity
// reduction but their messages are never shown.
func (r *Report) Add(sev threshold.Severity, msg string) {
	r.results = append(r.results, Result{Severity: sev, Message: msg})
}

// AddPerfdata appends one performance-data sample.
func (r *Report) AddPerfdata(label string, value float64, warning, critical string) {
	r.perfdata = append(r.perfdata, Perfdata{Label: label, Value: value, Warning: warning, Critical: critical})
}

// Worst returns the worst severity across all results. An empty report is OK.
func (r *Report) Worst() threshold.Severity {
	worst := threshold.SeverityOK
	for _, res := range r.results {
		worst = threshold.Worse(worst, res.Severity)
	}
	return worst
}

// Summary returns the comma-joined messages of all non-OK results, or okText
// when every result is OK.
func (r *Report) Summary(okText string) string {
	var msgs []string
	for _, res := range r.results {
		if res.Severity != threshold.SeverityOK && res.Message != "" {
			msgs = append(msgs, res.Message)
		}
	}
	if len(msgs) == 0 {
		return okText
	}
	return strings.Join(msgs, ", ")
}

// PluginLine renders the full supervisor output line: severity token, summary
// and perfdata.
func (r *Report) PluginLine(okText string) string {
	return r.Worst().String() + r.lineBody(okText)
}

// lineBody is the plugin line minus the severity token.
func (r *Report) lineBody(okText string) string {
	line := " - " + r.Summary(okText)
	if len(r.perfdata) > 0 {
		parts := make([]string, len(r.perfdata))
		for i, p := range r.perfdata {
			parts[i] = fmt.Sprintf("%s=%s;%s;%s", p.Label, trimFloat(p.Value), p.Warning, p.Critical)
		}
		line += " | " + strings.Join(parts, " ")
	}
	return line
}

// trimFloat formats a perfdata value without trailing zeros.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
