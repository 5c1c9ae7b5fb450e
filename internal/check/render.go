package check

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dm/escheck-go/internal/threshold"
)

var (
	colorGreen  = lipgloss.Color("#10b981")
	colorYellow = lipgloss.Color("#f59e0b")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")

	styleOK       = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleWarning  = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleCritical = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleUnknown  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// severityToStyle maps a severity level to the appropriate lipgloss style.
func severityToStyle(s threshold.Severity) lipgloss.Style {
	switch s {
	case threshold.SeverityOK:
		return styleOK
	case threshold.SeverityWarning:
		return styleWarning
	case threshold.SeverityCritical:
		return styleCritical
	default:
		return styleUnknown
	}
}

// RenderStatus returns the severity token, styled for a terminal when
// colored is set and plain otherwise.
func RenderStatus(s threshold.Severity, colored bool) string {
	if !colored {
		return s.String()
	}
	return severityToStyle(s).Render(s.String())
}

// RenderLine renders the full plugin line, optionally coloring the severity
// token for interactive use. The supervisor always receives the plain form.
func RenderLine(r *Report, okText string, colored bool) string {
	return RenderStatus(r.Worst(), colored) + r.lineBody(okText)
}
