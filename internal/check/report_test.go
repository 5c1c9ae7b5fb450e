package check

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dm/escheck-go/internal/threshold"
)

func TestReportWorst(t *testing.T) {
	r := &Report{}
	assert.Equal(t, threshold.SeverityOK, r.Worst(), "empty report is OK")

	r.Add(threshold.SeverityOK, "fine")
	assert.Equal(t, threshold.SeverityOK, r.Worst())

	r.Add(threshold.SeverityWarning, "warming up")
	assert.Equal(t, threshold.SeverityWarning, r.Worst())

	r.Add(threshold.SeverityCritical, "on fire")
	assert.Equal(t, threshold.SeverityCritical, r.Worst())

	// Adding a milder result never lowers the aggregate.
	r.Add(threshold.SeverityOK, "still fine")
	assert.Equal(t, threshold.SeverityCritical, r.Worst())
}

func TestReportSummary(t *testing.T) {
	r := &Report{}
	r.Add(threshold.SeverityOK, "invisible")
	assert.Equal(t, "all good", r.Summary("all good"))

	r.Add(threshold.SeverityWarning, "first problem")
	r.Add(threshold.SeverityCritical, "second problem")
	assert.Equal(t, "first problem, second problem", r.Summary("all good"))
}

func TestPluginLine(t *testing.T) {
	r := &Report{}
	r.Add(threshold.SeverityWarning, "JVM heap used: 78.0%")
	assert.Equal(t, "WARNING - JVM heap used: 78.0%", r.PluginLine("ok"))

	r.AddPerfdata("jvm_heap_used_pct", 78, "75", "85")
	assert.Equal(t, "WARNING - JVM heap used: 78.0% | jvm_heap_used_pct=78;75;85", r.PluginLine("ok"))
}

func TestPluginLineOK(t *testing.T) {
	r := &Report{}
	r.Add(threshold.SeverityOK, "hidden")
	assert.Equal(t, "OK - cluster health within thresholds", r.PluginLine("cluster health within thresholds"))
}

func TestRenderLinePlain(t *testing.T) {
	r := &Report{}
	r.Add(threshold.SeverityCritical, "boom")
	assert.Equal(t, r.PluginLine("ok"), RenderLine(r, "ok", false))
}
