package threshold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRejectsEmptyBounds(t *testing.T) {
	for _, expr := range []string{"", "@", ":", "@:"} {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			assert.Error(t, err)
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, expr := range []string{"abc:10", "10:xyz", "::", "10:20:30"} {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			assert.Error(t, err)
		})
	}
}

func TestTriggersOutsideRange(t *testing.T) {
	warn := MustParse("10:20")

	cases := []struct {
		name  string
		value float64
		want  Severity
	}{
		{"inside range", 15, SeverityOK},
		{"below low", 5, SeverityWarning},
		{"above high", 25, SeverityWarning},
		{"at low bound", 10, SeverityOK},
		{"at high bound", 20, SeverityOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sev, err := Evaluate(tc.value, &warn, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sev)
		})
	}
}

func TestTriggersInsideRange(t *testing.T) {
	warn := MustParse("@10:20")

	cases := []struct {
		name  string
		value float64
		want  Severity
	}{
		{"inside range", 15, SeverityWarning},
		{"below low", 5, SeverityOK},
		{"above high", 25, SeverityOK},
		{"at low bound", 10, SeverityWarning},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sev, err := Evaluate(tc.value, &warn, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sev)
		})
	}
}

func TestOpenEndedBounds(t *testing.T) {
	cases := []struct {
		name  string
		expr  string
		value float64
		want  Severity
	}{
		{"lower only ok", "10:", 15, SeverityOK},
		{"lower only fires", "10:", 5, SeverityWarning},
		{"upper only ok", ":10", 5, SeverityOK},
		{"upper only fires", ":10", 15, SeverityWarning},
		{"inverted at-least fires", "@1:", 1, SeverityWarning},
		{"inverted at-least ok", "@1:", 0, SeverityOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			warn := MustParse(tc.expr)
			sev, err := Evaluate(tc.value, &warn, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sev)
		})
	}
}

func TestBareValueShorthand(t *testing.T) {
	// "80" means 0:80, so values above 80 or below 0 fire.
	warn := MustParse("80")

	sev, err := Evaluate(75, &warn, nil)
	require.NoError(t, err)
	assert.Equal(t, SeverityOK, sev)

	sev, err = Evaluate(85, &warn, nil)
	require.NoError(t, err)
	assert.Equal(t, SeverityWarning, sev)
}

func TestCriticalWinsOverWarning(t *testing.T) {
	warn := MustParse("@1:")
	crit := MustParse("@5:")

	cases := []struct {
		name  string
		value float64
		want  Severity
	}{
		{"below both", 0, SeverityOK},
		{"warning only", 2, SeverityWarning},
		{"both fire", 6, SeverityCritical},
		{"at critical bound", 5, SeverityCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sev, err := Evaluate(tc.value, &warn, &crit)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sev)
		})
	}
}

func TestPercentBoundEquivalence(t *testing.T) {
	// "80%" of base 1000 behaves exactly like a plain "800" bound.
	pct := MustParse("80%")
	abs := MustParse("800")

	for _, value := range []float64{0, 500, 800, 801, 1200} {
		sevPct, err := EvaluateWithBase(value, 1000, &pct, nil)
		require.NoError(t, err)
		sevAbs, err := Evaluate(value, &abs, nil)
		require.NoError(t, err)
		assert.Equal(t, sevAbs, sevPct, "value %v", value)
	}
}

func TestPercentBoundWithoutBase(t *testing.T) {
	warn := MustParse("80%")

	sev, err := Evaluate(850, &warn, nil)
	assert.ErrorIs(t, err, ErrPercentWithoutBase)
	assert.Equal(t, SeverityUnknown, sev)
}

func TestNilThresholdsAreOK(t *testing.T) {
	sev, err := Evaluate(42, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, SeverityOK, sev)
}

func TestHasPercent(t *testing.T) {
	assert.True(t, MustParse("80%").HasPercent())
	assert.True(t, MustParse("10%:90").HasPercent())
	assert.False(t, MustParse("10:90").HasPercent())
}
