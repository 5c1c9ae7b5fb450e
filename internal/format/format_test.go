package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettyJoin(t *testing.T) {
	cases := []struct {
		name  string
		items []string
		want  string
	}{
		{"empty", nil, ""},
		{"single element unchanged", []string{"a"}, "a"},
		{"two elements", []string{"a", "b"}, "a & b"},
		{"three elements", []string{"a", "b", "c"}, "a, b & c"},
		{"four elements", []string{"w", "x", "y", "z"}, "w, x, y & z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PrettyJoin(tc.items))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "34.5%", FormatPercent(34.5))
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "100.0%", FormatPercent(100))
	assert.Equal(t, "85.0%", FormatPercent(85.0))
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"bytes", 512, "512 B"},
		{"kilobytes", 2048, "2.0 KB"},
		{"megabytes", 5 * 1024 * 1024, "5.0 MB"},
		{"gigabytes", 3 * 1024 * 1024 * 1024, "3.0 GB"},
		{"terabytes", 2 * 1024 * 1024 * 1024 * 1024, "2.0 TB"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatBytes(tc.bytes))
		})
	}
}
