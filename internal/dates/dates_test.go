package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-01-15", "2025-01-15"},
		{"1/15/2025", "2025-01-15"},
		{"15/1/2025", "2025-01-15"}, // day > 12, month-first attempt fails
		{"2025/1/15", "2025-01-15"},
		{"1-15-2025", "2025-01-15"},
		{"Jan 15, 2025", "2025-01-15"},
		{"January 15, 2025", "2025-01-15"},
		{"1/15/25", "2025-01-15"},
		{"20250115", "2025-01-15"},
		{"20250115120000", "2025-01-15"},
		{"20250115120000[-5:EST]", "2025-01-15"},
		{" 2025-01-15 ", "2025-01-15"},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got.Format(Day), "input %q", tt.in)
		assert.Equal(t, time.UTC, got.Location())
	}
}

func TestNormalize_MonthFirstWins(t *testing.T) {
	got, err := Normalize("2/3/2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-03", got.Format(Day))
}

func TestNormalizeDayFirst(t *testing.T) {
	got, err := NormalizeDayFirst("2/3/2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-02", got.Format(Day))

	// Unambiguous forms still parse.
	got, err = NormalizeDayFirst("2025-02-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-03", got.Format(Day))
}

func TestNormalize_Invalid(t *testing.T) {
	for _, in := range []string{"", "not a date", "13/13/2025"} {
		_, err := Normalize(in)
		assert.Error(t, err, "input %q", in)
	}
}
