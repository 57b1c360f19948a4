// file: internals/helpers/week_window_test.go
package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sydney(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)
	return loc
}

func TestParseDateYMD(t *testing.T) {
	loc := sydney(t)

	got, err := ParseDateYMD("2025-01-06", loc)
	require.NoError(t, err)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 6, got.Day())
	assert.Equal(t, loc, got.Location())

	_, err = ParseDateYMD("06/01/2025", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDateYMD("", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestWeekWindow(t *testing.T) {
	loc := sydney(t)

	from, to, err := WeekWindow("2025-01-06", "2025-01-12", loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2025, 1, 12, 23, 59, 59, 0, loc), to)

	// inverted window
	_, _, err = WeekWindow("2025-01-12", "2025-01-06", loc)
	assert.Error(t, err)

	// malformed date
	_, _, err = WeekWindow("2025-01-06", "not-a-date", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestEndOfNextYear(t *testing.T) {
	loc := sydney(t)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "mid 2025",
			now:  time.Date(2025, 6, 15, 10, 0, 0, 0, loc),
			want: time.Date(2026, 12, 31, 23, 59, 59, 0, loc),
		},
		{
			name: "new years eve still points a full year ahead",
			now:  time.Date(2025, 12, 31, 23, 0, 0, 0, loc),
			want: time.Date(2026, 12, 31, 23, 59, 59, 0, loc),
		},
		{
			name: "UTC instant resolved in business zone",
			now:  time.Date(2025, 12, 31, 14, 0, 0, 0, time.UTC), // already 1 Jan 2026 in Sydney
			want: time.Date(2027, 12, 31, 23, 59, 59, 0, loc),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.want.Equal(EndOfNextYear(tc.now, loc)))
		})
	}
}
