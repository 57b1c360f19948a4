// file: internals/features/lessons/lessons/service/series_expander_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "tutorku_backend/internals/features/lessons/lessons/model"
)

func TestExpandOccurrences_Weekly(t *testing.T) {
	loc, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	// Monday 6 Jan 2025, 16:00-17:00 Sydney time
	start := time.Date(2025, 1, 6, 16, 0, 0, 0, loc)
	end := time.Date(2025, 1, 6, 17, 0, 0, 0, loc)
	horizon := time.Date(2025, 2, 3, 23, 59, 59, 0, loc)

	interval, err := model.CadenceInterval(model.CadenceWeekly)
	require.NoError(t, err)

	occ := ExpandOccurrences(start, end, interval, horizon)
	require.Len(t, occ, 5) // Jan 6, 13, 20, 27, Feb 3

	for i, o := range occ {
		wantStart := start.Add(time.Duration(i) * 7 * 24 * time.Hour)
		assert.True(t, wantStart.Equal(o.Start), "occurrence %d start", i)
		assert.Equal(t, time.Hour, o.End.Sub(o.Start), "occurrence %d duration", i)
	}
}

func TestExpandOccurrences_Fortnightly(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	horizon := start.Add(8 * 7 * 24 * time.Hour) // 8 weeks out

	interval, err := model.CadenceInterval(model.CadenceFortnightly)
	require.NoError(t, err)

	occ := ExpandOccurrences(start, end, interval, horizon)
	require.Len(t, occ, 5) // weeks 0, 2, 4, 6, 8

	assert.True(t, occ[1].Start.Equal(start.Add(14*24*time.Hour)))
	assert.True(t, occ[4].Start.Equal(horizon) || occ[4].Start.Before(horizon))
}

func TestExpandOccurrences_HorizonBoundary(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	// horizon exactly on an occurrence start: that occurrence is included
	horizon := start.Add(7 * 24 * time.Hour)
	occ := ExpandOccurrences(start, end, 7*24*time.Hour, horizon)
	assert.Len(t, occ, 2)

	// one second earlier: excluded
	occ = ExpandOccurrences(start, end, 7*24*time.Hour, horizon.Add(-time.Second))
	assert.Len(t, occ, 1)
}

func TestExpandOccurrences_HorizonBeforeStart(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	occ := ExpandOccurrences(start, start.Add(time.Hour), 7*24*time.Hour, start.Add(-time.Hour))
	assert.Empty(t, occ)
}

func TestCadenceInterval_Invalid(t *testing.T) {
	_, err := model.CadenceInterval("monthly")
	assert.Error(t, err)
	_, err = model.CadenceInterval("")
	assert.Error(t, err)
}

func TestChunkLessons(t *testing.T) {
	mk := func(n int) []model.Lesson { return make([]model.Lesson, n) }

	assert.Nil(t, chunkLessons(nil, 500))
	assert.Len(t, chunkLessons(mk(1), 500), 1)
	assert.Len(t, chunkLessons(mk(500), 500), 1)

	chunks := chunkLessons(mk(501), 500)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], 500)
	assert.Len(t, chunks[1], 1)

	chunks = chunkLessons(mk(1250), 500)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[2], 250)
}

func TestPartialCommitError(t *testing.T) {
	inner := assert.AnError
	err := &PartialCommitError{Written: 500, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "500")
}
