// file: internals/features/lessons/lessons/dto/lesson_dto_test.go
package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "tutorku_backend/internals/features/lessons/lessons/model"
)

func TestPatchField_TriState(t *testing.T) {
	type body struct {
		Location PatchField[string] `json:"location"`
	}

	var omitted body
	require.NoError(t, json.Unmarshal([]byte(`{}`), &omitted))
	assert.False(t, omitted.Location.Set)

	var nulled body
	require.NoError(t, json.Unmarshal([]byte(`{"location": null}`), &nulled))
	assert.True(t, nulled.Location.Set)
	assert.True(t, nulled.Location.Null)
	assert.Nil(t, nulled.Location.Value)

	var set body
	require.NoError(t, json.Unmarshal([]byte(`{"location": "Room 2"}`), &set))
	assert.True(t, set.Location.Set)
	assert.False(t, set.Location.Null)
	require.NotNil(t, set.Location.Value)
	assert.Equal(t, "Room 2", *set.Location.Value)
}

func TestCreateLessonRequest_ToModel(t *testing.T) {
	req := CreateLessonRequest{
		LessonStart:       "2025-01-06T16:00:00+11:00",
		LessonEnd:         "2025-01-06T17:00:00+11:00",
		LessonTutorID:     uuid.New(),
		LessonTutorName:   "Sarah Nguyen",
		LessonSubjectID:   uuid.New(),
		LessonSubjectName: "Maths",
	}

	l, err := req.ToModel()
	require.NoError(t, err)

	// timestamps stored as UTC instants
	assert.Equal(t, time.UTC, l.LessonStart.Location())
	assert.Equal(t, time.Date(2025, 1, 6, 5, 0, 0, 0, time.UTC), l.LessonStart)
	assert.Equal(t, time.Hour, l.LessonEnd.Sub(l.LessonStart))
	assert.Equal(t, model.LessonTypeNormal, l.LessonType)
}

func TestCreateLessonRequest_ToModel_Invalid(t *testing.T) {
	base := CreateLessonRequest{
		LessonStart: "2025-01-06T16:00:00+11:00",
		LessonEnd:   "2025-01-06T17:00:00+11:00",
	}

	endBeforeStart := base
	endBeforeStart.LessonEnd = "2025-01-06T15:00:00+11:00"
	_, err := endBeforeStart.ToModel()
	assert.Error(t, err)

	badFormat := base
	badFormat.LessonStart = "06/01/2025 16:00"
	_, err = badFormat.ToModel()
	assert.Error(t, err)
}

func TestUpdateLessonSeriesRequest_ToPatch(t *testing.T) {
	payload := `{
		"pivot": "2025-04-07T00:00:00Z",
		"lesson_tutor_name": "Replacement Tutor",
		"lesson_location": "Online",
		"start_shift_ms": 1800000,
		"end_shift_ms": 1800000
	}`
	var req UpdateLessonSeriesRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	patch, pivot, err := req.ToPatch()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC), pivot)
	require.NotNil(t, patch.TutorName)
	assert.Equal(t, "Replacement Tutor", *patch.TutorName)
	require.NotNil(t, patch.Location)
	assert.Equal(t, "Online", *patch.Location)
	assert.Nil(t, patch.SubjectName)
	assert.Nil(t, patch.Type)
	assert.EqualValues(t, 1800000, patch.StartShiftMs)
	assert.False(t, patch.IsZero())
}

func TestUpdateLessonSeriesRequest_ToPatch_Invalid(t *testing.T) {
	var badPivot UpdateLessonSeriesRequest
	require.NoError(t, json.Unmarshal([]byte(`{"pivot": "next monday"}`), &badPivot))
	_, _, err := badPivot.ToPatch()
	assert.Error(t, err)

	var badType UpdateLessonSeriesRequest
	require.NoError(t, json.Unmarshal(
		[]byte(`{"pivot": "2025-04-07T00:00:00Z", "lesson_type": "holiday"}`), &badType))
	_, _, err = badType.ToPatch()
	assert.Error(t, err)
}
