// file: internals/features/lessons/lessons/model/series_patch_test.go
package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSeriesPatch_IsZero(t *testing.T) {
	assert.True(t, SeriesPatch{}.IsZero())

	name := "New Tutor"
	assert.False(t, SeriesPatch{TutorName: &name}.IsZero())
	assert.False(t, SeriesPatch{StartShiftMs: 1}.IsZero())
	assert.False(t, SeriesPatch{EndShiftMs: -1}.IsZero())
}

func TestSeriesPatch_Apply_Fields(t *testing.T) {
	tutorID := uuid.New()
	subjectID := uuid.New()
	name := "Replacement Tutor"
	subject := "Physics"
	location := "Room 4"
	lessonType := LessonTypePostponed

	l := Lesson{
		LessonTutorID:     uuid.New(),
		LessonTutorName:   "Old Tutor",
		LessonSubjectID:   uuid.New(),
		LessonSubjectName: "Maths",
		LessonLocation:    "Room 1",
		LessonType:        LessonTypeNormal,
	}

	p := SeriesPatch{
		TutorID:     &tutorID,
		TutorName:   &name,
		SubjectID:   &subjectID,
		SubjectName: &subject,
		Location:    &location,
		Type:        &lessonType,
	}
	p.Apply(&l)

	assert.Equal(t, tutorID, l.LessonTutorID)
	assert.Equal(t, name, l.LessonTutorName)
	assert.Equal(t, subjectID, l.LessonSubjectID)
	assert.Equal(t, subject, l.LessonSubjectName)
	assert.Equal(t, location, l.LessonLocation)
	assert.Equal(t, LessonTypePostponed, l.LessonType)
}

func TestSeriesPatch_Apply_NilFieldsUntouched(t *testing.T) {
	original := Lesson{
		LessonTutorName:   "Keep Me",
		LessonSubjectName: "Chemistry",
		LessonLocation:    "Lab",
		LessonType:        LessonTypeTrial,
		LessonStart:       time.Date(2025, 4, 7, 15, 0, 0, 0, time.UTC),
		LessonEnd:         time.Date(2025, 4, 7, 16, 0, 0, 0, time.UTC),
	}
	l := original

	SeriesPatch{}.Apply(&l)
	assert.Equal(t, original, l)
}

func TestSeriesPatch_Apply_ShiftPreservesDrift(t *testing.T) {
	// Two instances with different start times (one was moved earlier by
	// hand). The same shift lands on each instance's OWN bounds, so their
	// relative drift survives.
	a := Lesson{
		LessonStart: time.Date(2025, 4, 7, 16, 0, 0, 0, time.UTC),
		LessonEnd:   time.Date(2025, 4, 7, 17, 0, 0, 0, time.UTC),
	}
	b := Lesson{
		LessonStart: time.Date(2025, 4, 14, 15, 30, 0, 0, time.UTC),
		LessonEnd:   time.Date(2025, 4, 14, 16, 30, 0, 0, time.UTC),
	}

	shift := SeriesPatch{
		StartShiftMs: 30 * 60 * 1000, // +30m
		EndShiftMs:   30 * 60 * 1000,
	}
	shift.Apply(&a)
	shift.Apply(&b)

	assert.Equal(t, time.Date(2025, 4, 7, 16, 30, 0, 0, time.UTC), a.LessonStart)
	assert.Equal(t, time.Date(2025, 4, 14, 16, 0, 0, 0, time.UTC), b.LessonStart)

	// drift between the two instances is unchanged
	assert.Equal(t, 30*time.Minute, a.LessonStart.Add(7*24*time.Hour).Sub(b.LessonStart))

	// durations unchanged when both ends shift equally
	assert.Equal(t, time.Hour, a.LessonEnd.Sub(a.LessonStart))
	assert.Equal(t, time.Hour, b.LessonEnd.Sub(b.LessonStart))
}

func TestSeriesPatch_Apply_EndOnlyShiftChangesDuration(t *testing.T) {
	l := Lesson{
		LessonStart: time.Date(2025, 4, 7, 16, 0, 0, 0, time.UTC),
		LessonEnd:   time.Date(2025, 4, 7, 17, 0, 0, 0, time.UTC),
	}
	SeriesPatch{EndShiftMs: 15 * 60 * 1000}.Apply(&l)

	assert.Equal(t, time.Date(2025, 4, 7, 16, 0, 0, 0, time.UTC), l.LessonStart)
	assert.Equal(t, 75*time.Minute, l.LessonEnd.Sub(l.LessonStart))
}
