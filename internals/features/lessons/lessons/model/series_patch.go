// file: internals/features/lessons/lessons/model/series_patch.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SeriesPatch is the typed field-level patch applied to every instance of a
// series at/after a pivot. Nil fields are left untouched. Report data is
// never part of a series-wide edit.
type SeriesPatch struct {
	TutorID     *uuid.UUID
	TutorName   *string
	SubjectID   *uuid.UUID
	SubjectName *string
	Location    *string
	Type        *string

	// Millisecond deltas added to each instance's own start/end, never
	// recomputed from the template, so prior per-instance drift survives.
	StartShiftMs int64
	EndShiftMs   int64
}

func (p SeriesPatch) IsZero() bool {
	return p.TutorID == nil && p.TutorName == nil && p.SubjectID == nil &&
		p.SubjectName == nil && p.Location == nil && p.Type == nil &&
		p.StartShiftMs == 0 && p.EndShiftMs == 0
}

// Apply merges the patch into one lesson instance.
func (p SeriesPatch) Apply(l *Lesson) {
	if p.TutorID != nil {
		l.LessonTutorID = *p.TutorID
	}
	if p.TutorName != nil {
		l.LessonTutorName = *p.TutorName
	}
	if p.SubjectID != nil {
		l.LessonSubjectID = *p.SubjectID
	}
	if p.SubjectName != nil {
		l.LessonSubjectName = *p.SubjectName
	}
	if p.Location != nil {
		l.LessonLocation = *p.Location
	}
	if p.Type != nil {
		l.LessonType = *p.Type
	}
	if p.StartShiftMs != 0 {
		l.LessonStart = l.LessonStart.Add(time.Duration(p.StartShiftMs) * time.Millisecond)
	}
	if p.EndShiftMs != 0 {
		l.LessonEnd = l.LessonEnd.Add(time.Duration(p.EndShiftMs) * time.Millisecond)
	}
}
