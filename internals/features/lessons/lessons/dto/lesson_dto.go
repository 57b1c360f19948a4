// file: internals/features/lessons/lessons/dto/lesson_dto.go
package dto

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	model "tutorku_backend/internals/features/lessons/lessons/model"
)

/* =========================================================
   PatchField tri-state (Unset / Null / Set(value))
   ========================================================= */

type PatchField[T any] struct {
	Set   bool `json:"-"`
	Null  bool `json:"-"`
	Value *T   `json:"-"`
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Set = true
	if string(b) == "null" {
		p.Null = true
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("timestamps must be RFC3339 (e.g. 2025-01-06T09:00:00+11:00)")
	}
	return t, nil
}

/* =========================================================
   REQUEST: Create single lesson
   ========================================================= */

type CreateLessonRequest struct {
	LessonStart string `json:"lesson_start" validate:"required"`
	LessonEnd   string `json:"lesson_end"   validate:"required"`

	LessonTutorID   uuid.UUID `json:"lesson_tutor_id"   validate:"required"`
	LessonTutorName string    `json:"lesson_tutor_name" validate:"required"`

	LessonSubjectID   uuid.UUID `json:"lesson_subject_id"   validate:"required"`
	LessonSubjectName string    `json:"lesson_subject_name" validate:"required"`

	LessonLocation string `json:"lesson_location"`
	LessonType     string `json:"lesson_type" validate:"omitempty,oneof=normal trial unconfirmed cancelled postponed"`
}

func (r *CreateLessonRequest) ToModel() (*model.Lesson, error) {
	start, err := parseRFC3339(r.LessonStart)
	if err != nil {
		return nil, err
	}
	end, err := parseRFC3339(r.LessonEnd)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, errors.New("lesson_end must be after lesson_start")
	}

	l := &model.Lesson{
		LessonStart:       start.UTC(),
		LessonEnd:         end.UTC(),
		LessonTutorID:     r.LessonTutorID,
		LessonTutorName:   r.LessonTutorName,
		LessonSubjectID:   r.LessonSubjectID,
		LessonSubjectName: r.LessonSubjectName,
		LessonLocation:    r.LessonLocation,
		LessonType:        model.LessonTypeNormal,
	}
	if r.LessonType != "" {
		l.LessonType = r.LessonType
	}
	return l, nil
}

/* =========================================================
   REQUEST: Create series
   ========================================================= */

type CreateLessonSeriesRequest struct {
	CreateLessonRequest
	LessonCadence string `json:"lesson_cadence" validate:"required,oneof=weekly fortnightly"`
}

/* =========================================================
   REQUEST: Patch single lesson
   ========================================================= */

type PatchLessonRequest struct {
	LessonStart PatchField[string] `json:"lesson_start"`
	LessonEnd   PatchField[string] `json:"lesson_end"`

	LessonTutorID   PatchField[uuid.UUID] `json:"lesson_tutor_id"`
	LessonTutorName PatchField[string]    `json:"lesson_tutor_name"`

	LessonSubjectID   PatchField[uuid.UUID] `json:"lesson_subject_id"`
	LessonSubjectName PatchField[string]    `json:"lesson_subject_name"`

	LessonLocation PatchField[string] `json:"lesson_location"`
	LessonType     PatchField[string] `json:"lesson_type"`
}

func (r *PatchLessonRequest) ApplyTo(l *model.Lesson) error {
	if r.LessonStart.Set {
		if r.LessonStart.Null || r.LessonStart.Value == nil {
			return errors.New("lesson_start cannot be null")
		}
		t, err := parseRFC3339(*r.LessonStart.Value)
		if err != nil {
			return err
		}
		l.LessonStart = t.UTC()
	}
	if r.LessonEnd.Set {
		if r.LessonEnd.Null || r.LessonEnd.Value == nil {
			return errors.New("lesson_end cannot be null")
		}
		t, err := parseRFC3339(*r.LessonEnd.Value)
		if err != nil {
			return err
		}
		l.LessonEnd = t.UTC()
	}
	if r.LessonTutorID.Set && r.LessonTutorID.Value != nil {
		l.LessonTutorID = *r.LessonTutorID.Value
	}
	if r.LessonTutorName.Set && r.LessonTutorName.Value != nil {
		l.LessonTutorName = *r.LessonTutorName.Value
	}
	if r.LessonSubjectID.Set && r.LessonSubjectID.Value != nil {
		l.LessonSubjectID = *r.LessonSubjectID.Value
	}
	if r.LessonSubjectName.Set && r.LessonSubjectName.Value != nil {
		l.LessonSubjectName = *r.LessonSubjectName.Value
	}
	if r.LessonLocation.Set {
		if r.LessonLocation.Null {
			l.LessonLocation = ""
		} else if r.LessonLocation.Value != nil {
			l.LessonLocation = *r.LessonLocation.Value
		}
	}
	if r.LessonType.Set && r.LessonType.Value != nil {
		switch *r.LessonType.Value {
		case model.LessonTypeNormal, model.LessonTypeTrial, model.LessonTypeUnconfirmed,
			model.LessonTypeCancelled, model.LessonTypePostponed:
			l.LessonType = *r.LessonType.Value
		default:
			return errors.New("lesson_type invalid")
		}
	}
	return nil
}

/* =========================================================
   REQUEST: Series forward update / delete
   ========================================================= */

type UpdateLessonSeriesRequest struct {
	Pivot string `json:"pivot" validate:"required"`

	LessonTutorID     PatchField[uuid.UUID] `json:"lesson_tutor_id"`
	LessonTutorName   PatchField[string]    `json:"lesson_tutor_name"`
	LessonSubjectID   PatchField[uuid.UUID] `json:"lesson_subject_id"`
	LessonSubjectName PatchField[string]    `json:"lesson_subject_name"`
	LessonLocation    PatchField[string]    `json:"lesson_location"`
	LessonType        PatchField[string]    `json:"lesson_type"`

	StartShiftMs int64 `json:"start_shift_ms"`
	EndShiftMs   int64 `json:"end_shift_ms"`
}

func (r *UpdateLessonSeriesRequest) ToPatch() (model.SeriesPatch, time.Time, error) {
	pivot, err := parseRFC3339(r.Pivot)
	if err != nil {
		return model.SeriesPatch{}, time.Time{}, errors.New("pivot must be RFC3339")
	}

	p := model.SeriesPatch{
		StartShiftMs: r.StartShiftMs,
		EndShiftMs:   r.EndShiftMs,
	}
	if r.LessonTutorID.Set && r.LessonTutorID.Value != nil {
		p.TutorID = r.LessonTutorID.Value
	}
	if r.LessonTutorName.Set && r.LessonTutorName.Value != nil {
		p.TutorName = r.LessonTutorName.Value
	}
	if r.LessonSubjectID.Set && r.LessonSubjectID.Value != nil {
		p.SubjectID = r.LessonSubjectID.Value
	}
	if r.LessonSubjectName.Set && r.LessonSubjectName.Value != nil {
		p.SubjectName = r.LessonSubjectName.Value
	}
	if r.LessonLocation.Set && r.LessonLocation.Value != nil {
		p.Location = r.LessonLocation.Value
	}
	if r.LessonType.Set && r.LessonType.Value != nil {
		switch *r.LessonType.Value {
		case model.LessonTypeNormal, model.LessonTypeTrial, model.LessonTypeUnconfirmed,
			model.LessonTypeCancelled, model.LessonTypePostponed:
			p.Type = r.LessonType.Value
		default:
			return model.SeriesPatch{}, time.Time{}, errors.New("lesson_type invalid")
		}
	}
	return p, pivot.UTC(), nil
}

/* =========================================================
   REQUEST: Report upsert
   ========================================================= */

type UpsertReportRequest struct {
	Status       string `json:"status" validate:"required"`
	Note         string `json:"note"`
	Effort       *int   `json:"effort" validate:"omitempty,min=1,max=5"`
	Quality      *int   `json:"quality" validate:"omitempty,min=1,max=5"`
	Satisfaction *int   `json:"satisfaction" validate:"omitempty,min=1,max=5"`
	Topic        string `json:"topic"`
	StudentName  string `json:"student_name"`
}

func (r *UpsertReportRequest) ToReport() model.LessonReport {
	return model.LessonReport{
		Status:       r.Status,
		Note:         r.Note,
		Effort:       r.Effort,
		Quality:      r.Quality,
		Satisfaction: r.Satisfaction,
		Topic:        r.Topic,
		StudentName:  r.StudentName,
	}
}

/* =========================================================
   RESPONSE
   ========================================================= */

type LessonResponse struct {
	LessonID          uuid.UUID                     `json:"lesson_id"`
	LessonStart       string                        `json:"lesson_start"`
	LessonEnd         string                        `json:"lesson_end"`
	LessonTutorID     uuid.UUID                     `json:"lesson_tutor_id"`
	LessonTutorName   string                        `json:"lesson_tutor_name"`
	LessonSubjectID   uuid.UUID                     `json:"lesson_subject_id"`
	LessonSubjectName string                        `json:"lesson_subject_name"`
	LessonLocation    string                        `json:"lesson_location,omitempty"`
	LessonType        string                        `json:"lesson_type"`
	LessonSeriesID    *uuid.UUID                    `json:"lesson_series_id,omitempty"`
	LessonCadence     *string                       `json:"lesson_cadence,omitempty"`
	LessonReports     map[string]model.LessonReport `json:"lesson_reports,omitempty"`
}

func FromModelLesson(l *model.Lesson) (*LessonResponse, error) {
	reports, err := l.Reports()
	if err != nil {
		return nil, err
	}
	return &LessonResponse{
		LessonID:          l.LessonID,
		LessonStart:       l.LessonStart.UTC().Format(time.RFC3339),
		LessonEnd:         l.LessonEnd.UTC().Format(time.RFC3339),
		LessonTutorID:     l.LessonTutorID,
		LessonTutorName:   l.LessonTutorName,
		LessonSubjectID:   l.LessonSubjectID,
		LessonSubjectName: l.LessonSubjectName,
		LessonLocation:    l.LessonLocation,
		LessonType:        l.LessonType,
		LessonSeriesID:    l.LessonSeriesID,
		LessonCadence:     l.LessonCadence,
		LessonReports:     reports,
	}, nil
}
