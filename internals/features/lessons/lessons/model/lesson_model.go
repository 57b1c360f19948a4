// file: internals/features/lessons/lessons/model/lesson_model.go
package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Enums
   ========================= */

const (
	LessonTypeNormal      = "normal"
	LessonTypeTrial       = "trial"
	LessonTypeUnconfirmed = "unconfirmed"
	LessonTypeCancelled   = "cancelled"
	LessonTypePostponed   = "postponed"
)

const (
	CadenceWeekly      = "weekly"
	CadenceFortnightly = "fortnightly"
)

// Lesson types that produce invoice lines.
var BillableLessonTypes = []string{LessonTypeNormal, LessonTypeTrial}

// CadenceInterval maps a cadence to its repeat interval.
func CadenceInterval(cadence string) (time.Duration, error) {
	switch cadence {
	case CadenceWeekly:
		return 7 * 24 * time.Hour, nil
	case CadenceFortnightly:
		return 14 * 24 * time.Hour, nil
	default:
		return 0, errors.New("cadence must be weekly or fortnightly")
	}
}

/* =========================
   Report payload (JSONB value)
   ========================= */

// LessonReport is one student's attendance/report entry on a lesson.
// Stored inside lesson_reports JSONB keyed by student id.
type LessonReport struct {
	Status       string `json:"status"`
	Note         string `json:"note,omitempty"`
	Effort       *int   `json:"effort,omitempty"`
	Quality      *int   `json:"quality,omitempty"`
	Satisfaction *int   `json:"satisfaction,omitempty"`
	Topic        string `json:"topic,omitempty"`
	StudentName  string `json:"student_name,omitempty"`
}

const ReportStatusCancelled = "cancelled"

/* =========================
   Model: lessons
   ========================= */

type Lesson struct {
	LessonID uuid.UUID `json:"lesson_id" gorm:"column:lesson_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	LessonStart time.Time `json:"lesson_start" gorm:"column:lesson_start;type:timestamptz;not null;index"`
	LessonEnd   time.Time `json:"lesson_end"   gorm:"column:lesson_end;type:timestamptz;not null"`

	LessonTutorID   uuid.UUID `json:"lesson_tutor_id"   gorm:"column:lesson_tutor_id;type:uuid;not null"`
	LessonTutorName string    `json:"lesson_tutor_name" gorm:"column:lesson_tutor_name;type:text;not null"`

	LessonSubjectID   uuid.UUID `json:"lesson_subject_id"   gorm:"column:lesson_subject_id;type:uuid;not null"`
	LessonSubjectName string    `json:"lesson_subject_name" gorm:"column:lesson_subject_name;type:text;not null"`

	LessonLocation string `json:"lesson_location" gorm:"column:lesson_location;type:text"`
	LessonType     string `json:"lesson_type"     gorm:"column:lesson_type;type:varchar(20);not null;default:'normal'"`

	// series grouping (both set or both null)
	LessonSeriesID *uuid.UUID `json:"lesson_series_id,omitempty" gorm:"column:lesson_series_id;type:uuid;index"`
	LessonCadence  *string    `json:"lesson_cadence,omitempty"   gorm:"column:lesson_cadence;type:varchar(15)"`

	// student id → LessonReport
	LessonReports datatypes.JSON `json:"lesson_reports,omitempty" gorm:"column:lesson_reports;type:jsonb"`

	LessonCreatedAt time.Time `json:"lesson_created_at" gorm:"column:lesson_created_at;type:timestamptz;not null;default:now()"`
	LessonUpdatedAt time.Time `json:"lesson_updated_at" gorm:"column:lesson_updated_at;type:timestamptz;not null;default:now()"`
}

func (Lesson) TableName() string { return "lessons" }

/* =========================
   Hooks: invariants + updated_at
   ========================= */

func (l *Lesson) BeforeSave(tx *gorm.DB) error {
	if !l.LessonEnd.After(l.LessonStart) {
		return errors.New("lesson_end must be after lesson_start")
	}
	if (l.LessonSeriesID == nil) != (l.LessonCadence == nil) {
		return errors.New("lesson_series_id and lesson_cadence must be set together")
	}
	if l.LessonCadence != nil {
		if _, err := CadenceInterval(*l.LessonCadence); err != nil {
			return err
		}
	}
	l.LessonUpdatedAt = time.Now().UTC()
	return nil
}

/* =========================
   Reports map (JSONB)
   ========================= */

func (l *Lesson) Reports() (map[string]LessonReport, error) {
	out := map[string]LessonReport{}
	if len(l.LessonReports) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(l.LessonReports, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Lesson) SetReports(reports map[string]LessonReport) error {
	b, err := json.Marshal(reports)
	if err != nil {
		return err
	}
	l.LessonReports = datatypes.JSON(b)
	return nil
}

// DurationHours is the billing duration of the lesson.
func (l *Lesson) DurationHours() float64 {
	return l.LessonEnd.Sub(l.LessonStart).Hours()
}

/* =========================
   Scopes
   ========================= */

func ScopeSeriesFrom(seriesID uuid.UUID, pivot time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("lesson_series_id = ? AND lesson_start >= ?", seriesID, pivot)
	}
}

func ScopeBillableWindow(from, to time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("lesson_type IN ? AND lesson_start >= ? AND lesson_start <= ?",
			BillableLessonTypes, from, to)
	}
}
