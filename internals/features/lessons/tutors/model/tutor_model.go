// file: internals/features/lessons/tutors/model/tutor_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tutor is the directory entry matched against the accounting platform's
// employee list (by email) during payroll export.
type Tutor struct {
	TutorID uuid.UUID `json:"tutor_id" gorm:"column:tutor_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	TutorName  string `json:"tutor_name"  gorm:"column:tutor_name;type:text;not null"`
	TutorEmail string `json:"tutor_email" gorm:"column:tutor_email;type:text;not null;uniqueIndex"`

	TutorHourlyRateCents int `json:"tutor_hourly_rate_cents" gorm:"column:tutor_hourly_rate_cents;type:int;not null;default:0"`

	TutorCreatedAt time.Time  `json:"tutor_created_at" gorm:"column:tutor_created_at;type:timestamptz;not null;default:now()"`
	TutorUpdatedAt time.Time  `json:"tutor_updated_at" gorm:"column:tutor_updated_at;type:timestamptz;not null;default:now()"`
	TutorDeletedAt *time.Time `json:"tutor_deleted_at,omitempty" gorm:"column:tutor_deleted_at;type:timestamptz"`
}

func (Tutor) TableName() string { return "tutors" }

func (t *Tutor) BeforeCreate(tx *gorm.DB) error {
	t.TutorUpdatedAt = time.Now().UTC()
	return nil
}

func (t *Tutor) BeforeUpdate(tx *gorm.DB) error {
	t.TutorUpdatedAt = time.Now().UTC()
	return nil
}

func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("tutor_deleted_at IS NULL")
}
