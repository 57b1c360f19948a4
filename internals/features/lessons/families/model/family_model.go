// file: internals/features/lessons/families/model/family_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FamilyStudent is one member entry inside family_students JSONB.
type FamilyStudent struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

/* =========================
   Model: families
   ========================= */

// Family is the billing unit: invoice lines for its member students are
// grouped under the parent contact.
type Family struct {
	FamilyID uuid.UUID `json:"family_id" gorm:"column:family_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	FamilyParentName  string `json:"family_parent_name"  gorm:"column:family_parent_name;type:text;not null"`
	FamilyParentEmail string `json:"family_parent_email" gorm:"column:family_parent_email;type:text;not null"`

	// member students: [{id, name}, ...]
	FamilyStudents datatypes.JSON `json:"family_students" gorm:"column:family_students;type:jsonb;not null;default:'[]'"`

	FamilyCreatedAt time.Time  `json:"family_created_at" gorm:"column:family_created_at;type:timestamptz;not null;default:now()"`
	FamilyUpdatedAt time.Time  `json:"family_updated_at" gorm:"column:family_updated_at;type:timestamptz;not null;default:now()"`
	FamilyDeletedAt *time.Time `json:"family_deleted_at,omitempty" gorm:"column:family_deleted_at;type:timestamptz"`
}

func (Family) TableName() string { return "families" }

func (f *Family) BeforeCreate(tx *gorm.DB) error {
	f.FamilyUpdatedAt = time.Now().UTC()
	return nil
}

func (f *Family) BeforeUpdate(tx *gorm.DB) error {
	f.FamilyUpdatedAt = time.Now().UTC()
	return nil
}

func (f *Family) Students() ([]FamilyStudent, error) {
	var out []FamilyStudent
	if len(f.FamilyStudents) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(f.FamilyStudents, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *Family) SetStudents(students []FamilyStudent) error {
	b, err := json.Marshal(students)
	if err != nil {
		return err
	}
	f.FamilyStudents = datatypes.JSON(b)
	return nil
}

// HasStudent reports whether studentID is a member of this family.
func (f *Family) HasStudent(studentID uuid.UUID) bool {
	students, err := f.Students()
	if err != nil {
		return false
	}
	for _, s := range students {
		if s.ID == studentID {
			return true
		}
	}
	return false
}

/* =========================
   Scopes
   ========================= */

func ScopeAlive(db *gorm.DB) *gorm.DB {
	return db.Where("family_deleted_at IS NULL")
}
