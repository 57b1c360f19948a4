// file: internals/features/lessons/families/service/membership.go
package service

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "tutorku_backend/internals/features/lessons/families/model"
)

// FindStudentFamily resolves the billing household for a student: the first
// match in family-id order wins. Families are ordered deterministically so
// repeated aggregation runs attribute the same way.
func FindStudentFamily(families []model.Family, studentID uuid.UUID) *model.Family {
	for i := range families {
		if families[i].HasStudent(studentID) {
			return &families[i]
		}
	}
	return nil
}

// SortFamilies orders the directory by family id for deterministic first-match.
func SortFamilies(families []model.Family) {
	sort.Slice(families, func(i, j int) bool {
		return families[i].FamilyID.String() < families[j].FamilyID.String()
	})
}

// CheckExclusiveMembership enforces the data-integrity invariant that a
// student belongs to at most one family. Checked at write time; excludeID
// skips the family being edited.
func CheckExclusiveMembership(db *gorm.DB, excludeID uuid.UUID, students []model.FamilyStudent) error {
	var families []model.Family
	if err := db.Scopes(model.ScopeAlive).Find(&families).Error; err != nil {
		return err
	}
	for _, s := range students {
		for i := range families {
			if families[i].FamilyID == excludeID {
				continue
			}
			if families[i].HasStudent(s.ID) {
				return fmt.Errorf("student %s already belongs to family %s (%s)",
					s.ID, families[i].FamilyID, families[i].FamilyParentName)
			}
		}
	}
	return nil
}
