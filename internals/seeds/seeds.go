// file: internals/seeds/seeds.go
package seeds

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	famModel "tutorku_backend/internals/features/lessons/families/model"
	tutorModel "tutorku_backend/internals/features/lessons/tutors/model"
)

// Run inserts a small development dataset. Safe to call repeatedly:
// it skips any table that already has rows.
func Run(db *gorm.DB) error {
	if err := seedTutors(db); err != nil {
		return err
	}
	if err := seedFamilies(db); err != nil {
		return err
	}
	return nil
}

func seedTutors(db *gorm.DB) error {
	var count int64
	if err := db.Model(&tutorModel.Tutor{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("[SEED] tutors already populated, skipping")
		return nil
	}

	tutors := []tutorModel.Tutor{
		{TutorName: "Sarah Nguyen", TutorEmail: "sarah.nguyen@example.com", TutorHourlyRateCents: 6500},
		{TutorName: "James Okafor", TutorEmail: "james.okafor@example.com", TutorHourlyRateCents: 7000},
		{TutorName: "Mei Lin", TutorEmail: "mei.lin@example.com", TutorHourlyRateCents: 6000},
	}
	if err := db.Create(&tutors).Error; err != nil {
		return err
	}
	log.Printf("[SEED] inserted %d tutors", len(tutors))
	return nil
}

func seedFamilies(db *gorm.DB) error {
	var count int64
	if err := db.Model(&famModel.Family{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("[SEED] families already populated, skipping")
		return nil
	}

	families := []struct {
		parent   string
		email    string
		students []famModel.FamilyStudent
	}{
		{
			parent: "Anita Brown", email: "anita.brown@example.com",
			students: []famModel.FamilyStudent{
				{ID: uuid.New(), Name: "Liam Brown"},
				{ID: uuid.New(), Name: "Olivia Brown"},
			},
		},
		{
			parent: "Derek Patel", email: "derek.patel@example.com",
			students: []famModel.FamilyStudent{
				{ID: uuid.New(), Name: "Aisha Patel"},
			},
		},
	}

	for _, f := range families {
		fam := famModel.Family{
			FamilyParentName:  f.parent,
			FamilyParentEmail: f.email,
		}
		if err := fam.SetStudents(f.students); err != nil {
			return err
		}
		if err := db.Create(&fam).Error; err != nil {
			return err
		}
	}
	log.Printf("[SEED] inserted %d families", len(families))
	return nil
}
