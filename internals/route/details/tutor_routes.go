// file: internals/route/details/tutor_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	lessonController "tutorku_backend/internals/features/lessons/lessons/controller"
)

// TutorRoutes: tutors can read their lessons and file reports, nothing else.
func TutorRoutes(r fiber.Router, db *gorm.DB) {
	ctl := lessonController.NewLessonController(db)
	lessons := r.Group("/lessons")
	{
		lessons.Get("/:id", ctl.GetByID)
		lessons.Put("/:id/reports/:studentId", ctl.UpsertReport)
	}
}
