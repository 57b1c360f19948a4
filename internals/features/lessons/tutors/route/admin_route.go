// file: internals/features/lessons/tutors/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tutorController "tutorku_backend/internals/features/lessons/tutors/controller"
)

func AdminTutorRoutes(r fiber.Router, db *gorm.DB) {
	ctl := tutorController.NewTutorController(db)
	tutors := r.Group("/tutors")
	{
		tutors.Post("/", ctl.Create)
		tutors.Get("/", ctl.List)
		tutors.Put("/:id", ctl.Update)
		tutors.Delete("/:id", ctl.Delete)
	}
}
