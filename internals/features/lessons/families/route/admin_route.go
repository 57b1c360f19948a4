// file: internals/features/lessons/families/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	familyController "tutorku_backend/internals/features/lessons/families/controller"
)

func AdminFamilyRoutes(r fiber.Router, db *gorm.DB) {
	ctl := familyController.NewFamilyController(db)
	families := r.Group("/families")
	{
		families.Post("/", ctl.Create)
		families.Get("/", ctl.List)
		families.Put("/:id", ctl.Update)
		families.Delete("/:id", ctl.Delete)
	}
}
