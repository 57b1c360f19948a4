// file: internals/features/lessons/lessons/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	lessonController "tutorku_backend/internals/features/lessons/lessons/controller"
)

func AdminLessonRoutes(r fiber.Router, db *gorm.DB) {
	lessonCtl := lessonController.NewLessonController(db)
	lessons := r.Group("/lessons")
	{
		lessons.Post("/", lessonCtl.Create)
		lessons.Get("/:id", lessonCtl.GetByID)
		lessons.Patch("/:id", lessonCtl.Patch)
		lessons.Delete("/:id", lessonCtl.Delete)
		lessons.Put("/:id/reports/:studentId", lessonCtl.UpsertReport)
	}

	seriesCtl := lessonController.NewLessonSeriesController(db)
	series := r.Group("/lesson-series")
	{
		series.Post("/", seriesCtl.Create)
		series.Patch("/:id", seriesCtl.Patch)
		series.Delete("/:id", seriesCtl.Delete)
	}
}
