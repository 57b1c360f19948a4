// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorku_backend/internals/constants"
	authMW "tutorku_backend/internals/middlewares/auth"
	routeDetails "tutorku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	routeDetails.PublicRoutes(public, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMW.AuthMiddleware(),
		authMW.RequireRoles(constants.AdminRoles...),
	)
	routeDetails.AdminRoutes(admin, db)

	// ===================== TUTOR =====================
	log.Println("[INFO] Setting up TUTOR group (Auth, report entry)...")
	tutor := app.Group("/api/t",
		authMW.AuthMiddleware(),
		authMW.RequireRoles(constants.ReportRoles...),
	)
	routeDetails.TutorRoutes(tutor, db)
}
