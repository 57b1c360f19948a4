// file: internals/route/details/public_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accountingRoute "tutorku_backend/internals/features/accounting/xero/route"
)

func PublicRoutes(r fiber.Router, db *gorm.DB) {
	accountingRoute.PublicAccountingRoutes(r, db)
}
