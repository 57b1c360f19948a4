// file: internals/features/accounting/xero/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	xeroController "tutorku_backend/internals/features/accounting/xero/controller"
)

func AdminAccountingRoutes(r fiber.Router, db *gorm.DB) {
	ctl := xeroController.NewConnectController(db)
	acc := r.Group("/accounting")
	{
		acc.Get("/connect", ctl.Connect)
		acc.Get("/status", ctl.Status)
	}
}

// PublicAccountingRoutes: the OAuth redirect lands here without a JWT.
func PublicAccountingRoutes(r fiber.Router, db *gorm.DB) {
	ctl := xeroController.NewConnectController(db)
	acc := r.Group("/accounting")
	{
		acc.Get("/callback", ctl.Callback)
	}
}
