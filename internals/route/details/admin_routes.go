// file: internals/route/details/admin_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accountingRoute "tutorku_backend/internals/features/accounting/xero/route"
	billingRoute "tutorku_backend/internals/features/billing/invoices/route"
	familyRoute "tutorku_backend/internals/features/lessons/families/route"
	lessonRoute "tutorku_backend/internals/features/lessons/lessons/route"
	tutorRoute "tutorku_backend/internals/features/lessons/tutors/route"
)

func AdminRoutes(r fiber.Router, db *gorm.DB) {
	lessonRoute.AdminLessonRoutes(r, db)
	familyRoute.AdminFamilyRoutes(r, db)
	tutorRoute.AdminTutorRoutes(r, db)
	billingRoute.AdminBillingRoutes(r, db)
	accountingRoute.AdminAccountingRoutes(r, db)
}
