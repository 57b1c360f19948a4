// file: internals/features/billing/invoices/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingController "tutorku_backend/internals/features/billing/invoices/controller"
	exportController "tutorku_backend/internals/features/billing/exports/controller"
	"tutorku_backend/internals/middlewares"
)

func AdminBillingRoutes(r fiber.Router, db *gorm.DB) {
	batchCtl := billingController.NewBillingBatchController(db)
	batches := r.Group("/billing-batches")
	{
		batches.Post("/generate", batchCtl.Generate)
		batches.Get("/:weekStart", batchCtl.GetByWeek)
	}

	drafts := r.Group("/invoice-drafts")
	{
		drafts.Post("/:id/payment-link", batchCtl.CreatePaymentLink)
	}

	exportCtl := exportController.NewExportController(db)
	{
		batches.Post("/:weekStart/export", middlewares.ExportRateLimiter(), exportCtl.Export)
		batches.Get("/:weekStart/exports", exportCtl.History)
	}
}
