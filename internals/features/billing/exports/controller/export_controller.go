// file: internals/features/billing/exports/controller/export_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	xeroService "tutorku_backend/internals/features/accounting/xero/service"
	model "tutorku_backend/internals/features/billing/exports/model"
	service "tutorku_backend/internals/features/billing/exports/service"
	helper "tutorku_backend/internals/helpers"
)

type ExportController struct {
	DB         *gorm.DB
	Reconciler *service.Reconciler
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{
		DB: db,
		Reconciler: service.NewReconciler(
			db,
			xeroService.NewClient(configs.XeroAPIBaseURL),
			xeroService.NewTokenService(db,
				configs.XeroTokenURL, configs.XeroClientID, configs.XeroClientSecret),
			configs.BusinessTZ,
		),
	}
}

// ========== Export one week's batch ==========
// Locks the batch even when some lines fail; callers must check "errors".
func (ctl *ExportController) Export(c *fiber.Ctx) error {
	weekStart := strings.TrimSpace(c.Params("weekStart"))
	if weekStart == "" {
		return helper.Error(c, fiber.StatusBadRequest, "weekStart is required")
	}

	exportType := strings.TrimSpace(c.Query("type", model.ExportTypeInvoices))

	var (
		result *service.ExportResult
		err    error
	)
	switch exportType {
	case model.ExportTypeInvoices:
		result, err = ctl.Reconciler.ExportInvoices(c.UserContext(), weekStart)
	case model.ExportTypePayroll:
		result, err = ctl.Reconciler.ExportPayroll(c.UserContext(), weekStart)
	default:
		return helper.Error(c, fiber.StatusBadRequest, "type must be invoices or payroll")
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrBatchNotFound):
			return helper.Error(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNothingToDo):
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, xeroService.ErrNoCredential),
			errors.Is(err, xeroService.ErrCredentialExpired):
			return helper.Error(c, fiber.StatusUnauthorized, "Accounting reconnect required: "+err.Error())
		default:
			if result != nil {
				// per-line work may already be durable; hand back what landed
				return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
					"status":  "partial",
					"message": err.Error(),
					"data":    result,
				})
			}
			return helper.Error(c, fiber.StatusBadGateway, err.Error())
		}
	}

	return helper.Success(c, "Export pass finished", result)
}

// ========== Export audit history ==========
func (ctl *ExportController) History(c *fiber.Ctx) error {
	weekStart := strings.TrimSpace(c.Params("weekStart"))
	if weekStart == "" {
		return helper.Error(c, fiber.StatusBadRequest, "weekStart is required")
	}

	var records []model.ExportRecord
	if err := ctl.DB.Where("export_record_week_start = ?", weekStart).
		Order("export_record_created_at DESC").
		Find(&records).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", records)
}
