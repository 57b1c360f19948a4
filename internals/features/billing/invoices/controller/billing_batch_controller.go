// file: internals/features/billing/invoices/controller/billing_batch_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	model "tutorku_backend/internals/features/billing/invoices/model"
	service "tutorku_backend/internals/features/billing/invoices/service"
	helper "tutorku_backend/internals/helpers"
)

type BillingBatchController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewBillingBatchController(db *gorm.DB) *BillingBatchController {
	return &BillingBatchController{
		DB:        db,
		Validator: validator.New(),
	}
}

type generateBatchRequest struct {
	WeekStart string `json:"week_start" validate:"required,datetime=2006-01-02"`
	WeekEnd   string `json:"week_end"   validate:"required,datetime=2006-01-02"`
}

// ========== Generate (regenerate while unlocked) ==========
func (ctl *BillingBatchController) Generate(c *fiber.Ctx) error {
	var req generateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	drafts, lines, err := service.GenerateWeeklyBatch(ctl.DB, req.WeekStart, req.WeekEnd, configs.BusinessTZ)
	if err != nil {
		if errors.Is(err, service.ErrBatchLocked) {
			return helper.Error(c, fiber.StatusConflict, "Batch is locked, line items cannot be regenerated")
		}
		if errors.Is(err, service.ErrInvalidInput) {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Weekly batch generated", fiber.Map{
		"week_start": req.WeekStart,
		"drafts":     drafts,
		"lines":      lines,
	})
}

// ========== Get batch with drafts + lines ==========
func (ctl *BillingBatchController) GetByWeek(c *fiber.Ctx) error {
	weekStart := strings.TrimSpace(c.Params("weekStart"))
	if weekStart == "" {
		return helper.Error(c, fiber.StatusBadRequest, "weekStart is required")
	}

	var batch model.BillingBatch
	if err := ctl.DB.First(&batch, "batch_week_start = ?", weekStart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Batch not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var drafts []model.InvoiceDraft
	if err := ctl.DB.Scopes(model.ScopeDraftsForWeek(weekStart)).
		Preload("InvoiceLines").
		Order("invoice_draft_family_name").
		Find(&drafts).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", fiber.Map{
		"batch":  batch,
		"drafts": drafts,
	})
}

// ========== Payment link for one draft ==========
func (ctl *BillingBatchController) CreatePaymentLink(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invoice_draft_id invalid")
	}

	var draft model.InvoiceDraft
	if err := ctl.DB.First(&draft, "invoice_draft_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Invoice draft not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	token, err := service.GenerateSnapToken(&draft)
	if err != nil {
		return helper.Error(c, fiber.StatusBadGateway, err.Error())
	}

	draft.InvoiceDraftPaymentToken = &token
	if err := ctl.DB.Save(&draft).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Payment link created", fiber.Map{
		"invoice_draft_id": draft.InvoiceDraftID,
		"payment_token":    token,
	})
}
