// file: internals/features/lessons/lessons/controller/lesson_series_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	dto "tutorku_backend/internals/features/lessons/lessons/dto"
	service "tutorku_backend/internals/features/lessons/lessons/service"
	helper "tutorku_backend/internals/helpers"
)

type LessonSeriesController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewLessonSeriesController(db *gorm.DB) *LessonSeriesController {
	return &LessonSeriesController{
		DB:        db,
		Validator: validator.New(),
	}
}

// ========== Create series ==========
// Expands the template weekly/fortnightly up to the end of next calendar year.
func (ctl *LessonSeriesController) Create(c *fiber.Ctx) error {
	var req dto.CreateLessonSeriesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	template, err := req.ToModel()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	created, seriesID, err := service.CreateSeries(ctl.DB, template, req.LessonCadence, time.Now(), configs.BusinessTZ)
	if err != nil {
		var partial *service.PartialCommitError
		if errors.As(err, &partial) {
			// earlier chunks are durable; surface what landed
			return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
				"status":    "partial",
				"message":   "series partially created, retry to fill the remainder",
				"created":   partial.Written,
				"series_id": seriesID,
				"error":     partial.Err.Error(),
			})
		}
		if errors.Is(err, service.ErrInvalidInput) {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Series created", fiber.Map{
		"created":   created,
		"series_id": seriesID,
	})
}

// ========== Forward update ==========
func (ctl *LessonSeriesController) Patch(c *fiber.Ctx) error {
	seriesID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "series_id invalid")
	}

	var req dto.UpdateLessonSeriesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	patch, pivot, err := req.ToPatch()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	updated, err := service.UpdateSeriesForward(ctl.DB, seriesID, pivot, patch)
	if err != nil {
		var partial *service.PartialCommitError
		if errors.As(err, &partial) {
			return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
				"status":  "partial",
				"message": "series partially updated, retry to fill the remainder",
				"updated": partial.Written,
				"error":   partial.Err.Error(),
			})
		}
		if errors.Is(err, service.ErrInvalidInput) {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	if updated == 0 {
		return helper.Success(c, "no lessons found", fiber.Map{"updated": 0})
	}
	return helper.Success(c, "Series updated", fiber.Map{"updated": updated})
}

// ========== Forward delete ==========
func (ctl *LessonSeriesController) Delete(c *fiber.Ctx) error {
	seriesID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "series_id invalid")
	}

	pivotStr := strings.TrimSpace(c.Query("pivot"))
	if pivotStr == "" {
		return helper.Error(c, fiber.StatusBadRequest, "pivot is required")
	}
	pivot, err := time.Parse(time.RFC3339, pivotStr)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "pivot must be RFC3339")
	}

	deleted, err := service.DeleteSeriesForward(ctl.DB, seriesID, pivot.UTC())
	if err != nil {
		var partial *service.PartialCommitError
		if errors.As(err, &partial) {
			return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
				"status":  "partial",
				"message": "series partially deleted, retry to remove the remainder",
				"deleted": partial.Written,
				"error":   partial.Err.Error(),
			})
		}
		if errors.Is(err, service.ErrInvalidInput) {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	if deleted == 0 {
		return helper.Success(c, "no lessons found", fiber.Map{"deleted": 0})
	}
	return helper.Success(c, "Series deleted", fiber.Map{"deleted": deleted})
}
