// file: internals/features/lessons/lessons/controller/lesson_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "tutorku_backend/internals/features/lessons/lessons/dto"
	model "tutorku_backend/internals/features/lessons/lessons/model"
	helper "tutorku_backend/internals/helpers"
)

type LessonController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{
		DB:        db,
		Validator: validator.New(),
	}
}

// ========== Create (single lesson) ==========
func (ctl *LessonController) Create(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	lesson, err := req.ToModel()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.DB.Create(lesson).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	resp, err := dto.FromModelLesson(lesson)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Lesson created", resp)
}

// ========== Get by ID ==========
func (ctl *LessonController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "lesson_id invalid")
	}

	var lesson model.Lesson
	if err := ctl.DB.First(&lesson, "lesson_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Lesson not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	resp, err := dto.FromModelLesson(&lesson)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", resp)
}

// ========== Patch (single instance edit, may diverge from its series) ==========
func (ctl *LessonController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "lesson_id invalid")
	}

	var lesson model.Lesson
	if err := ctl.DB.First(&lesson, "lesson_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Lesson not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var req dto.PatchLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := req.ApplyTo(&lesson); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.DB.Save(&lesson).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	resp, err := dto.FromModelLesson(&lesson)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Lesson updated", resp)
}

// ========== Delete (permanent, no soft delete) ==========
func (ctl *LessonController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "lesson_id invalid")
	}

	tx := ctl.DB.Where("lesson_id = ?", id).Delete(&model.Lesson{})
	if tx.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, tx.Error.Error())
	}
	if tx.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Lesson not found")
	}
	return helper.Success(c, "Lesson deleted", fiber.Map{"deleted": tx.RowsAffected})
}

// ========== Upsert report (per student) ==========
func (ctl *LessonController) UpsertReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "lesson_id invalid")
	}
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("studentId")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "student_id invalid")
	}

	var req dto.UpsertReportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var lesson model.Lesson
	if err := ctl.DB.First(&lesson, "lesson_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Lesson not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	reports, err := lesson.Reports()
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	reports[studentID.String()] = req.ToReport()
	if err := lesson.SetReports(reports); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctl.DB.Save(&lesson).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Report saved", fiber.Map{
		"lesson_id":  lesson.LessonID,
		"student_id": studentID,
	})
}
