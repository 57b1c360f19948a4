// file: internals/features/lessons/tutors/controller/tutor_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "tutorku_backend/internals/features/lessons/tutors/model"
	helper "tutorku_backend/internals/helpers"
)

type TutorController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTutorController(db *gorm.DB) *TutorController {
	return &TutorController{DB: db, Validator: validator.New()}
}

type upsertTutorRequest struct {
	TutorName            string `json:"tutor_name"  validate:"required"`
	TutorEmail           string `json:"tutor_email" validate:"required,email"`
	TutorHourlyRateCents *int   `json:"tutor_hourly_rate_cents" validate:"omitempty,min=0"`
}

func (ctl *TutorController) Create(c *fiber.Ctx) error {
	var req upsertTutorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	tutor := model.Tutor{
		TutorName:  req.TutorName,
		TutorEmail: strings.ToLower(strings.TrimSpace(req.TutorEmail)),
	}
	if req.TutorHourlyRateCents != nil {
		tutor.TutorHourlyRateCents = *req.TutorHourlyRateCents
	}

	if err := ctl.DB.Create(&tutor).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Tutor created", tutor)
}

func (ctl *TutorController) List(c *fiber.Ctx) error {
	var tutors []model.Tutor
	if err := ctl.DB.Scopes(model.ScopeAlive).Order("tutor_name").Find(&tutors).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "OK", tutors)
}

func (ctl *TutorController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "tutor_id invalid")
	}

	var tutor model.Tutor
	if err := ctl.DB.Scopes(model.ScopeAlive).First(&tutor, "tutor_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Tutor not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var req upsertTutorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	tutor.TutorName = req.TutorName
	tutor.TutorEmail = strings.ToLower(strings.TrimSpace(req.TutorEmail))
	if req.TutorHourlyRateCents != nil {
		tutor.TutorHourlyRateCents = *req.TutorHourlyRateCents
	}

	if err := ctl.DB.Save(&tutor).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Tutor updated", tutor)
}

func (ctl *TutorController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "tutor_id invalid")
	}

	tx := ctl.DB.Model(&model.Tutor{}).
		Where("tutor_id = ? AND tutor_deleted_at IS NULL", id).
		Update("tutor_deleted_at", gorm.Expr("NOW()"))
	if tx.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, tx.Error.Error())
	}
	if tx.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Tutor not found")
	}
	return helper.Success(c, "Tutor deleted", fiber.Map{"deleted": tx.RowsAffected})
}
