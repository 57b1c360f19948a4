// file: internals/features/lessons/families/controller/family_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "tutorku_backend/internals/features/lessons/families/dto"
	model "tutorku_backend/internals/features/lessons/families/model"
	service "tutorku_backend/internals/features/lessons/families/service"
	helper "tutorku_backend/internals/helpers"
)

type FamilyController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewFamilyController(db *gorm.DB) *FamilyController {
	return &FamilyController{
		DB:        db,
		Validator: validator.New(),
	}
}

// ========== Create ==========
func (ctl *FamilyController) Create(c *fiber.Ctx) error {
	var req dto.CreateFamilyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	family, err := req.ToModel()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	students, _ := family.Students()
	if err := service.CheckExclusiveMembership(ctl.DB, uuid.Nil, students); err != nil {
		return helper.Error(c, fiber.StatusConflict, err.Error())
	}

	if err := ctl.DB.Create(family).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	resp, err := dto.FromModelFamily(family)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Family created", resp)
}

// ========== List ==========
func (ctl *FamilyController) List(c *fiber.Ctx) error {
	var families []model.Family
	if err := ctl.DB.Scopes(model.ScopeAlive).Order("family_parent_name").Find(&families).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]*dto.FamilyResponse, 0, len(families))
	for i := range families {
		resp, err := dto.FromModelFamily(&families[i])
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, err.Error())
		}
		out = append(out, resp)
	}
	return helper.Success(c, "OK", out)
}

// ========== Update ==========
func (ctl *FamilyController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "family_id invalid")
	}

	var family model.Family
	if err := ctl.DB.Scopes(model.ScopeAlive).First(&family, "family_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Family not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var req dto.UpdateFamilyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := req.ApplyTo(&family); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	students, _ := family.Students()
	if err := service.CheckExclusiveMembership(ctl.DB, family.FamilyID, students); err != nil {
		return helper.Error(c, fiber.StatusConflict, err.Error())
	}

	if err := ctl.DB.Save(&family).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	resp, err := dto.FromModelFamily(&family)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Family updated", resp)
}

// ========== Delete (soft delete) ==========
func (ctl *FamilyController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "family_id invalid")
	}

	tx := ctl.DB.Model(&model.Family{}).
		Where("family_id = ? AND family_deleted_at IS NULL", id).
		Update("family_deleted_at", gorm.Expr("NOW()"))
	if tx.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, tx.Error.Error())
	}
	if tx.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Family not found")
	}
	return helper.Success(c, "Family deleted", fiber.Map{"deleted": tx.RowsAffected})
}
