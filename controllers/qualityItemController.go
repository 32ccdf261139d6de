package controllers

import (
	"errors"

	"atolye-backend/database"
	"atolye-backend/middlewares"
	"atolye-backend/models"
	"atolye-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QualityItemCreateDTO struct {
	OperationTemplateID uint   `json:"operation_template_id" validate:"required"`
	Question            string `json:"question" validate:"required,min=1"`
	ExpectedResult      string `json:"expected_result"`
	SortOrder           int    `json:"sort_order"`
}

type QualityItemUpdateDTO struct {
	Question       *string `json:"question" validate:"omitempty,min=1"`
	ExpectedResult *string `json:"expected_result"`
	SortOrder      *int    `json:"sort_order"`
}

// POST /api/quality-item
func CreateQualityItem(c *fiber.Ctx) error {
	var in QualityItemCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db := database.FromCtx(c)

	// The parent template must exist; checklist items never dangle.
	var tpl models.OperationTemplate
	if err := db.First(&tpl, "id = ?", in.OperationTemplateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "operation template not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	item := models.QualityControlItem{
		OperationTemplateID: in.OperationTemplateID,
		Question:            in.Question,
		ExpectedResult:      in.ExpectedResult,
		SortOrder:           in.SortOrder,
	}

	if err := db.Create(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create quality item")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// GET /api/quality-items?operation_template_id=
func GetQualityItems(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	query := db.Model(&models.QualityControlItem{})
	if tplID := c.Query("operation_template_id"); tplID != "" {
		query = query.Where("operation_template_id = ?", tplID)
	}

	var items []models.QualityControlItem
	if err := query.Order("sort_order asc, id asc").Find(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	return c.JSON(fiber.Map{
		"quality_items": items,
		"message":       "success",
	})
}

// PUT /api/quality-item/:id
func UpdateQualityItem(c *fiber.Ctx) error {
	var in QualityItemUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := database.FromCtx(c)

	var existing models.QualityControlItem
	if err := db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "quality item not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) == 0 {
		return c.JSON(existing)
	}

	if err := db.Model(&existing).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update quality item")
	}
	return c.JSON(existing)
}

// DELETE /api/quality-item/:id
func DeleteQualityItem(c *fiber.Ctx) error {
	res := database.FromCtx(c).Delete(&models.QualityControlItem{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete quality item")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "quality item not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
