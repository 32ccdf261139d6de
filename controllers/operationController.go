package controllers

import (
	"errors"
	"strings"

	"atolye-backend/database"
	"atolye-backend/middlewares"
	"atolye-backend/models"
	"atolye-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OperationTemplateCreateDTO struct {
	Name                     string `json:"name" validate:"required,min=1"`
	Description              string `json:"description"`
	StationID                *uint  `json:"station_id"`
	QualityControlRequired   bool   `json:"quality_control_required"`
	EstimatedDurationSeconds int64  `json:"estimated_duration_seconds" validate:"omitempty,gte=0"`
	SortOrder                int    `json:"sort_order"`
}

type OperationTemplateUpdateDTO struct {
	Name                     *string `json:"name" validate:"omitempty,min=1"`
	Description              *string `json:"description"`
	StationID                *uint   `json:"station_id"`
	QualityControlRequired   *bool   `json:"quality_control_required"`
	EstimatedDurationSeconds *int64  `json:"estimated_duration_seconds" validate:"omitempty,gte=0"`
	SortOrder                *int    `json:"sort_order"`
	Active                   *bool   `json:"active"`
}

// POST /api/operation
func CreateOperationTemplate(c *fiber.Ctx) error {
	var in OperationTemplateCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	tpl := models.OperationTemplate{
		Name:                     in.Name,
		Description:              in.Description,
		StationID:                in.StationID,
		QualityControlRequired:   in.QualityControlRequired,
		EstimatedDurationSeconds: in.EstimatedDurationSeconds,
		SortOrder:                in.SortOrder,
		Active:                   true,
	}

	if err := database.FromCtx(c).Create(&tpl).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create operation template")
	}
	return c.Status(fiber.StatusCreated).JSON(tpl)
}

// GET /api/operations?page=&per_page=&q=
func GetOperationTemplates(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	page := utils.ParseIntDefault(c.Query("page"), 1)
	perPage := utils.ParseIntDefault(c.Query("per_page"), 20)
	q := strings.TrimSpace(c.Query("q"))

	query := db.Model(&models.OperationTemplate{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	meta := utils.NewPagination(page, perPage, int(total))

	var templates []models.OperationTemplate
	if err := query.Preload("Station").Preload("QualityControlItems").
		Order("sort_order asc, name asc").Limit(meta.PerPage).Offset(meta.Offset()).
		Find(&templates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	return c.JSON(fiber.Map{
		"operations": templates,
		"pagination": meta,
		"message":    "success",
	})
}

// GET /api/operation/:id
func GetOperationTemplate(c *fiber.Ctx) error {
	var tpl models.OperationTemplate
	if err := database.FromCtx(c).Preload("Station").Preload("QualityControlItems").
		First(&tpl, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "operation template not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(tpl)
}

// PUT /api/operation/:id
func UpdateOperationTemplate(c *fiber.Ctx) error {
	var in OperationTemplateUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := database.FromCtx(c)

	var existing models.OperationTemplate
	if err := db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "operation template not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) == 0 {
		return c.JSON(existing)
	}

	if err := db.Model(&existing).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update operation template")
	}
	return c.JSON(existing)
}

// DELETE /api/operation/:id
func DeleteOperationTemplate(c *fiber.Ctx) error {
	res := database.FromCtx(c).Delete(&models.OperationTemplate{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete operation template")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "operation template not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
