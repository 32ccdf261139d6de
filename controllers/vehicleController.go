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

type VehicleCreateDTO struct {
	Plate      string `json:"plate" validate:"required,min=2"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Year       int    `json:"year" validate:"omitempty,gte=1900"`
	CustomerID *uint  `json:"customer_id"`
	Notes      string `json:"notes"`
}

type VehicleUpdateDTO struct {
	Plate      *string `json:"plate" validate:"omitempty,min=2"`
	Make       *string `json:"make"`
	Model      *string `json:"model"`
	Year       *int    `json:"year" validate:"omitempty,gte=1900"`
	CustomerID *uint   `json:"customer_id"`
	Notes      *string `json:"notes"`
}

// POST /api/vehicle
func CreateVehicle(c *fiber.Ctx) error {
	var in VehicleCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	vehicle := models.Vehicle{
		Plate:      strings.ToUpper(in.Plate),
		Make:       in.Make,
		Model:      in.Model,
		Year:       in.Year,
		CustomerID: in.CustomerID,
		Notes:      in.Notes,
	}

	if err := database.FromCtx(c).Create(&vehicle).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create vehicle")
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

// GET /api/vehicles?page=&per_page=&q=
func GetVehicles(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	page := utils.ParseIntDefault(c.Query("page"), 1)
	perPage := utils.ParseIntDefault(c.Query("per_page"), 20)
	q := strings.TrimSpace(c.Query("q"))

	query := db.Model(&models.Vehicle{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("plate ILIKE ? OR make ILIKE ? OR model ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	meta := utils.NewPagination(page, perPage, int(total))

	var vehicles []models.Vehicle
	if err := query.Preload("Customer").Order("plate asc").Limit(meta.PerPage).Offset(meta.Offset()).Find(&vehicles).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	return c.JSON(fiber.Map{
		"vehicles":   vehicles,
		"pagination": meta,
		"message":    "success",
	})
}

// GET /api/vehicle/:id
func GetVehicle(c *fiber.Ctx) error {
	var vehicle models.Vehicle
	if err := database.FromCtx(c).Preload("Customer").First(&vehicle, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "vehicle not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(vehicle)
}

// PUT /api/vehicle/:id
func UpdateVehicle(c *fiber.Ctx) error {
	var in VehicleUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := database.FromCtx(c)

	var existing models.Vehicle
	if err := db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "vehicle not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if p, ok := updates["plate"].(string); ok {
		updates["plate"] = strings.ToUpper(p)
	}
	if len(updates) == 0 {
		return c.JSON(existing)
	}

	if err := db.Model(&existing).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update vehicle")
	}
	return c.JSON(existing)
}

// DELETE /api/vehicle/:id
func DeleteVehicle(c *fiber.Ctx) error {
	res := database.FromCtx(c).Delete(&models.Vehicle{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete vehicle")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "vehicle not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
