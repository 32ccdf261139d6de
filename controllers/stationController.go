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

type StationCreateDTO struct {
	Code     string `json:"code" validate:"required,min=1"`
	Name     string `json:"name" validate:"required,min=1"`
	Area     string `json:"area"`
	Capacity int    `json:"capacity" validate:"omitempty,gte=1"`
}

type StationUpdateDTO struct {
	Code     *string `json:"code" validate:"omitempty,min=1"`
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Area     *string `json:"area"`
	Capacity *int    `json:"capacity" validate:"omitempty,gte=1"`
	Active   *bool   `json:"active"`
}

// POST /api/station
func CreateStation(c *fiber.Ctx) error {
	var in StationCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	station := models.Station{
		Code:     in.Code,
		Name:     in.Name,
		Area:     in.Area,
		Capacity: in.Capacity,
		Active:   true,
	}
	if station.Capacity <= 0 {
		station.Capacity = 1
	}

	if err := database.FromCtx(c).Create(&station).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create station")
	}
	return c.Status(fiber.StatusCreated).JSON(station)
}

// GET /api/stations?page=&per_page=&q=
func GetStations(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	page := utils.ParseIntDefault(c.Query("page"), 1)
	perPage := utils.ParseIntDefault(c.Query("per_page"), 20)
	q := strings.TrimSpace(c.Query("q"))

	query := db.Model(&models.Station{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ? OR area ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	meta := utils.NewPagination(page, perPage, int(total))

	var stations []models.Station
	if err := query.Order("code asc").Limit(meta.PerPage).Offset(meta.Offset()).Find(&stations).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	return c.JSON(fiber.Map{
		"stations":   stations,
		"pagination": meta,
		"message":    "success",
	})
}

// GET /api/station/:id
func GetStation(c *fiber.Ctx) error {
	var station models.Station
	if err := database.FromCtx(c).First(&station, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "station not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(station)
}

// PUT /api/station/:id
func UpdateStation(c *fiber.Ctx) error {
	var in StationUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := database.FromCtx(c)

	var existing models.Station
	if err := db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "station not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) == 0 {
		return c.JSON(existing)
	}

	if err := db.Model(&existing).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update station")
	}
	return c.JSON(existing)
}

// DELETE /api/station/:id
func DeleteStation(c *fiber.Ctx) error {
	res := database.FromCtx(c).Delete(&models.Station{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete station")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "station not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
