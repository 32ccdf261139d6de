package controllers

import (
	"errors"
	"fmt"
	"strings"

	"atolye-backend/database"
	"atolye-backend/middlewares"
	"atolye-backend/models"
	"atolye-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductInput struct {
	Code        string  `json:"code" validate:"required,min=1"`
	Name        string  `json:"name" validate:"required,min=1"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

// POST /api/product (accepts a batch)
func CreateProducts(c *fiber.Ctx) error {
	var inputs []ProductInput
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(inputs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no products given")
	}

	db := database.FromCtx(c)
	var created []models.Product

	for i := range inputs {
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return err
		}
		utils.NormalizeDTO(&inputs[i])

		product := models.Product{
			Code:        inputs[i].Code,
			Name:        inputs[i].Name,
			Description: inputs[i].Description,
			Unit:        inputs[i].Unit,
			UnitPrice:   inputs[i].UnitPrice,
			Active:      true,
		}
		if product.Unit == "" {
			product.Unit = "adet"
		}

		if err := db.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("could not create product at index %d", i))
		}
		created = append(created, product)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GET /api/products?page=&per_page=&q=
func GetProducts(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	page := utils.ParseIntDefault(c.Query("page"), 1)
	perPage := utils.ParseIntDefault(c.Query("per_page"), 20)
	q := strings.TrimSpace(c.Query("q"))

	query := db.Model(&models.Product{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ? OR description ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	meta := utils.NewPagination(page, perPage, int(total))

	var products []models.Product
	if err := query.Order("code asc").Limit(meta.PerPage).Offset(meta.Offset()).Find(&products).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	return c.JSON(fiber.Map{
		"products":   products,
		"pagination": meta,
		"message":    "success",
	})
}

// GET /api/product/:id
func GetProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := database.FromCtx(c).First(&product, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(product)
}

type ProductUpdateDTO struct {
	Code        *string  `json:"code" validate:"omitempty,min=1"`
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Unit        *string  `json:"unit"`
	UnitPrice   *float64 `json:"unit_price" validate:"omitempty,gte=0"`
	Active      *bool    `json:"active"`
}

// PUT /api/product/:id
func UpdateProduct(c *fiber.Ctx) error {
	var in ProductUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := database.FromCtx(c)

	var existing models.Product
	if err := db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) == 0 {
		return c.JSON(existing)
	}

	if err := db.Model(&existing).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update product")
	}
	return c.JSON(existing)
}

// DELETE /api/product/:id
func DeleteProduct(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	// The RESTRICT FK would reject this anyway; checking first gives the
	// caller a 409 instead of a generic failure.
	var refs int64
	if err := db.Model(&models.OfferLineItem{}).Where("product_id = ?", c.Params("id")).Count(&refs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if refs > 0 {
		return fiber.NewError(fiber.StatusConflict, "product is referenced by offers")
	}

	res := db.Delete(&models.Product{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete product")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
