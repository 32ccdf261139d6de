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

type CustomerCreateDTO struct {
	CompanyName string `json:"company_name" validate:"required,min=1"`
	ContactName string `json:"contact_name" validate:"required,min=1"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty"`
	TaxNumber   string `json:"tax_number" validate:"omitempty"`
	TaxOffice   string `json:"tax_office" validate:"omitempty"`
	Address     string `json:"address" validate:"omitempty"`
	City        string `json:"city" validate:"omitempty"`
	Country     string `json:"country" validate:"omitempty"`
	Notes       string `json:"notes" validate:"omitempty"`
}

type CustomerUpdateDTO struct {
	CompanyName *string `json:"company_name" validate:"omitempty,min=1"`
	ContactName *string `json:"contact_name" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number"`
	TaxNumber   *string `json:"tax_number"`
	TaxOffice   *string `json:"tax_office"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
	Notes       *string `json:"notes"`
	Active      *bool   `json:"active"`
}

// POST /api/customer
func CreateCustomer(c *fiber.Ctx) error {
	var in CustomerCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	customer := models.Customer{
		CompanyName: in.CompanyName,
		ContactName: in.ContactName,
		Email:       strings.ToLower(in.Email),
		PhoneNumber: in.PhoneNumber,
		TaxNumber:   in.TaxNumber,
		TaxOffice:   in.TaxOffice,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		Notes:       in.Notes,
		Active:      true,
	}

	if err := database.FromCtx(c).Create(&customer).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create customer")
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// GET /api/customers?page=&per_page=&q=
func GetCustomers(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	page := utils.ParseIntDefault(c.Query("page"), 1)
	perPage := utils.ParseIntDefault(c.Query("per_page"), 20)
	q := strings.TrimSpace(c.Query("q"))

	query := db.Model(&models.Customer{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("company_name ILIKE ? OR contact_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	meta := utils.NewPagination(page, perPage, int(total))

	var customers []models.Customer
	if err := query.Order("company_name asc").Limit(meta.PerPage).Offset(meta.Offset()).Find(&customers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	return c.JSON(fiber.Map{
		"customers":  customers,
		"pagination": meta,
		"message":    "success",
	})
}

// GET /api/customer/:id
func GetCustomer(c *fiber.Ctx) error {
	var customer models.Customer
	if err := database.FromCtx(c).First(&customer, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(customer)
}

// PUT /api/customer/:id
func UpdateCustomer(c *fiber.Ctx) error {
	var in CustomerUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := database.FromCtx(c)

	var existing models.Customer
	if err := db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) == 0 {
		return c.JSON(existing)
	}

	if err := db.Model(&existing).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update customer")
	}
	return c.JSON(existing)
}

// DELETE /api/customer/:id
func DeleteCustomer(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	res := db.Delete(&models.Customer{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete customer")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "customer not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
