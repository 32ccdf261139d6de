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

var knownRoles = []string{models.RoleAdmin, models.RolePlanner, models.RoleOperator}

func validRole(role string) bool {
	for _, r := range knownRoles {
		if role == r {
			return true
		}
	}
	return false
}

// GET /api/users?page=&per_page=&q=  (admin only)
func GetUsers(c *fiber.Ctx) error {
	db := database.FromCtx(c)

	page := utils.ParseIntDefault(c.Query("page"), 1)
	perPage := utils.ParseIntDefault(c.Query("per_page"), 20)
	q := strings.TrimSpace(c.Query("q"))

	query := db.Model(&models.User{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	meta := utils.NewPagination(page, perPage, int(total))

	var users []models.User
	if err := query.Order("email asc").Limit(meta.PerPage).Offset(meta.Offset()).Find(&users).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	return c.JSON(fiber.Map{
		"users":      users,
		"pagination": meta,
		"message":    "success",
	})
}

type UserUpdateDTO struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin planner operator"`
	Active    *bool   `json:"active"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
}

// PUT /api/user/:id  (admin only; role changes and resets)
func UpdateUser(c *fiber.Ctx) error {
	var in UserUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := database.FromCtx(c)

	var existing models.User
	if err := db.First(&existing, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if in.Role != nil && !validRole(*in.Role) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown role")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	delete(updates, "password") // handled via the bcrypt setter below

	if in.Password != nil {
		existing.SetPassword(*in.Password)
		updates["password"] = existing.Password
	}
	if len(updates) == 0 {
		return c.JSON(existing)
	}

	if err := db.Model(&existing).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update user")
	}
	return c.JSON(existing)
}

// DELETE /api/user/:id  (admin only)
func DeleteUser(c *fiber.Ctx) error {
	callerID, _ := c.Locals("userID").(string)
	if callerID == c.Params("id") {
		return fiber.NewError(fiber.StatusBadRequest, "cannot delete yourself")
	}

	res := database.FromCtx(c).Delete(&models.User{}, "id = ?", c.Params("id"))
	if res.Error != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete user")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
