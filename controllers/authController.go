package controllers

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"atolye-backend/database"
	"atolye-backend/middlewares"
	"atolye-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RegisterDTO struct {
	FirstName       string `json:"first_name" validate:"required,min=1"`
	LastName        string `json:"last_name" validate:"required,min=1"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// POST /api/registration
func Register(c *fiber.Ctx) error {
	var in RegisterDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	if in.Password != in.PasswordConfirm {
		return fiber.NewError(fiber.StatusBadRequest, "passwords do not match")
	}

	var mailExist models.User
	err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(in.Email))).First(&mailExist).Error
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	user := models.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Role:      models.RoleOperator, // admins promote later
		Active:    true,
	}
	user.SetPassword(in.Password)

	if err := database.DB.Create(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create user")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /api/login
func Login(c *fiber.Ctx) error {
	var in LoginDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid email format")
	}

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(in.Email))).First(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}
	if !user.Active {
		return fiber.NewError(fiber.StatusForbidden, "account disabled")
	}
	if err := user.ComparePassword(in.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}

	token, err := middlewares.GenerateJWT(user.Id, user.Role)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not issue token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.Id,
			"name":  user.FirstName + " " + user.LastName,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// POST /api/logout
func Logout(c *fiber.Ctx) error {
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"message": "success",
	})
}

// GET /api/me
func Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var user models.User
	if err := database.FromCtx(c).First(&user, "id = ?", userID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	return c.JSON(user)
}
