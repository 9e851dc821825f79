package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-ranker/internal/middleware"
	"alfredoptarigan/cv-ranker/internal/models"
	"alfredoptarigan/cv-ranker/internal/services"
)

type UserHandler struct {
	authService services.AuthService
}

func NewUserHandler(authService services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// HandleRegister handles POST /users/register
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Fullname) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Fullname, email and password are required",
		})
	}

	user, err := h.authService.Register(req.Fullname, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "User already exists",
			})
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.UserResponse{
		Status:  "success",
		Message: "User Registered Successfully",
		Data:    user,
	})
}

// HandleLogin handles POST /users/login
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid login credentials",
			})
		}
		return err
	}

	return c.JSON(models.LoginResponse{
		Status:  "success",
		Message: "User Logged in successfully",
		User:    user,
		Token:   token,
	})
}

// HandleProfile handles GET /users/profile. Only user tokens carry an
// account; static API keys are refused.
func (h *UserHandler) HandleProfile(c *fiber.Ctx) error {
	id, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.MessageResponse{
			Message: "Profile requires a user token",
		})
	}

	user, err := h.authService.Profile(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.MessageResponse{
				Message: err.Error(),
			})
		}
		return err
	}

	return c.JSON(models.UserResponse{
		Status:  "success",
		Message: "Welcome Profile Page",
		Data:    user,
	})
}
