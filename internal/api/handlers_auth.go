package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sana-health/sana/internal/models"
	"github.com/sana-health/sana/internal/services"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      *int   `json:"age"`
	Gender   string `json:"gender"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var request registerRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(request.Name) == "" {
		return apiError(c, fiber.StatusBadRequest, "name is required")
	}
	if !strings.Contains(request.Email, "@") {
		return apiError(c, fiber.StatusBadRequest, "valid email is required")
	}
	if len(request.Password) < 8 {
		return apiError(c, fiber.StatusBadRequest, "password must be at least 8 characters")
	}
	if request.Gender != "" && !models.ValidGender(request.Gender) {
		return apiError(c, fiber.StatusBadRequest, "invalid gender")
	}

	user, err := handler.authService.Register(services.Registration{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
		Age:      request.Age,
		Gender:   request.Gender,
	})
	if errors.Is(err, services.ErrEmailTaken) {
		return apiError(c, fiber.StatusConflict, "email already registered")
	}
	if err != nil {
		handler.logger.Error("register failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	token, err := handler.buildToken(user, 0)
	if err != nil {
		handler.logger.Error("issue token failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}
	handler.setAuthCookie(c, token, 0)
	return created(c, fiber.Map{"user": user, "token": token})
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var request loginRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.authService.Authenticate(request.Email, request.Password, time.Now())
	if errors.Is(err, services.ErrInvalidCredentials) {
		return apiError(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	if err != nil {
		handler.logger.Error("login failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}

	var ttl time.Duration
	if request.RememberMe {
		ttl = rememberMeLifetime
	}
	token, err := handler.buildToken(user, ttl)
	if err != nil {
		handler.logger.Error("issue token failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}
	handler.setAuthCookie(c, token, ttl)
	return success(c, fiber.Map{
		"user":                 user,
		"token":                token,
		"must_change_password": user.MustChangePassword,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return success(c, fiber.Map{})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, err := handler.authService.UserByID(currentUserID(c))
	if errors.Is(err, services.ErrUserNotFound) {
		return apiError(c, fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "load user failed")
	}
	return success(c, fiber.Map{"user": user})
}
