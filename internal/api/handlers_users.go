package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sana-health/sana/internal/models"
	"github.com/sana-health/sana/internal/services"
)

type profileUpdateRequest struct {
	Name              *string                  `json:"name"`
	Age               *int                     `json:"age"`
	Gender            *string                  `json:"gender"`
	Height            *string                  `json:"height"`
	Weight            *string                  `json:"weight"`
	BloodType         *string                  `json:"blood_type"`
	Allergies         []string                 `json:"allergies"`
	Medications       []string                 `json:"medications"`
	ChronicConditions []string                 `json:"chronic_conditions"`
	EmergencyContact  *models.EmergencyContact `json:"emergency_contact"`
	Preferences       *models.Preferences      `json:"preferences"`
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	var request profileUpdateRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if request.Gender != nil && *request.Gender != "" && !models.ValidGender(*request.Gender) {
		return apiError(c, fiber.StatusBadRequest, "invalid gender")
	}

	user, err := handler.authService.UpdateProfile(currentUserID(c), services.ProfileUpdate{
		Name:              request.Name,
		Age:               request.Age,
		Gender:            request.Gender,
		Height:            request.Height,
		Weight:            request.Weight,
		BloodType:         request.BloodType,
		Allergies:         request.Allergies,
		Medications:       request.Medications,
		ChronicConditions: request.ChronicConditions,
		EmergencyContact:  request.EmergencyContact,
		Preferences:       request.Preferences,
	})
	if errors.Is(err, services.ErrUserNotFound) {
		return apiError(c, fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		handler.logger.Error("update profile failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "update profile failed")
	}
	return success(c, fiber.Map{"user": user})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	var request changePasswordRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(request.NewPassword) < 8 {
		return apiError(c, fiber.StatusBadRequest, "password must be at least 8 characters")
	}

	err := handler.authService.ChangePassword(currentUserID(c), request.CurrentPassword, request.NewPassword)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return apiError(c, fiber.StatusUnauthorized, "current password is incorrect")
	}
	if errors.Is(err, services.ErrUserNotFound) {
		return apiError(c, fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		handler.logger.Error("change password failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "change password failed")
	}
	return success(c, fiber.Map{})
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	if err := handler.repositories.Users.DeleteAccountAndRelatedData(currentUserID(c)); err != nil {
		handler.logger.Error("delete account failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "delete account failed")
	}
	handler.clearAuthCookie(c)
	return success(c, fiber.Map{})
}
