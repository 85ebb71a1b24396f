package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sana-health/sana/internal/models"
	"github.com/sana-health/sana/internal/services"
)

func (handler *Handler) GetMedicines(c *fiber.Ctx) error {
	page, limit := pagination(c)

	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		isActive = &active
	}

	medicines, total, err := handler.medicineService.Medicines(currentUserID(c), isActive, page, limit)
	if err != nil {
		handler.logger.Error("list medicines failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "list medicines failed")
	}
	return success(c, fiber.Map{"medicines": medicines, "pagination": paginationMeta(page, limit, total)})
}

func (handler *Handler) GetMedicine(c *fiber.Ctx) error {
	medicineID, err := c.ParamsInt("id")
	if err != nil || medicineID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid medicine id")
	}

	medicine, err := handler.medicineService.Medicine(currentUserID(c), uint(medicineID))
	if errors.Is(err, services.ErrMedicineNotFound) {
		return apiError(c, fiber.StatusNotFound, "medicine not found")
	}
	if err != nil {
		handler.logger.Error("load medicine failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "load medicine failed")
	}
	return success(c, fiber.Map{"medicine": medicine})
}

type medicineRequest struct {
	Name          string                  `json:"name"`
	Dosage        string                  `json:"dosage"`
	Frequency     string                  `json:"frequency"`
	Times         []string                `json:"times"`
	StartDate     string                  `json:"start_date"`
	EndDate       string                  `json:"end_date"`
	IsActive      *bool                   `json:"is_active"`
	Instructions  string                  `json:"instructions"`
	SideEffects   []string                `json:"side_effects"`
	Reminders     models.ReminderSettings `json:"reminders"`
	IsAISuggested bool                    `json:"is_ai_suggested"`
}

func (handler *Handler) medicineFromRequest(c *fiber.Ctx, request medicineRequest) (models.Medicine, string) {
	if request.Name == "" || request.Dosage == "" {
		return models.Medicine{}, "name and dosage are required"
	}
	if !models.ValidFrequency(request.Frequency) {
		return models.Medicine{}, "invalid frequency"
	}

	medicine := models.Medicine{
		Name:          request.Name,
		Dosage:        request.Dosage,
		Frequency:     request.Frequency,
		Times:         request.Times,
		Instructions:  request.Instructions,
		SideEffects:   request.SideEffects,
		Reminders:     request.Reminders,
		IsActive:      true,
		IsAISuggested: request.IsAISuggested,
	}
	if request.IsActive != nil {
		medicine.IsActive = *request.IsActive
	}
	if request.StartDate != "" {
		startDate, ok := parseDate(request.StartDate, handler.location)
		if !ok {
			return models.Medicine{}, "start_date must be YYYY-MM-DD"
		}
		medicine.StartDate = startDate
	}
	if request.EndDate != "" {
		endDate, ok := parseDate(request.EndDate, handler.location)
		if !ok {
			return models.Medicine{}, "end_date must be YYYY-MM-DD"
		}
		medicine.EndDate = &endDate
	}
	return medicine, ""
}

func (handler *Handler) CreateMedicine(c *fiber.Ctx) error {
	var request medicineRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	medicine, problem := handler.medicineFromRequest(c, request)
	if problem != "" {
		return apiError(c, fiber.StatusBadRequest, problem)
	}

	stored, err := handler.medicineService.CreateMedicine(currentUserID(c), medicine)
	if err != nil {
		handler.logger.Error("create medicine failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "create medicine failed")
	}
	return created(c, fiber.Map{"medicine": stored})
}

func (handler *Handler) UpdateMedicine(c *fiber.Ctx) error {
	medicineID, err := c.ParamsInt("id")
	if err != nil || medicineID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid medicine id")
	}

	var request medicineRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	medicine, problem := handler.medicineFromRequest(c, request)
	if problem != "" {
		return apiError(c, fiber.StatusBadRequest, problem)
	}

	updated, err := handler.medicineService.UpdateMedicine(currentUserID(c), uint(medicineID), medicine)
	if errors.Is(err, services.ErrMedicineNotFound) {
		return apiError(c, fiber.StatusNotFound, "medicine not found")
	}
	if err != nil {
		handler.logger.Error("update medicine failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "update medicine failed")
	}
	return success(c, fiber.Map{"medicine": updated})
}

func (handler *Handler) DeleteMedicine(c *fiber.Ctx) error {
	medicineID, err := c.ParamsInt("id")
	if err != nil || medicineID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid medicine id")
	}

	err = handler.medicineService.DeleteMedicine(currentUserID(c), uint(medicineID))
	if errors.Is(err, services.ErrMedicineNotFound) {
		return apiError(c, fiber.StatusNotFound, "medicine not found")
	}
	if err != nil {
		handler.logger.Error("delete medicine failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "delete medicine failed")
	}
	return success(c, fiber.Map{})
}

type markTakenRequest struct {
	Time  string `json:"time"`
	Notes string `json:"notes"`
}

func (handler *Handler) MarkMedicineTaken(c *fiber.Ctx) error {
	medicineID, err := c.ParamsInt("id")
	if err != nil || medicineID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid medicine id")
	}

	var request markTakenRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	intake, err := handler.medicineService.MarkTaken(currentUserID(c), uint(medicineID), request.Time, request.Notes, time.Now())
	if errors.Is(err, services.ErrMedicineNotFound) {
		return apiError(c, fiber.StatusNotFound, "medicine not found")
	}
	if err != nil {
		handler.logger.Error("mark taken failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "mark taken failed")
	}
	return created(c, fiber.Map{"intake": intake})
}

func (handler *Handler) GetMedicineReminders(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, ok := parseDate(raw, handler.location)
		if !ok {
			return apiError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	reminders, err := handler.medicineService.RemindersForDate(currentUserID(c), date)
	if err != nil {
		handler.logger.Error("load reminders failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "load reminders failed")
	}
	return success(c, fiber.Map{"reminders": reminders})
}

func (handler *Handler) GetMedicineAnalytics(c *fiber.Ctx) error {
	days := queryInt(c, "days", 30)
	analytics, err := handler.medicineService.Analytics(currentUserID(c), days, time.Now())
	if err != nil {
		handler.logger.Error("medicine analytics failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "medicine analytics failed")
	}
	return success(c, fiber.Map{"analytics": analytics})
}
