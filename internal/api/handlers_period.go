package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sana-health/sana/internal/models"
	"github.com/sana-health/sana/internal/services"
)

func (handler *Handler) GetPeriodHistory(c *fiber.Ctx) error {
	history, entries, err := handler.periodService.HistoryForUser(currentUserID(c))
	if err != nil {
		handler.logger.Error("load period history failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "load period history failed")
	}
	return success(c, fiber.Map{"history": history, "entries": entries})
}

type periodEntryRequest struct {
	Date          string   `json:"date"`
	FlowIntensity string   `json:"flow_intensity"`
	Symptoms      []string `json:"symptoms"`
	Mood          string   `json:"mood"`
	Notes         string   `json:"notes"`
}

func (handler *Handler) AddPeriodEntry(c *fiber.Ctx) error {
	var request periodEntryRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	date, ok := parseDate(request.Date, handler.location)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	if !models.ValidFlowIntensity(request.FlowIntensity) {
		return apiError(c, fiber.StatusBadRequest, "invalid flow intensity")
	}
	if request.Mood != "" && !models.ValidMood(request.Mood) {
		return apiError(c, fiber.StatusBadRequest, "invalid mood")
	}

	entry, history, err := handler.periodService.AddEntry(currentUserID(c), services.PeriodEntryInput{
		Date:          date,
		FlowIntensity: request.FlowIntensity,
		Symptoms:      request.Symptoms,
		Mood:          request.Mood,
		Notes:         request.Notes,
	})
	if err != nil {
		handler.logger.Error("add period entry failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "add period entry failed")
	}
	return created(c, fiber.Map{"entry": entry, "history": history})
}

func (handler *Handler) GetPeriodPredictions(c *fiber.Ctx) error {
	predictions, err := handler.periodService.PredictionsForUser(currentUserID(c))
	if err != nil {
		handler.logger.Error("build predictions failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "build predictions failed")
	}
	return success(c, fiber.Map{"predictions": predictions})
}

func (handler *Handler) GetCurrentCycle(c *fiber.Ctx) error {
	cycle, found, err := handler.periodService.CurrentCycle(currentUserID(c))
	if err != nil {
		handler.logger.Error("load current cycle failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "load current cycle failed")
	}
	if !found {
		return success(c, fiber.Map{"cycle": nil})
	}
	return success(c, fiber.Map{"cycle": cycle})
}

type cycleStartRequest struct {
	PeriodStartDate string   `json:"period_start_date"`
	FlowIntensity   string   `json:"flow_intensity"`
	Symptoms        []string `json:"symptoms"`
	Mood            string   `json:"mood"`
	Notes           string   `json:"notes"`
}

func (handler *Handler) StartCycle(c *fiber.Ctx) error {
	var request cycleStartRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	periodStart, ok := parseDate(request.PeriodStartDate, handler.location)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "period_start_date must be YYYY-MM-DD")
	}
	if request.FlowIntensity != "" && !models.ValidFlowIntensity(request.FlowIntensity) {
		return apiError(c, fiber.StatusBadRequest, "invalid flow intensity")
	}
	if request.Mood != "" && !models.ValidMood(request.Mood) {
		return apiError(c, fiber.StatusBadRequest, "invalid mood")
	}

	cycle, err := handler.periodService.StartCycle(currentUserID(c), services.CycleStartInput{
		PeriodStartDate: periodStart,
		FlowIntensity:   request.FlowIntensity,
		Symptoms:        request.Symptoms,
		Mood:            request.Mood,
		Notes:           request.Notes,
	}, time.Now())
	if err != nil {
		handler.logger.Error("start cycle failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "start cycle failed")
	}
	return created(c, fiber.Map{"cycle": cycle})
}

type cycleEndRequest struct {
	PeriodEndDate string `json:"period_end_date"`
	Notes         string `json:"notes"`
}

func (handler *Handler) EndCycle(c *fiber.Ctx) error {
	cycleID, err := c.ParamsInt("id")
	if err != nil || cycleID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid cycle id")
	}

	var request cycleEndRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	periodEnd, ok := parseDate(request.PeriodEndDate, handler.location)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "period_end_date must be YYYY-MM-DD")
	}

	cycle, err := handler.periodService.EndCycle(currentUserID(c), uint(cycleID), periodEnd, request.Notes, time.Now())
	if errors.Is(err, services.ErrCycleNotFound) {
		return apiError(c, fiber.StatusNotFound, "cycle not found")
	}
	if err != nil {
		handler.logger.Error("end cycle failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "end cycle failed")
	}
	return success(c, fiber.Map{"cycle": cycle})
}

func (handler *Handler) GetPeriodAnalytics(c *fiber.Ctx) error {
	months := queryInt(c, "months", 12)
	analytics, err := handler.periodService.Analytics(currentUserID(c), months, time.Now())
	if err != nil {
		handler.logger.Error("period analytics failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "period analytics failed")
	}
	return success(c, fiber.Map{"analytics": analytics})
}
