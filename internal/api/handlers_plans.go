package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sana-health/sana/internal/services"
)

func (handler *Handler) GetHealthPlans(c *fiber.Ctx) error {
	page, limit := pagination(c)
	plans, total, err := handler.planService.Plans(
		currentUserID(c), c.Query("status"), c.Query("plan_type"), page, limit,
	)
	if err != nil {
		handler.logger.Error("list plans failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "list plans failed")
	}
	return success(c, fiber.Map{"plans": plans, "pagination": paginationMeta(page, limit, total)})
}

func (handler *Handler) GetHealthPlan(c *fiber.Ctx) error {
	planID, err := c.ParamsInt("id")
	if err != nil || planID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid plan id")
	}

	plan, tasks, err := handler.planService.PlanWithTasks(currentUserID(c), uint(planID))
	if errors.Is(err, services.ErrPlanNotFound) {
		return apiError(c, fiber.StatusNotFound, "plan not found")
	}
	if err != nil {
		handler.logger.Error("load plan failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "load plan failed")
	}
	return success(c, fiber.Map{"plan": plan, "tasks": tasks})
}

type generatePlanRequest struct {
	Symptoms []string `json:"symptoms"`
	PlanType string   `json:"plan_type"`
}

func (handler *Handler) GenerateHealthPlan(c *fiber.Ctx) error {
	var request generatePlanRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(request.Symptoms) == 0 {
		return apiError(c, fiber.StatusBadRequest, "symptoms are required")
	}

	plan, tasks, err := handler.planService.GenerateAndCreatePlan(currentUserID(c), request.Symptoms, request.PlanType, time.Now())
	if err != nil {
		handler.logger.Error("generate plan failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "generate plan failed")
	}
	return created(c, fiber.Map{"plan": plan, "tasks": tasks})
}

type createPlanRequest struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	PlanType    string                   `json:"plan_type"`
	Duration    int                      `json:"duration"`
	Symptoms    []string                 `json:"symptoms"`
	Notes       string                   `json:"notes"`
	Tasks       []services.GeneratedTask `json:"tasks"`
}

func (handler *Handler) CreateHealthPlan(c *fiber.Ctx) error {
	var request createPlanRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if request.Title == "" {
		return apiError(c, fiber.StatusBadRequest, "title is required")
	}

	plan, tasks, err := handler.planService.CreatePlan(currentUserID(c), services.PlanInput{
		Title:       request.Title,
		Description: request.Description,
		PlanType:    request.PlanType,
		Duration:    request.Duration,
		Symptoms:    request.Symptoms,
		Notes:       request.Notes,
		Tasks:       request.Tasks,
	}, time.Now())
	if err != nil {
		handler.logger.Error("create plan failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "create plan failed")
	}
	return created(c, fiber.Map{"plan": plan, "tasks": tasks})
}

type updatePlanRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
}

func (handler *Handler) UpdateHealthPlan(c *fiber.Ctx) error {
	planID, err := c.ParamsInt("id")
	if err != nil || planID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid plan id")
	}

	var request updatePlanRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	plan, err := handler.planService.UpdatePlan(currentUserID(c), uint(planID), services.PlanUpdate{
		Title:       request.Title,
		Description: request.Description,
		Status:      request.Status,
		Notes:       request.Notes,
	})
	if errors.Is(err, services.ErrPlanNotFound) {
		return apiError(c, fiber.StatusNotFound, "plan not found")
	}
	if err != nil {
		handler.logger.Error("update plan failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "update plan failed")
	}
	return success(c, fiber.Map{"plan": plan})
}

func (handler *Handler) DeleteHealthPlan(c *fiber.Ctx) error {
	planID, err := c.ParamsInt("id")
	if err != nil || planID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid plan id")
	}

	err = handler.planService.DeletePlan(currentUserID(c), uint(planID))
	if errors.Is(err, services.ErrPlanNotFound) {
		return apiError(c, fiber.StatusNotFound, "plan not found")
	}
	if err != nil {
		handler.logger.Error("delete plan failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "delete plan failed")
	}
	return success(c, fiber.Map{})
}

type toggleTaskRequest struct {
	Completed *bool   `json:"completed"`
	Notes     *string `json:"notes"`
}

func (handler *Handler) ToggleHealthPlanTask(c *fiber.Ctx) error {
	planID, err := c.ParamsInt("id")
	if err != nil || planID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid plan id")
	}
	taskID := c.Params("taskId")
	if taskID == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid task id")
	}

	var request toggleTaskRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	plan, task, err := handler.planService.ToggleTask(currentUserID(c), uint(planID), taskID, request.Completed, request.Notes, time.Now())
	if errors.Is(err, services.ErrPlanNotFound) {
		return apiError(c, fiber.StatusNotFound, "plan not found")
	}
	if errors.Is(err, services.ErrPlanTaskNotFound) {
		return apiError(c, fiber.StatusNotFound, "task not found")
	}
	if err != nil {
		handler.logger.Error("toggle task failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "toggle task failed")
	}
	return success(c, fiber.Map{"plan": plan, "task": task})
}

func (handler *Handler) GetHealthPlanAnalytics(c *fiber.Ctx) error {
	analytics, err := handler.planService.Analytics(currentUserID(c))
	if err != nil {
		handler.logger.Error("plan analytics failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "plan analytics failed")
	}
	return success(c, fiber.Map{"analytics": analytics})
}
