package services

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sana-health/sana/internal/models"
)

var (
	ErrPlanNotFound     = errors.New("health plan not found")
	ErrPlanTaskNotFound = errors.New("plan task not found")
	ErrPlanSaveFailed   = errors.New("save health plan failed")
)

type HealthPlanRepository interface {
	ListByUser(userID uint, status string, planType string, offset int, limit int) ([]models.HealthPlan, int64, error)
	FindByIDAndUser(planID uint, userID uint) (models.HealthPlan, bool, error)
	Create(plan *models.HealthPlan, tasks []models.PlanTask) error
	Save(plan *models.HealthPlan) error
	DeleteByIDAndUser(planID uint, userID uint) error
	CountByUser(userID uint) (int64, error)
	CountByUserAndStatus(userID uint, status string) (int64, error)
	CountAIGeneratedByUser(userID uint) (int64, error)
	AverageCompletionByUser(userID uint) (float64, error)
}

type PlanTaskRepository interface {
	ListByPlan(planID uint) ([]models.PlanTask, error)
	FindByIDAndPlan(taskID string, planID uint) (models.PlanTask, bool, error)
	Save(task *models.PlanTask) error
}

type PlanService struct {
	plans    HealthPlanRepository
	tasks    PlanTaskRepository
	location *time.Location
}

func NewPlanService(plans HealthPlanRepository, tasks PlanTaskRepository, location *time.Location) *PlanService {
	if location == nil {
		location = time.UTC
	}
	return &PlanService{plans: plans, tasks: tasks, location: location}
}

func (service *PlanService) Plans(userID uint, status string, planType string, page int, limit int) ([]models.HealthPlan, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return service.plans.ListByUser(userID, status, planType, (page-1)*limit, limit)
}

func (service *PlanService) PlanWithTasks(userID uint, planID uint) (models.HealthPlan, []models.PlanTask, error) {
	plan, found, err := service.plans.FindByIDAndUser(planID, userID)
	if err != nil {
		return models.HealthPlan{}, nil, ErrPlanSaveFailed
	}
	if !found {
		return models.HealthPlan{}, nil, ErrPlanNotFound
	}

	tasks, err := service.tasks.ListByPlan(plan.ID)
	if err != nil {
		return models.HealthPlan{}, nil, ErrPlanSaveFailed
	}
	return plan, tasks, nil
}

type PlanInput struct {
	Title       string
	Description string
	PlanType    string
	Duration    int
	Symptoms    []string
	Tasks       []GeneratedTask
	Notes       string
}

// CreatePlan stores a user-authored plan and its tasks. The end date derives
// from the start plus the duration.
func (service *PlanService) CreatePlan(userID uint, input PlanInput, now time.Time) (models.HealthPlan, []models.PlanTask, error) {
	return service.createPlan(userID, input, now, false)
}

// GenerateAndCreatePlan derives the plan contents from the symptom analysis
// and stores the result marked as AI-generated.
func (service *PlanService) GenerateAndCreatePlan(userID uint, symptoms []string, planType string, now time.Time) (models.HealthPlan, []models.PlanTask, error) {
	generated := GeneratePlan(symptoms, planType)
	return service.createPlan(userID, PlanInput{
		Title:       generated.Title,
		Description: generated.Description,
		PlanType:    planType,
		Duration:    generated.Duration,
		Symptoms:    symptoms,
		Tasks:       generated.Tasks,
	}, now, true)
}

func (service *PlanService) createPlan(userID uint, input PlanInput, now time.Time, aiGenerated bool) (models.HealthPlan, []models.PlanTask, error) {
	if input.Duration <= 0 {
		input.Duration = 3
	}
	if !models.ValidPlanType(input.PlanType) {
		input.PlanType = models.PlanTypeRecovery
	}
	symptoms := input.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}

	startDate := DateAtLocation(now, service.location)
	plan := models.HealthPlan{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		PlanType:    input.PlanType,
		Duration:    input.Duration,
		StartDate:   startDate,
		EndDate:     startDate.AddDate(0, 0, input.Duration),
		Status:      models.PlanStatusActive,
		Symptoms:    symptoms,
		AIGenerated: aiGenerated,
		Notes:       input.Notes,
		Progress:    models.PlanProgress{TotalTasks: len(input.Tasks)},
	}

	tasks := make([]models.PlanTask, 0, len(input.Tasks))
	for _, item := range input.Tasks {
		tasks = append(tasks, models.PlanTask{
			ID:                uuid.NewString(),
			Task:              item.Task,
			Priority:          item.Priority,
			TimeOfDay:         item.TimeOfDay,
			Category:          item.Category,
			EstimatedDuration: item.EstimatedDuration,
		})
	}

	if err := service.plans.Create(&plan, tasks); err != nil {
		return models.HealthPlan{}, nil, ErrPlanSaveFailed
	}

	stored, err := service.tasks.ListByPlan(plan.ID)
	if err != nil {
		return models.HealthPlan{}, nil, ErrPlanSaveFailed
	}
	return plan, stored, nil
}

type PlanUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Notes       *string
}

func (service *PlanService) UpdatePlan(userID uint, planID uint, update PlanUpdate) (models.HealthPlan, error) {
	plan, found, err := service.plans.FindByIDAndUser(planID, userID)
	if err != nil {
		return models.HealthPlan{}, ErrPlanSaveFailed
	}
	if !found {
		return models.HealthPlan{}, ErrPlanNotFound
	}

	if update.Title != nil {
		plan.Title = *update.Title
	}
	if update.Description != nil {
		plan.Description = *update.Description
	}
	if update.Status != nil && models.ValidPlanStatus(*update.Status) {
		plan.Status = *update.Status
	}
	if update.Notes != nil {
		plan.Notes = *update.Notes
	}

	if err := service.plans.Save(&plan); err != nil {
		return models.HealthPlan{}, ErrPlanSaveFailed
	}
	return plan, nil
}

func (service *PlanService) DeletePlan(userID uint, planID uint) error {
	_, found, err := service.plans.FindByIDAndUser(planID, userID)
	if err != nil {
		return ErrPlanSaveFailed
	}
	if !found {
		return ErrPlanNotFound
	}
	return service.plans.DeleteByIDAndUser(planID, userID)
}

// ToggleTask flips or sets a task's completion, stamps the completion time,
// and recomputes the plan progress from the stored task set.
func (service *PlanService) ToggleTask(userID uint, planID uint, taskID string, completed *bool, notes *string, now time.Time) (models.HealthPlan, models.PlanTask, error) {
	plan, found, err := service.plans.FindByIDAndUser(planID, userID)
	if err != nil {
		return models.HealthPlan{}, models.PlanTask{}, ErrPlanSaveFailed
	}
	if !found {
		return models.HealthPlan{}, models.PlanTask{}, ErrPlanNotFound
	}

	task, found, err := service.tasks.FindByIDAndPlan(taskID, plan.ID)
	if err != nil {
		return models.HealthPlan{}, models.PlanTask{}, ErrPlanSaveFailed
	}
	if !found {
		return models.HealthPlan{}, models.PlanTask{}, ErrPlanTaskNotFound
	}

	if completed != nil {
		task.Completed = *completed
	} else {
		task.Completed = !task.Completed
	}
	if task.Completed {
		completedAt := now
		task.CompletedAt = &completedAt
	} else {
		task.CompletedAt = nil
	}
	if notes != nil {
		task.Notes = *notes
	}
	if err := service.tasks.Save(&task); err != nil {
		return models.HealthPlan{}, models.PlanTask{}, ErrPlanSaveFailed
	}

	tasks, err := service.tasks.ListByPlan(plan.ID)
	if err != nil {
		return models.HealthPlan{}, models.PlanTask{}, ErrPlanSaveFailed
	}
	plan.Progress = ComputeProgress(tasks)
	if err := service.plans.Save(&plan); err != nil {
		return models.HealthPlan{}, models.PlanTask{}, ErrPlanSaveFailed
	}

	return plan, task, nil
}

type PlanAnalytics struct {
	TotalPlans            int64   `json:"total_plans"`
	ActivePlans           int64   `json:"active_plans"`
	CompletedPlans        int64   `json:"completed_plans"`
	AIGeneratedPlans      int64   `json:"ai_generated_plans"`
	AverageCompletionRate float64 `json:"average_completion_rate"`
}

func (service *PlanService) Analytics(userID uint) (PlanAnalytics, error) {
	total, err := service.plans.CountByUser(userID)
	if err != nil {
		return PlanAnalytics{}, ErrPlanSaveFailed
	}
	active, err := service.plans.CountByUserAndStatus(userID, models.PlanStatusActive)
	if err != nil {
		return PlanAnalytics{}, ErrPlanSaveFailed
	}
	completed, err := service.plans.CountByUserAndStatus(userID, models.PlanStatusCompleted)
	if err != nil {
		return PlanAnalytics{}, ErrPlanSaveFailed
	}
	aiGenerated, err := service.plans.CountAIGeneratedByUser(userID)
	if err != nil {
		return PlanAnalytics{}, ErrPlanSaveFailed
	}
	averageCompletion, err := service.plans.AverageCompletionByUser(userID)
	if err != nil {
		return PlanAnalytics{}, ErrPlanSaveFailed
	}

	return PlanAnalytics{
		TotalPlans:            total,
		ActivePlans:           active,
		CompletedPlans:        completed,
		AIGeneratedPlans:      aiGenerated,
		AverageCompletionRate: averageCompletion,
	}, nil
}

// ComputeProgress derives the completion summary from a task set. The
// percentage is rounded to two decimal places for stable JSON output.
func ComputeProgress(tasks []models.PlanTask) models.PlanProgress {
	progress := models.PlanProgress{TotalTasks: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			progress.CompletedTasks++
		}
	}
	if progress.TotalTasks > 0 {
		percentage := float64(progress.CompletedTasks) / float64(progress.TotalTasks) * 100
		progress.CompletionPercentage = math.Round(percentage*100) / 100
	}
	return progress
}
