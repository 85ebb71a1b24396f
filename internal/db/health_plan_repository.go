package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sana-health/sana/internal/models"
)

type HealthPlanRepository struct {
	database *gorm.DB
}

func NewHealthPlanRepository(database *gorm.DB) *HealthPlanRepository {
	return &HealthPlanRepository{database: database}
}

func (repo *HealthPlanRepository) ListByUser(userID uint, status string, planType string, offset int, limit int) ([]models.HealthPlan, int64, error) {
	query := repo.database.Model(&models.HealthPlan{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if planType != "" {
		query = query.Where("plan_type = ?", planType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	plans := make([]models.HealthPlan, 0)
	if err := query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&plans).Error; err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func (repo *HealthPlanRepository) FindByIDAndUser(planID uint, userID uint) (models.HealthPlan, bool, error) {
	var plan models.HealthPlan
	err := repo.database.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.HealthPlan{}, false, nil
	}
	if err != nil {
		return models.HealthPlan{}, false, err
	}
	return plan, true, nil
}

// Create stores the plan and its tasks in one transaction, binding each task
// to the generated plan id.
func (repo *HealthPlanRepository) Create(plan *models.HealthPlan, tasks []models.PlanTask) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return err
		}
		for index := range tasks {
			tasks[index].PlanID = plan.ID
			if err := tx.Create(&tasks[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *HealthPlanRepository) Save(plan *models.HealthPlan) error {
	return repo.database.Save(plan).Error
}

func (repo *HealthPlanRepository) DeleteByIDAndUser(planID uint, userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", planID).
			Delete(&models.PlanTask{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", planID, userID).
			Delete(&models.HealthPlan{}).Error
	})
}

func (repo *HealthPlanRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := repo.database.Model(&models.HealthPlan{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (repo *HealthPlanRepository) CountByUserAndStatus(userID uint, status string) (int64, error) {
	var count int64
	err := repo.database.Model(&models.HealthPlan{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

func (repo *HealthPlanRepository) CountAIGeneratedByUser(userID uint) (int64, error) {
	var count int64
	err := repo.database.Model(&models.HealthPlan{}).
		Where("user_id = ? AND ai_generated = ?", userID, true).
		Count(&count).Error
	return count, err
}

// AverageCompletionByUser averages the stored completion percentages in Go:
// progress is a JSON column, so the percentage is not directly aggregatable.
func (repo *HealthPlanRepository) AverageCompletionByUser(userID uint) (float64, error) {
	plans := make([]models.HealthPlan, 0)
	if err := repo.database.
		Select("progress").
		Where("user_id = ?", userID).
		Find(&plans).Error; err != nil {
		return 0, err
	}
	if len(plans) == 0 {
		return 0, nil
	}

	var sum float64
	for _, plan := range plans {
		sum += plan.Progress.CompletionPercentage
	}
	return sum / float64(len(plans)), nil
}

type PlanTaskRepository struct {
	database *gorm.DB
}

func NewPlanTaskRepository(database *gorm.DB) *PlanTaskRepository {
	return &PlanTaskRepository{database: database}
}

func (repo *PlanTaskRepository) ListByPlan(planID uint) ([]models.PlanTask, error) {
	tasks := make([]models.PlanTask, 0)
	if err := repo.database.
		Where("plan_id = ?", planID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *PlanTaskRepository) FindByIDAndPlan(taskID string, planID uint) (models.PlanTask, bool, error) {
	var task models.PlanTask
	err := repo.database.Where("id = ? AND plan_id = ?", taskID, planID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PlanTask{}, false, nil
	}
	if err != nil {
		return models.PlanTask{}, false, err
	}
	return task, true, nil
}

func (repo *PlanTaskRepository) Save(task *models.PlanTask) error {
	return repo.database.Save(task).Error
}
