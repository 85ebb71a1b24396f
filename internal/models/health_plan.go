package models

import "time"

const (
	PlanTypeRecovery    = "recovery"
	PlanTypeMaintenance = "maintenance"
	PlanTypePrevention  = "prevention"
	PlanTypeEmergency   = "emergency"
)

const (
	PlanStatusActive    = "active"
	PlanStatusCompleted = "completed"
	PlanStatusPaused    = "paused"
	PlanStatusCancelled = "cancelled"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const (
	TimeOfDayMorning   = "morning"
	TimeOfDayAfternoon = "afternoon"
	TimeOfDayNight     = "night"
)

const (
	TaskCategoryMedication = "medication"
	TaskCategoryExercise   = "exercise"
	TaskCategoryDiet       = "diet"
	TaskCategoryRest       = "rest"
	TaskCategoryMonitoring = "monitoring"
	TaskCategoryOther      = "other"
)

// PlanProgress is derived from the plan's tasks whenever one changes.
type PlanProgress struct {
	TotalTasks           int     `json:"total_tasks"`
	CompletedTasks       int     `json:"completed_tasks"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

type HealthPlan struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      uint         `gorm:"not null;index" json:"-"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `json:"description,omitempty"`
	PlanType    string       `gorm:"not null;default:recovery" json:"plan_type"`
	Duration    int          `gorm:"not null" json:"duration"`
	StartDate   time.Time    `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time    `gorm:"type:date;not null" json:"end_date"`
	Status      string       `gorm:"not null;default:active" json:"status"`
	Symptoms    []string     `gorm:"serializer:json" json:"symptoms"`
	AIGenerated bool         `gorm:"not null;default:false" json:"ai_generated"`
	Progress    PlanProgress `gorm:"serializer:json" json:"progress"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type PlanTask struct {
	ID                string     `gorm:"primaryKey" json:"id"`
	PlanID            uint       `gorm:"not null;index" json:"plan_id"`
	Task              string     `gorm:"not null" json:"task"`
	Description       string     `json:"description,omitempty"`
	Completed         bool       `gorm:"not null;default:false" json:"completed"`
	Priority          string     `gorm:"not null;default:medium" json:"priority"`
	TimeOfDay         string     `gorm:"not null" json:"time_of_day"`
	Category          string     `gorm:"not null;default:other" json:"category"`
	EstimatedDuration int        `json:"estimated_duration,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func ValidPlanType(planType string) bool {
	switch planType {
	case PlanTypeRecovery, PlanTypeMaintenance, PlanTypePrevention, PlanTypeEmergency:
		return true
	default:
		return false
	}
}

func ValidPlanStatus(status string) bool {
	switch status {
	case PlanStatusActive, PlanStatusCompleted, PlanStatusPaused, PlanStatusCancelled:
		return true
	default:
		return false
	}
}
