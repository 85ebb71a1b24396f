package services

import (
	"fmt"
	"strings"

	"github.com/sana-health/sana/internal/models"
)

type GeneratedTask struct {
	Task              string
	Priority          string
	TimeOfDay         string
	Category          string
	EstimatedDuration int
}

type GeneratedPlan struct {
	Title       string
	Description string
	Duration    int
	Tasks       []GeneratedTask
}

// GeneratePlan builds a multi-day plan from the symptom analysis: duration
// scales with severity (3/5/7 days), suggested medications become morning
// medication tasks, a fixed hydration/rest/monitoring baseline is always
// included, and the first three recommendations are spread across the day.
func GeneratePlan(symptoms []string, planType string) GeneratedPlan {
	if !models.ValidPlanType(planType) {
		planType = models.PlanTypeRecovery
	}
	analysis := AnalyzeSymptoms(symptoms)

	duration := 3
	switch analysis.Severity {
	case SeverityHigh:
		duration = 7
	case SeverityMedium:
		duration = 5
	}

	plan := GeneratedPlan{
		Title:       fmt.Sprintf("%s Plan for %s", titleCase(planType), strings.Join(symptoms, ", ")),
		Description: fmt.Sprintf("Personalized health plan based on your symptoms: %s. This plan is designed to help you recover and maintain good health.", strings.Join(symptoms, ", ")),
		Duration:    duration,
	}

	medicationPriority := models.PriorityMedium
	restPriority := models.PriorityMedium
	if analysis.Severity == SeverityHigh {
		medicationPriority = models.PriorityHigh
		restPriority = models.PriorityHigh
	}

	for _, medication := range analysis.SuggestedMedications {
		plan.Tasks = append(plan.Tasks, GeneratedTask{
			Task:              fmt.Sprintf("Take %s as prescribed", medication),
			Priority:          medicationPriority,
			TimeOfDay:         models.TimeOfDayMorning,
			Category:          models.TaskCategoryMedication,
			EstimatedDuration: 5,
		})
	}

	plan.Tasks = append(plan.Tasks,
		GeneratedTask{
			Task:              "Stay hydrated - drink 8 glasses of water",
			Priority:          models.PriorityHigh,
			TimeOfDay:         models.TimeOfDayMorning,
			Category:          models.TaskCategoryDiet,
			EstimatedDuration: 10,
		},
		GeneratedTask{
			Task:              "Get adequate rest and sleep",
			Priority:          restPriority,
			TimeOfDay:         models.TimeOfDayNight,
			Category:          models.TaskCategoryRest,
			EstimatedDuration: 30,
		},
		GeneratedTask{
			Task:              "Monitor symptoms and track progress",
			Priority:          models.PriorityMedium,
			TimeOfDay:         models.TimeOfDayAfternoon,
			Category:          models.TaskCategoryMonitoring,
			EstimatedDuration: 15,
		},
	)

	timeSlots := []string{models.TimeOfDayMorning, models.TimeOfDayAfternoon, models.TimeOfDayNight}
	for index, recommendation := range analysis.Recommendations {
		if index >= 3 {
			break
		}
		plan.Tasks = append(plan.Tasks, GeneratedTask{
			Task:              recommendation,
			Priority:          models.PriorityMedium,
			TimeOfDay:         timeSlots[index],
			Category:          models.TaskCategoryOther,
			EstimatedDuration: 15,
		})
	}

	return plan
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
