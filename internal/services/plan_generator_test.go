package services

import (
	"strings"
	"testing"

	"github.com/sana-health/sana/internal/models"
)

func TestGeneratePlan_DurationScalesWithSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		symptoms     []string
		wantDuration int
	}{
		{name: "unknown symptoms default", symptoms: []string{"hiccups"}, wantDuration: 3},
		{name: "low severity", symptoms: []string{"cough"}, wantDuration: 3},
		{name: "medium severity", symptoms: []string{"headache"}, wantDuration: 5},
		{name: "high severity", symptoms: []string{"fever"}, wantDuration: 7},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			plan := GeneratePlan(testCase.symptoms, models.PlanTypeRecovery)
			if plan.Duration != testCase.wantDuration {
				t.Fatalf("expected duration %d, got %d", testCase.wantDuration, plan.Duration)
			}
		})
	}
}

func TestGeneratePlan_MedicationTasks(t *testing.T) {
	t.Parallel()

	plan := GeneratePlan([]string{"fever"}, models.PlanTypeRecovery)

	medicationTasks := make([]GeneratedTask, 0)
	for _, task := range plan.Tasks {
		if task.Category == models.TaskCategoryMedication {
			medicationTasks = append(medicationTasks, task)
		}
	}
	if len(medicationTasks) != 2 {
		t.Fatalf("expected 2 medication tasks, got %d", len(medicationTasks))
	}
	if medicationTasks[0].Task != "Take Paracetamol as prescribed" {
		t.Fatalf("unexpected task text %q", medicationTasks[0].Task)
	}
	for _, task := range medicationTasks {
		if task.Priority != models.PriorityHigh {
			t.Fatalf("expected high priority for %q at high severity, got %q", task.Task, task.Priority)
		}
	}
}

func TestGeneratePlan_BaselineTasksAlwaysPresent(t *testing.T) {
	t.Parallel()

	plan := GeneratePlan(nil, models.PlanTypeMaintenance)

	wantTasks := []string{
		"Stay hydrated - drink 8 glasses of water",
		"Get adequate rest and sleep",
		"Monitor symptoms and track progress",
	}
	for _, wantTask := range wantTasks {
		found := false
		for _, task := range plan.Tasks {
			if task.Task == wantTask {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("baseline task %q missing from %+v", wantTask, plan.Tasks)
		}
	}
}

func TestGeneratePlan_RecommendationsCappedAtThree(t *testing.T) {
	t.Parallel()

	// Headache alone contributes four recommendations; only three become tasks.
	plan := GeneratePlan([]string{"headache"}, models.PlanTypeRecovery)

	recommendationTasks := 0
	for _, task := range plan.Tasks {
		if task.Category == models.TaskCategoryOther {
			recommendationTasks++
		}
	}
	if recommendationTasks != 3 {
		t.Fatalf("expected 3 recommendation tasks, got %d", recommendationTasks)
	}
}

func TestGeneratePlan_InvalidTypeFallsBackToRecovery(t *testing.T) {
	t.Parallel()

	plan := GeneratePlan([]string{"cough"}, "detox")
	if !strings.HasPrefix(plan.Title, "Recovery Plan for") {
		t.Fatalf("expected recovery title, got %q", plan.Title)
	}
}
