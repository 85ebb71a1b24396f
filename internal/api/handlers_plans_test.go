package api

import (
	"fmt"
	"net/http"
	"testing"
)

func TestGeneratePlanFromSymptoms(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "plan-generate@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/health-plans/generate", map[string]any{
		"symptoms": []string{"fever"},
	}, token), -1)
	if err != nil {
		t.Fatalf("generate plan request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}

	payload := decodeBody(t, response)
	plan := payload["plan"].(map[string]any)
	if plan["ai_generated"] != true {
		t.Fatal("expected an AI generated plan")
	}
	if plan["duration"].(float64) != 7 {
		t.Fatalf("expected 7 day plan for a high severity symptom, got %v", plan["duration"])
	}
	tasks, ok := payload["tasks"].([]any)
	if !ok || len(tasks) == 0 {
		t.Fatalf("expected generated tasks, got %v", payload["tasks"])
	}

	progress := plan["progress"].(map[string]any)
	if int(progress["total_tasks"].(float64)) != len(tasks) {
		t.Fatalf("expected progress over %d tasks, got %v", len(tasks), progress["total_tasks"])
	}
}

func TestGeneratePlanRequiresSymptoms(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "plan-empty@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/health-plans/generate", map[string]any{
		"symptoms": []string{},
	}, token), -1)
	if err != nil {
		t.Fatalf("generate plan request failed: %v", err)
	}
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
}

func TestToggleTaskUpdatesProgress(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "plan-toggle@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/health-plans/generate", map[string]any{
		"symptoms": []string{"cough"},
	}, token), -1)
	if err != nil {
		t.Fatalf("generate plan request failed: %v", err)
	}
	payload := decodeBody(t, response)
	plan := payload["plan"].(map[string]any)
	planID := int(plan["id"].(float64))
	tasks := payload["tasks"].([]any)
	taskID := tasks[0].(map[string]any)["id"].(string)

	response, err = app.Test(jsonRequest(t, http.MethodPut,
		fmt.Sprintf("/api/health-plans/%d/tasks/%s", planID, taskID), map[string]any{
			"completed": true,
		}, token), -1)
	if err != nil {
		t.Fatalf("toggle task request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	payload = decodeBody(t, response)
	task := payload["task"].(map[string]any)
	if task["completed"] != true {
		t.Fatal("expected task marked completed")
	}
	if task["completed_at"] == nil {
		t.Fatal("expected completion timestamp")
	}
	progress := payload["plan"].(map[string]any)["progress"].(map[string]any)
	if progress["completed_tasks"].(float64) != 1 {
		t.Fatalf("expected one completed task, got %v", progress["completed_tasks"])
	}
}

func TestUpdatePlanStatus(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "plan-update@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/health-plans", map[string]any{
		"title": "Manual plan",
	}, token), -1)
	if err != nil {
		t.Fatalf("create plan request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}
	payload := decodeBody(t, response)
	planID := int(payload["plan"].(map[string]any)["id"].(float64))

	status := "completed"
	response, err = app.Test(jsonRequest(t, http.MethodPut,
		fmt.Sprintf("/api/health-plans/%d", planID), map[string]any{
			"status": status,
		}, token), -1)
	if err != nil {
		t.Fatalf("update plan request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	payload = decodeBody(t, response)
	if payload["plan"].(map[string]any)["status"] != "completed" {
		t.Fatalf("expected completed status, got %v", payload["plan"].(map[string]any)["status"])
	}
}

func TestGetPlanUnknownID(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "plan-missing@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/health-plans/404", nil, token), -1)
	if err != nil {
		t.Fatalf("load plan request failed: %v", err)
	}
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", response.StatusCode)
	}
}
