package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func createMedicine(t *testing.T, app *fiber.App, token string, body map[string]any) map[string]any {
	t.Helper()

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/medicines", body, token), -1)
	if err != nil {
		t.Fatalf("create medicine request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}

	payload := decodeBody(t, response)
	medicine, ok := payload["medicine"].(map[string]any)
	if !ok {
		t.Fatalf("expected medicine object, got %v", payload["medicine"])
	}
	return medicine
}

func TestCreateMedicineValidation(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "medicine-validation@example.com")

	testCases := []struct {
		name string
		body map[string]any
	}{
		{name: "missing name", body: map[string]any{"dosage": "500mg", "frequency": "once_daily"}},
		{name: "missing dosage", body: map[string]any{"name": "Paracetamol", "frequency": "once_daily"}},
		{name: "bad frequency", body: map[string]any{"name": "Paracetamol", "dosage": "500mg", "frequency": "sometimes"}},
		{name: "bad start date", body: map[string]any{"name": "Paracetamol", "dosage": "500mg", "frequency": "once_daily", "start_date": "01/03/2024"}},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/medicines", testCase.body, token), -1)
			if err != nil {
				t.Fatalf("create medicine request failed: %v", err)
			}
			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", response.StatusCode)
			}
		})
	}
}

func TestMedicineLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "medicine-crud@example.com")

	medicine := createMedicine(t, app, token, map[string]any{
		"name":      "Paracetamol",
		"dosage":    "500mg",
		"frequency": "once_daily",
		"times":     []string{"09:00", "21:00"},
	})
	medicineID := int(medicine["id"].(float64))

	response, err := app.Test(jsonRequest(t, http.MethodPut,
		fmt.Sprintf("/api/medicines/%d", medicineID), map[string]any{
			"name":      "Paracetamol",
			"dosage":    "1000mg",
			"frequency": "twice_daily",
		}, token), -1)
	if err != nil {
		t.Fatalf("update medicine request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	payload := decodeBody(t, response)
	updated := payload["medicine"].(map[string]any)
	if updated["dosage"] != "1000mg" {
		t.Fatalf("expected updated dosage, got %v", updated["dosage"])
	}
	if int(updated["id"].(float64)) != medicineID {
		t.Fatalf("expected stable medicine id %d, got %v", medicineID, updated["id"])
	}

	response, err = app.Test(jsonRequest(t, http.MethodDelete,
		fmt.Sprintf("/api/medicines/%d", medicineID), nil, token), -1)
	if err != nil {
		t.Fatalf("delete medicine request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	response, err = app.Test(jsonRequest(t, http.MethodDelete,
		fmt.Sprintf("/api/medicines/%d", medicineID), nil, token), -1)
	if err != nil {
		t.Fatalf("second delete request failed: %v", err)
	}
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", response.StatusCode)
	}
}

func TestMarkTakenAndReminders(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "medicine-taken@example.com")

	medicine := createMedicine(t, app, token, map[string]any{
		"name":      "Iron",
		"dosage":    "65mg",
		"frequency": "once_daily",
		"times":     []string{"08:00", "20:00"},
		"reminders": map[string]any{"enabled": true},
	})
	medicineID := int(medicine["id"].(float64))

	response, err := app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/medicines/%d/taken", medicineID), map[string]any{
			"time": "08:00",
		}, token), -1)
	if err != nil {
		t.Fatalf("mark taken request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}
	payload := decodeBody(t, response)
	intake := payload["intake"].(map[string]any)
	if intake["completed"] != true {
		t.Fatalf("expected completed intake, got %v", intake["completed"])
	}

	response, err = app.Test(jsonRequest(t, http.MethodGet, "/api/medicines/reminders", nil, token), -1)
	if err != nil {
		t.Fatalf("reminders request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	payload = decodeBody(t, response)
	reminders, ok := payload["reminders"].([]any)
	if !ok || len(reminders) != 1 {
		t.Fatalf("expected one reminder, got %v", payload["reminders"])
	}
	reminder := reminders[0].(map[string]any)
	completed, _ := reminder["completed_times"].([]any)
	pending, _ := reminder["pending_times"].([]any)
	if len(completed) != 1 || completed[0] != "08:00" {
		t.Fatalf("expected 08:00 completed, got %v", completed)
	}
	if len(pending) != 1 || pending[0] != "20:00" {
		t.Fatalf("expected 20:00 pending, got %v", pending)
	}
}

func TestMarkTakenUnknownMedicine(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "medicine-unknown@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/medicines/99/taken", map[string]any{}, token), -1)
	if err != nil {
		t.Fatalf("mark taken request failed: %v", err)
	}
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", response.StatusCode)
	}
}
