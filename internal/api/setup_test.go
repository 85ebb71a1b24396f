package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sana-health/sana/internal/config"
	"github.com/sana-health/sana/internal/db"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	cfg := config.Config{
		Auth: config.AuthConfig{
			SecretKey:     "test-secret",
			TokenLifetime: time.Hour,
		},
		Timezone: "UTC",
	}

	app := fiber.New()
	handler := NewHandler(database, cfg, zap.NewNop())
	RegisterRoutes(app, handler)
	return app
}

func jsonRequest(t *testing.T, method string, path string, body any, token string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return request
}

func decodeBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()

	defer response.Body.Close()
	var payload map[string]any
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

// registerTestUser signs up a user and returns the bearer token.
func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Asha",
		"email":    email,
		"password": "secret-password",
	}, ""), -1)
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register status %d", response.StatusCode)
	}

	payload := decodeBody(t, response)
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatalf("missing token in %v", payload)
	}
	return token
}
