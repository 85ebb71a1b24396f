package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestChatConversationFlow(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "chat@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/chat/sessions", map[string]any{}, token), -1)
	if err != nil {
		t.Fatalf("create session request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}
	payload := decodeBody(t, response)
	session := payload["session"].(map[string]any)
	if session["title"] != "New Chat Session" {
		t.Fatalf("expected default title, got %v", session["title"])
	}
	sessionID := int(session["id"].(float64))

	response, err = app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/chat/sessions/%d/messages", sessionID), map[string]any{
			"text": "I have a headache",
		}, token), -1)
	if err != nil {
		t.Fatalf("send message request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}
	payload = decodeBody(t, response)
	userMessage := payload["user_message"].(map[string]any)
	botMessage := payload["bot_message"].(map[string]any)
	if userMessage["sender"] != "user" || botMessage["sender"] != "bot" {
		t.Fatalf("unexpected senders: %v / %v", userMessage["sender"], botMessage["sender"])
	}
	if botMessage["message_type"] != "symptom" {
		t.Fatalf("expected symptom reply, got %v", botMessage["message_type"])
	}

	response, err = app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/chat/sessions/%d", sessionID), nil, token), -1)
	if err != nil {
		t.Fatalf("load session request failed: %v", err)
	}
	payload = decodeBody(t, response)
	messages, ok := payload["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("expected two stored messages, got %v", payload["messages"])
	}
}

func TestSendMessageRejectsBlankText(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "chat-blank@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/chat/sessions", map[string]any{}, token), -1)
	if err != nil {
		t.Fatalf("create session request failed: %v", err)
	}
	payload := decodeBody(t, response)
	sessionID := int(payload["session"].(map[string]any)["id"].(float64))

	response, err = app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/chat/sessions/%d/messages", sessionID), map[string]any{
			"text": "   ",
		}, token), -1)
	if err != nil {
		t.Fatalf("send message request failed: %v", err)
	}
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
}

func TestChatSessionsAreScopedToOwner(t *testing.T) {
	app := newTestApp(t)
	ownerToken := registerTestUser(t, app, "chat-owner@example.com")
	otherToken := registerTestUser(t, app, "chat-other@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/chat/sessions", map[string]any{
		"title": "Private",
	}, ownerToken), -1)
	if err != nil {
		t.Fatalf("create session request failed: %v", err)
	}
	payload := decodeBody(t, response)
	sessionID := int(payload["session"].(map[string]any)["id"].(float64))

	response, err = app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/chat/sessions/%d", sessionID), nil, otherToken), -1)
	if err != nil {
		t.Fatalf("load session request failed: %v", err)
	}
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404 for another user's session, got %d", response.StatusCode)
	}
}

func TestAnalyzeSymptoms(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "analysis@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/chat/analyze-symptoms", map[string]any{
		"symptoms": []string{"fever", "headache"},
	}, token), -1)
	if err != nil {
		t.Fatalf("analyze request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	payload := decodeBody(t, response)
	analysis, ok := payload["analysis"].(map[string]any)
	if !ok {
		t.Fatalf("expected analysis object, got %v", payload["analysis"])
	}
	if analysis["severity"] != "high" {
		t.Fatalf("expected high severity for fever, got %v", analysis["severity"])
	}
	medications, _ := analysis["suggested_medications"].([]any)
	found := false
	for _, medication := range medications {
		if name, _ := medication.(string); strings.Contains(name, "Paracetamol") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Paracetamol among suggestions, got %v", medications)
	}
}
