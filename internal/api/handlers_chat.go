package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sana-health/sana/internal/services"
)

func (handler *Handler) GetChatSessions(c *fiber.Ctx) error {
	page, limit := pagination(c)
	sessions, total, err := handler.chatService.Sessions(
		currentUserID(c), c.Query("status"), c.Query("session_type"), page, limit,
	)
	if err != nil {
		handler.logger.Error("list chat sessions failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "list chat sessions failed")
	}
	return success(c, fiber.Map{"sessions": sessions, "pagination": paginationMeta(page, limit, total)})
}

type createSessionRequest struct {
	Title       string `json:"title"`
	SessionType string `json:"session_type"`
}

func (handler *Handler) CreateChatSession(c *fiber.Ctx) error {
	var request createSessionRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := handler.chatService.CreateSession(currentUserID(c), request.Title, request.SessionType)
	if err != nil {
		handler.logger.Error("create chat session failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "create chat session failed")
	}
	return created(c, fiber.Map{"session": session})
}

func (handler *Handler) GetChatSession(c *fiber.Ctx) error {
	sessionID, err := c.ParamsInt("id")
	if err != nil || sessionID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid session id")
	}

	session, messages, err := handler.chatService.SessionWithMessages(currentUserID(c), uint(sessionID))
	if errors.Is(err, services.ErrChatSessionNotFound) {
		return apiError(c, fiber.StatusNotFound, "chat session not found")
	}
	if err != nil {
		handler.logger.Error("load chat session failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "load chat session failed")
	}
	return success(c, fiber.Map{"session": session, "messages": messages})
}

func (handler *Handler) DeleteChatSession(c *fiber.Ctx) error {
	sessionID, err := c.ParamsInt("id")
	if err != nil || sessionID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid session id")
	}

	err = handler.chatService.DeleteSession(currentUserID(c), uint(sessionID))
	if errors.Is(err, services.ErrChatSessionNotFound) {
		return apiError(c, fiber.StatusNotFound, "chat session not found")
	}
	if err != nil {
		handler.logger.Error("delete chat session failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "delete chat session failed")
	}
	return success(c, fiber.Map{})
}

type chatMessageRequest struct {
	Text string `json:"text"`
}

func (handler *Handler) SendChatMessage(c *fiber.Ctx) error {
	sessionID, err := c.ParamsInt("id")
	if err != nil || sessionID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid session id")
	}

	var request chatMessageRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(request.Text) == "" {
		return apiError(c, fiber.StatusBadRequest, "text is required")
	}

	userMessage, botMessage, err := handler.chatService.AddUserMessage(currentUserID(c), uint(sessionID), request.Text)
	if errors.Is(err, services.ErrChatSessionNotFound) {
		return apiError(c, fiber.StatusNotFound, "chat session not found")
	}
	if err != nil {
		handler.logger.Error("send chat message failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "send chat message failed")
	}
	return created(c, fiber.Map{"user_message": userMessage, "bot_message": botMessage})
}

type symptomAnalysisRequest struct {
	Symptoms []string `json:"symptoms"`
}

func (handler *Handler) AnalyzeSymptoms(c *fiber.Ctx) error {
	var request symptomAnalysisRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(request.Symptoms) == 0 {
		return apiError(c, fiber.StatusBadRequest, "symptoms are required")
	}

	analysis := services.AnalyzeSymptoms(request.Symptoms)
	return success(c, fiber.Map{"analysis": analysis})
}
