package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sana-health/sana/internal/models"
)

var (
	ErrChatSessionNotFound   = errors.New("chat session not found")
	ErrChatSessionSaveFailed = errors.New("save chat session failed")
	ErrChatMessageSaveFailed = errors.New("save chat message failed")
)

type ChatSessionRepository interface {
	ListByUser(userID uint, status string, sessionType string, offset int, limit int) ([]models.ChatSession, int64, error)
	FindByIDAndUser(sessionID uint, userID uint) (models.ChatSession, bool, error)
	Create(session *models.ChatSession) error
	Save(session *models.ChatSession) error
	DeleteByIDAndUser(sessionID uint, userID uint) error
}

type ChatMessageRepository interface {
	ListBySession(sessionID uint) ([]models.ChatMessage, error)
	Create(message *models.ChatMessage) error
}

type ChatService struct {
	sessions ChatSessionRepository
	messages ChatMessageRepository
}

func NewChatService(sessions ChatSessionRepository, messages ChatMessageRepository) *ChatService {
	return &ChatService{sessions: sessions, messages: messages}
}

func (service *ChatService) Sessions(userID uint, status string, sessionType string, page int, limit int) ([]models.ChatSession, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return service.sessions.ListByUser(userID, status, sessionType, (page-1)*limit, limit)
}

func (service *ChatService) SessionWithMessages(userID uint, sessionID uint) (models.ChatSession, []models.ChatMessage, error) {
	session, found, err := service.sessions.FindByIDAndUser(sessionID, userID)
	if err != nil {
		return models.ChatSession{}, nil, ErrChatSessionSaveFailed
	}
	if !found {
		return models.ChatSession{}, nil, ErrChatSessionNotFound
	}

	messages, err := service.messages.ListBySession(session.ID)
	if err != nil {
		return models.ChatSession{}, nil, ErrChatMessageSaveFailed
	}
	return session, messages, nil
}

func (service *ChatService) CreateSession(userID uint, title string, sessionType string) (models.ChatSession, error) {
	if title == "" {
		title = "New Chat Session"
	}
	if !models.ValidSessionType(sessionType) {
		sessionType = models.SessionTypeGeneral
	}

	session := models.ChatSession{
		UserID:      userID,
		Title:       title,
		SessionType: sessionType,
		Status:      models.SessionStatusActive,
		Tags:        []string{},
	}
	if err := service.sessions.Create(&session); err != nil {
		return models.ChatSession{}, ErrChatSessionSaveFailed
	}
	return session, nil
}

func (service *ChatService) DeleteSession(userID uint, sessionID uint) error {
	_, found, err := service.sessions.FindByIDAndUser(sessionID, userID)
	if err != nil {
		return ErrChatSessionSaveFailed
	}
	if !found {
		return ErrChatSessionNotFound
	}
	return service.sessions.DeleteByIDAndUser(sessionID, userID)
}

// AddUserMessage stores the user message and the generated assistant reply,
// returning both in order.
func (service *ChatService) AddUserMessage(userID uint, sessionID uint, text string) (models.ChatMessage, models.ChatMessage, error) {
	session, found, err := service.sessions.FindByIDAndUser(sessionID, userID)
	if err != nil {
		return models.ChatMessage{}, models.ChatMessage{}, ErrChatMessageSaveFailed
	}
	if !found {
		return models.ChatMessage{}, models.ChatMessage{}, ErrChatSessionNotFound
	}

	userMessage := models.ChatMessage{
		ID:          uuid.NewString(),
		SessionID:   session.ID,
		Sender:      models.SenderUser,
		Text:        text,
		MessageType: models.MessageTypeText,
	}
	if err := service.messages.Create(&userMessage); err != nil {
		return models.ChatMessage{}, models.ChatMessage{}, ErrChatMessageSaveFailed
	}

	reply, messageType := RespondToMessage(text)
	botMessage := models.ChatMessage{
		ID:          uuid.NewString(),
		SessionID:   session.ID,
		Sender:      models.SenderBot,
		Text:        reply,
		MessageType: messageType,
		GeneratedBy: "rule-engine",
	}
	if err := service.messages.Create(&botMessage); err != nil {
		return models.ChatMessage{}, models.ChatMessage{}, ErrChatMessageSaveFailed
	}

	// Touch the session so list ordering reflects activity.
	if err := service.sessions.Save(&session); err != nil {
		return models.ChatMessage{}, models.ChatMessage{}, ErrChatSessionSaveFailed
	}

	return userMessage, botMessage, nil
}
