package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sana-health/sana/internal/models"
)

type ChatSessionRepository struct {
	database *gorm.DB
}

func NewChatSessionRepository(database *gorm.DB) *ChatSessionRepository {
	return &ChatSessionRepository{database: database}
}

func (repo *ChatSessionRepository) ListByUser(userID uint, status string, sessionType string, offset int, limit int) ([]models.ChatSession, int64, error) {
	query := repo.database.Model(&models.ChatSession{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if sessionType != "" {
		query = query.Where("session_type = ?", sessionType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sessions := make([]models.ChatSession, 0)
	if err := query.
		Order("updated_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (repo *ChatSessionRepository) FindByIDAndUser(sessionID uint, userID uint) (models.ChatSession, bool, error) {
	var session models.ChatSession
	err := repo.database.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ChatSession{}, false, nil
	}
	if err != nil {
		return models.ChatSession{}, false, err
	}
	return session, true, nil
}

func (repo *ChatSessionRepository) Create(session *models.ChatSession) error {
	return repo.database.Create(session).Error
}

func (repo *ChatSessionRepository) Save(session *models.ChatSession) error {
	return repo.database.Save(session).Error
}

func (repo *ChatSessionRepository) DeleteByIDAndUser(sessionID uint, userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).
			Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", sessionID, userID).
			Delete(&models.ChatSession{}).Error
	})
}

type ChatMessageRepository struct {
	database *gorm.DB
}

func NewChatMessageRepository(database *gorm.DB) *ChatMessageRepository {
	return &ChatMessageRepository{database: database}
}

func (repo *ChatMessageRepository) ListBySession(sessionID uint) ([]models.ChatMessage, error) {
	messages := make([]models.ChatMessage, 0)
	if err := repo.database.
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (repo *ChatMessageRepository) Create(message *models.ChatMessage) error {
	return repo.database.Create(message).Error
}
