package models

import "time"

const (
	SessionTypeGeneral        = "general"
	SessionTypeSymptomCheck   = "symptom_check"
	SessionTypeEmergency      = "emergency"
	SessionTypeMedication     = "medication"
	SessionTypePeriodTracking = "period_tracking"
)

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusArchived  = "archived"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

const (
	MessageTypeText       = "text"
	MessageTypeSymptom    = "symptom"
	MessageTypeEmergency  = "emergency"
	MessageTypeMedication = "medication"
	MessageTypePeriod     = "period"
)

type ChatSession struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"-"`
	Title       string    `gorm:"not null" json:"title"`
	SessionType string    `gorm:"not null;default:general" json:"session_type"`
	Status      string    `gorm:"not null;default:active" json:"status"`
	Summary     string    `json:"summary,omitempty"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ChatMessage struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	SessionID   uint      `gorm:"not null;index" json:"session_id"`
	Sender      string    `gorm:"not null" json:"sender"`
	Text        string    `gorm:"not null" json:"text"`
	MessageType string    `gorm:"not null;default:text" json:"message_type"`
	GeneratedBy string    `json:"generated_by,omitempty"`
	CreatedAt   time.Time `json:"timestamp"`
}

func ValidSessionType(sessionType string) bool {
	switch sessionType {
	case SessionTypeGeneral, SessionTypeSymptomCheck, SessionTypeEmergency,
		SessionTypeMedication, SessionTypePeriodTracking:
		return true
	default:
		return false
	}
}

func ValidSessionStatus(status string) bool {
	switch status {
	case SessionStatusActive, SessionStatusCompleted, SessionStatusArchived:
		return true
	default:
		return false
	}
}
