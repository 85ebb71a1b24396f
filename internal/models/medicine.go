package models

import "time"

const (
	FrequencyOnceDaily       = "once_daily"
	FrequencyTwiceDaily      = "twice_daily"
	FrequencyThreeTimesDaily = "three_times_daily"
	FrequencyFourTimesDaily  = "four_times_daily"
	FrequencyAsNeeded        = "as_needed"
)

// ReminderSettings configures when a medicine reminder fires. Weekdays use
// time.Weekday numbering (0 = Sunday).
type ReminderSettings struct {
	Enabled  bool     `json:"enabled"`
	Times    []string `json:"times"`
	Weekdays []int    `json:"weekdays"`
}

type Medicine struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	UserID        uint             `gorm:"not null;index" json:"-"`
	Name          string           `gorm:"not null" json:"name"`
	Dosage        string           `gorm:"not null" json:"dosage"`
	Frequency     string           `gorm:"not null" json:"frequency"`
	Times         []string         `gorm:"serializer:json" json:"times"`
	StartDate     time.Time        `gorm:"type:date;not null" json:"start_date"`
	EndDate       *time.Time       `gorm:"type:date" json:"end_date,omitempty"`
	IsActive      bool             `gorm:"not null;default:true" json:"is_active"`
	IsAISuggested bool             `gorm:"not null;default:false" json:"is_ai_suggested"`
	Instructions  string           `json:"instructions,omitempty"`
	SideEffects   []string         `gorm:"serializer:json" json:"side_effects"`
	Reminders     ReminderSettings `gorm:"serializer:json" json:"reminders"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// MedicineIntake is one taken-or-skipped record for a scheduled dose.
type MedicineIntake struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MedicineID uint      `gorm:"not null;index" json:"medicine_id"`
	UserID     uint      `gorm:"not null;index" json:"-"`
	Date       time.Time `gorm:"type:date;not null" json:"date"`
	Time       string    `gorm:"not null" json:"time"`
	Completed  bool      `gorm:"not null;default:true" json:"completed"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ValidFrequency(frequency string) bool {
	switch frequency {
	case FrequencyOnceDaily, FrequencyTwiceDaily, FrequencyThreeTimesDaily,
		FrequencyFourTimesDaily, FrequencyAsNeeded:
		return true
	default:
		return false
	}
}
