package models

import "time"

const (
	GenderMale           = "male"
	GenderFemale         = "female"
	GenderOther          = "other"
	GenderPreferNotToSay = "prefer-not-to-say"
)

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type Preferences struct {
	PeriodTracker     bool `json:"period_tracker"`
	MedicineReminders bool `json:"medicine_reminders"`
	HealthInsights    bool `json:"health_insights"`
	Notifications     bool `json:"notifications"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		PeriodTracker:     true,
		MedicineReminders: true,
		HealthInsights:    true,
		Notifications:     true,
	}
}

type User struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	Name               string           `gorm:"not null" json:"name"`
	Email              string           `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string           `gorm:"not null" json:"-"`
	Age                *int             `json:"age,omitempty"`
	Gender             string           `json:"gender,omitempty"`
	Height             string           `json:"height,omitempty"`
	Weight             string           `json:"weight,omitempty"`
	BloodType          string           `json:"blood_type,omitempty"`
	Allergies          []string         `gorm:"serializer:json" json:"allergies"`
	Medications        []string         `gorm:"serializer:json" json:"medications"`
	ChronicConditions  []string         `gorm:"serializer:json" json:"chronic_conditions"`
	EmergencyContact   EmergencyContact `gorm:"serializer:json" json:"emergency_contact"`
	Preferences        Preferences      `gorm:"serializer:json" json:"preferences"`
	MustChangePassword bool             `gorm:"not null;default:false" json:"-"`
	LastLogin          *time.Time       `json:"last_login,omitempty"`
	CreatedAt          time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func ValidGender(gender string) bool {
	switch gender {
	case GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return true
	default:
		return false
	}
}
