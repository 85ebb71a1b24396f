package models

import "time"

const (
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

const (
	MoodHappy     = "happy"
	MoodSad       = "sad"
	MoodAnxious   = "anxious"
	MoodIrritable = "irritable"
	MoodNormal    = "normal"
)

const (
	CycleStateActive = "active"
	CycleStateClosed = "closed"
)

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

// PeriodEntry is one observation for a calendar date. Time-of-day is
// irrelevant; the engine compares entries by date only.
type PeriodEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:uidx_period_user_date" json:"-"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:uidx_period_user_date" json:"date"`
	FlowIntensity string    `gorm:"not null;default:medium" json:"flow_intensity"`
	Symptoms      []string  `gorm:"serializer:json" json:"symptoms"`
	Mood          string    `gorm:"not null;default:normal" json:"mood"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PeriodHistory holds the recomputed statistics for one user. The entries
// themselves live in their own table and are loaded ordered by date.
type PeriodHistory struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"not null;uniqueIndex" json:"-"`
	AverageCycleLength  int       `gorm:"not null;default:28" json:"average_cycle_length"`
	AveragePeriodLength int       `gorm:"not null;default:5" json:"average_period_length"`
	IrregularCycles     bool      `gorm:"not null;default:false" json:"irregular_cycles"`
	LastUpdated         time.Time `json:"last_updated"`
	CreatedAt           time.Time `json:"created_at"`
}

// PeriodCycle tracks one menstrual cycle instance. State is a tagged value,
// not a bool: at most one cycle per user is ever in CycleStateActive.
type PeriodCycle struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"-"`
	CycleStartDate  time.Time  `gorm:"type:date;not null" json:"cycle_start_date"`
	CycleEndDate    *time.Time `gorm:"type:date" json:"cycle_end_date,omitempty"`
	PeriodStartDate time.Time  `gorm:"type:date;not null" json:"period_start_date"`
	PeriodEndDate   *time.Time `gorm:"type:date" json:"period_end_date,omitempty"`
	CycleLength     *int       `json:"cycle_length,omitempty"`
	PeriodLength    *int       `json:"period_length,omitempty"`
	FlowIntensity   string     `gorm:"not null;default:medium" json:"flow_intensity"`
	Symptoms        []string   `gorm:"serializer:json" json:"symptoms"`
	Mood            string     `gorm:"not null;default:normal" json:"mood"`
	Notes           string     `json:"notes,omitempty"`
	State           string     `gorm:"not null;default:active;index" json:"state"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func ValidFlowIntensity(flow string) bool {
	switch flow {
	case FlowLight, FlowMedium, FlowHeavy:
		return true
	default:
		return false
	}
}

func ValidMood(mood string) bool {
	switch mood {
	case MoodHappy, MoodSad, MoodAnxious, MoodIrritable, MoodNormal:
		return true
	default:
		return false
	}
}
