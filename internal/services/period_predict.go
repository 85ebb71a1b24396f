package services

import (
	"time"

	"github.com/sana-health/sana/internal/models"
)

const lutealPhaseDays = 14

// InsufficientDataMessage explains a prediction result with no dates. Sparse
// self-reported histories are the common case, not a fault.
const InsufficientDataMessage = "Need more data for accurate predictions"

// Predictions holds the forward-looking dates derived from a user's entry
// history. All date fields are nil when the history holds fewer than two
// entries; Message then carries the reason.
type Predictions struct {
	NextPeriodDate      *time.Time `json:"next_period_date"`
	NextOvulationDate   *time.Time `json:"next_ovulation_date"`
	FertileWindowStart  *time.Time `json:"fertile_window_start"`
	FertileWindowEnd    *time.Time `json:"fertile_window_end"`
	AverageCycleLength  int        `json:"average_cycle_length,omitempty"`
	AveragePeriodLength int        `json:"average_period_length,omitempty"`
	Message             string     `json:"message,omitempty"`
}

// Sufficient reports whether the prediction carries concrete dates.
func (p Predictions) Sufficient() bool {
	return p.NextPeriodDate != nil
}

// BuildPredictions projects the next period from the chronologically last
// entry plus the average cycle length, then derives ovulation and the fertile
// window by fixed offsets. Pure arithmetic; no simulation.
func BuildPredictions(entries []models.PeriodEntry, stats PeriodStatistics) Predictions {
	if len(entries) < 2 {
		return Predictions{Message: InsufficientDataMessage}
	}

	sorted := SortEntriesByDate(entries)
	lastEntry := sorted[len(sorted)-1]

	nextPeriod := lastEntry.Date.AddDate(0, 0, stats.AverageCycleLength)
	nextOvulation := nextPeriod.AddDate(0, 0, -lutealPhaseDays)
	fertileStart := nextOvulation.AddDate(0, 0, -5)
	fertileEnd := nextOvulation.AddDate(0, 0, 1)

	return Predictions{
		NextPeriodDate:      &nextPeriod,
		NextOvulationDate:   &nextOvulation,
		FertileWindowStart:  &fertileStart,
		FertileWindowEnd:    &fertileEnd,
		AverageCycleLength:  stats.AverageCycleLength,
		AveragePeriodLength: stats.AveragePeriodLength,
	}
}
