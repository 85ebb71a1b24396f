package services

import (
	"math"
	"sort"
	"time"

	"github.com/sana-health/sana/internal/models"
)

// PeriodStatistics carries the recomputed aggregate values for one user's
// entry history.
type PeriodStatistics struct {
	AverageCycleLength  int  `json:"average_cycle_length"`
	AveragePeriodLength int  `json:"average_period_length"`
	IrregularCycles     bool `json:"irregular_cycles"`
}

// irregularityStdDevDays is the sample standard deviation above which a
// user's cycle lengths are flagged as irregular.
const irregularityStdDevDays = 7.0

// UpsertEntry replaces the entry sharing newEntry's calendar date or appends
// it, returning the history sorted ascending by date. A replacement keeps the
// stored row identity of the entry it displaces.
func UpsertEntry(entries []models.PeriodEntry, newEntry models.PeriodEntry) []models.PeriodEntry {
	updated := make([]models.PeriodEntry, 0, len(entries)+1)
	replaced := false
	for _, entry := range entries {
		if SameDay(entry.Date, newEntry.Date) {
			newEntry.ID = entry.ID
			if newEntry.UserID == 0 {
				newEntry.UserID = entry.UserID
			}
			updated = append(updated, newEntry)
			replaced = true
			continue
		}
		updated = append(updated, entry)
	}
	if !replaced {
		updated = append(updated, newEntry)
	}
	return SortEntriesByDate(updated)
}

// SortEntriesByDate returns the entries ordered ascending by date. Insertion
// order is irrelevant to the engine; every pass re-establishes date order.
func SortEntriesByDate(entries []models.PeriodEntry) []models.PeriodEntry {
	sorted := make([]models.PeriodEntry, 0, len(entries))
	sorted = append(sorted, entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// RecomputeStatistics derives cycle and period averages from the entry
// history. With fewer than two entries, or when a pass yields no samples, the
// corresponding prior values are retained unchanged.
//
// A cycle boundary is an entry with light flow immediately followed, in date
// order, by an entry with non-light flow; the day gap between the two is one
// cycle sample. A period span opens at the first non-light entry and closes
// at the next light entry. Light flow is treated as the tail end of a period
// rather than as an explicit start marker, so the averages are a heuristic,
// not a medical reading.
func RecomputeStatistics(current PeriodStatistics, entries []models.PeriodEntry) PeriodStatistics {
	if len(entries) < 2 {
		return current
	}

	sorted := SortEntriesByDate(entries)
	updated := current

	cycleSamples := collectCycleSamples(sorted)
	if len(cycleSamples) > 0 {
		updated.AverageCycleLength = roundedMean(cycleSamples)
		updated.IrregularCycles = stdDevAround(cycleSamples, updated.AverageCycleLength) > irregularityStdDevDays
	}

	periodSamples := collectPeriodSamples(sorted)
	if len(periodSamples) > 0 {
		updated.AveragePeriodLength = roundedMean(periodSamples)
	}

	return updated
}

func collectCycleSamples(sorted []models.PeriodEntry) []int {
	samples := make([]int, 0)
	for i := 1; i < len(sorted); i++ {
		previous := sorted[i-1]
		cursor := sorted[i]
		if previous.FlowIntensity == models.FlowLight && cursor.FlowIntensity != models.FlowLight {
			samples = append(samples, CeilDaysBetween(previous.Date, cursor.Date))
		}
	}
	return samples
}

func collectPeriodSamples(sorted []models.PeriodEntry) []int {
	samples := make([]int, 0)
	var spanStart *time.Time
	for index := range sorted {
		entry := sorted[index]
		if entry.FlowIntensity != models.FlowLight && spanStart == nil {
			start := entry.Date
			spanStart = &start
			continue
		}
		if entry.FlowIntensity == models.FlowLight && spanStart != nil {
			samples = append(samples, CeilDaysBetween(*spanStart, entry.Date))
			spanStart = nil
		}
	}
	return samples
}

func roundedMean(samples []int) int {
	total := 0
	for _, sample := range samples {
		total += sample
	}
	return int(math.Round(float64(total) / float64(len(samples))))
}

// stdDevAround computes the population standard deviation of the samples
// around the already-rounded mean, matching the stored integer average.
func stdDevAround(samples []int, mean int) float64 {
	if len(samples) == 0 {
		return 0
	}
	variance := 0.0
	for _, sample := range samples {
		deviation := float64(sample - mean)
		variance += deviation * deviation
	}
	variance /= float64(len(samples))
	return math.Sqrt(variance)
}
