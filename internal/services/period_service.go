package services

import (
	"errors"
	"sort"
	"time"

	"github.com/sana-health/sana/internal/models"
)

var (
	ErrPeriodHistoryLoadFailed = errors.New("load period history failed")
	ErrPeriodEntrySaveFailed   = errors.New("save period entry failed")
	ErrPeriodStatsSaveFailed   = errors.New("save period statistics failed")
	ErrCycleNotFound           = errors.New("period cycle not found")
	ErrCycleSaveFailed         = errors.New("save period cycle failed")
)

type PeriodHistoryRepository interface {
	FindByUser(userID uint) (models.PeriodHistory, bool, error)
	Create(history *models.PeriodHistory) error
	Save(history *models.PeriodHistory) error
}

type PeriodEntryRepository interface {
	ListByUser(userID uint) ([]models.PeriodEntry, error)
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.PeriodEntry, bool, error)
	Create(entry *models.PeriodEntry) error
	Save(entry *models.PeriodEntry) error
}

type PeriodCycleRepository interface {
	ListByUserSince(userID uint, since time.Time) ([]models.PeriodCycle, error)
	FindActiveByUser(userID uint) (models.PeriodCycle, bool, error)
	FindByIDAndUser(cycleID uint, userID uint) (models.PeriodCycle, bool, error)
	CloseActiveByUser(userID uint) error
	Create(cycle *models.PeriodCycle) error
	Save(cycle *models.PeriodCycle) error
}

type PeriodService struct {
	histories PeriodHistoryRepository
	entries   PeriodEntryRepository
	cycles    PeriodCycleRepository
	location  *time.Location
}

func NewPeriodService(histories PeriodHistoryRepository, entries PeriodEntryRepository, cycles PeriodCycleRepository, location *time.Location) *PeriodService {
	if location == nil {
		location = time.UTC
	}
	return &PeriodService{
		histories: histories,
		entries:   entries,
		cycles:    cycles,
		location:  location,
	}
}

// HistoryForUser loads the user's history record plus entries, creating the
// record lazily with default averages on first access.
func (service *PeriodService) HistoryForUser(userID uint) (models.PeriodHistory, []models.PeriodEntry, error) {
	history, found, err := service.histories.FindByUser(userID)
	if err != nil {
		return models.PeriodHistory{}, nil, ErrPeriodHistoryLoadFailed
	}
	if !found {
		history = models.PeriodHistory{
			UserID:              userID,
			AverageCycleLength:  models.DefaultCycleLength,
			AveragePeriodLength: models.DefaultPeriodLength,
		}
		if err := service.histories.Create(&history); err != nil {
			return models.PeriodHistory{}, nil, ErrPeriodHistoryLoadFailed
		}
	}

	entries, err := service.entries.ListByUser(userID)
	if err != nil {
		return models.PeriodHistory{}, nil, ErrPeriodHistoryLoadFailed
	}
	return history, entries, nil
}

type PeriodEntryInput struct {
	Date          time.Time
	FlowIntensity string
	Symptoms      []string
	Mood          string
	Notes         string
}

// AddEntry upserts the entry for its calendar date, recomputes the history
// statistics over the updated entry set, and persists both.
func (service *PeriodService) AddEntry(userID uint, input PeriodEntryInput) (models.PeriodEntry, models.PeriodHistory, error) {
	history, entries, err := service.HistoryForUser(userID)
	if err != nil {
		return models.PeriodEntry{}, models.PeriodHistory{}, err
	}

	if input.Mood == "" {
		input.Mood = models.MoodNormal
	}
	symptoms := input.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}

	dayStart, dayEnd := DayRange(input.Date, service.location)
	entry, found, err := service.entries.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.PeriodEntry{}, models.PeriodHistory{}, ErrPeriodEntrySaveFailed
	}

	if found {
		entry.FlowIntensity = input.FlowIntensity
		entry.Symptoms = symptoms
		entry.Mood = input.Mood
		entry.Notes = input.Notes
		if err := service.entries.Save(&entry); err != nil {
			return models.PeriodEntry{}, models.PeriodHistory{}, ErrPeriodEntrySaveFailed
		}
	} else {
		entry = models.PeriodEntry{
			UserID:        userID,
			Date:          dayStart,
			FlowIntensity: input.FlowIntensity,
			Symptoms:      symptoms,
			Mood:          input.Mood,
			Notes:         input.Notes,
		}
		if err := service.entries.Create(&entry); err != nil {
			return models.PeriodEntry{}, models.PeriodHistory{}, ErrPeriodEntrySaveFailed
		}
	}

	updatedEntries := UpsertEntry(entries, entry)
	stats := RecomputeStatistics(statisticsOf(history), updatedEntries)
	history.AverageCycleLength = stats.AverageCycleLength
	history.AveragePeriodLength = stats.AveragePeriodLength
	history.IrregularCycles = stats.IrregularCycles
	history.LastUpdated = time.Now().In(service.location)
	if err := service.histories.Save(&history); err != nil {
		return models.PeriodEntry{}, models.PeriodHistory{}, ErrPeriodStatsSaveFailed
	}

	return entry, history, nil
}

// CurrentCycle returns the user's single active cycle, if any.
func (service *PeriodService) CurrentCycle(userID uint) (models.PeriodCycle, bool, error) {
	return service.cycles.FindActiveByUser(userID)
}

type CycleStartInput struct {
	PeriodStartDate time.Time
	FlowIntensity   string
	Symptoms        []string
	Mood            string
	Notes           string
}

// StartCycle closes any active cycle for the user and opens a new one.
// Silently closed cycles keep no end dates and no computed lengths; that
// matches how the tracker has always behaved when a start overlaps an open
// cycle. The period start is also recorded as an entry so the statistics see
// it.
func (service *PeriodService) StartCycle(userID uint, input CycleStartInput, now time.Time) (models.PeriodCycle, error) {
	if err := service.cycles.CloseActiveByUser(userID); err != nil {
		return models.PeriodCycle{}, ErrCycleSaveFailed
	}

	if input.FlowIntensity == "" {
		input.FlowIntensity = models.FlowMedium
	}
	if input.Mood == "" {
		input.Mood = models.MoodNormal
	}
	symptoms := input.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}

	cycle := models.PeriodCycle{
		UserID:          userID,
		CycleStartDate:  DateAtLocation(now, service.location),
		PeriodStartDate: DateAtLocation(input.PeriodStartDate, service.location),
		FlowIntensity:   input.FlowIntensity,
		Symptoms:        symptoms,
		Mood:            input.Mood,
		Notes:           input.Notes,
		State:           models.CycleStateActive,
	}
	if err := service.cycles.Create(&cycle); err != nil {
		return models.PeriodCycle{}, ErrCycleSaveFailed
	}

	_, _, err := service.AddEntry(userID, PeriodEntryInput{
		Date:          input.PeriodStartDate,
		FlowIntensity: input.FlowIntensity,
		Symptoms:      symptoms,
		Mood:          input.Mood,
		Notes:         input.Notes,
	})
	if err != nil {
		return models.PeriodCycle{}, err
	}

	return cycle, nil
}

// EndCycle transitions an active cycle to closed, recording the end dates and
// deriving both lengths with a ceiling day difference.
func (service *PeriodService) EndCycle(userID uint, cycleID uint, periodEndDate time.Time, notes string, now time.Time) (models.PeriodCycle, error) {
	cycle, found, err := service.cycles.FindByIDAndUser(cycleID, userID)
	if err != nil {
		return models.PeriodCycle{}, ErrCycleSaveFailed
	}
	if !found {
		return models.PeriodCycle{}, ErrCycleNotFound
	}

	periodEnd := DateAtLocation(periodEndDate, service.location)
	cycleEnd := DateAtLocation(now, service.location)
	cycle.PeriodEndDate = &periodEnd
	cycle.CycleEndDate = &cycleEnd
	cycle.State = models.CycleStateClosed
	if notes != "" {
		cycle.Notes = notes
	}

	cycleLength := CeilDaysBetween(cycle.CycleStartDate, cycleEnd)
	periodLength := CeilDaysBetween(cycle.PeriodStartDate, periodEnd)
	cycle.CycleLength = &cycleLength
	cycle.PeriodLength = &periodLength

	if err := service.cycles.Save(&cycle); err != nil {
		return models.PeriodCycle{}, ErrCycleSaveFailed
	}
	return cycle, nil
}

// PredictionsForUser derives the forward dates from the stored history.
func (service *PeriodService) PredictionsForUser(userID uint) (Predictions, error) {
	history, entries, err := service.HistoryForUser(userID)
	if err != nil {
		return Predictions{}, err
	}
	return BuildPredictions(entries, statisticsOf(history)), nil
}

type SymptomFrequency struct {
	Symptom string `json:"symptom"`
	Count   int    `json:"count"`
}

type PeriodAnalytics struct {
	TotalCycles         int                  `json:"total_cycles"`
	AverageCycleLength  int                  `json:"average_cycle_length"`
	AveragePeriodLength int                  `json:"average_period_length"`
	IrregularCycles     bool                 `json:"irregular_cycles"`
	CommonSymptoms      []SymptomFrequency   `json:"common_symptoms"`
	RecentCycles        []models.PeriodCycle `json:"recent_cycles"`
}

// Analytics summarizes the trailing months of tracked data: cycle counts,
// stored averages, and the five most frequent symptoms across all entries.
func (service *PeriodService) Analytics(userID uint, months int, now time.Time) (PeriodAnalytics, error) {
	if months <= 0 {
		months = 12
	}

	history, entries, err := service.HistoryForUser(userID)
	if err != nil {
		return PeriodAnalytics{}, err
	}

	since := now.AddDate(0, -months, 0)
	recentCycles, err := service.cycles.ListByUserSince(userID, since)
	if err != nil {
		return PeriodAnalytics{}, ErrPeriodHistoryLoadFailed
	}

	analytics := PeriodAnalytics{
		TotalCycles:         len(recentCycles),
		AverageCycleLength:  history.AverageCycleLength,
		AveragePeriodLength: history.AveragePeriodLength,
		IrregularCycles:     history.IrregularCycles,
		CommonSymptoms:      TopSymptoms(entries, 5),
		RecentCycles:        recentCycles,
	}
	if len(analytics.RecentCycles) > 6 {
		analytics.RecentCycles = analytics.RecentCycles[:6]
	}
	return analytics, nil
}

// TopSymptoms counts symptom tags across the entries and returns the most
// frequent limit of them, ties broken alphabetically for stable output.
func TopSymptoms(entries []models.PeriodEntry, limit int) []SymptomFrequency {
	counts := make(map[string]int)
	for _, entry := range entries {
		for _, symptom := range entry.Symptoms {
			counts[symptom]++
		}
	}

	frequencies := make([]SymptomFrequency, 0, len(counts))
	for symptom, count := range counts {
		frequencies = append(frequencies, SymptomFrequency{Symptom: symptom, Count: count})
	}
	sort.Slice(frequencies, func(i, j int) bool {
		if frequencies[i].Count != frequencies[j].Count {
			return frequencies[i].Count > frequencies[j].Count
		}
		return frequencies[i].Symptom < frequencies[j].Symptom
	})

	if limit > 0 && len(frequencies) > limit {
		frequencies = frequencies[:limit]
	}
	return frequencies
}

func statisticsOf(history models.PeriodHistory) PeriodStatistics {
	return PeriodStatistics{
		AverageCycleLength:  history.AverageCycleLength,
		AveragePeriodLength: history.AveragePeriodLength,
		IrregularCycles:     history.IrregularCycles,
	}
}
