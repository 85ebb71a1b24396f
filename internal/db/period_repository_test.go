package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sana-health/sana/internal/models"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	require.NoError(t, err)
	return parsed
}

func TestPeriodEntryRepository_FindByUserAndDayRange(t *testing.T) {
	database := newTestDatabase(t)
	repo := NewPeriodEntryRepository(database)

	entry := models.PeriodEntry{
		UserID:        1,
		Date:          day(t, "2024-03-10"),
		FlowIntensity: models.FlowLight,
		Symptoms:      []string{"cramps"},
		Mood:          models.MoodNormal,
	}
	require.NoError(t, repo.Create(&entry))

	found, ok, err := repo.FindByUserAndDayRange(1, day(t, "2024-03-10"), day(t, "2024-03-11"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entry.ID, found.ID)
	require.Equal(t, []string{"cramps"}, found.Symptoms)

	_, ok, err = repo.FindByUserAndDayRange(1, day(t, "2024-03-11"), day(t, "2024-03-12"))
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = repo.FindByUserAndDayRange(2, day(t, "2024-03-10"), day(t, "2024-03-11"))
	require.NoError(t, err)
	require.False(t, ok, "entries must be scoped to their owner")
}

func TestPeriodEntryRepository_ListByUserOrdersByDate(t *testing.T) {
	database := newTestDatabase(t)
	repo := NewPeriodEntryRepository(database)

	for _, date := range []string{"2024-03-10", "2024-01-01", "2024-02-15"} {
		entry := models.PeriodEntry{
			UserID:        1,
			Date:          day(t, date),
			FlowIntensity: models.FlowMedium,
			Symptoms:      []string{},
			Mood:          models.MoodNormal,
		}
		require.NoError(t, repo.Create(&entry))
	}

	entries, err := repo.ListByUser(1)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.True(t, entries[0].Date.Before(entries[1].Date))
	require.True(t, entries[1].Date.Before(entries[2].Date))
}

func TestPeriodCycleRepository_CloseActiveByUser(t *testing.T) {
	database := newTestDatabase(t)
	repo := NewPeriodCycleRepository(database)

	active := models.PeriodCycle{
		UserID:          1,
		CycleStartDate:  day(t, "2024-03-01"),
		PeriodStartDate: day(t, "2024-03-01"),
		FlowIntensity:   models.FlowMedium,
		Symptoms:        []string{},
		Mood:            models.MoodNormal,
		State:           models.CycleStateActive,
	}
	require.NoError(t, repo.Create(&active))

	otherUser := models.PeriodCycle{
		UserID:          2,
		CycleStartDate:  day(t, "2024-03-01"),
		PeriodStartDate: day(t, "2024-03-01"),
		FlowIntensity:   models.FlowMedium,
		Symptoms:        []string{},
		Mood:            models.MoodNormal,
		State:           models.CycleStateActive,
	}
	require.NoError(t, repo.Create(&otherUser))

	require.NoError(t, repo.CloseActiveByUser(1))

	closed, ok, err := repo.FindByIDAndUser(active.ID, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, models.CycleStateClosed, closed.State)
	require.Nil(t, closed.CycleEndDate, "closing without ending must not set an end date")
	require.Nil(t, closed.CycleLength)

	_, stillActive, err := repo.FindActiveByUser(1)
	require.NoError(t, err)
	require.False(t, stillActive)

	_, otherActive, err := repo.FindActiveByUser(2)
	require.NoError(t, err)
	require.True(t, otherActive, "other users' cycles must be untouched")
}

func TestPeriodHistoryRepository_FindByUser(t *testing.T) {
	database := newTestDatabase(t)
	repo := NewPeriodHistoryRepository(database)

	_, ok, err := repo.FindByUser(1)
	require.NoError(t, err)
	require.False(t, ok)

	history := models.PeriodHistory{
		UserID:              1,
		AverageCycleLength:  models.DefaultCycleLength,
		AveragePeriodLength: models.DefaultPeriodLength,
	}
	require.NoError(t, repo.Create(&history))

	found, ok, err := repo.FindByUser(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 28, found.AverageCycleLength)
	require.Equal(t, 5, found.AveragePeriodLength)
}
