package services

import (
	"testing"
	"time"

	"github.com/sana-health/sana/internal/models"
)

func mustParseDay(t *testing.T, value string) time.Time {
	t.Helper()
	day, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", value, err)
	}
	return day
}

func entryOn(t *testing.T, day string, flow string) models.PeriodEntry {
	t.Helper()
	return models.PeriodEntry{Date: mustParseDay(t, day), FlowIntensity: flow, Mood: models.MoodNormal}
}

func TestRecomputeStatistics_FewerThanTwoEntriesRetainsPriorValues(t *testing.T) {
	t.Parallel()

	prior := PeriodStatistics{AverageCycleLength: 31, AveragePeriodLength: 4, IrregularCycles: true}

	cases := []struct {
		name    string
		entries []models.PeriodEntry
	}{
		{name: "empty history", entries: nil},
		{name: "single entry", entries: []models.PeriodEntry{entryOn(t, "2024-01-01", models.FlowHeavy)}},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			got := RecomputeStatistics(prior, testCase.entries)
			if got != prior {
				t.Fatalf("expected prior statistics %+v unchanged, got %+v", prior, got)
			}
		})
	}
}

func TestRecomputeStatistics_CycleAndPeriodAverages(t *testing.T) {
	t.Parallel()

	// Boundaries: light(01-05)->heavy(02-02) gap 28, light(02-06)->medium(03-08)
	// gap 31. Mean 29.5 rounds to 30. Period span: heavy(02-02)->light(02-06)
	// length 4.
	entries := []models.PeriodEntry{
		entryOn(t, "2024-01-05", models.FlowLight),
		entryOn(t, "2024-02-02", models.FlowHeavy),
		entryOn(t, "2024-02-06", models.FlowLight),
		entryOn(t, "2024-03-08", models.FlowMedium),
	}

	got := RecomputeStatistics(PeriodStatistics{AverageCycleLength: 28, AveragePeriodLength: 5}, entries)

	if got.AverageCycleLength != 30 {
		t.Fatalf("expected average cycle length 30, got %d", got.AverageCycleLength)
	}
	if got.AveragePeriodLength != 4 {
		t.Fatalf("expected average period length 4, got %d", got.AveragePeriodLength)
	}
	if got.IrregularCycles {
		t.Fatalf("expected regular cycles for samples 28 and 31")
	}
}

func TestRecomputeStatistics_OrderInvariant(t *testing.T) {
	t.Parallel()

	ordered := []models.PeriodEntry{
		entryOn(t, "2024-01-05", models.FlowLight),
		entryOn(t, "2024-02-02", models.FlowHeavy),
		entryOn(t, "2024-02-06", models.FlowLight),
		entryOn(t, "2024-03-08", models.FlowMedium),
	}
	shuffled := []models.PeriodEntry{ordered[2], ordered[0], ordered[3], ordered[1]}

	prior := PeriodStatistics{AverageCycleLength: 28, AveragePeriodLength: 5}
	fromOrdered := RecomputeStatistics(prior, ordered)
	fromShuffled := RecomputeStatistics(prior, shuffled)

	if fromOrdered != fromShuffled {
		t.Fatalf("expected order-invariant statistics, got %+v vs %+v", fromOrdered, fromShuffled)
	}
}

func TestRecomputeStatistics_IrregularityFlag(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		days          []string
		wantIrregular bool
	}{
		{
			// Samples 20 and 40: mean 30, population stddev 10 > 7.
			name:          "high variance flips irregular on",
			days:          []string{"2024-01-01", "2024-01-21", "2024-01-25", "2024-03-05"},
			wantIrregular: true,
		},
		{
			// Samples 28 and 29: stddev well under 7.
			name:          "low variance stays regular",
			days:          []string{"2024-01-01", "2024-01-29", "2024-02-02", "2024-03-02"},
			wantIrregular: false,
		},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			entries := []models.PeriodEntry{
				entryOn(t, testCase.days[0], models.FlowLight),
				entryOn(t, testCase.days[1], models.FlowHeavy),
				entryOn(t, testCase.days[2], models.FlowLight),
				entryOn(t, testCase.days[3], models.FlowHeavy),
			}
			got := RecomputeStatistics(PeriodStatistics{AverageCycleLength: 28, AveragePeriodLength: 5}, entries)
			if got.IrregularCycles != testCase.wantIrregular {
				t.Fatalf("expected irregular=%v, got %v", testCase.wantIrregular, got.IrregularCycles)
			}
		})
	}
}

func TestRecomputeStatistics_NoBoundariesRetainsPriorAverages(t *testing.T) {
	t.Parallel()

	// All heavy: no light->non-light boundary, and the single period span
	// never closes, so both averages and the irregular flag stay put.
	entries := []models.PeriodEntry{
		entryOn(t, "2024-01-01", models.FlowHeavy),
		entryOn(t, "2024-01-02", models.FlowHeavy),
		entryOn(t, "2024-01-03", models.FlowHeavy),
	}

	prior := PeriodStatistics{AverageCycleLength: 26, AveragePeriodLength: 6, IrregularCycles: true}
	got := RecomputeStatistics(prior, entries)
	if got != prior {
		t.Fatalf("expected prior statistics %+v retained, got %+v", prior, got)
	}
}

func TestRecomputeStatistics_Idempotent(t *testing.T) {
	t.Parallel()

	entries := []models.PeriodEntry{
		entryOn(t, "2024-01-05", models.FlowLight),
		entryOn(t, "2024-02-02", models.FlowHeavy),
		entryOn(t, "2024-02-06", models.FlowLight),
	}

	prior := PeriodStatistics{AverageCycleLength: 28, AveragePeriodLength: 5}
	first := RecomputeStatistics(prior, entries)
	second := RecomputeStatistics(prior, entries)
	if first != second {
		t.Fatalf("expected identical output on repeated recompute, got %+v vs %+v", first, second)
	}
}

func TestUpsertEntry_ReplacesByCalendarDate(t *testing.T) {
	t.Parallel()

	entries := UpsertEntry(nil, entryOn(t, "2024-01-10", models.FlowHeavy))
	entries = UpsertEntry(entries, entryOn(t, "2024-01-10", models.FlowLight))

	if len(entries) != 1 {
		t.Fatalf("expected exactly one entry for the date, got %d", len(entries))
	}
	if entries[0].FlowIntensity != models.FlowLight {
		t.Fatalf("expected the second call's flow %q, got %q", models.FlowLight, entries[0].FlowIntensity)
	}
}

func TestUpsertEntry_KeepsDateOrder(t *testing.T) {
	t.Parallel()

	entries := UpsertEntry(nil, entryOn(t, "2024-02-01", models.FlowMedium))
	entries = UpsertEntry(entries, entryOn(t, "2024-01-01", models.FlowHeavy))
	entries = UpsertEntry(entries, entryOn(t, "2024-01-15", models.FlowLight))

	wantDates := []string{"2024-01-01", "2024-01-15", "2024-02-01"}
	if len(entries) != len(wantDates) {
		t.Fatalf("expected %d entries, got %d", len(wantDates), len(entries))
	}
	for index, want := range wantDates {
		if got := entries[index].Date.Format("2006-01-02"); got != want {
			t.Fatalf("expected entry %d on %s, got %s", index, want, got)
		}
	}
}

func TestUpsertEntry_ReplacementKeepsRowIdentity(t *testing.T) {
	t.Parallel()

	existing := entryOn(t, "2024-01-10", models.FlowHeavy)
	existing.ID = 42
	existing.UserID = 7

	replacement := entryOn(t, "2024-01-10", models.FlowLight)
	entries := UpsertEntry([]models.PeriodEntry{existing}, replacement)

	if entries[0].ID != 42 || entries[0].UserID != 7 {
		t.Fatalf("expected replacement to keep row identity 42/7, got %d/%d", entries[0].ID, entries[0].UserID)
	}
}

func TestCeilDaysBetween_RoundsPartialDaysUp(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2024-01-01")
	if got := CeilDaysBetween(start, mustParseDay(t, "2024-01-29")); got != 28 {
		t.Fatalf("expected 28 whole days, got %d", got)
	}
	if got := CeilDaysBetween(start.Add(6*time.Hour), mustParseDay(t, "2024-01-02")); got != 1 {
		t.Fatalf("expected partial day to round up to 1, got %d", got)
	}
}
