package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sana-health/sana/internal/models"
)

// ReminderMedicineSource lists every active medicine with reminders enabled,
// across all users.
type ReminderMedicineSource interface {
	ListReminderEnabled() ([]models.Medicine, error)
}

// ReminderScheduler periodically scans reminder-enabled medicines and emits a
// log record for each dose that is due at the current minute. Each dose fires
// at most once per day.
type ReminderScheduler struct {
	medicines ReminderMedicineSource
	logger    *zap.Logger
	interval  time.Duration
	location  *time.Location
	mu        sync.Mutex
	firedAt   map[string]time.Time
}

func NewReminderScheduler(medicines ReminderMedicineSource, logger *zap.Logger, interval time.Duration, location *time.Location) *ReminderScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	if location == nil {
		location = time.UTC
	}
	return &ReminderScheduler{
		medicines: medicines,
		logger:    logger,
		interval:  interval,
		location:  location,
		firedAt:   make(map[string]time.Time),
	}
}

func (scheduler *ReminderScheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(scheduler.interval)
	go func() {
		defer ticker.Stop()

		scheduler.run(time.Now())
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				scheduler.run(time.Now())
			}
		}
	}()
}

func (scheduler *ReminderScheduler) run(now time.Time) {
	now = now.In(scheduler.location)

	medicines, err := scheduler.medicines.ListReminderEnabled()
	if err != nil {
		scheduler.logger.Error("reminder scan failed", zap.Error(err))
		return
	}

	for _, medicine := range medicines {
		if !ReminderDue(medicine, now) {
			continue
		}
		key := fmt.Sprintf("%d:%s", medicine.ID, now.Format("15:04"))
		if !scheduler.shouldFire(key, now) {
			continue
		}
		scheduler.logger.Info("medicine reminder due",
			zap.Uint("medicine_id", medicine.ID),
			zap.Uint("user_id", medicine.UserID),
			zap.String("name", medicine.Name),
			zap.String("dosage", medicine.Dosage),
			zap.String("time", now.Format("15:04")),
		)
	}
}

func (scheduler *ReminderScheduler) shouldFire(key string, now time.Time) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if firedOn, ok := scheduler.firedAt[key]; ok && SameDay(firedOn, now) {
		return false
	}
	scheduler.firedAt[key] = now
	if len(scheduler.firedAt) > 1000 {
		scheduler.firedAt = make(map[string]time.Time)
	}
	return true
}
