package db

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sana-health/sana/internal/models"
)

type PeriodHistoryRepository struct {
	database *gorm.DB
}

func NewPeriodHistoryRepository(database *gorm.DB) *PeriodHistoryRepository {
	return &PeriodHistoryRepository{database: database}
}

func (repo *PeriodHistoryRepository) FindByUser(userID uint) (models.PeriodHistory, bool, error) {
	var history models.PeriodHistory
	err := repo.database.Where("user_id = ?", userID).First(&history).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PeriodHistory{}, false, nil
	}
	if err != nil {
		return models.PeriodHistory{}, false, err
	}
	return history, true, nil
}

func (repo *PeriodHistoryRepository) Create(history *models.PeriodHistory) error {
	return repo.database.Create(history).Error
}

func (repo *PeriodHistoryRepository) Save(history *models.PeriodHistory) error {
	return repo.database.Save(history).Error
}

type PeriodEntryRepository struct {
	database *gorm.DB
}

func NewPeriodEntryRepository(database *gorm.DB) *PeriodEntryRepository {
	return &PeriodEntryRepository{database: database}
}

func (repo *PeriodEntryRepository) ListByUser(userID uint) ([]models.PeriodEntry, error) {
	entries := make([]models.PeriodEntry, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *PeriodEntryRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.PeriodEntry, bool, error) {
	entry := models.PeriodEntry{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.PeriodEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.PeriodEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *PeriodEntryRepository) Create(entry *models.PeriodEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *PeriodEntryRepository) Save(entry *models.PeriodEntry) error {
	return repo.database.Save(entry).Error
}

type PeriodCycleRepository struct {
	database *gorm.DB
}

func NewPeriodCycleRepository(database *gorm.DB) *PeriodCycleRepository {
	return &PeriodCycleRepository{database: database}
}

func (repo *PeriodCycleRepository) ListByUserSince(userID uint, since time.Time) ([]models.PeriodCycle, error) {
	cycles := make([]models.PeriodCycle, 0)
	if err := repo.database.
		Where("user_id = ? AND cycle_start_date >= ?", userID, since).
		Order("cycle_start_date DESC, id DESC").
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *PeriodCycleRepository) FindActiveByUser(userID uint) (models.PeriodCycle, bool, error) {
	cycle := models.PeriodCycle{}
	result := repo.database.
		Where("user_id = ? AND state = ?", userID, models.CycleStateActive).
		Order("cycle_start_date DESC, id DESC").
		Limit(1).
		Find(&cycle)
	if result.Error != nil {
		return models.PeriodCycle{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.PeriodCycle{}, false, nil
	}
	return cycle, true, nil
}

func (repo *PeriodCycleRepository) FindByIDAndUser(cycleID uint, userID uint) (models.PeriodCycle, bool, error) {
	var cycle models.PeriodCycle
	err := repo.database.Where("id = ? AND user_id = ?", cycleID, userID).First(&cycle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PeriodCycle{}, false, nil
	}
	if err != nil {
		return models.PeriodCycle{}, false, err
	}
	return cycle, true, nil
}

// CloseActiveByUser marks every active cycle closed without touching end
// dates or computed lengths.
func (repo *PeriodCycleRepository) CloseActiveByUser(userID uint) error {
	return repo.database.Model(&models.PeriodCycle{}).
		Where("user_id = ? AND state = ?", userID, models.CycleStateActive).
		Update("state", models.CycleStateClosed).Error
}

func (repo *PeriodCycleRepository) Create(cycle *models.PeriodCycle) error {
	return repo.database.Create(cycle).Error
}

func (repo *PeriodCycleRepository) Save(cycle *models.PeriodCycle) error {
	return repo.database.Save(cycle).Error
}
