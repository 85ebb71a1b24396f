package db

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sana-health/sana/internal/models"
)

type MedicineRepository struct {
	database *gorm.DB
}

func NewMedicineRepository(database *gorm.DB) *MedicineRepository {
	return &MedicineRepository{database: database}
}

func (repo *MedicineRepository) ListByUser(userID uint, isActive *bool, offset int, limit int) ([]models.Medicine, int64, error) {
	query := repo.database.Model(&models.Medicine{}).Where("user_id = ?", userID)
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	medicines := make([]models.Medicine, 0)
	if err := query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&medicines).Error; err != nil {
		return nil, 0, err
	}
	return medicines, total, nil
}

// ListActiveWithReminders filters the reminder flag in Go: reminders are
// stored as a JSON column, so the enabled bit is not directly queryable.
func (repo *MedicineRepository) ListActiveWithReminders(userID uint) ([]models.Medicine, error) {
	medicines := make([]models.Medicine, 0)
	if err := repo.database.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("id ASC").
		Find(&medicines).Error; err != nil {
		return nil, err
	}

	withReminders := medicines[:0]
	for _, medicine := range medicines {
		if medicine.Reminders.Enabled {
			withReminders = append(withReminders, medicine)
		}
	}
	return withReminders, nil
}

func (repo *MedicineRepository) ListReminderEnabled() ([]models.Medicine, error) {
	medicines := make([]models.Medicine, 0)
	if err := repo.database.
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&medicines).Error; err != nil {
		return nil, err
	}

	withReminders := medicines[:0]
	for _, medicine := range medicines {
		if medicine.Reminders.Enabled {
			withReminders = append(withReminders, medicine)
		}
	}
	return withReminders, nil
}

func (repo *MedicineRepository) FindByIDAndUser(medicineID uint, userID uint) (models.Medicine, bool, error) {
	var medicine models.Medicine
	err := repo.database.Where("id = ? AND user_id = ?", medicineID, userID).First(&medicine).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Medicine{}, false, nil
	}
	if err != nil {
		return models.Medicine{}, false, err
	}
	return medicine, true, nil
}

func (repo *MedicineRepository) Create(medicine *models.Medicine) error {
	return repo.database.Create(medicine).Error
}

func (repo *MedicineRepository) Save(medicine *models.Medicine) error {
	return repo.database.Save(medicine).Error
}

func (repo *MedicineRepository) DeleteByIDAndUser(medicineID uint, userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("medicine_id = ? AND user_id = ?", medicineID, userID).
			Delete(&models.MedicineIntake{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", medicineID, userID).
			Delete(&models.Medicine{}).Error
	})
}

func (repo *MedicineRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := repo.database.Model(&models.Medicine{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (repo *MedicineRepository) CountActiveByUser(userID uint) (int64, error) {
	var count int64
	err := repo.database.Model(&models.Medicine{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (repo *MedicineRepository) CountAISuggestedByUser(userID uint) (int64, error) {
	var count int64
	err := repo.database.Model(&models.Medicine{}).
		Where("user_id = ? AND is_ai_suggested = ?", userID, true).
		Count(&count).Error
	return count, err
}

type MedicineIntakeRepository struct {
	database *gorm.DB
}

func NewMedicineIntakeRepository(database *gorm.DB) *MedicineIntakeRepository {
	return &MedicineIntakeRepository{database: database}
}

func (repo *MedicineIntakeRepository) ListByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.MedicineIntake, error) {
	intakes := make([]models.MedicineIntake, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("time ASC, id ASC").
		Find(&intakes).Error; err != nil {
		return nil, err
	}
	return intakes, nil
}

func (repo *MedicineIntakeRepository) CountCompletedSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := repo.database.Model(&models.MedicineIntake{}).
		Where("user_id = ? AND completed = ? AND date >= ?", userID, true, since).
		Count(&count).Error
	return count, err
}

func (repo *MedicineIntakeRepository) Create(intake *models.MedicineIntake) error {
	return repo.database.Create(intake).Error
}
