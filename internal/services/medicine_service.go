package services

import (
	"errors"
	"time"

	"github.com/sana-health/sana/internal/models"
)

var (
	ErrMedicineNotFound   = errors.New("medicine not found")
	ErrMedicineSaveFailed = errors.New("save medicine failed")
	ErrIntakeSaveFailed   = errors.New("save medicine intake failed")
)

type MedicineRepository interface {
	ListByUser(userID uint, isActive *bool, offset int, limit int) ([]models.Medicine, int64, error)
	ListActiveWithReminders(userID uint) ([]models.Medicine, error)
	FindByIDAndUser(medicineID uint, userID uint) (models.Medicine, bool, error)
	Create(medicine *models.Medicine) error
	Save(medicine *models.Medicine) error
	DeleteByIDAndUser(medicineID uint, userID uint) error
	CountByUser(userID uint) (int64, error)
	CountActiveByUser(userID uint) (int64, error)
	CountAISuggestedByUser(userID uint) (int64, error)
}

type MedicineIntakeRepository interface {
	ListByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.MedicineIntake, error)
	CountCompletedSince(userID uint, since time.Time) (int64, error)
	Create(intake *models.MedicineIntake) error
}

type MedicineService struct {
	medicines MedicineRepository
	intakes   MedicineIntakeRepository
	location  *time.Location
}

func NewMedicineService(medicines MedicineRepository, intakes MedicineIntakeRepository, location *time.Location) *MedicineService {
	if location == nil {
		location = time.UTC
	}
	return &MedicineService{medicines: medicines, intakes: intakes, location: location}
}

func (service *MedicineService) Medicines(userID uint, isActive *bool, page int, limit int) ([]models.Medicine, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return service.medicines.ListByUser(userID, isActive, (page-1)*limit, limit)
}

func (service *MedicineService) Medicine(userID uint, medicineID uint) (models.Medicine, error) {
	medicine, found, err := service.medicines.FindByIDAndUser(medicineID, userID)
	if err != nil {
		return models.Medicine{}, ErrMedicineSaveFailed
	}
	if !found {
		return models.Medicine{}, ErrMedicineNotFound
	}
	return medicine, nil
}

func (service *MedicineService) CreateMedicine(userID uint, medicine models.Medicine) (models.Medicine, error) {
	medicine.ID = 0
	medicine.UserID = userID
	if medicine.Times == nil {
		medicine.Times = []string{}
	}
	if medicine.SideEffects == nil {
		medicine.SideEffects = []string{}
	}
	if medicine.StartDate.IsZero() {
		medicine.StartDate = DateAtLocation(time.Now(), service.location)
	}
	if err := service.medicines.Create(&medicine); err != nil {
		return models.Medicine{}, ErrMedicineSaveFailed
	}
	return medicine, nil
}

func (service *MedicineService) UpdateMedicine(userID uint, medicineID uint, updated models.Medicine) (models.Medicine, error) {
	medicine, found, err := service.medicines.FindByIDAndUser(medicineID, userID)
	if err != nil {
		return models.Medicine{}, ErrMedicineSaveFailed
	}
	if !found {
		return models.Medicine{}, ErrMedicineNotFound
	}

	updated.ID = medicine.ID
	updated.UserID = medicine.UserID
	updated.CreatedAt = medicine.CreatedAt
	if updated.Times == nil {
		updated.Times = medicine.Times
	}
	if updated.SideEffects == nil {
		updated.SideEffects = medicine.SideEffects
	}
	if err := service.medicines.Save(&updated); err != nil {
		return models.Medicine{}, ErrMedicineSaveFailed
	}
	return updated, nil
}

func (service *MedicineService) DeleteMedicine(userID uint, medicineID uint) error {
	_, found, err := service.medicines.FindByIDAndUser(medicineID, userID)
	if err != nil {
		return ErrMedicineSaveFailed
	}
	if !found {
		return ErrMedicineNotFound
	}
	return service.medicines.DeleteByIDAndUser(medicineID, userID)
}

// MarkTaken records one completed dose for today. The time defaults to the
// current wall clock in the service location.
func (service *MedicineService) MarkTaken(userID uint, medicineID uint, doseTime string, notes string, now time.Time) (models.MedicineIntake, error) {
	medicine, found, err := service.medicines.FindByIDAndUser(medicineID, userID)
	if err != nil {
		return models.MedicineIntake{}, ErrMedicineSaveFailed
	}
	if !found {
		return models.MedicineIntake{}, ErrMedicineNotFound
	}

	if doseTime == "" {
		doseTime = now.In(service.location).Format("15:04")
	}
	intake := models.MedicineIntake{
		MedicineID: medicine.ID,
		UserID:     userID,
		Date:       DateAtLocation(now, service.location),
		Time:       doseTime,
		Completed:  true,
		Notes:      notes,
	}
	if err := service.intakes.Create(&intake); err != nil {
		return models.MedicineIntake{}, ErrIntakeSaveFailed
	}
	return intake, nil
}

// MedicineReminder summarizes one medicine's schedule for a calendar date.
type MedicineReminder struct {
	MedicineID     uint     `json:"medicine_id"`
	Name           string   `json:"name"`
	Dosage         string   `json:"dosage"`
	Times          []string `json:"times"`
	CompletedTimes []string `json:"completed_times"`
	PendingTimes   []string `json:"pending_times"`
}

// RemindersForDate lists each reminder-enabled medicine with the dose times
// already completed on the date and those still pending.
func (service *MedicineService) RemindersForDate(userID uint, date time.Time) ([]MedicineReminder, error) {
	medicines, err := service.medicines.ListActiveWithReminders(userID)
	if err != nil {
		return nil, ErrMedicineSaveFailed
	}

	dayStart, dayEnd := DayRange(date, service.location)
	intakes, err := service.intakes.ListByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return nil, ErrIntakeSaveFailed
	}

	completedByMedicine := make(map[uint]map[string]bool)
	for _, intake := range intakes {
		if !intake.Completed {
			continue
		}
		if completedByMedicine[intake.MedicineID] == nil {
			completedByMedicine[intake.MedicineID] = make(map[string]bool)
		}
		completedByMedicine[intake.MedicineID][intake.Time] = true
	}

	reminders := make([]MedicineReminder, 0, len(medicines))
	for _, medicine := range medicines {
		completed := make([]string, 0)
		pending := make([]string, 0)
		for _, doseTime := range medicine.Times {
			if completedByMedicine[medicine.ID][doseTime] {
				completed = append(completed, doseTime)
			} else {
				pending = append(pending, doseTime)
			}
		}
		reminders = append(reminders, MedicineReminder{
			MedicineID:     medicine.ID,
			Name:           medicine.Name,
			Dosage:         medicine.Dosage,
			Times:          medicine.Times,
			CompletedTimes: completed,
			PendingTimes:   pending,
		})
	}
	return reminders, nil
}

type MedicineAnalytics struct {
	TotalMedicines       int64 `json:"total_medicines"`
	ActiveMedicines      int64 `json:"active_medicines"`
	AISuggestedMedicines int64 `json:"ai_suggested_medicines"`
	TotalCompletions     int64 `json:"total_completions"`
}

func (service *MedicineService) Analytics(userID uint, days int, now time.Time) (MedicineAnalytics, error) {
	if days <= 0 {
		days = 30
	}

	total, err := service.medicines.CountByUser(userID)
	if err != nil {
		return MedicineAnalytics{}, ErrMedicineSaveFailed
	}
	active, err := service.medicines.CountActiveByUser(userID)
	if err != nil {
		return MedicineAnalytics{}, ErrMedicineSaveFailed
	}
	aiSuggested, err := service.medicines.CountAISuggestedByUser(userID)
	if err != nil {
		return MedicineAnalytics{}, ErrMedicineSaveFailed
	}
	completions, err := service.intakes.CountCompletedSince(userID, now.AddDate(0, 0, -days))
	if err != nil {
		return MedicineAnalytics{}, ErrIntakeSaveFailed
	}

	return MedicineAnalytics{
		TotalMedicines:       total,
		ActiveMedicines:      active,
		AISuggestedMedicines: aiSuggested,
		TotalCompletions:     completions,
	}, nil
}

// ReminderDue reports whether a medicine has a reminder scheduled at the
// given instant: reminders enabled, the weekday matches (an empty weekday
// list means every day), the clock matches a reminder time, and the instant
// falls inside the medicine's active date range.
func ReminderDue(medicine models.Medicine, now time.Time) bool {
	if !medicine.IsActive || !medicine.Reminders.Enabled {
		return false
	}
	if now.Before(medicine.StartDate) {
		return false
	}
	if medicine.EndDate != nil && now.After(medicine.EndDate.AddDate(0, 0, 1)) {
		return false
	}

	if len(medicine.Reminders.Weekdays) > 0 {
		weekdayMatched := false
		for _, weekday := range medicine.Reminders.Weekdays {
			if int(now.Weekday()) == weekday {
				weekdayMatched = true
				break
			}
		}
		if !weekdayMatched {
			return false
		}
	}

	times := medicine.Reminders.Times
	if len(times) == 0 {
		times = medicine.Times
	}
	clock := now.Format("15:04")
	for _, reminderTime := range times {
		if reminderTime == clock {
			return true
		}
	}
	return false
}
