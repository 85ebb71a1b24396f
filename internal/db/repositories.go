package db

import "gorm.io/gorm"

type Repositories struct {
	Users           *UserRepository
	PeriodHistories *PeriodHistoryRepository
	PeriodEntries   *PeriodEntryRepository
	PeriodCycles    *PeriodCycleRepository
	Medicines       *MedicineRepository
	MedicineIntakes *MedicineIntakeRepository
	ChatSessions    *ChatSessionRepository
	ChatMessages    *ChatMessageRepository
	HealthPlans     *HealthPlanRepository
	PlanTasks       *PlanTaskRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:           NewUserRepository(database),
		PeriodHistories: NewPeriodHistoryRepository(database),
		PeriodEntries:   NewPeriodEntryRepository(database),
		PeriodCycles:    NewPeriodCycleRepository(database),
		Medicines:       NewMedicineRepository(database),
		MedicineIntakes: NewMedicineIntakeRepository(database),
		ChatSessions:    NewChatSessionRepository(database),
		ChatMessages:    NewChatMessageRepository(database),
		HealthPlans:     NewHealthPlanRepository(database),
		PlanTasks:       NewPlanTaskRepository(database),
	}
}
