package api

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sana-health/sana/internal/config"
	"github.com/sana-health/sana/internal/db"
	"github.com/sana-health/sana/internal/services"
)

const (
	authCookieName = "sana_auth"
	contextUserKey = "current_user_id"
)

type Handler struct {
	secretKey     []byte
	tokenLifetime time.Duration
	location      *time.Location
	cookieSecure  bool
	logger        *zap.Logger

	repositories    *db.Repositories
	authService     *services.AuthService
	periodService   *services.PeriodService
	medicineService *services.MedicineService
	chatService     *services.ChatService
	planService     *services.PlanService
}

func NewHandler(database *gorm.DB, cfg config.Config, logger *zap.Logger) *Handler {
	location := cfg.Location()
	repositories := db.NewRepositories(database)

	return &Handler{
		secretKey:     []byte(cfg.Auth.SecretKey),
		tokenLifetime: cfg.Auth.TokenLifetime,
		location:      location,
		logger:        logger,

		repositories:    repositories,
		authService:     services.NewAuthService(repositories.Users),
		periodService:   services.NewPeriodService(repositories.PeriodHistories, repositories.PeriodEntries, repositories.PeriodCycles, location),
		medicineService: services.NewMedicineService(repositories.Medicines, repositories.MedicineIntakes, location),
		chatService:     services.NewChatService(repositories.ChatSessions, repositories.ChatMessages),
		planService:     services.NewPlanService(repositories.HealthPlans, repositories.PlanTasks, location),
	}
}
