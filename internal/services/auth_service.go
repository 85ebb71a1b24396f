package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sana-health/sana/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserSaveFailed     = errors.New("save user failed")
)

type UserRepository interface {
	ExistsByEmail(email string) (bool, error)
	FindByEmail(email string) (models.User, bool, error)
	FindByID(userID uint) (models.User, bool, error)
	Create(user *models.User) error
	Save(user *models.User) error
}

type AuthService struct {
	users UserRepository
}

func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Registration struct {
	Name     string
	Email    string
	Password string
	Age      *int
	Gender   string
}

func (service *AuthService) Register(registration Registration) (models.User, error) {
	email := NormalizeEmail(registration.Email)
	taken, err := service.users.ExistsByEmail(email)
	if err != nil {
		return models.User{}, ErrUserSaveFailed
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, ErrUserSaveFailed
	}

	user := models.User{
		Name:              strings.TrimSpace(registration.Name),
		Email:             email,
		PasswordHash:      string(passwordHash),
		Age:               registration.Age,
		Gender:            registration.Gender,
		Allergies:         []string{},
		Medications:       []string{},
		ChronicConditions: []string{},
		Preferences:       models.DefaultPreferences(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, ErrUserSaveFailed
	}
	return user, nil
}

// Authenticate checks credentials and stamps the user's last login time.
func (service *AuthService) Authenticate(email string, password string, now time.Time) (models.User, error) {
	user, found, err := service.users.FindByEmail(NormalizeEmail(email))
	if err != nil {
		return models.User{}, ErrUserSaveFailed
	}
	if !found {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user.LastLogin = &now
	if err := service.users.Save(&user); err != nil {
		return models.User{}, ErrUserSaveFailed
	}
	return user, nil
}

func (service *AuthService) UserByID(userID uint) (models.User, error) {
	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, ErrUserSaveFailed
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (service *AuthService) ChangePassword(userID uint, currentPassword string, newPassword string) error {
	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return ErrUserSaveFailed
	}
	if !found {
		return ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrUserSaveFailed
	}
	user.PasswordHash = string(passwordHash)
	user.MustChangePassword = false
	if err := service.users.Save(&user); err != nil {
		return ErrUserSaveFailed
	}
	return nil
}

// ResetPassword replaces the user's password with a temporary one and forces
// a change on the next login. Used by the operator CLI.
func (service *AuthService) ResetPassword(email string, temporaryPassword string) error {
	user, found, err := service.users.FindByEmail(NormalizeEmail(email))
	if err != nil {
		return ErrUserSaveFailed
	}
	if !found {
		return ErrUserNotFound
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrUserSaveFailed
	}
	user.PasswordHash = string(passwordHash)
	user.MustChangePassword = true
	if err := service.users.Save(&user); err != nil {
		return ErrUserSaveFailed
	}
	return nil
}

// ProfileUpdate carries optional profile fields. Nil pointers leave the
// current value untouched.
type ProfileUpdate struct {
	Name              *string
	Age               *int
	Gender            *string
	Height            *string
	Weight            *string
	BloodType         *string
	Allergies         []string
	Medications       []string
	ChronicConditions []string
	EmergencyContact  *models.EmergencyContact
	Preferences       *models.Preferences
}

func (service *AuthService) UpdateProfile(userID uint, update ProfileUpdate) (models.User, error) {
	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, ErrUserSaveFailed
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}

	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Age != nil {
		user.Age = update.Age
	}
	if update.Gender != nil {
		user.Gender = *update.Gender
	}
	if update.Height != nil {
		user.Height = *update.Height
	}
	if update.Weight != nil {
		user.Weight = *update.Weight
	}
	if update.BloodType != nil {
		user.BloodType = *update.BloodType
	}
	if update.Allergies != nil {
		user.Allergies = update.Allergies
	}
	if update.Medications != nil {
		user.Medications = update.Medications
	}
	if update.ChronicConditions != nil {
		user.ChronicConditions = update.ChronicConditions
	}
	if update.EmergencyContact != nil {
		user.EmergencyContact = *update.EmergencyContact
	}
	if update.Preferences != nil {
		user.Preferences = *update.Preferences
	}

	if err := service.users.Save(&user); err != nil {
		return models.User{}, ErrUserSaveFailed
	}
	return user, nil
}
