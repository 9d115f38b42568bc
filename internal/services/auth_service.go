package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/intrackhq/intrack-backend/internal/dto"
	"github.com/intrackhq/intrack-backend/internal/models"
	"github.com/intrackhq/intrack-backend/internal/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("incorrect password")
)

// bcryptCost matches the salt rounds the site has always used.
const bcryptCost = 12

type AuthService struct {
	db       *gorm.DB
	sessions *session.Service
}

func NewAuthService(db *gorm.DB, sessions *session.Service) *AuthService {
	return &AuthService{db: db, sessions: sessions}
}

// Register creates a user and logs them in. Email uniqueness is the unique
// index on users.email, so two concurrent signups cannot both win.
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	cookie, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, cookie, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*models.User, string, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", req.Email).Error; err != nil {
		return nil, "", ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	cookie, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, cookie, nil
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// UpdateProfile mutates only the full name and email; password changes are
// not supported.
func (s *AuthService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	err := s.db.Model(&user).Updates(map[string]interface{}{
		"full_name": req.FullName,
		"email":     req.Email,
	}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	user.FullName = req.FullName
	user.Email = req.Email
	return &user, nil
}

// DeleteAccount removes the user and all their sessions. Applications and
// notifications referencing the user are intentionally left in place.
func (s *AuthService) DeleteAccount(userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Session{}, "user_id = ?", userID).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.User{}, "id = ?", userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}
