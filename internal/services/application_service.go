package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/intrackhq/intrack-backend/internal/models"
	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type ApplicationService struct {
	db *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

// Apply records an application. The (user, job) unique index makes the
// duplicate check a single conditional insert; a second apply is reported
// via alreadyApplied rather than an error.
func (s *ApplicationService) Apply(userID, jobID uuid.UUID) (*models.Application, bool, error) {
	var job models.Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, false, ErrJobNotFound
	}

	application := models.Application{
		ID:        uuid.New(),
		UserID:    userID,
		JobID:     jobID,
		AppliedAt: time.Now(),
	}
	if err := s.db.Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("failed to create application: %w", err)
	}

	application.Job = job
	return &application, false, nil
}

// ListForUser returns the caller's applications with their jobs, newest first.
func (s *ApplicationService) ListForUser(userID uuid.UUID) ([]models.Application, error) {
	var applications []models.Application
	err := s.db.Preload("Job").
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}
