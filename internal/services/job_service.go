package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/intrackhq/intrack-backend/internal/dto"
	"github.com/intrackhq/intrack-backend/internal/models"
	"github.com/intrackhq/intrack-backend/pkg/rabbitmq"
	"gorm.io/gorm"
)

type JobService struct {
	db     *gorm.DB
	events *rabbitmq.Client
}

// NewJobService creates a JobService. events may be nil; publishing is then
// skipped.
func NewJobService(db *gorm.DB, events *rabbitmq.Client) *JobService {
	return &JobService{db: db, events: events}
}

// Create persists a job and fans out one notification per existing user.
// The fan-out is a synchronous loop with no rollback: a failure partway
// through leaves earlier users notified.
func (s *JobService) Create(req *dto.CreateJobRequest) (*models.Job, error) {
	job := models.Job{
		ID:          uuid.New(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Type:        req.Type,
		Salary:      req.Salary,
		Description: req.Description,
		PostedAt:    time.Now(),
	}
	if err := s.db.Create(&job).Error; err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if err := s.notifyAllUsers(&job); err != nil {
		return nil, err
	}

	if s.events != nil {
		err := s.events.PublishJobCreated(map[string]interface{}{
			"id":      job.ID.String(),
			"title":   job.Title,
			"company": job.Company,
		})
		if err != nil {
			slog.Error("failed to publish job.created event", "job_id", job.ID, "error", err)
		}
	}

	return &job, nil
}

func (s *JobService) notifyAllUsers(job *models.Job) error {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return fmt.Errorf("failed to list users for notification fan-out: %w", err)
	}

	message := fmt.Sprintf("New job posted: %s at %s", job.Title, job.Company)
	for _, user := range users {
		notification := models.Notification{
			ID:      uuid.New(),
			UserID:  user.ID,
			Message: message,
		}
		if err := s.db.Create(&notification).Error; err != nil {
			return fmt.Errorf("failed to notify user %s: %w", user.ID, err)
		}
	}
	return nil
}

// Search filters the catalog. Text filters are case-insensitive substring
// matches, salary bounds are inclusive, and everything present is ANDed.
func (s *JobService) Search(q *dto.JobSearchQuery) ([]models.Job, error) {
	query := s.db.Model(&models.Job{})

	if q.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", contains(q.Title))
	}
	if q.Company != "" {
		query = query.Where("LOWER(company) LIKE ?", contains(q.Company))
	}
	if q.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", contains(q.Location))
	}
	if q.Type != "" {
		query = query.Where("LOWER(type) LIKE ?", contains(q.Type))
	}
	if q.MinSalary != nil {
		query = query.Where("salary >= ?", *q.MinSalary)
	}
	if q.MaxSalary != nil {
		query = query.Where("salary <= ?", *q.MaxSalary)
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	return jobs, nil
}

func contains(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
