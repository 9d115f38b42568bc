package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/intrackhq/intrack-backend/internal/models"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// LatestForUser returns the caller's 10 most recent notifications.
func (s *NotificationService) LatestForUser(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(10).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flips the read flag by id. There is no ownership check and an
// unknown id is not an error; both match the site's historical behavior.
func (s *NotificationService) MarkRead(id uuid.UUID) error {
	err := s.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
