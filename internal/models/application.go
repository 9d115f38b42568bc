package models

import (
	"time"

	"github.com/google/uuid"
)

// Application links a user to a job they applied for. The composite unique
// index makes double-applying a conditional insert instead of a
// read-then-write race.
type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_job" json:"user_id"`
	JobID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_job" json:"job_id"`
	AppliedAt time.Time `gorm:"index" json:"applied_at"`

	Job Job `gorm:"foreignKey:JobID" json:"job"`
}
