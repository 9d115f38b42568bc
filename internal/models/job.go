package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is a listing in the local catalog. Salary is nullable; listings
// imported from the external search API often have none.
type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Company     string    `gorm:"size:255;not null" json:"company"`
	Location    string    `gorm:"size:255" json:"location"`
	Type        string    `gorm:"size:50" json:"type"`
	Salary      *float64  `json:"salary"`
	Description string    `gorm:"type:text" json:"description"`
	PostedAt    time.Time `gorm:"index" json:"posted_at"`
}
