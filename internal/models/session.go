package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side half of a login. The cookie only carries a
// signed reference to this row; deleting the row revokes the session.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
