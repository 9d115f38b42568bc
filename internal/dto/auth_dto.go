package dto

import (
	"time"

	"github.com/google/uuid"
)

// Field names follow the signup/login forms, which post capitalized keys.

type RegisterRequest struct {
	FullName string `json:"FullName" form:"FullName" validate:"required,max=255"`
	Email    string `json:"Email" form:"Email" validate:"required,email"`
	Password string `json:"Password" form:"Password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"Email" form:"Email" validate:"required,email"`
	Password string `json:"Password" form:"Password" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"FullName" form:"FullName" validate:"required,max=255"`
	Email    string `json:"Email" form:"Email" validate:"required,email"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
