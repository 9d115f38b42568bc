package handlers

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/intrackhq/intrack-backend/internal/config"
	"github.com/intrackhq/intrack-backend/internal/dto"
	"github.com/intrackhq/intrack-backend/internal/services"
	"github.com/intrackhq/intrack-backend/internal/session"
)

type AuthHandler struct {
	cfg         *config.Config
	authService *services.AuthService
	sessions    *session.Service
	validate    *validator.Validate
}

func NewAuthHandler(cfg *config.Config, authService *services.AuthService, sessions *session.Service) *AuthHandler {
	return &AuthHandler{
		cfg:         cfg,
		authService: authService,
		sessions:    sessions,
		validate:    validator.New(),
	}
}

// Register handles POST /post, the signup form target.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Full name, email and a password of at least 6 characters are required",
		})
	}

	_, cookie, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Email already exists.",
			})
		}
		slog.Error("registration failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not register user",
		})
	}

	setSessionCookie(c, h.cfg, cookie)
	return c.Redirect("/profile", fiber.StatusSeeOther)
}

// Login handles POST /login, the login form target.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email and password are required",
		})
	}

	_, cookie, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Incorrect password",
			})
		default:
			slog.Error("login failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Could not log in",
			})
		}
	}

	setSessionCookie(c, h.cfg, cookie)
	return c.Redirect("/profile", fiber.StatusSeeOther)
}

// Logout handles GET /logout: destroy the session row, clear the cookie,
// back to the login page.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if record, err := h.sessions.Resolve(c.Cookies(h.cfg.SessionCookie)); err == nil {
		if err := h.sessions.Destroy(record.ID); err != nil {
			slog.Error("failed to destroy session", "session_id", record.ID, "error", err)
		}
	}
	clearSessionCookie(c, h.cfg)
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	}

	return c.JSON(dto.UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Full name and a valid email are required",
		})
	}

	user, err := h.authService.UpdateProfile(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Email already exists.",
			})
		}
		slog.Error("profile update failed", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not update profile",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": dto.UserResponse{
			ID:        user.ID,
			FullName:  user.FullName,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	})
}

// DeleteAccount removes the user and revokes every session. Applications and
// notifications are left behind on purpose.
func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.authService.DeleteAccount(userID); err != nil {
		slog.Error("account deletion failed", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not delete profile",
		})
	}

	clearSessionCookie(c, h.cfg)
	return c.JSON(fiber.Map{"success": true})
}
