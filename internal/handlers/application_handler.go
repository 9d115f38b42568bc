package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/intrackhq/intrack-backend/internal/dto"
	"github.com/intrackhq/intrack-backend/internal/services"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Apply handles POST /api/jobs/apply/:jobId. A repeat apply is not an error;
// it just reports "Already applied".
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "You must be logged in.",
		})
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	application, alreadyApplied, err := h.applicationService.Apply(userID, jobID)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Job not found",
			})
		}
		slog.Error("apply failed", "user_id", userID, "job_id", jobID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to apply",
		})
	}
	if alreadyApplied {
		return c.JSON(fiber.Map{"message": "Already applied"})
	}

	return c.JSON(fiber.Map{"success": true, "application": application})
}

// List handles GET /api/applications: the caller's applications with their
// jobs, newest first.
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "You must be logged in.",
		})
	}

	applications, err := h.applicationService.ListForUser(userID)
	if err != nil {
		slog.Error("listing applications failed", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list applications",
		})
	}
	return c.JSON(applications)
}
