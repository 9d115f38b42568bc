package handlers

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/intrackhq/intrack-backend/internal/dto"
	"github.com/intrackhq/intrack-backend/internal/services"
)

type JobHandler struct {
	jobService      *services.JobService
	externalService *services.ExternalJobService
	validate        *validator.Validate
}

func NewJobHandler(jobService *services.JobService, externalService *services.ExternalJobService) *JobHandler {
	return &JobHandler{
		jobService:      jobService,
		externalService: externalService,
		validate:        validator.New(),
	}
}

// Search handles GET /api/jobs/search.
func (h *JobHandler) Search(c *fiber.Ctx) error {
	var q dto.JobSearchQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid query parameters",
		})
	}

	jobs, err := h.jobService.Search(&q)
	if err != nil {
		slog.Error("job search failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search jobs",
		})
	}
	return c.JSON(jobs)
}

// Create handles POST /api/jobs/create. The endpoint is public; any caller
// may post a listing.
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Title and company are required",
		})
	}

	job, err := h.jobService.Create(&req)
	if err != nil {
		slog.Error("job creation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create job",
		})
	}

	return c.JSON(fiber.Map{"success": true, "job": job})
}

// External handles GET /api/jobs/external, the thin proxy to the external
// search API.
func (h *JobHandler) External(c *fiber.Ctx) error {
	what := c.Query("what")
	where := c.Query("where", "ireland")
	page := c.QueryInt("page", 1)

	jobs, err := h.externalService.Search(what, where, page)
	if err != nil {
		slog.Error("external job search failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch external jobs",
		})
	}
	return c.JSON(jobs)
}
