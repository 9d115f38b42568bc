package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/intrackhq/intrack-backend/internal/dto"
	"github.com/intrackhq/intrack-backend/internal/notes"
)

// NoteHandler exposes the public notes scratchpad. No authentication, no
// owner; the store is process-local and vanishes on restart.
type NoteHandler struct {
	store notes.Store
}

func NewNoteHandler(store notes.Store) *NoteHandler {
	return &NoteHandler{store: store}
}

// Add handles POST /add-note.
func (h *NoteHandler) Add(c *fiber.Ctx) error {
	var req dto.AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	h.store.Add(req.Note)
	return c.JSON(fiber.Map{"success": true})
}

// Get handles GET /get-notes.
func (h *NoteHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.store.List())
}
