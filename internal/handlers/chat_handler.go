package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/intrackhq/intrack-backend/internal/dto"
	"github.com/intrackhq/intrack-backend/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat handles POST /chat. Upstream failures degrade to a canned reply with
// a 200 status; the widget renders whatever text comes back.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	reply, err := h.chatService.Reply(req.Message)
	if err != nil {
		slog.Error("chat completion failed", "error", err)
		return c.JSON(dto.ChatResponse{Reply: "Error: unable to generate response."})
	}
	return c.JSON(dto.ChatResponse{Reply: reply})
}
