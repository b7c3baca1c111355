package server

import (
	"github.com/gofiber/fiber/v2"

	"penpal/internal/models"
)

// SendMessage handles POST /api/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Recipient string `json:"recipient"`
		Text      string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Recipient == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Recipient is required"))
	}

	msg, err := s.messageService.Send(c.Context(), userID, req.Recipient, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetUnreadMessages handles GET /api/messages/unread
//
// Listing consumes: returned messages are marked read and will not appear
// on a subsequent call.
func (s *Server) GetUnreadMessages(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	incoming, err := s.messageService.UnreadAndMarkRead(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(incoming)
}
