package server

import (
	"github.com/gofiber/fiber/v2"

	"penpal/internal/models"
)

// SendFriendRequest handles POST /api/friends/requests
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	link, err := s.friendService.SendRequest(c.Context(), userID, req.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(link)
}

// GetPendingRequests handles GET /api/friends/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	requests, err := s.friendService.IncomingRequests(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	type pendingRequest struct {
		ID     uint   `json:"id"`
		Sender string `json:"sender"`
	}
	out := make([]pendingRequest, 0, len(requests))
	for i := range requests {
		out = append(out, pendingRequest{
			ID:     requests[i].ID,
			Sender: requests[i].Sender.Username,
		})
	}

	return c.JSON(out)
}

// AcceptFriendRequest handles POST /api/friends/requests/:requestId/accept
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	if err := s.friendService.RespondToRequest(c.Context(), userID, requestID, true); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "accepted"})
}

// DeclineFriendRequest handles POST /api/friends/requests/:requestId/decline
func (s *Server) DeclineFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	if err := s.friendService.RespondToRequest(c.Context(), userID, requestID, false); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "declined"})
}

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	// The full request URL is the cache signature, so distinct query
	// strings cache independently.
	friends, err := s.friendService.Friends(c.Context(), userID, c.OriginalURL())
	if err != nil {
		return respondServiceError(c, err)
	}

	type friendEntry struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	out := make([]friendEntry, 0, len(friends))
	for i := range friends {
		out = append(out, friendEntry{ID: friends[i].ID, Username: friends[i].Username})
	}

	return c.JSON(out)
}
