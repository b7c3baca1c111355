package server

import (
	"github.com/gofiber/fiber/v2"

	"penpal/internal/models"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// SearchUsers handles GET /api/users/search?q=<query>
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	if len(query) < 2 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query must be at least 2 characters"))
	}

	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	users, err := s.userRepo.Search(c.Context(), query, limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	type userSummary struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	out := make([]userSummary, 0, len(users))
	for i := range users {
		out = append(out, userSummary{ID: users[i].ID, Username: users[i].Username})
	}

	return c.JSON(out)
}

// GetAdminStats handles GET /api/admin/stats
func (s *Server) GetAdminStats(c *fiber.Ctx) error {
	ctx := c.Context()

	var userCount, pendingRequests, friendships, totalMessages, unreadMessages int64

	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&userCount).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStorageError(err))
	}
	if err := s.db.WithContext(ctx).Model(&models.FriendLink{}).
		Where("status = ?", false).Count(&pendingRequests).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStorageError(err))
	}
	if err := s.db.WithContext(ctx).Model(&models.FriendLink{}).
		Where("status = ?", true).Count(&friendships).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStorageError(err))
	}
	if err := s.db.WithContext(ctx).Model(&models.Message{}).Count(&totalMessages).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStorageError(err))
	}
	if err := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("status_check = ?", false).Count(&unreadMessages).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStorageError(err))
	}

	return c.JSON(fiber.Map{
		"users":            userCount,
		"pending_requests": pendingRequests,
		"friendships":      friendships,
		"messages":         totalMessages,
		"unread_messages":  unreadMessages,
	})
}
