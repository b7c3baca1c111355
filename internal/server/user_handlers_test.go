package server

import (
	"net/http"
	"testing"

	"penpal/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchUsers(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createUser(t, db, "alice")
	createUser(t, db, "alina")
	createUser(t, db, "bob")

	app := fiber.New()
	app.Use(asUser(alice.ID))
	app.Get("/api/users/search", s.SearchUsers)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/search?q=ali", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results []struct {
		Username string `json:"username"`
	}
	decodeBody(t, resp, &results)
	require.Len(t, results, 2)
	assert.Equal(t, "alice", results[0].Username)
	assert.Equal(t, "alina", results[1].Username)

	// Too-short queries are rejected rather than scanning the table.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/users/search?q=a", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMyProfile(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createUser(t, db, "alice")

	app := fiber.New()
	app.Use(asUser(alice.ID))
	app.Get("/api/users/me", s.GetMyProfile)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/me", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile struct {
		Username string `json:"username"`
	}
	decodeBody(t, resp, &profile)
	assert.Equal(t, "alice", profile.Username)
}

func TestGetAdminStats(t *testing.T) {
	s, db := setupTestServer(t)
	admin := createUser(t, db, "admin-user")
	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", admin.ID).Update("is_admin", true).Error)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	befriend(t, s, alice.ID, bob.ID)
	require.NoError(t, db.Create(&models.FriendLink{SenderID: admin.ID, RecipientID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Message{SenderID: alice.ID, RecipientID: bob.ID, Text: "hi"}).Error)
	require.NoError(t, db.Create(&models.Message{SenderID: bob.ID, RecipientID: alice.ID, Text: "yo", Read: true}).Error)

	adminApp := fiber.New()
	adminApp.Use(asUser(admin.ID))
	adminApp.Get("/api/admin/stats", s.AdminRequired(), s.GetAdminStats)

	resp, err := adminApp.Test(jsonRequest(t, http.MethodGet, "/api/admin/stats", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		Users           int64 `json:"users"`
		PendingRequests int64 `json:"pending_requests"`
		Friendships     int64 `json:"friendships"`
		Messages        int64 `json:"messages"`
		UnreadMessages  int64 `json:"unread_messages"`
	}
	decodeBody(t, resp, &stats)
	assert.Equal(t, int64(3), stats.Users)
	assert.Equal(t, int64(1), stats.PendingRequests)
	assert.Equal(t, int64(1), stats.Friendships)
	assert.Equal(t, int64(2), stats.Messages)
	assert.Equal(t, int64(1), stats.UnreadMessages)

	// A regular user is turned away at the gate.
	userApp := fiber.New()
	userApp.Use(asUser(alice.ID))
	userApp.Get("/api/admin/stats", s.AdminRequired(), s.GetAdminStats)

	resp, err = userApp.Test(jsonRequest(t, http.MethodGet, "/api/admin/stats", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
