package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendFriendRequest(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")

	app := fiber.New()
	app.Use(asUser(alice.ID))
	app.Post("/api/friends/requests", s.SendFriendRequest)

	tests := []struct {
		name           string
		body           any
		expectedStatus int
	}{
		{"Success", fiber.Map{"username": "bob"}, http.StatusCreated},
		{"Duplicate", fiber.Map{"username": "bob"}, http.StatusConflict},
		{"Self Request", fiber.Map{"username": "alice"}, http.StatusBadRequest},
		{"Unknown Recipient", fiber.Map{"username": "ghost"}, http.StatusNotFound},
		{"Missing Username", fiber.Map{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/friends/requests", tt.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestSendFriendRequest_ReverseDirectionIsDuplicate(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	app := fiber.New()
	app.Post("/api/friends/requests/from/:sender", func(c *fiber.Ctx) error {
		id, _ := s.parseID(c, "sender")
		c.Locals("userID", id)
		return s.SendFriendRequest(c)
	})

	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		"/api/friends/requests/from/"+itoa(alice.ID), fiber.Map{"username": "bob"}))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost,
		"/api/friends/requests/from/"+itoa(bob.ID), fiber.Map{"username": "alice"}))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestFriendRequestLifecycle(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	aliceApp := fiber.New()
	aliceApp.Use(asUser(alice.ID))
	aliceApp.Post("/api/friends/requests", s.SendFriendRequest)
	aliceApp.Get("/api/friends", s.GetFriends)

	bobApp := fiber.New()
	bobApp.Use(asUser(bob.ID))
	bobApp.Get("/api/friends/requests", s.GetPendingRequests)
	bobApp.Post("/api/friends/requests/:requestId/accept", s.AcceptFriendRequest)
	bobApp.Get("/api/friends", s.GetFriends)

	// alice sends a request to bob.
	resp, err := aliceApp.Test(jsonRequest(t, http.MethodPost, "/api/friends/requests",
		fiber.Map{"username": "bob"}))
	require.NoError(t, err)
	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotZero(t, created.ID)

	// bob sees it pending.
	resp, err = bobApp.Test(jsonRequest(t, http.MethodGet, "/api/friends/requests", nil))
	require.NoError(t, err)
	var pending []struct {
		ID     uint   `json:"id"`
		Sender string `json:"sender"`
	}
	decodeBody(t, resp, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].ID)
	assert.Equal(t, "alice", pending[0].Sender)

	// bob accepts.
	resp, err = bobApp.Test(jsonRequest(t, http.MethodPost,
		"/api/friends/requests/"+itoa(created.ID)+"/accept", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Both sides now list each other.
	var aliceFriends, bobFriends []struct {
		Username string `json:"username"`
	}
	resp, err = aliceApp.Test(jsonRequest(t, http.MethodGet, "/api/friends", nil))
	require.NoError(t, err)
	decodeBody(t, resp, &aliceFriends)
	require.Len(t, aliceFriends, 1)
	assert.Equal(t, "bob", aliceFriends[0].Username)

	resp, err = bobApp.Test(jsonRequest(t, http.MethodGet, "/api/friends", nil))
	require.NoError(t, err)
	decodeBody(t, resp, &bobFriends)
	require.Len(t, bobFriends, 1)
	assert.Equal(t, "alice", bobFriends[0].Username)

	// The request no longer shows as pending.
	resp, err = bobApp.Test(jsonRequest(t, http.MethodGet, "/api/friends/requests", nil))
	require.NoError(t, err)
	var stillPending []struct{}
	decodeBody(t, resp, &stillPending)
	assert.Empty(t, stillPending)
}

func TestDeclineFriendRequest(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	aliceApp := fiber.New()
	aliceApp.Use(asUser(alice.ID))
	aliceApp.Post("/api/friends/requests", s.SendFriendRequest)

	bobApp := fiber.New()
	bobApp.Use(asUser(bob.ID))
	bobApp.Post("/api/friends/requests/:requestId/decline", s.DeclineFriendRequest)
	bobApp.Get("/api/friends", s.GetFriends)

	resp, err := aliceApp.Test(jsonRequest(t, http.MethodPost, "/api/friends/requests",
		fiber.Map{"username": "bob"}))
	require.NoError(t, err)
	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &created)

	resp, err = bobApp.Test(jsonRequest(t, http.MethodPost,
		"/api/friends/requests/"+itoa(created.ID)+"/decline", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// No friendship came out of the decline.
	resp, err = bobApp.Test(jsonRequest(t, http.MethodGet, "/api/friends", nil))
	require.NoError(t, err)
	var friends []struct{}
	decodeBody(t, resp, &friends)
	assert.Empty(t, friends)

	// The pair can try again after a decline.
	resp, err = aliceApp.Test(jsonRequest(t, http.MethodPost, "/api/friends/requests",
		fiber.Map{"username": "bob"}))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRespondToRequest_OnlyRecipientMayAct(t *testing.T) {
	s, db := setupTestServer(t)
	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	aliceApp := fiber.New()
	aliceApp.Use(asUser(alice.ID))
	aliceApp.Post("/api/friends/requests", s.SendFriendRequest)
	aliceApp.Post("/api/friends/requests/:requestId/accept", s.AcceptFriendRequest)

	carolApp := fiber.New()
	carolApp.Use(asUser(carol.ID))
	carolApp.Post("/api/friends/requests/:requestId/accept", s.AcceptFriendRequest)

	resp, err := aliceApp.Test(jsonRequest(t, http.MethodPost, "/api/friends/requests",
		fiber.Map{"username": "bob"}))
	require.NoError(t, err)
	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &created)

	// A bystander gets 404, not 403: request existence is not disclosed.
	resp, err = carolApp.Test(jsonRequest(t, http.MethodPost,
		"/api/friends/requests/"+itoa(created.ID)+"/accept", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The sender cannot accept their own request.
	resp, err = aliceApp.Test(jsonRequest(t, http.MethodPost,
		"/api/friends/requests/"+itoa(created.ID)+"/accept", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Absent IDs and malformed IDs.
	resp, err = aliceApp.Test(jsonRequest(t, http.MethodPost, "/api/friends/requests/999/accept", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = aliceApp.Test(jsonRequest(t, http.MethodPost, "/api/friends/requests/abc/accept", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
