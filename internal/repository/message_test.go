package repository

import (
	"context"
	"testing"

	"penpal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	msg := &models.Message{SenderID: alice.ID, RecipientID: bob.ID, Text: "hi"}
	require.NoError(t, repo.Create(ctx, msg))
	assert.NotZero(t, msg.ID)
	assert.False(t, msg.Read)
}

func TestMessageRepository_FetchUnreadAndMarkRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	require.NoError(t, repo.Create(ctx, &models.Message{SenderID: alice.ID, RecipientID: bob.ID, Text: "first"}))
	require.NoError(t, repo.Create(ctx, &models.Message{SenderID: carol.ID, RecipientID: bob.ID, Text: "second"}))
	// Messages addressed to someone else stay untouched.
	require.NoError(t, repo.Create(ctx, &models.Message{SenderID: bob.ID, RecipientID: alice.ID, Text: "for alice"}))

	messages, err := repo.FetchUnreadAndMarkRead(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Oldest first, senders resolved, batch flagged read.
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, "alice", messages[0].Sender.Username)
	assert.Equal(t, "second", messages[1].Text)
	assert.Equal(t, "carol", messages[1].Sender.Username)
	for _, m := range messages {
		assert.True(t, m.Read)
	}

	// Reading is a side effect of listing: the second call is empty.
	again, err := repo.FetchUnreadAndMarkRead(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, again)

	// alice's inbox was not consumed by bob's read.
	count, err := repo.CountUnread(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMessageRepository_FetchUnreadAndMarkRead_NewMessagesAfterRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, &models.Message{SenderID: alice.ID, RecipientID: bob.ID, Text: "one"}))

	first, err := repo.FetchUnreadAndMarkRead(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, repo.Create(ctx, &models.Message{SenderID: alice.ID, RecipientID: bob.ID, Text: "two"}))

	second, err := repo.FetchUnreadAndMarkRead(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "two", second[0].Text)
}
