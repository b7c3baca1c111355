package service

import (
	"context"
	"strings"

	"penpal/internal/models"
	"penpal/internal/observability"
	"penpal/internal/repository"
)

// MessageService owns the message lifecycle: the friendship authorization
// gate, delivery, and unread enumeration with read-state mutation.
type MessageService struct {
	messageRepo repository.MessageRepository
	friendRepo  repository.FriendLinkRepository
	userRepo    repository.UserRepository
}

// IncomingMessage pairs a sender's display name with the message text,
// in the order retrieved.
type IncomingMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// NewMessageService returns a new MessageService.
func NewMessageService(
	messageRepo repository.MessageRepository,
	friendRepo repository.FriendLinkRepository,
	userRepo repository.UserRepository,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		friendRepo:  friendRepo,
		userRepo:    userRepo,
	}
}

// IsFriend reports whether the two users have a confirmed link in either
// direction. This is a direct persistence query on purpose: the cached
// friend list tolerates staleness, the authorization gate must not.
func (s *MessageService) IsFriend(ctx context.Context, userID, otherUserID uint) (bool, error) {
	return s.friendRepo.AreFriends(ctx, userID, otherUserID)
}

// Send delivers a text message from senderID to the user named
// recipientName. The pair must be confirmed friends at send time.
func (s *MessageService) Send(ctx context.Context, senderID uint, recipientName, text string) (*models.Message, error) {
	recipient, err := s.userRepo.GetByUsername(ctx, recipientName)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, models.NewEmptyMessageError()
	}

	friends, err := s.IsFriend(ctx, senderID, recipient.ID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, models.NewNotFriendsError()
	}

	msg := &models.Message{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Text:        text,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	observability.MessagesDeliveredTotal.WithLabelValues("sent").Inc()
	return msg, nil
}

// UnreadAndMarkRead returns the user's unread messages as (sender name,
// text) pairs in retrieval order. Fetching marks the batch read before it
// is returned; there is no separate acknowledge step, so a message can be
// handed to the caller at most once per send.
func (s *MessageService) UnreadAndMarkRead(ctx context.Context, userID uint) ([]IncomingMessage, error) {
	messages, err := s.messageRepo.FetchUnreadAndMarkRead(ctx, userID)
	if err != nil {
		return nil, err
	}

	incoming := make([]IncomingMessage, 0, len(messages))
	for i := range messages {
		incoming = append(incoming, IncomingMessage{
			Sender: messages[i].Sender.Username,
			Text:   messages[i].Text,
		})
	}

	if len(incoming) > 0 {
		observability.MessagesDeliveredTotal.WithLabelValues("delivered").Add(float64(len(incoming)))
	}
	return incoming, nil
}
