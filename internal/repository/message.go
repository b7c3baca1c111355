package repository

import (
	"context"

	"penpal/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	FetchUnreadAndMarkRead(ctx context.Context, recipientID uint) ([]models.Message, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
}

// messageRepository implements MessageRepository
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

// FetchUnreadAndMarkRead returns the recipient's unread messages, oldest
// first, with sender identities resolved, and marks the whole batch read
// in the same transaction before returning it. Reading is a side effect
// of listing; a second call with no new messages returns an empty slice.
// Two concurrent callers for the same user may both observe the same
// batch on backends without row locking; duplicate delivery is accepted.
func (r *messageRepository) FetchUnreadAndMarkRead(ctx context.Context, recipientID uint) ([]models.Message, error) {
	var messages []models.Message

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("recipient_id = ? AND status_check = ?", recipientID, false).
			Preload("Sender").
			Order("id ASC").
			Find(&messages).Error; err != nil {
			return err
		}
		if len(messages) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(messages))
		for i := range messages {
			ids = append(ids, messages[i].ID)
		}
		if err := tx.
			Model(&models.Message{}).
			Where("id IN ?", ids).
			Update("status_check", true).Error; err != nil {
			return err
		}

		for i := range messages {
			messages[i].Read = true
		}
		return nil
	})
	if err != nil {
		return nil, models.NewStorageError(err)
	}

	return messages, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ? AND status_check = ?", recipientID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewStorageError(err)
	}
	return count, nil
}
