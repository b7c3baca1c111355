package repository

import (
	"context"
	"errors"

	"penpal/internal/models"

	"gorm.io/gorm"
)

// FriendLinkRepository defines the interface for friend-link data operations
type FriendLinkRepository interface {
	Create(ctx context.Context, link *models.FriendLink) error
	GetByID(ctx context.Context, id uint) (*models.FriendLink, error)
	GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendLink, error)
	GetIncoming(ctx context.Context, userID uint) ([]models.FriendLink, error)
	GetConfirmed(ctx context.Context, userID uint) ([]models.FriendLink, error)
	Confirm(ctx context.Context, linkID uint) error
	Delete(ctx context.Context, linkID uint) error
	AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error)
}

// friendLinkRepository implements FriendLinkRepository
type friendLinkRepository struct {
	db *gorm.DB
}

// NewFriendLinkRepository creates a new friend-link repository
func NewFriendLinkRepository(db *gorm.DB) FriendLinkRepository {
	return &friendLinkRepository{db: db}
}

// Create inserts a new link. A uniqueness violation means another request
// for the pair won the race; that is a duplicate request to the caller,
// not a storage failure.
func (r *friendLinkRepository) Create(ctx context.Context, link *models.FriendLink) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewDuplicateRequestError()
		}
		return models.NewStorageError(err)
	}
	return nil
}

func (r *friendLinkRepository) GetByID(ctx context.Context, id uint) (*models.FriendLink, error) {
	var link models.FriendLink
	if err := r.db.WithContext(ctx).Preload("Sender").Preload("Recipient").First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request", id)
		}
		return nil, models.NewStorageError(err)
	}
	return &link, nil
}

// GetBetweenUsers finds a link between two users in either direction and
// any status. Returns (nil, nil) when no link exists.
func (r *friendLinkRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.FriendLink, error) {
	var link models.FriendLink
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStorageError(err)
	}
	return &link, nil
}

// GetIncoming returns pending requests addressed to the user, oldest first,
// with sender identities resolved.
func (r *friendLinkRepository) GetIncoming(ctx context.Context, userID uint) ([]models.FriendLink, error) {
	var links []models.FriendLink
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", userID, false).
		Preload("Sender").
		Order("id ASC").
		Find(&links).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return links, nil
}

// GetConfirmed returns confirmed links touching the user in either
// direction, ordered by link id, with both parties resolved.
func (r *friendLinkRepository) GetConfirmed(ctx context.Context, userID uint) ([]models.FriendLink, error) {
	var links []models.FriendLink
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? OR recipient_id = ?) AND status = ?", userID, userID, true).
		Preload("Sender").
		Preload("Recipient").
		Order("id ASC").
		Find(&links).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return links, nil
}

func (r *friendLinkRepository) Confirm(ctx context.Context, linkID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.FriendLink{}).
		Where("id = ?", linkID).
		Update("status", true).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *friendLinkRepository) Delete(ctx context.Context, linkID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.FriendLink{}, linkID).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

// AreFriends checks for a confirmed link in either direction with a direct
// query. Authorization checks go through here and never through the cached
// friend list: listings may be stale, authorization may not.
func (r *friendLinkRepository) AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FriendLink{}).
		Where("((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)) AND status = ?",
			userID1, userID2, userID2, userID1, true).
		Count(&count).Error; err != nil {
		return false, models.NewStorageError(err)
	}
	return count > 0, nil
}
