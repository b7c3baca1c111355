// Package service provides the application's business logic: the social
// graph (friend requests and friendships) and message delivery.
package service

import (
	"context"

	"penpal/internal/cache"
	"penpal/internal/models"
	"penpal/internal/observability"
	"penpal/internal/repository"
)

// FriendService owns the friend-link lifecycle: request creation,
// duplicate detection, accept/decline transitions, and confirmed-friend
// enumeration.
type FriendService struct {
	friendRepo repository.FriendLinkRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendLinkRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendRequest creates a pending friend request from senderID to the user
// named recipientName. Any existing link between the pair, in either
// direction and any status, makes the request a duplicate: "already
// friends" and "already pending" are not distinguished.
func (s *FriendService) SendRequest(ctx context.Context, senderID uint, recipientName string) (*models.FriendLink, error) {
	recipient, err := s.userRepo.GetByUsername(ctx, recipientName)
	if err != nil {
		return nil, err
	}

	if recipient.ID == senderID {
		return nil, models.NewSelfRequestError()
	}

	existing, err := s.friendRepo.GetBetweenUsers(ctx, senderID, recipient.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.FriendRequestsTotal.WithLabelValues("duplicate").Inc()
		return nil, models.NewDuplicateRequestError()
	}

	link := &models.FriendLink{
		SenderID:    senderID,
		RecipientID: recipient.ID,
	}
	// A concurrent request for the same pair can slip between the check
	// and the insert; the repository reports the constraint violation as
	// DuplicateRequest, so the race loser gets the same answer as the
	// check above. The new pending request does not touch the friend-list
	// cache: pending links never appear in confirmed-friend results.
	if err := s.friendRepo.Create(ctx, link); err != nil {
		return nil, err
	}

	observability.FriendRequestsTotal.WithLabelValues("sent").Inc()
	return s.friendRepo.GetByID(ctx, link.ID)
}

// IncomingRequests returns pending requests addressed to the user, oldest
// first, with sender identities attached.
func (s *FriendService) IncomingRequests(ctx context.Context, userID uint) ([]models.FriendLink, error) {
	return s.friendRepo.GetIncoming(ctx, userID)
}

// RespondToRequest accepts or declines a pending request. Only the
// recipient may act on a request; a request that is absent or addressed
// to someone else reports NotFound either way, so the caller cannot
// probe for other users' requests. Accepting persists status=true;
// declining deletes the row, which frees the pair for a later request.
func (s *FriendService) RespondToRequest(ctx context.Context, userID, requestID uint, accept bool) error {
	link, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if link.RecipientID != userID {
		return models.NewNotFoundError("Friend request", requestID)
	}

	if accept {
		if err := s.friendRepo.Confirm(ctx, requestID); err != nil {
			return err
		}
		observability.FriendRequestsTotal.WithLabelValues("accepted").Inc()
		return nil
	}

	if err := s.friendRepo.Delete(ctx, requestID); err != nil {
		return err
	}
	observability.FriendRequestsTotal.WithLabelValues("declined").Inc()
	return nil
}

// Friends returns the user's confirmed friends: the union of links where
// the user is sender and links where the user is recipient, ordered by
// link id. Results are served through the TTL cache keyed by (user,
// signature); acceptance does not invalidate the cache, so a listing may
// lag the persisted state by up to cache.FriendListTTL. Authorization
// checks never read this path (see MessageService.IsFriend).
func (s *FriendService) Friends(ctx context.Context, userID uint, signature string) ([]models.User, error) {
	var friends []models.User
	key := cache.FriendListKey(userID, signature)

	err := cache.Aside(ctx, key, &friends, cache.FriendListTTL, func() error {
		links, err := s.friendRepo.GetConfirmed(ctx, userID)
		if err != nil {
			return err
		}
		friends = make([]models.User, 0, len(links))
		for i := range links {
			friends = append(friends, links[i].OtherParty(userID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return friends, nil
}
