package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/repo"
)

// FriendService implements the friend-request state machine and friend-list
// maintenance. A request is pending → accepted|declined, terminal either
// way, and the record is deleted on resolution: requests are a live queue,
// not an audit log.
type FriendService struct {
	users       repo.UserRepo
	requests    repo.FriendRequestRepo
	friendships repo.FriendshipRepo
	tx          repo.TxManager
}

// NewFriendService constructs a FriendService backed by the provided repos
// and transaction manager.
func NewFriendService(users repo.UserRepo, requests repo.FriendRequestRepo, friendships repo.FriendshipRepo, tx repo.TxManager) *FriendService {
	return &FriendService{users: users, requests: requests, friendships: friendships, tx: tx}
}

// SendRequest creates a pending friend request.
// Returns domain.ErrValidation if the receiver does not exist or is the
// sender, domain.ErrConflict if the two are already friends or a request is
// already pending in either direction.
func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID uuid.UUID) (domain.FriendRequest, error) {
	if senderID == receiverID {
		return domain.FriendRequest{}, fmt.Errorf("%w: cannot befriend yourself", domain.ErrValidation)
	}
	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		return domain.FriendRequest{}, fmt.Errorf("%w: receiver not found", domain.ErrValidation)
	}

	friends, err := s.friendships.Exists(ctx, senderID, receiverID)
	if err != nil {
		return domain.FriendRequest{}, fmt.Errorf("service.FriendService.SendRequest: %w", err)
	}
	if friends {
		return domain.FriendRequest{}, fmt.Errorf("%w: already friends", domain.ErrConflict)
	}

	pending, err := s.requests.ExistsBetween(ctx, senderID, receiverID)
	if err != nil {
		return domain.FriendRequest{}, fmt.Errorf("service.FriendService.SendRequest: %w", err)
	}
	if pending {
		return domain.FriendRequest{}, fmt.Errorf("%w: a request is already pending", domain.ErrConflict)
	}

	request, err := s.requests.Create(ctx, senderID, receiverID)
	if err != nil {
		return domain.FriendRequest{}, fmt.Errorf("service.FriendService.SendRequest: %w", err)
	}
	return request, nil
}

// ListRequests returns the user's pending requests split into incoming and
// outgoing. Both slices are non-nil.
func (s *FriendService) ListRequests(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.FriendRequest], error) {
	mailbox, err := s.requests.ListForUser(ctx, userID)
	if err != nil {
		return mailbox, fmt.Errorf("service.FriendService.ListRequests: %w", err)
	}
	return mailbox, nil
}

// ResolveRequest accepts or declines a pending request. Receiver only.
// On accept both users become friends; either way the request record is
// deleted in the same transaction, so resolving twice yields
// domain.ErrNotFound the second time.
func (s *FriendService) ResolveRequest(ctx context.Context, requestID, actorID uuid.UUID, accept bool) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("service.FriendService.ResolveRequest: %w", err)
	}
	if request.ReceiverID != actorID {
		return fmt.Errorf("service.FriendService.ResolveRequest: %w", domain.ErrForbidden)
	}

	err = s.tx.WithinTx(ctx, func(r repo.Repos) error {
		if accept {
			if err := r.Friendships.Add(ctx, request.SenderID, request.ReceiverID); err != nil {
				return err
			}
		}
		return r.FriendRequests.Delete(ctx, requestID)
	})
	if err != nil {
		return fmt.Errorf("service.FriendService.ResolveRequest: %w", err)
	}
	return nil
}

// WithdrawRequest deletes a pending request before resolution. Sender only.
func (s *FriendService) WithdrawRequest(ctx context.Context, requestID, actorID uuid.UUID) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("service.FriendService.WithdrawRequest: %w", err)
	}
	if request.SenderID != actorID {
		return fmt.Errorf("service.FriendService.WithdrawRequest: %w", domain.ErrForbidden)
	}

	if err := s.requests.Delete(ctx, requestID); err != nil {
		return fmt.Errorf("service.FriendService.WithdrawRequest: %w", err)
	}
	return nil
}

// ListFriends returns the user's friends.
// Always returns a non-nil slice so callers can safely range over it.
func (s *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.User, error) {
	friends, err := s.friendships.ListFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.FriendService.ListFriends: %w", err)
	}
	if friends == nil {
		return []domain.User{}, nil
	}
	return friends, nil
}

// RemoveFriend deletes both directions of a friendship.
// Returns domain.ErrValidation if the two users are not currently friends.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	friends, err := s.friendships.Exists(ctx, userID, friendID)
	if err != nil {
		return fmt.Errorf("service.FriendService.RemoveFriend: %w", err)
	}
	if !friends {
		return fmt.Errorf("%w: not in your friends list", domain.ErrValidation)
	}

	if err := s.friendships.Remove(ctx, userID, friendID); err != nil {
		return fmt.Errorf("service.FriendService.RemoveFriend: %w", err)
	}
	return nil
}
