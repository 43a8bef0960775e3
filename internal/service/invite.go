package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/repo"
)

// InviteService implements the excursion-share invite state machine.
// Identical lifecycle to friend requests, but acceptance additionally adds
// the receiver to the excursion's participant list — inside the same
// transaction that deletes the invite, so the membership change and the
// queue removal apply together or not at all.
type InviteService struct {
	users      repo.UserRepo
	excursions repo.ExcursionRepo
	invites    repo.ExcursionInviteRepo
	tx         repo.TxManager
}

// NewInviteService constructs an InviteService backed by the provided repos
// and transaction manager.
func NewInviteService(users repo.UserRepo, excursions repo.ExcursionRepo, invites repo.ExcursionInviteRepo, tx repo.TxManager) *InviteService {
	return &InviteService{users: users, excursions: excursions, invites: invites, tx: tx}
}

// Send creates a pending invite to an excursion.
// Only the excursion's host may invite. Returns domain.ErrValidation if the
// receiver does not exist or is the sender, domain.ErrConflict if the
// receiver is already a participant or already invited.
func (s *InviteService) Send(ctx context.Context, senderID, receiverID, excursionID uuid.UUID) (domain.ExcursionInvite, error) {
	excursion, err := s.excursions.GetByID(ctx, excursionID)
	if err != nil {
		return domain.ExcursionInvite{}, fmt.Errorf("service.InviteService.Send: %w", err)
	}
	if excursion.HostID != senderID {
		return domain.ExcursionInvite{}, fmt.Errorf("service.InviteService.Send: %w", domain.ErrForbidden)
	}
	if receiverID == senderID {
		return domain.ExcursionInvite{}, fmt.Errorf("%w: cannot invite yourself", domain.ErrValidation)
	}
	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		return domain.ExcursionInvite{}, fmt.Errorf("%w: receiver not found", domain.ErrValidation)
	}
	if excursion.HasParticipant(receiverID) {
		return domain.ExcursionInvite{}, fmt.Errorf("%w: already a participant", domain.ErrConflict)
	}

	invite, err := s.invites.Create(ctx, senderID, receiverID, excursionID)
	if err != nil {
		return domain.ExcursionInvite{}, fmt.Errorf("service.InviteService.Send: %w", err)
	}
	return invite, nil
}

// ListForUser returns the user's pending invites split into incoming and
// outgoing. Both slices are non-nil.
func (s *InviteService) ListForUser(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.ExcursionInvite], error) {
	mailbox, err := s.invites.ListForUser(ctx, userID)
	if err != nil {
		return mailbox, fmt.Errorf("service.InviteService.ListForUser: %w", err)
	}
	return mailbox, nil
}

// Resolve accepts or declines a pending invite. Receiver only.
// On accept the receiver joins the excursion's participant list; either way
// the invite record is deleted in the same transaction. Resolving an
// already-resolved invite yields domain.ErrNotFound.
func (s *InviteService) Resolve(ctx context.Context, inviteID, actorID uuid.UUID, accept bool) error {
	invite, err := s.invites.GetByID(ctx, inviteID)
	if err != nil {
		return fmt.Errorf("service.InviteService.Resolve: %w", err)
	}
	if invite.ReceiverID != actorID {
		return fmt.Errorf("service.InviteService.Resolve: %w", domain.ErrForbidden)
	}

	err = s.tx.WithinTx(ctx, func(r repo.Repos) error {
		if accept {
			if err := r.Excursions.AddParticipant(ctx, invite.ExcursionID, invite.ReceiverID); err != nil {
				return err
			}
		}
		return r.ExcursionInvites.Delete(ctx, inviteID)
	})
	if err != nil {
		return fmt.Errorf("service.InviteService.Resolve: %w", err)
	}
	return nil
}

// Withdraw deletes a pending invite before resolution. Sender only.
func (s *InviteService) Withdraw(ctx context.Context, inviteID, actorID uuid.UUID) error {
	invite, err := s.invites.GetByID(ctx, inviteID)
	if err != nil {
		return fmt.Errorf("service.InviteService.Withdraw: %w", err)
	}
	if invite.SenderID != actorID {
		return fmt.Errorf("service.InviteService.Withdraw: %w", domain.ErrForbidden)
	}

	if err := s.invites.Delete(ctx, inviteID); err != nil {
		return fmt.Errorf("service.InviteService.Withdraw: %w", err)
	}
	return nil
}
