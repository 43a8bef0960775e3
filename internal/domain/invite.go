package domain

import (
	"time"

	"github.com/google/uuid"
)

// FriendRequest is a transient proposal from one user to another.
// It exists only while pending: resolving (accept or decline) or withdrawing
// deletes the record. On accept both users gain each other as friends.
type FriendRequest struct {
	ID         uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	CreatedAt  time.Time
}

// ExcursionInvite is a transient proposal to join an excursion as a
// participant. Same lifecycle as FriendRequest; on accept the receiver is
// added to the excursion's participant list.
type ExcursionInvite struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	ReceiverID  uuid.UUID
	ExcursionID uuid.UUID
	CreatedAt   time.Time
}

// Mailbox groups pending requests or invites by direction relative to one
// user: incoming is addressed to the user, outgoing was sent by the user.
type Mailbox[T any] struct {
	Incoming []T
	Outgoing []T
}
