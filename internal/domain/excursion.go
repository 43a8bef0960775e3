package domain

import (
	"time"

	"github.com/google/uuid"
)

// Excursion is a host-owned, shareable collection of trips.
// The host never appears in ParticipantIDs.
type Excursion struct {
	ID             uuid.UUID
	HostID         uuid.UUID
	Name           string
	Description    string
	IsComplete     bool
	TripIDs        []uuid.UUID
	ParticipantIDs []uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasParticipant reports whether userID is in the participant list.
func (e Excursion) HasParticipant(userID uuid.UUID) bool {
	for _, id := range e.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ExcursionPatch is a typed partial update for an excursion.
// Nil fields are left untouched. IsComplete may only transition false→true;
// the service rejects attempts to reopen a completed excursion.
type ExcursionPatch struct {
	Name           *string
	Description    *string
	TripIDs        *[]uuid.UUID
	ParticipantIDs *[]uuid.UUID
	IsComplete     *bool
}

// Empty reports whether the patch would change nothing.
func (p ExcursionPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.TripIDs == nil &&
		p.ParticipantIDs == nil && p.IsComplete == nil
}
