package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a single planned visit to a national park, owned by one host.
// ExcursionID is nil while the trip is not part of any excursion.
type Trip struct {
	ID          uuid.UUID
	HostID      uuid.UUID
	ExcursionID *uuid.UUID
	Name        string
	Description string
	Park        Park
	Campground  Campground
	StartDate   time.Time
	EndDate     time.Time
	Activities  []Activity
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Park identifies a national park by display name and NPS park code
// (4 to 10 characters, e.g. "GRCA").
type Park struct {
	Name string
	Code string
}

// Campground references a campground record from the upstream park service.
// Both fields are empty when no campground has been chosen.
type Campground struct {
	ID   string
	Name string
}

// Activity is a "thing to do" reference sourced from the upstream park
// service. Only the upstream id and title are stored.
type Activity struct {
	ID    string
	Title string
}

// TripPatch is a typed partial update for a trip.
// Nil fields are left untouched.
type TripPatch struct {
	Name        *string
	Description *string
	Park        *Park
	Campground  *Campground
	StartDate   *time.Time
	EndDate     *time.Time
	Activities  *[]Activity
}

// Empty reports whether the patch would change nothing.
func (p TripPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Park == nil &&
		p.Campground == nil && p.StartDate == nil && p.EndDate == nil &&
		p.Activities == nil
}
