package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
// Only the host of a trip may update or delete it.
type TripService struct {
	trips repo.TripRepo
	tx    repo.TxManager
}

// NewTripService constructs a TripService backed by the provided repo and
// transaction manager.
func NewTripService(trips repo.TripRepo, tx repo.TxManager) *TripService {
	return &TripService{trips: trips, tx: tx}
}

// Create validates and persists a new trip for the host.
// Returns domain.ErrValidation if the park descriptor or date pair violate
// the business rules.
func (s *TripService) Create(ctx context.Context, hostID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	trip.HostID = hostID
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Any authenticated user may read a trip; only mutation is host-gated.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListForHost returns all trips hosted by the user.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListForHost(ctx context.Context, hostID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.trips.ListByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListForHost: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update applies a typed partial update to a trip.
// Returns domain.ErrForbidden unless actorID is the host, domain.ErrValidation
// for an empty patch or if the merged result violates the trip rules.
func (s *TripService) Update(ctx context.Context, tripID, actorID uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	if patch.Empty() {
		return domain.Trip{}, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if trip.HostID != actorID {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrForbidden)
	}

	if patch.Name != nil {
		trip.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		trip.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Park != nil {
		trip.Park = *patch.Park
	}
	if patch.Campground != nil {
		trip.Campground = *patch.Campground
	}
	if patch.StartDate != nil {
		trip.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		trip.EndDate = *patch.EndDate
	}
	if patch.Activities != nil {
		trip.Activities = *patch.Activities
	}

	// The merged trip must still satisfy every creation rule, so a patch
	// cannot sneak in an inverted date pair or a bad park code.
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip. Returns domain.ErrForbidden unless actorID is the
// host. The trip is unlinked from any excursion that references it in the
// same transaction, so no excursion is left pointing at a deleted trip.
func (s *TripService) Delete(ctx context.Context, tripID, actorID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if trip.HostID != actorID {
		return fmt.Errorf("service.TripService.Delete: %w", domain.ErrForbidden)
	}

	err = s.tx.WithinTx(ctx, func(r repo.Repos) error {
		if err := r.Excursions.UnlinkTrip(ctx, tripID); err != nil {
			return err
		}
		return r.Trips.Delete(ctx, tripID)
	})
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces the rules common to Create and Update:
//   - park name must be non-empty
//   - park code must be 4–10 characters
//   - both dates must be set, with start no later than end
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Park.Name) == "" {
		return fmt.Errorf("%w: park name is required", domain.ErrValidation)
	}
	if n := len(strings.TrimSpace(trip.Park.Code)); n < 4 || n > 10 {
		return fmt.Errorf("%w: park code must be 4 to 10 characters", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return nil
}
