package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/repo"
)

// ExcursionService implements business logic for Excursion operations:
// creation with host-owned trip linking, host-only mutation, participant
// maintenance, and the one-way open→complete transition.
type ExcursionService struct {
	excursions repo.ExcursionRepo
	trips      repo.TripRepo
	tx         repo.TxManager
}

// NewExcursionService constructs an ExcursionService backed by the provided
// repos and transaction manager.
func NewExcursionService(excursions repo.ExcursionRepo, trips repo.TripRepo, tx repo.TxManager) *ExcursionService {
	return &ExcursionService{excursions: excursions, trips: trips, tx: tx}
}

// Create validates and persists a new excursion for the host, linking the
// given trips. Every trip must exist and be hosted by the same user;
// domain.ErrValidation names the first offender otherwise.
func (s *ExcursionService) Create(ctx context.Context, hostID uuid.UUID, name, description string, tripIDs []uuid.UUID) (domain.Excursion, error) {
	if err := validateExcursionFields(name, description); err != nil {
		return domain.Excursion{}, err
	}
	if err := s.checkTripsOwned(ctx, hostID, tripIDs); err != nil {
		return domain.Excursion{}, err
	}

	var result domain.Excursion
	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		created, err := r.Excursions.Create(ctx, domain.Excursion{
			HostID:      hostID,
			Name:        strings.TrimSpace(name),
			Description: strings.TrimSpace(description),
		})
		if err != nil {
			return err
		}
		if err := r.Excursions.SetTrips(ctx, created.ID, tripIDs); err != nil {
			return err
		}
		created.TripIDs = tripIDs
		if created.TripIDs == nil {
			created.TripIDs = []uuid.UUID{}
		}
		result = created
		return nil
	})
	if err != nil {
		return domain.Excursion{}, fmt.Errorf("service.ExcursionService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns an excursion visible to the actor.
// Returns domain.ErrNotFound if absent, domain.ErrForbidden if the actor is
// neither the host nor a participant.
func (s *ExcursionService) GetByID(ctx context.Context, excursionID, actorID uuid.UUID) (domain.Excursion, error) {
	excursion, err := s.excursions.GetByID(ctx, excursionID)
	if err != nil {
		return domain.Excursion{}, fmt.Errorf("service.ExcursionService.GetByID: %w", err)
	}
	if excursion.HostID != actorID && !excursion.HasParticipant(actorID) {
		return domain.Excursion{}, fmt.Errorf("service.ExcursionService.GetByID: %w", domain.ErrForbidden)
	}
	return excursion, nil
}

// ListForUser returns every excursion the user hosts or participates in.
// Zero results is a valid outcome: the slice is empty, never nil, and no
// error is returned.
func (s *ExcursionService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Excursion, error) {
	excursions, err := s.excursions.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ExcursionService.ListForUser: %w", err)
	}
	if excursions == nil {
		return []domain.Excursion{}, nil
	}
	return excursions, nil
}

// Update applies a typed partial update to an excursion.
// Host only. An empty patch is domain.ErrValidation. IsComplete may only
// move from false to true. A replaced trip list is revalidated for host
// ownership; a replaced participant list may only shrink (participants join
// through invites, never through a patch) and never contains the host.
func (s *ExcursionService) Update(ctx context.Context, excursionID, actorID uuid.UUID, patch domain.ExcursionPatch) (domain.Excursion, error) {
	if patch.Empty() {
		return domain.Excursion{}, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}

	excursion, err := s.excursions.GetByID(ctx, excursionID)
	if err != nil {
		return domain.Excursion{}, fmt.Errorf("service.ExcursionService.Update: %w", err)
	}
	if excursion.HostID != actorID {
		return domain.Excursion{}, fmt.Errorf("service.ExcursionService.Update: %w", domain.ErrForbidden)
	}

	if patch.Name != nil {
		excursion.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		excursion.Description = strings.TrimSpace(*patch.Description)
	}
	if err := validateExcursionFields(excursion.Name, excursion.Description); err != nil {
		return domain.Excursion{}, err
	}

	if patch.IsComplete != nil {
		if excursion.IsComplete && !*patch.IsComplete {
			return domain.Excursion{}, fmt.Errorf("%w: a completed excursion cannot be reopened", domain.ErrValidation)
		}
		excursion.IsComplete = *patch.IsComplete
	}

	if patch.TripIDs != nil {
		if err := s.checkTripsOwned(ctx, excursion.HostID, *patch.TripIDs); err != nil {
			return domain.Excursion{}, err
		}
	}

	var removedParticipants []uuid.UUID
	if patch.ParticipantIDs != nil {
		removedParticipants, err = participantRemovals(excursion, *patch.ParticipantIDs)
		if err != nil {
			return domain.Excursion{}, err
		}
	}

	var result domain.Excursion
	err = s.tx.WithinTx(ctx, func(r repo.Repos) error {
		if patch.TripIDs != nil {
			if err := r.Excursions.SetTrips(ctx, excursionID, *patch.TripIDs); err != nil {
				return err
			}
		}
		for _, userID := range removedParticipants {
			if err := r.Excursions.RemoveParticipant(ctx, excursionID, userID); err != nil {
				return err
			}
		}
		updated, err := r.Excursions.Update(ctx, excursion)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return domain.Excursion{}, fmt.Errorf("service.ExcursionService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an excursion. Host only. Participant rows and trip links
// go with it; the trips themselves survive, merely unlinked.
func (s *ExcursionService) Delete(ctx context.Context, excursionID, actorID uuid.UUID) error {
	excursion, err := s.excursions.GetByID(ctx, excursionID)
	if err != nil {
		return fmt.Errorf("service.ExcursionService.Delete: %w", err)
	}
	if excursion.HostID != actorID {
		return fmt.Errorf("service.ExcursionService.Delete: %w", domain.ErrForbidden)
	}

	if err := s.excursions.Delete(ctx, excursionID); err != nil {
		return fmt.Errorf("service.ExcursionService.Delete: %w", err)
	}
	return nil
}

// Leave removes the actor from the participant list of an excursion they
// were invited to. The host cannot leave their own excursion.
func (s *ExcursionService) Leave(ctx context.Context, excursionID, userID uuid.UUID) error {
	excursion, err := s.excursions.GetByID(ctx, excursionID)
	if err != nil {
		return fmt.Errorf("service.ExcursionService.Leave: %w", err)
	}
	if excursion.HostID == userID {
		return fmt.Errorf("service.ExcursionService.Leave: host cannot leave: %w", domain.ErrForbidden)
	}
	if !excursion.HasParticipant(userID) {
		return fmt.Errorf("service.ExcursionService.Leave: %w", domain.ErrNotFound)
	}

	if err := s.excursions.RemoveParticipant(ctx, excursionID, userID); err != nil {
		return fmt.Errorf("service.ExcursionService.Leave: %w", err)
	}
	return nil
}

// RemoveParticipant lets the host eject a participant.
// Returns domain.ErrForbidden unless actorID is the host,
// domain.ErrNotFound if the user is not a participant.
func (s *ExcursionService) RemoveParticipant(ctx context.Context, excursionID, actorID, participantID uuid.UUID) error {
	excursion, err := s.excursions.GetByID(ctx, excursionID)
	if err != nil {
		return fmt.Errorf("service.ExcursionService.RemoveParticipant: %w", err)
	}
	if excursion.HostID != actorID {
		return fmt.Errorf("service.ExcursionService.RemoveParticipant: %w", domain.ErrForbidden)
	}
	if !excursion.HasParticipant(participantID) {
		return fmt.Errorf("service.ExcursionService.RemoveParticipant: %w", domain.ErrNotFound)
	}

	if err := s.excursions.RemoveParticipant(ctx, excursionID, participantID); err != nil {
		return fmt.Errorf("service.ExcursionService.RemoveParticipant: %w", err)
	}
	return nil
}

// checkTripsOwned verifies every trip exists and is hosted by hostID.
func (s *ExcursionService) checkTripsOwned(ctx context.Context, hostID uuid.UUID, tripIDs []uuid.UUID) error {
	for _, tripID := range tripIDs {
		trip, err := s.trips.GetByID(ctx, tripID)
		if err != nil {
			return fmt.Errorf("%w: trip %s not found", domain.ErrValidation, tripID)
		}
		if trip.HostID != hostID {
			return fmt.Errorf("%w: trip %s is not hosted by you", domain.ErrValidation, tripID)
		}
	}
	return nil
}

// participantRemovals diffs the current participant list against the
// patched one. Additions are rejected — membership is only granted through
// an accepted invite — and the host may never appear in the list.
func participantRemovals(excursion domain.Excursion, patched []uuid.UUID) ([]uuid.UUID, error) {
	keep := make(map[uuid.UUID]bool, len(patched))
	for _, id := range patched {
		if id == excursion.HostID {
			return nil, fmt.Errorf("%w: host cannot be a participant", domain.ErrValidation)
		}
		if !excursion.HasParticipant(id) {
			return nil, fmt.Errorf("%w: participants can only be added via invite", domain.ErrValidation)
		}
		keep[id] = true
	}

	removed := []uuid.UUID{}
	for _, id := range excursion.ParticipantIDs {
		if !keep[id] {
			removed = append(removed, id)
		}
	}
	return removed, nil
}

// validateExcursionFields enforces the name and description length rules.
func validateExcursionFields(name, description string) error {
	if n := len(strings.TrimSpace(name)); n < 1 || n > 64 {
		return fmt.Errorf("%w: name must be 1 to 64 characters", domain.ErrValidation)
	}
	if n := len(strings.TrimSpace(description)); n < 1 || n > 255 {
		return fmt.Errorf("%w: description must be 1 to 255 characters", domain.ErrValidation)
	}
	return nil
}
