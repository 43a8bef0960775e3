package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/excursions-app/backend/internal/domain"
)

// ExcursionRepo defines the persistence operations for Excursions, their
// trip links, and their participant lists.
type ExcursionRepo interface {
	// Create inserts a new excursion and returns the persisted record.
	Create(ctx context.Context, excursion domain.Excursion) (domain.Excursion, error)

	// GetByID retrieves an excursion with its trip and participant id lists.
	// Returns domain.ErrNotFound if no excursion with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Excursion, error)

	// ListForUser returns every excursion the user hosts or participates in,
	// newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Excursion, error)

	// Update overwrites name, description, and is_complete, returning the
	// updated record (with current list contents).
	// Returns domain.ErrNotFound if no excursion with that ID exists.
	Update(ctx context.Context, excursion domain.Excursion) (domain.Excursion, error)

	// Delete removes an excursion. Trip links and participant rows are
	// removed by ON DELETE CASCADE; trips themselves survive.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetTrips replaces the excursion's trip list with the given trips.
	// Returns domain.ErrConflict if any trip is already linked to a
	// different excursion.
	SetTrips(ctx context.Context, excursionID uuid.UUID, tripIDs []uuid.UUID) error

	// UnlinkTrip removes a trip from whichever excursion references it.
	// Unlinking a trip that is not linked anywhere is a no-op.
	UnlinkTrip(ctx context.Context, tripID uuid.UUID) error

	// AddParticipant adds a user to the participant list.
	// Idempotent — adding an existing participant is a no-op.
	AddParticipant(ctx context.Context, excursionID, userID uuid.UUID) error

	// RemoveParticipant removes a user from the participant list.
	// Removing a non-member is a no-op.
	RemoveParticipant(ctx context.Context, excursionID, userID uuid.UUID) error

	// RemoveAllParticipations removes a user from every participant list.
	RemoveAllParticipations(ctx context.Context, userID uuid.UUID) error

	// CountByHost returns how many excursions a user hosts.
	CountByHost(ctx context.Context, hostID uuid.UUID) (int64, error)
}

// pgExcursionRepo is the Postgres implementation of ExcursionRepo.
type pgExcursionRepo struct {
	db db
}

// NewExcursionRepo constructs an ExcursionRepo backed by the provided db connection.
func NewExcursionRepo(db db) ExcursionRepo {
	return &pgExcursionRepo{db: db}
}

const excursionColumns = `id, host_id, name, description, is_complete, created_at, updated_at`

func (r *pgExcursionRepo) Create(ctx context.Context, excursion domain.Excursion) (domain.Excursion, error) {
	const q = `
		INSERT INTO excursions (host_id, name, description, is_complete)
		VALUES (@host_id, @name, @description, @is_complete)
		RETURNING ` + excursionColumns

	args := pgx.NamedArgs{
		"host_id":     excursion.HostID,
		"name":        excursion.Name,
		"description": excursion.Description,
		"is_complete": excursion.IsComplete,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanExcursion(row)
	if err != nil {
		return domain.Excursion{}, fmt.Errorf("repo.ExcursionRepo.Create: %w", err)
	}
	result.TripIDs = []uuid.UUID{}
	result.ParticipantIDs = []uuid.UUID{}
	return result, nil
}

func (r *pgExcursionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Excursion, error) {
	const q = `SELECT ` + excursionColumns + ` FROM excursions WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanExcursion(row)
	if err != nil {
		return domain.Excursion{}, fmt.Errorf("repo.ExcursionRepo.GetByID: %w", err)
	}
	if err := r.loadLists(ctx, &result); err != nil {
		return domain.Excursion{}, fmt.Errorf("repo.ExcursionRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgExcursionRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Excursion, error) {
	const q = `
		SELECT ` + excursionColumns + `
		FROM excursions
		WHERE host_id = @user_id
		   OR id IN (SELECT excursion_id FROM excursion_participants WHERE user_id = @user_id)
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExcursionRepo.ListForUser: %w", err)
	}
	defer rows.Close()

	excursions := []domain.Excursion{}
	for rows.Next() {
		e, err := scanExcursion(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExcursionRepo.ListForUser: scan: %w", err)
		}
		excursions = append(excursions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExcursionRepo.ListForUser: rows: %w", err)
	}

	for i := range excursions {
		if err := r.loadLists(ctx, &excursions[i]); err != nil {
			return nil, fmt.Errorf("repo.ExcursionRepo.ListForUser: %w", err)
		}
	}
	return excursions, nil
}

func (r *pgExcursionRepo) Update(ctx context.Context, excursion domain.Excursion) (domain.Excursion, error) {
	const q = `
		UPDATE excursions
		SET name        = @name,
		    description = @description,
		    is_complete = @is_complete,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + excursionColumns

	args := pgx.NamedArgs{
		"id":          excursion.ID,
		"name":        excursion.Name,
		"description": excursion.Description,
		"is_complete": excursion.IsComplete,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanExcursion(row)
	if err != nil {
		return domain.Excursion{}, fmt.Errorf("repo.ExcursionRepo.Update: %w", err)
	}
	if err := r.loadLists(ctx, &result); err != nil {
		return domain.Excursion{}, fmt.Errorf("repo.ExcursionRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgExcursionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM excursions WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ExcursionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExcursionRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgExcursionRepo) SetTrips(ctx context.Context, excursionID uuid.UUID, tripIDs []uuid.UUID) error {
	const del = `DELETE FROM excursion_trips WHERE excursion_id = @excursion_id`
	if _, err := r.db.Exec(ctx, del, pgx.NamedArgs{"excursion_id": excursionID}); err != nil {
		return fmt.Errorf("repo.ExcursionRepo.SetTrips: %w", err)
	}

	const ins = `
		INSERT INTO excursion_trips (excursion_id, trip_id)
		VALUES (@excursion_id, @trip_id)
		ON CONFLICT (excursion_id, trip_id) DO NOTHING`
	for _, tripID := range tripIDs {
		args := pgx.NamedArgs{"excursion_id": excursionID, "trip_id": tripID}
		if _, err := r.db.Exec(ctx, ins, args); err != nil {
			if isUniqueViolation(err) {
				// trip_id UNIQUE: the trip is linked to another excursion.
				return fmt.Errorf("repo.ExcursionRepo.SetTrips: trip %s already linked: %w", tripID, domain.ErrConflict)
			}
			return fmt.Errorf("repo.ExcursionRepo.SetTrips: %w", err)
		}
	}
	return nil
}

func (r *pgExcursionRepo) UnlinkTrip(ctx context.Context, tripID uuid.UUID) error {
	const q = `DELETE FROM excursion_trips WHERE trip_id = @trip_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return fmt.Errorf("repo.ExcursionRepo.UnlinkTrip: %w", err)
	}
	return nil
}

func (r *pgExcursionRepo) AddParticipant(ctx context.Context, excursionID, userID uuid.UUID) error {
	const q = `
		INSERT INTO excursion_participants (excursion_id, user_id)
		VALUES (@excursion_id, @user_id)
		ON CONFLICT (excursion_id, user_id) DO NOTHING`

	args := pgx.NamedArgs{"excursion_id": excursionID, "user_id": userID}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.ExcursionRepo.AddParticipant: %w", err)
	}
	return nil
}

func (r *pgExcursionRepo) RemoveParticipant(ctx context.Context, excursionID, userID uuid.UUID) error {
	const q = `
		DELETE FROM excursion_participants
		WHERE excursion_id = @excursion_id AND user_id = @user_id`

	args := pgx.NamedArgs{"excursion_id": excursionID, "user_id": userID}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.ExcursionRepo.RemoveParticipant: %w", err)
	}
	return nil
}

func (r *pgExcursionRepo) RemoveAllParticipations(ctx context.Context, userID uuid.UUID) error {
	const q = `DELETE FROM excursion_participants WHERE user_id = @user_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID}); err != nil {
		return fmt.Errorf("repo.ExcursionRepo.RemoveAllParticipations: %w", err)
	}
	return nil
}

func (r *pgExcursionRepo) CountByHost(ctx context.Context, hostID uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM excursions WHERE host_id = @host_id`

	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"host_id": hostID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.ExcursionRepo.CountByHost: %w", err)
	}
	return n, nil
}

// loadLists populates the trip and participant id lists of an excursion.
func (r *pgExcursionRepo) loadLists(ctx context.Context, e *domain.Excursion) error {
	const tripsQ = `
		SELECT trip_id FROM excursion_trips
		WHERE excursion_id = @excursion_id
		ORDER BY trip_id`
	rows, err := r.db.Query(ctx, tripsQ, pgx.NamedArgs{"excursion_id": e.ID})
	if err != nil {
		return err
	}
	tripIDs, err := scanUUIDs(rows)
	rows.Close()
	if err != nil {
		return err
	}
	e.TripIDs = tripIDs

	const participantsQ = `
		SELECT user_id FROM excursion_participants
		WHERE excursion_id = @excursion_id
		ORDER BY user_id`
	rows, err = r.db.Query(ctx, participantsQ, pgx.NamedArgs{"excursion_id": e.ID})
	if err != nil {
		return err
	}
	participantIDs, err := scanUUIDs(rows)
	rows.Close()
	if err != nil {
		return err
	}
	e.ParticipantIDs = participantIDs
	return nil
}

// scanExcursion maps a single excursions row into a domain.Excursion.
// List fields are filled separately by loadLists.
func scanExcursion(s scanner) (domain.Excursion, error) {
	var (
		e      domain.Excursion
		id     pgtype.UUID
		hostID pgtype.UUID
	)
	err := s.Scan(&id, &hostID, &e.Name, &e.Description, &e.IsComplete, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Excursion{}, domain.ErrNotFound
		}
		return domain.Excursion{}, err
	}
	e.ID = uuid.UUID(id.Bytes)
	e.HostID = uuid.UUID(hostID.Bytes)
	return e, nil
}
