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

// TripRepo defines the persistence operations for Trips and their
// activity references.
type TripRepo interface {
	// Create inserts a new trip and its activity rows, returning the
	// persisted record with DB-generated fields populated.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip with its activities and excursion
	// link. Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByHost returns all trips hosted by a user, newest start date first.
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip, replaces
	// its activity rows, and returns the updated record.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Activity rows and excursion links are
	// removed by ON DELETE CASCADE. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByHost returns how many trips a user hosts.
	CountByHost(ctx context.Context, hostID uuid.UUID) (int64, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, host_id, name, description, park_name, park_code,
	campground_id, campground_name, start_date, end_date, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (host_id, name, description, park_name, park_code,
		                   campground_id, campground_name, start_date, end_date)
		VALUES (@host_id, @name, @description, @park_name, @park_code,
		        @campground_id, @campground_name, @start_date, @end_date)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"host_id":         trip.HostID,
		"name":            trip.Name,
		"description":     trip.Description,
		"park_name":       trip.Park.Name,
		"park_code":       trip.Park.Code,
		"campground_id":   trip.Campground.ID,
		"campground_name": trip.Campground.Name,
		"start_date":      trip.StartDate,
		"end_date":        trip.EndDate,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	if err := r.replaceActivities(ctx, result.ID, trip.Activities); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	result.Activities = normalizeActivities(trip.Activities)
	return result, nil
}

// linkedTripQuery selects trips together with their excursion link.
// excursion_trips.trip_id is UNIQUE, so the LEFT JOIN never fans out.
const linkedTripQuery = `
	SELECT t.id, t.host_id, t.name, t.description, t.park_name, t.park_code,
	       t.campground_id, t.campground_name, t.start_date, t.end_date,
	       t.created_at, t.updated_at, et.excursion_id
	FROM trips t
	LEFT JOIN excursion_trips et ON et.trip_id = t.id`

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = linkedTripQuery + ` WHERE t.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	t, err := scanLinkedTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}

	activities, err := r.listActivities(ctx, t.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	t.Activities = activities
	return t, nil
}

func (r *pgTripRepo) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Trip, error) {
	const q = linkedTripQuery + `
		WHERE t.host_id = @host_id
		ORDER BY t.start_date DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"host_id": hostID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByHost: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanLinkedTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByHost: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByHost: rows: %w", err)
	}

	for i := range trips {
		activities, err := r.listActivities(ctx, trips[i].ID)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByHost: %w", err)
		}
		trips[i].Activities = activities
	}
	return trips, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name            = @name,
		    description     = @description,
		    park_name       = @park_name,
		    park_code       = @park_code,
		    campground_id   = @campground_id,
		    campground_name = @campground_name,
		    start_date      = @start_date,
		    end_date        = @end_date,
		    updated_at      = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":              trip.ID,
		"name":            trip.Name,
		"description":     trip.Description,
		"park_name":       trip.Park.Name,
		"park_code":       trip.Park.Code,
		"campground_id":   trip.Campground.ID,
		"campground_name": trip.Campground.Name,
		"start_date":      trip.StartDate,
		"end_date":        trip.EndDate,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}

	if err := r.replaceActivities(ctx, result.ID, trip.Activities); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	result.Activities = normalizeActivities(trip.Activities)
	result.ExcursionID = trip.ExcursionID
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) CountByHost(ctx context.Context, hostID uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM trips WHERE host_id = @host_id`

	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"host_id": hostID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.TripRepo.CountByHost: %w", err)
	}
	return n, nil
}

// replaceActivities swaps the activity rows of a trip for the given set.
func (r *pgTripRepo) replaceActivities(ctx context.Context, tripID uuid.UUID, activities []domain.Activity) error {
	const del = `DELETE FROM trip_activities WHERE trip_id = @trip_id`
	if _, err := r.db.Exec(ctx, del, pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return err
	}

	const ins = `
		INSERT INTO trip_activities (trip_id, activity_id, title)
		VALUES (@trip_id, @activity_id, @title)
		ON CONFLICT (trip_id, activity_id) DO NOTHING`
	for _, a := range activities {
		args := pgx.NamedArgs{"trip_id": tripID, "activity_id": a.ID, "title": a.Title}
		if _, err := r.db.Exec(ctx, ins, args); err != nil {
			return err
		}
	}
	return nil
}

func (r *pgTripRepo) listActivities(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT activity_id, title
		FROM trip_activities
		WHERE trip_id = @trip_id
		ORDER BY activity_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.Title); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// normalizeActivities returns a non-nil copy so callers can safely range.
func normalizeActivities(activities []domain.Activity) []domain.Activity {
	if activities == nil {
		return []domain.Activity{}
	}
	return activities
}

// scanTrip maps a plain trips row (without joins) into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		hostID    pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
	)
	err := s.Scan(&id, &hostID, &t.Name, &t.Description, &t.Park.Name, &t.Park.Code,
		&t.Campground.ID, &t.Campground.Name, &startDate, &endDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	t.HostID = uuid.UUID(hostID.Bytes)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	return t, nil
}

// scanLinkedTrip maps a linkedTripQuery row, including the nullable
// excursion link, into a domain.Trip.
func scanLinkedTrip(s scanner) (domain.Trip, error) {
	var (
		t           domain.Trip
		id          pgtype.UUID
		hostID      pgtype.UUID
		excursionID pgtype.UUID
		startDate   pgtype.Date
		endDate     pgtype.Date
	)
	err := s.Scan(&id, &hostID, &t.Name, &t.Description, &t.Park.Name, &t.Park.Code,
		&t.Campground.ID, &t.Campground.Name, &startDate, &endDate,
		&t.CreatedAt, &t.UpdatedAt, &excursionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	t.HostID = uuid.UUID(hostID.Bytes)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	if excursionID.Valid {
		eid := uuid.UUID(excursionID.Bytes)
		t.ExcursionID = &eid
	}
	return t, nil
}
