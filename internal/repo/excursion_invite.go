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

// ExcursionInviteRepo defines the persistence operations for pending
// excursion-share invites. Same transient lifecycle as friend requests.
type ExcursionInviteRepo interface {
	// Create inserts a pending invite. Returns domain.ErrConflict if the
	// receiver already has a pending invite to the same excursion.
	Create(ctx context.Context, senderID, receiverID, excursionID uuid.UUID) (domain.ExcursionInvite, error)

	// GetByID retrieves a pending invite.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.ExcursionInvite, error)

	// ListForUser returns the user's pending invites split into incoming
	// and outgoing.
	ListForUser(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.ExcursionInvite], error)

	// Delete removes an invite by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgExcursionInviteRepo is the Postgres implementation of ExcursionInviteRepo.
type pgExcursionInviteRepo struct {
	db db
}

// NewExcursionInviteRepo constructs an ExcursionInviteRepo backed by the provided db connection.
func NewExcursionInviteRepo(db db) ExcursionInviteRepo {
	return &pgExcursionInviteRepo{db: db}
}

const excursionInviteColumns = `id, sender_id, receiver_id, excursion_id, created_at`

func (r *pgExcursionInviteRepo) Create(ctx context.Context, senderID, receiverID, excursionID uuid.UUID) (domain.ExcursionInvite, error) {
	const q = `
		INSERT INTO excursion_invites (sender_id, receiver_id, excursion_id)
		VALUES (@sender_id, @receiver_id, @excursion_id)
		RETURNING ` + excursionInviteColumns

	args := pgx.NamedArgs{
		"sender_id":    senderID,
		"receiver_id":  receiverID,
		"excursion_id": excursionID,
	}
	row := r.db.QueryRow(ctx, q, args)
	result, err := scanExcursionInvite(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ExcursionInvite{}, fmt.Errorf("repo.ExcursionInviteRepo.Create: already invited: %w", domain.ErrConflict)
		}
		return domain.ExcursionInvite{}, fmt.Errorf("repo.ExcursionInviteRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExcursionInviteRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ExcursionInvite, error) {
	const q = `SELECT ` + excursionInviteColumns + ` FROM excursion_invites WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanExcursionInvite(row)
	if err != nil {
		return domain.ExcursionInvite{}, fmt.Errorf("repo.ExcursionInviteRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgExcursionInviteRepo) ListForUser(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.ExcursionInvite], error) {
	const q = `
		SELECT ` + excursionInviteColumns + `
		FROM excursion_invites
		WHERE sender_id = @user_id OR receiver_id = @user_id
		ORDER BY created_at`

	var mailbox domain.Mailbox[domain.ExcursionInvite]
	mailbox.Incoming = []domain.ExcursionInvite{}
	mailbox.Outgoing = []domain.ExcursionInvite{}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return mailbox, fmt.Errorf("repo.ExcursionInviteRepo.ListForUser: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		inv, err := scanExcursionInvite(rows)
		if err != nil {
			return mailbox, fmt.Errorf("repo.ExcursionInviteRepo.ListForUser: scan: %w", err)
		}
		if inv.ReceiverID == userID {
			mailbox.Incoming = append(mailbox.Incoming, inv)
		} else {
			mailbox.Outgoing = append(mailbox.Outgoing, inv)
		}
	}
	if err := rows.Err(); err != nil {
		return mailbox, fmt.Errorf("repo.ExcursionInviteRepo.ListForUser: rows: %w", err)
	}
	return mailbox, nil
}

func (r *pgExcursionInviteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM excursion_invites WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ExcursionInviteRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExcursionInviteRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanExcursionInvite maps a single excursion_invites row into a domain.ExcursionInvite.
func scanExcursionInvite(s scanner) (domain.ExcursionInvite, error) {
	var (
		inv         domain.ExcursionInvite
		id          pgtype.UUID
		senderID    pgtype.UUID
		receiverID  pgtype.UUID
		excursionID pgtype.UUID
	)
	err := s.Scan(&id, &senderID, &receiverID, &excursionID, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ExcursionInvite{}, domain.ErrNotFound
		}
		return domain.ExcursionInvite{}, err
	}
	inv.ID = uuid.UUID(id.Bytes)
	inv.SenderID = uuid.UUID(senderID.Bytes)
	inv.ReceiverID = uuid.UUID(receiverID.Bytes)
	inv.ExcursionID = uuid.UUID(excursionID.Bytes)
	return inv, nil
}
