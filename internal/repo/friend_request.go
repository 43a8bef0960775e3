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

// FriendRequestRepo defines the persistence operations for pending friend
// requests. Rows are transient: resolution or withdrawal deletes them.
type FriendRequestRepo interface {
	// Create inserts a pending request. Returns domain.ErrConflict if an
	// identical pending request already exists.
	Create(ctx context.Context, senderID, receiverID uuid.UUID) (domain.FriendRequest, error)

	// GetByID retrieves a pending request.
	// Returns domain.ErrNotFound if it does not exist (never created, or
	// already resolved).
	GetByID(ctx context.Context, id uuid.UUID) (domain.FriendRequest, error)

	// ListForUser returns the user's pending requests split into incoming
	// and outgoing.
	ListForUser(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.FriendRequest], error)

	// ExistsBetween reports whether a pending request exists in either
	// direction between the two users.
	ExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error)

	// Delete removes a request by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgFriendRequestRepo is the Postgres implementation of FriendRequestRepo.
type pgFriendRequestRepo struct {
	db db
}

// NewFriendRequestRepo constructs a FriendRequestRepo backed by the provided db connection.
func NewFriendRequestRepo(db db) FriendRequestRepo {
	return &pgFriendRequestRepo{db: db}
}

const friendRequestColumns = `id, sender_id, receiver_id, created_at`

func (r *pgFriendRequestRepo) Create(ctx context.Context, senderID, receiverID uuid.UUID) (domain.FriendRequest, error) {
	const q = `
		INSERT INTO friend_requests (sender_id, receiver_id)
		VALUES (@sender_id, @receiver_id)
		RETURNING ` + friendRequestColumns

	args := pgx.NamedArgs{"sender_id": senderID, "receiver_id": receiverID}
	row := r.db.QueryRow(ctx, q, args)
	result, err := scanFriendRequest(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.FriendRequest{}, fmt.Errorf("repo.FriendRequestRepo.Create: already pending: %w", domain.ErrConflict)
		}
		return domain.FriendRequest{}, fmt.Errorf("repo.FriendRequestRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgFriendRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.FriendRequest, error) {
	const q = `SELECT ` + friendRequestColumns + ` FROM friend_requests WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanFriendRequest(row)
	if err != nil {
		return domain.FriendRequest{}, fmt.Errorf("repo.FriendRequestRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgFriendRequestRepo) ListForUser(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.FriendRequest], error) {
	const q = `
		SELECT ` + friendRequestColumns + `
		FROM friend_requests
		WHERE sender_id = @user_id OR receiver_id = @user_id
		ORDER BY created_at`

	var mailbox domain.Mailbox[domain.FriendRequest]
	mailbox.Incoming = []domain.FriendRequest{}
	mailbox.Outgoing = []domain.FriendRequest{}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return mailbox, fmt.Errorf("repo.FriendRequestRepo.ListForUser: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		req, err := scanFriendRequest(rows)
		if err != nil {
			return mailbox, fmt.Errorf("repo.FriendRequestRepo.ListForUser: scan: %w", err)
		}
		if req.ReceiverID == userID {
			mailbox.Incoming = append(mailbox.Incoming, req)
		} else {
			mailbox.Outgoing = append(mailbox.Outgoing, req)
		}
	}
	if err := rows.Err(); err != nil {
		return mailbox, fmt.Errorf("repo.FriendRequestRepo.ListForUser: rows: %w", err)
	}
	return mailbox, nil
}

func (r *pgFriendRequestRepo) ExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM friend_requests
			WHERE (sender_id = @a AND receiver_id = @b)
			   OR (sender_id = @b AND receiver_id = @a)
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"a": a, "b": b}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.FriendRequestRepo.ExistsBetween: %w", err)
	}
	return exists, nil
}

func (r *pgFriendRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM friend_requests WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.FriendRequestRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.FriendRequestRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanFriendRequest maps a single friend_requests row into a domain.FriendRequest.
func scanFriendRequest(s scanner) (domain.FriendRequest, error) {
	var (
		req        domain.FriendRequest
		id         pgtype.UUID
		senderID   pgtype.UUID
		receiverID pgtype.UUID
	)
	err := s.Scan(&id, &senderID, &receiverID, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FriendRequest{}, domain.ErrNotFound
		}
		return domain.FriendRequest{}, err
	}
	req.ID = uuid.UUID(id.Bytes)
	req.SenderID = uuid.UUID(senderID.Bytes)
	req.ReceiverID = uuid.UUID(receiverID.Bytes)
	return req, nil
}
