package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/excursions-app/backend/internal/domain"
)

// FriendshipRepo defines the persistence operations for the friends list.
// A friendship is stored as two mirrored rows so that either side can look
// up their friends with a single indexed query.
type FriendshipRepo interface {
	// Add records a mutual friendship. Idempotent — adding an existing
	// friendship is a no-op.
	Add(ctx context.Context, userID, friendID uuid.UUID) error

	// Remove deletes both directions of a friendship.
	// Returns domain.ErrNotFound if the two users are not friends.
	Remove(ctx context.Context, userID, friendID uuid.UUID) error

	// Exists reports whether the two users are friends.
	Exists(ctx context.Context, userID, friendID uuid.UUID) (bool, error)

	// ListFriends returns the full user records of a user's friends,
	// ordered by user name.
	ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.User, error)
}

// pgFriendshipRepo is the Postgres implementation of FriendshipRepo.
type pgFriendshipRepo struct {
	db db
}

// NewFriendshipRepo constructs a FriendshipRepo backed by the provided db connection.
func NewFriendshipRepo(db db) FriendshipRepo {
	return &pgFriendshipRepo{db: db}
}

func (r *pgFriendshipRepo) Add(ctx context.Context, userID, friendID uuid.UUID) error {
	const q = `
		INSERT INTO friendships (user_id, friend_id)
		VALUES (@a, @b), (@b, @a)
		ON CONFLICT (user_id, friend_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"a": userID, "b": friendID}); err != nil {
		return fmt.Errorf("repo.FriendshipRepo.Add: %w", err)
	}
	return nil
}

func (r *pgFriendshipRepo) Remove(ctx context.Context, userID, friendID uuid.UUID) error {
	const q = `
		DELETE FROM friendships
		WHERE (user_id = @a AND friend_id = @b)
		   OR (user_id = @b AND friend_id = @a)`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"a": userID, "b": friendID})
	if err != nil {
		return fmt.Errorf("repo.FriendshipRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.FriendshipRepo.Remove: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgFriendshipRepo) Exists(ctx context.Context, userID, friendID uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM friendships
			WHERE user_id = @a AND friend_id = @b
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"a": userID, "b": friendID}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.FriendshipRepo.Exists: %w", err)
	}
	return exists, nil
}

func (r *pgFriendshipRepo) ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.User, error) {
	const q = `
		SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name,
		       u.user_name, u.created_at, u.updated_at
		FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = @user_id
		ORDER BY u.user_name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.FriendshipRepo.ListFriends: %w", err)
	}
	defer rows.Close()

	friends := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.FriendshipRepo.ListFriends: scan: %w", err)
		}
		friends = append(friends, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.FriendshipRepo.ListFriends: rows: %w", err)
	}
	return friends, nil
}
