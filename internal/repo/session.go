package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/excursions-app/backend/internal/domain"
)

// SessionRepo defines the persistence operations for session tokens.
// A session row existing is what keeps a signed token valid; deleting the
// row is how sign-out revokes a token that has not yet expired.
type SessionRepo interface {
	// Create stores a new session token for a user.
	Create(ctx context.Context, session domain.Session) error

	// GetUser resolves a stored token to its user.
	// Returns domain.ErrNotFound if the token is not stored (revoked or
	// never issued).
	GetUser(ctx context.Context, token string) (domain.User, error)

	// Delete removes exactly one token. Deleting an absent token is a
	// no-op, not an error, so sign-out is idempotent.
	Delete(ctx context.Context, token string) error

	// DeleteForUser removes every session a user holds.
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
}

// pgSessionRepo is the Postgres implementation of SessionRepo.
type pgSessionRepo struct {
	db db
}

// NewSessionRepo constructs a SessionRepo backed by the provided db connection.
func NewSessionRepo(db db) SessionRepo {
	return &pgSessionRepo{db: db}
}

func (r *pgSessionRepo) Create(ctx context.Context, session domain.Session) error {
	const q = `INSERT INTO sessions (token, user_id) VALUES (@token, @user_id)`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"token": session.Token, "user_id": session.UserID})
	if err != nil {
		return fmt.Errorf("repo.SessionRepo.Create: %w", err)
	}
	return nil
}

func (r *pgSessionRepo) GetUser(ctx context.Context, token string) (domain.User, error) {
	const q = `
		SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name,
		       u.user_name, u.created_at, u.updated_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = @token`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.SessionRepo.GetUser: %w", err)
	}
	return result, nil
}

func (r *pgSessionRepo) Delete(ctx context.Context, token string) error {
	const q = `DELETE FROM sessions WHERE token = @token`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"token": token}); err != nil {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", err)
	}
	return nil
}

func (r *pgSessionRepo) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	const q = `DELETE FROM sessions WHERE user_id = @user_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID}); err != nil {
		return fmt.Errorf("repo.SessionRepo.DeleteForUser: %w", err)
	}
	return nil
}

// scanUUIDs collects a single-uuid-column result set into a slice.
func scanUUIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, uuid.UUID(id.Bytes))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
