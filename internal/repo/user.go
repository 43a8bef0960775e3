package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/excursions-app/backend/internal/domain"
)

// UserRepo defines the persistence operations for Users.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type UserRepo interface {
	// Create inserts a new user and returns the persisted record.
	// Returns domain.ErrConflict if the email is already registered.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID retrieves a single user by primary key.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail retrieves a single user by email address.
	// Returns domain.ErrNotFound if no user with that email exists.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// Update overwrites the mutable fields of an existing user and returns
	// the updated record. Returns domain.ErrNotFound if the user does not
	// exist, domain.ErrConflict if the new email is taken by someone else.
	Update(ctx context.Context, user domain.User) (domain.User, error)

	// Delete removes a user by ID. Rows referencing the user through
	// ON DELETE CASCADE foreign keys (sessions, friendships, participations,
	// pending requests and invites) are removed by the database.
	// Returns domain.ErrNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, user_name, created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (email, password_hash, first_name, last_name, user_name)
		VALUES (@email, @password_hash, @first_name, @last_name, @user_name)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"user_name":     user.UserName,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: email taken: %w", domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		UPDATE users
		SET email         = @email,
		    password_hash = @password_hash,
		    first_name    = @first_name,
		    last_name     = @last_name,
		    user_name     = @user_name,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":            user.ID,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"user_name":     user.UserName,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Update: email taken: %w", domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM users WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)
	err := s.Scan(&id, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.UserName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
