package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/repo"
)

// UserService implements profile operations and account deletion.
// It holds trip and excursion repos because deleting an account must be
// blocked while the user still hosts entities, and the remaining
// cross-references are cleaned up in one transaction.
type UserService struct {
	users      repo.UserRepo
	trips      repo.TripRepo
	excursions repo.ExcursionRepo
	tx         repo.TxManager
}

// NewUserService constructs a UserService backed by the provided repos.
func NewUserService(users repo.UserRepo, trips repo.TripRepo, excursions repo.ExcursionRepo, tx repo.TxManager) *UserService {
	return &UserService{users: users, trips: trips, excursions: excursions, tx: tx}
}

// GetByID returns a user's profile.
// Returns domain.ErrNotFound if no such user exists.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return user, nil
}

// Update applies a typed partial update to the user's own profile.
// An empty patch is domain.ErrValidation; changed email and password are
// re-validated under the same rules as registration.
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	if patch.Empty() {
		return domain.User{}, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}

	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			return domain.User{}, fmt.Errorf("%w: email is invalid", domain.ErrValidation)
		}
		user.Email = email
	}
	if patch.Password != nil {
		if len(*patch.Password) < 8 {
			return domain.User{}, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcryptCost)
		if err != nil {
			return domain.User{}, fmt.Errorf("service.UserService.Update: hash: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if patch.FirstName != nil {
		if strings.TrimSpace(*patch.FirstName) == "" {
			return domain.User{}, fmt.Errorf("%w: first name is required", domain.ErrValidation)
		}
		user.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		if strings.TrimSpace(*patch.LastName) == "" {
			return domain.User{}, fmt.Errorf("%w: last name is required", domain.ErrValidation)
		}
		user.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.UserName != nil {
		if strings.TrimSpace(*patch.UserName) == "" {
			return domain.User{}, fmt.Errorf("%w: user name is required", domain.ErrValidation)
		}
		user.UserName = strings.ToLower(strings.TrimSpace(*patch.UserName))
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an account. Deletion is blocked with domain.ErrConflict
// while the user still hosts any excursion or trip — hosted entities must
// be deleted first so nothing is orphaned. Otherwise the user's
// participations, friendships, sessions, and pending invites are removed in
// one transaction along with the user row (the foreign keys cascade).
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	hostedExcursions, err := s.excursions.CountByHost(ctx, userID)
	if err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	if hostedExcursions > 0 {
		return fmt.Errorf("%w: user still hosts %d excursion(s)", domain.ErrConflict, hostedExcursions)
	}

	hostedTrips, err := s.trips.CountByHost(ctx, userID)
	if err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	if hostedTrips > 0 {
		return fmt.Errorf("%w: user still hosts %d trip(s)", domain.ErrConflict, hostedTrips)
	}

	err = s.tx.WithinTx(ctx, func(r repo.Repos) error {
		if err := r.Excursions.RemoveAllParticipations(ctx, userID); err != nil {
			return err
		}
		return r.Users.Delete(ctx, userID)
	})
	if err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	return nil
}
