// Package service contains the business logic for the Excursions API.
// Services validate inputs, enforce ownership and membership rules, and
// orchestrate repo calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/repo"
)

// bcryptCost matches the work factor the data was originally hashed with.
const bcryptCost = 8

// sessionTTL bounds how long an issued token stays valid.
const sessionTTL = 7 * 24 * time.Hour

// AuthService implements registration, sign-in, and session verification.
// Tokens are HS256 JWTs whose subject is the user id; a token is only
// honored while its row is still present in the sessions table, so deleting
// the row revokes the token before its expiry.
type AuthService struct {
	users    repo.UserRepo
	sessions repo.SessionRepo
	secret   []byte
	now      func() time.Time
}

// NewAuthService constructs an AuthService backed by the provided repos and
// token-signing secret.
func NewAuthService(users repo.UserRepo, sessions repo.SessionRepo, secret string) *AuthService {
	return &AuthService{users: users, sessions: sessions, secret: []byte(secret), now: time.Now}
}

// Register validates and creates a new account, returning the stored user
// and a fresh session token.
// Returns domain.ErrValidation for malformed input, domain.ErrConflict if
// the email is already registered.
func (s *AuthService) Register(ctx context.Context, nu domain.NewUser) (domain.User, string, error) {
	if err := validateNewUser(nu); err != nil {
		return domain.User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), bcryptCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: hash: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Email:        strings.ToLower(strings.TrimSpace(nu.Email)),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(nu.FirstName),
		LastName:     strings.TrimSpace(nu.LastName),
		UserName:     strings.ToLower(strings.TrimSpace(nu.UserName)),
	})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return user, token, nil
}

// SignIn verifies credentials and appends a fresh session token.
// Unknown email and wrong password both return the same domain.ErrAuth so
// callers cannot probe which accounts exist.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.SignIn: %w", domain.ErrAuth)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.SignIn: %w", domain.ErrAuth)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.SignIn: %w", err)
	}
	return user, token, nil
}

// VerifySession validates a bearer token and resolves it to its user.
// The token must carry a valid signature and expiry AND still exist in the
// sessions table; a signed-out token fails even before its expiry.
// All failure modes collapse into domain.ErrAuth.
func (s *AuthService) VerifySession(ctx context.Context, token string) (domain.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.User{}, fmt.Errorf("service.AuthService.VerifySession: %w", domain.ErrAuth)
	}

	user, err := s.sessions.GetUser(ctx, token)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.VerifySession: %w", domain.ErrAuth)
	}
	return user, nil
}

// SignOut revokes exactly one session token. Revoking a token that is not
// stored is a no-op, so repeated sign-outs succeed.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("service.AuthService.SignOut: %w", err)
	}
	return nil
}

// issueToken mints a signed JWT for the user and stores it as a session row.
func (s *AuthService) issueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := s.sessions.Create(ctx, domain.Session{Token: token, UserID: userID}); err != nil {
		return "", err
	}
	return token, nil
}

// validateNewUser enforces the registration rules:
//   - email must parse as an address
//   - password must be at least 8 characters
//   - first name, last name, and user name must be non-empty
func validateNewUser(nu domain.NewUser) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(nu.Email)); err != nil {
		return fmt.Errorf("%w: email is invalid", domain.ErrValidation)
	}
	if len(nu.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	if strings.TrimSpace(nu.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(nu.LastName) == "" {
		return fmt.Errorf("%w: last name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(nu.UserName) == "" {
		return fmt.Errorf("%w: user name is required", domain.ErrValidation)
	}
	return nil
}
