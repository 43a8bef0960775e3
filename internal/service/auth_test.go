package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/excursions-app/backend/internal/domain"
)

const testSecret = "test-secret"

func validNewUser() domain.NewUser {
	return domain.NewUser{
		Email:     "Jane.Doe@Example.com",
		Password:  "hunter22!",
		FirstName: "Jane",
		LastName:  "Doe",
		UserName:  "JaneDoe",
	}
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with normalized fields and issues token", func(t *testing.T) {
		userID := uuid.New()
		var storedSession domain.Session

		users := &mockUserRepo{
			createFn: func(_ context.Context, user domain.User) (domain.User, error) {
				// Email and user name are lowercased before hitting the repo.
				assert.Equal(t, "jane.doe@example.com", user.Email)
				assert.Equal(t, "janedoe", user.UserName)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22!")))
				user.ID = userID
				return user, nil
			},
		}
		sessions := &mockSessionRepo{
			createFn: func(_ context.Context, session domain.Session) error {
				storedSession = session
				return nil
			},
		}

		svc := NewAuthService(users, sessions, testSecret)
		user, token, err := svc.Register(ctx, validNewUser())

		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.NotEmpty(t, token)
		assert.Equal(t, token, storedSession.Token)
		assert.Equal(t, userID, storedSession.UserID)

		// The token is a signed JWT whose subject is the user id.
		claims := &jwt.RegisteredClaims{}
		_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.Subject)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		cases := map[string]func(*domain.NewUser){
			"bad email":          func(nu *domain.NewUser) { nu.Email = "not-an-email" },
			"short password":     func(nu *domain.NewUser) { nu.Password = "short" },
			"missing first name": func(nu *domain.NewUser) { nu.FirstName = "  " },
			"missing last name":  func(nu *domain.NewUser) { nu.LastName = "" },
			"missing user name":  func(nu *domain.NewUser) { nu.UserName = "" },
		}

		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				nu := validNewUser()
				mutate(&nu)

				svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, testSecret)
				_, _, err := svc.Register(ctx, nu)
				assert.ErrorIs(t, err, domain.ErrValidation)
			})
		}
	})

	t.Run("propagates duplicate email conflict", func(t *testing.T) {
		users := &mockUserRepo{
			createFn: func(context.Context, domain.User) (domain.User, error) {
				return domain.User{}, domain.ErrConflict
			},
		}

		svc := NewAuthService(users, &mockSessionRepo{}, testSecret)
		_, _, err := svc.Register(ctx, validNewUser())
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestAuthServiceSignIn(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22!"), bcryptCost)
	require.NoError(t, err)
	stored := domain.User{ID: uuid.New(), Email: "jane.doe@example.com", PasswordHash: string(hash)}

	t.Run("returns user and fresh token on valid credentials", func(t *testing.T) {
		users := &mockUserRepo{
			getByEmailFn: func(_ context.Context, email string) (domain.User, error) {
				assert.Equal(t, "jane.doe@example.com", email)
				return stored, nil
			},
		}
		sessions := &mockSessionRepo{
			createFn: func(context.Context, domain.Session) error { return nil },
		}

		svc := NewAuthService(users, sessions, testSecret)
		user, token, err := svc.SignIn(ctx, "  Jane.Doe@Example.com ", "hunter22!")

		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		missing := &mockUserRepo{
			getByEmailFn: func(context.Context, string) (domain.User, error) {
				return domain.User{}, domain.ErrNotFound
			},
		}
		found := &mockUserRepo{
			getByEmailFn: func(context.Context, string) (domain.User, error) {
				return stored, nil
			},
		}

		_, _, errUnknown := NewAuthService(missing, &mockSessionRepo{}, testSecret).SignIn(ctx, "nobody@example.com", "hunter22!")
		_, _, errWrongPw := NewAuthService(found, &mockSessionRepo{}, testSecret).SignIn(ctx, "jane.doe@example.com", "wrong-password")

		assert.ErrorIs(t, errUnknown, domain.ErrAuth)
		assert.ErrorIs(t, errWrongPw, domain.ErrAuth)
		// Identical messages prevent account probing.
		assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	})
}

func TestAuthServiceVerifySession(t *testing.T) {
	ctx := context.Background()
	user := domain.User{ID: uuid.New(), Email: "jane.doe@example.com"}

	// issue mints a token through the real signing path.
	issue := func(t *testing.T, svc *AuthService) string {
		t.Helper()
		token, err := svc.issueToken(ctx, user.ID)
		require.NoError(t, err)
		return token
	}

	t.Run("resolves a live token to its user", func(t *testing.T) {
		var storedToken string
		sessions := &mockSessionRepo{
			createFn: func(_ context.Context, s domain.Session) error {
				storedToken = s.Token
				return nil
			},
			getUserFn: func(_ context.Context, token string) (domain.User, error) {
				if token == storedToken {
					return user, nil
				}
				return domain.User{}, domain.ErrNotFound
			},
		}

		svc := NewAuthService(&mockUserRepo{}, sessions, testSecret)
		token := issue(t, svc)

		got, err := svc.VerifySession(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("rejects a signed-out token even before expiry", func(t *testing.T) {
		sessions := &mockSessionRepo{
			createFn: func(context.Context, domain.Session) error { return nil },
			getUserFn: func(context.Context, string) (domain.User, error) {
				// Row deleted: the signature is fine but the session is gone.
				return domain.User{}, domain.ErrNotFound
			},
		}

		svc := NewAuthService(&mockUserRepo{}, sessions, testSecret)
		token := issue(t, svc)

		_, err := svc.VerifySession(ctx, token)
		assert.ErrorIs(t, err, domain.ErrAuth)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		forger := NewAuthService(&mockUserRepo{}, &mockSessionRepo{
			createFn: func(context.Context, domain.Session) error { return nil },
		}, "other-secret")
		token := issue(t, forger)

		svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, testSecret)
		_, err := svc.VerifySession(ctx, token)
		assert.ErrorIs(t, err, domain.ErrAuth)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		sessions := &mockSessionRepo{
			createFn: func(context.Context, domain.Session) error { return nil },
		}
		svc := NewAuthService(&mockUserRepo{}, sessions, testSecret)
		// Back-date issuance past the TTL.
		svc.now = func() time.Time { return time.Now().Add(-sessionTTL - time.Hour) }
		token := issue(t, svc)

		_, err := svc.VerifySession(ctx, token)
		assert.ErrorIs(t, err, domain.ErrAuth)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, testSecret)
		_, err := svc.VerifySession(ctx, "not-a-token")
		assert.ErrorIs(t, err, domain.ErrAuth)
	})
}

func TestAuthServiceSignOut(t *testing.T) {
	ctx := context.Background()

	var deleted []string
	sessions := &mockSessionRepo{
		deleteFn: func(_ context.Context, token string) error {
			deleted = append(deleted, token)
			return nil
		},
	}

	svc := NewAuthService(&mockUserRepo{}, sessions, testSecret)

	// Signing out twice succeeds both times; the repo treats a missing row
	// as a no-op.
	require.NoError(t, svc.SignOut(ctx, "token-a"))
	require.NoError(t, svc.SignOut(ctx, "token-a"))
	assert.Equal(t, []string{"token-a", "token-a"}, deleted)
}
