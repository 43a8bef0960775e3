// Package domain contains the core data types for the Excursions API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. PasswordHash is never serialized; the handler
// layer maps User to a response type that omits it.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	UserName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser carries the fields required to register an account.
// Password is the raw password; it is hashed before it ever reaches a repo.
type NewUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	UserName  string
}

// UserPatch is a typed partial update for a user profile.
// Nil fields are left untouched. An all-nil patch is rejected by the service.
type UserPatch struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	UserName  *string
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.Password == nil && p.FirstName == nil &&
		p.LastName == nil && p.UserName == nil
}

// Session is one active bearer token for a user. A user may hold any number
// of concurrent sessions; signing out deletes exactly one.
type Session struct {
	Token     string
	UserID    uuid.UUID
	CreatedAt time.Time
}
