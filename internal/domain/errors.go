package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrAuth is returned when credentials are wrong or when a session token is
// invalid, expired, or revoked. The message deliberately does not reveal
// which condition failed. Handlers should map this to HTTP 401.
var ErrAuth = errors.New("unable to sign in")

// ErrForbidden is returned when an authenticated user attempts an operation
// reserved for another user, e.g. mutating an excursion they do not host.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation would violate an invariant,
// such as deleting a user who still hosts excursions or trips.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUpstream is returned by the park data proxy when the upstream service
// fails in a way that is not the caller's fault.
// Handlers should map this to HTTP 502.
var ErrUpstream = errors.New("upstream service error")
