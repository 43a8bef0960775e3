// Package handler implements the HTTP handlers for the Excursions API.
// All handlers are methods on Server, split into domain-specific files
// (user.go, trip.go, excursion.go, ...) but sharing one struct so they can
// access the same dependencies. Handlers decode JSON, call a service, and
// map sentinel errors to status codes — no business logic lives here.
package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/nps"
)

// AuthServicer defines the credential operations the handlers depend on.
// Defining interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type AuthServicer interface {
	Register(ctx context.Context, nu domain.NewUser) (domain.User, string, error)
	SignIn(ctx context.Context, email, password string) (domain.User, string, error)
	SignOut(ctx context.Context, token string) error
}

// UserServicer defines the profile operations the handlers depend on.
type UserServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	Update(ctx context.Context, userID uuid.UUID, patch domain.UserPatch) (domain.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// TripServicer defines the trip operations the handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, hostID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListForHost(ctx context.Context, hostID uuid.UUID) ([]domain.Trip, error)
	Update(ctx context.Context, tripID, actorID uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, tripID, actorID uuid.UUID) error
}

// ExcursionServicer defines the excursion operations the handlers depend on.
type ExcursionServicer interface {
	Create(ctx context.Context, hostID uuid.UUID, name, description string, tripIDs []uuid.UUID) (domain.Excursion, error)
	GetByID(ctx context.Context, excursionID, actorID uuid.UUID) (domain.Excursion, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Excursion, error)
	Update(ctx context.Context, excursionID, actorID uuid.UUID, patch domain.ExcursionPatch) (domain.Excursion, error)
	Delete(ctx context.Context, excursionID, actorID uuid.UUID) error
	Leave(ctx context.Context, excursionID, userID uuid.UUID) error
	RemoveParticipant(ctx context.Context, excursionID, actorID, participantID uuid.UUID) error
}

// FriendServicer defines the friend-request operations the handlers depend on.
type FriendServicer interface {
	SendRequest(ctx context.Context, senderID, receiverID uuid.UUID) (domain.FriendRequest, error)
	ListRequests(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.FriendRequest], error)
	ResolveRequest(ctx context.Context, requestID, actorID uuid.UUID, accept bool) error
	WithdrawRequest(ctx context.Context, requestID, actorID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.User, error)
	RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error
}

// InviteServicer defines the excursion-invite operations the handlers depend on.
type InviteServicer interface {
	Send(ctx context.Context, senderID, receiverID, excursionID uuid.UUID) (domain.ExcursionInvite, error)
	ListForUser(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.ExcursionInvite], error)
	Resolve(ctx context.Context, inviteID, actorID uuid.UUID, accept bool) error
	Withdraw(ctx context.Context, inviteID, actorID uuid.UUID) error
}

// ParkProxy defines the upstream pass-through the park handlers depend on.
type ParkProxy interface {
	Get(ctx context.Context, endpoint string, query url.Values) (nps.Result, error)
}

// Server holds every handler dependency. Construct it with NewServer and
// mount Routes on the router.
type Server struct {
	auth       AuthServicer
	users      UserServicer
	trips      TripServicer
	excursions ExcursionServicer
	friends    FriendServicer
	invites    InviteServicer
	parks      ParkProxy
}

// NewServer constructs the Server with all its dependencies.
func NewServer(auth AuthServicer, users UserServicer, trips TripServicer, excursions ExcursionServicer, friends FriendServicer, invites InviteServicer, parks ParkProxy) *Server {
	return &Server{
		auth:       auth,
		users:      users,
		trips:      trips,
		excursions: excursions,
		friends:    friends,
		invites:    invites,
		parks:      parks,
	}
}

// Routes returns the full route table. requireAuth guards every route that
// needs a signed-in user; registration, sign-in, health, and the park data
// proxy are public.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Post("/users", s.Register)
	r.Post("/users/sign-in", s.SignIn)

	r.Get("/national-parks", s.GetNationalParks)
	r.Get("/national-parks/summary", s.GetNationalParkSummaries)
	r.Get("/campgrounds", s.GetCampgrounds)
	r.Get("/things-to-do", s.GetThingsToDo)
	r.Get("/multimedia/audio", s.GetMultimediaAudio)
	r.Get("/multimedia/galleries", s.GetMultimediaGalleries)
	r.Get("/multimedia/galleries/assets", s.GetMultimediaGalleryAssets)
	r.Get("/multimedia/videos", s.GetMultimediaVideos)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/users/sign-out", s.SignOut)
		r.Get("/users/me", s.GetMe)
		r.Patch("/users/me", s.UpdateMe)
		r.Delete("/users/me", s.DeleteMe)
		r.Get("/users/{userId}", s.GetUser)

		r.Post("/trips", s.CreateTrip)
		r.Get("/trips", s.ListTrips)
		r.Get("/trips/{tripId}", s.GetTrip)
		r.Patch("/trips/{tripId}", s.UpdateTrip)
		r.Delete("/trips/{tripId}", s.DeleteTrip)

		r.Post("/excursions", s.CreateExcursion)
		r.Get("/excursions", s.ListExcursions)
		r.Get("/excursions/{excursionId}", s.GetExcursion)
		r.Patch("/excursions/{excursionId}", s.UpdateExcursion)
		r.Delete("/excursions/{excursionId}", s.DeleteExcursion)
		r.Post("/excursions/{excursionId}/leave", s.LeaveExcursion)
		r.Delete("/excursions/{excursionId}/participants/{userId}", s.RemoveParticipant)

		r.Post("/excursions/{excursionId}/invites", s.SendInvite)
		r.Get("/invites/excursions", s.ListInvites)
		r.Patch("/invites/excursions/{inviteId}", s.ResolveInvite)
		r.Delete("/invites/excursions/{inviteId}", s.WithdrawInvite)

		r.Post("/friends/requests", s.SendFriendRequest)
		r.Get("/friends/requests", s.ListFriendRequests)
		r.Patch("/friends/requests/{requestId}", s.ResolveFriendRequest)
		r.Delete("/friends/requests/{requestId}", s.WithdrawFriendRequest)
		r.Get("/friends", s.ListFriends)
		r.Delete("/friends/{friendId}", s.RemoveFriend)
	})

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
