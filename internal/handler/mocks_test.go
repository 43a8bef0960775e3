package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/nps"
)

// Function-field mocks for the service interfaces. Tests set only the
// methods they expect; an unexpected call panics on the nil field.

type mockAuthService struct {
	registerFn func(ctx context.Context, nu domain.NewUser) (domain.User, string, error)
	signInFn   func(ctx context.Context, email, password string) (domain.User, string, error)
	signOutFn  func(ctx context.Context, token string) error
}

var _ AuthServicer = (*mockAuthService)(nil)

func (m *mockAuthService) Register(ctx context.Context, nu domain.NewUser) (domain.User, string, error) {
	return m.registerFn(ctx, nu)
}
func (m *mockAuthService) SignIn(ctx context.Context, email, password string) (domain.User, string, error) {
	return m.signInFn(ctx, email, password)
}
func (m *mockAuthService) SignOut(ctx context.Context, token string) error {
	return m.signOutFn(ctx, token)
}

type mockUserService struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (domain.User, error)
	updateFn  func(ctx context.Context, userID uuid.UUID, patch domain.UserPatch) (domain.User, error)
	deleteFn  func(ctx context.Context, userID uuid.UUID) error
}

var _ UserServicer = (*mockUserService)(nil)

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockUserService) Update(ctx context.Context, userID uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	return m.updateFn(ctx, userID, patch)
}
func (m *mockUserService) Delete(ctx context.Context, userID uuid.UUID) error {
	return m.deleteFn(ctx, userID)
}

type mockTripService struct {
	createFn      func(ctx context.Context, hostID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	getByIDFn     func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listForHostFn func(ctx context.Context, hostID uuid.UUID) ([]domain.Trip, error)
	updateFn      func(ctx context.Context, tripID, actorID uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	deleteFn      func(ctx context.Context, tripID, actorID uuid.UUID) error
}

var _ TripServicer = (*mockTripService)(nil)

func (m *mockTripService) Create(ctx context.Context, hostID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	return m.createFn(ctx, hostID, trip)
}
func (m *mockTripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockTripService) ListForHost(ctx context.Context, hostID uuid.UUID) ([]domain.Trip, error) {
	return m.listForHostFn(ctx, hostID)
}
func (m *mockTripService) Update(ctx context.Context, tripID, actorID uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	return m.updateFn(ctx, tripID, actorID, patch)
}
func (m *mockTripService) Delete(ctx context.Context, tripID, actorID uuid.UUID) error {
	return m.deleteFn(ctx, tripID, actorID)
}

type mockExcursionService struct {
	createFn            func(ctx context.Context, hostID uuid.UUID, name, description string, tripIDs []uuid.UUID) (domain.Excursion, error)
	getByIDFn           func(ctx context.Context, excursionID, actorID uuid.UUID) (domain.Excursion, error)
	listForUserFn       func(ctx context.Context, userID uuid.UUID) ([]domain.Excursion, error)
	updateFn            func(ctx context.Context, excursionID, actorID uuid.UUID, patch domain.ExcursionPatch) (domain.Excursion, error)
	deleteFn            func(ctx context.Context, excursionID, actorID uuid.UUID) error
	leaveFn             func(ctx context.Context, excursionID, userID uuid.UUID) error
	removeParticipantFn func(ctx context.Context, excursionID, actorID, participantID uuid.UUID) error
}

var _ ExcursionServicer = (*mockExcursionService)(nil)

func (m *mockExcursionService) Create(ctx context.Context, hostID uuid.UUID, name, description string, tripIDs []uuid.UUID) (domain.Excursion, error) {
	return m.createFn(ctx, hostID, name, description, tripIDs)
}
func (m *mockExcursionService) GetByID(ctx context.Context, excursionID, actorID uuid.UUID) (domain.Excursion, error) {
	return m.getByIDFn(ctx, excursionID, actorID)
}
func (m *mockExcursionService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Excursion, error) {
	return m.listForUserFn(ctx, userID)
}
func (m *mockExcursionService) Update(ctx context.Context, excursionID, actorID uuid.UUID, patch domain.ExcursionPatch) (domain.Excursion, error) {
	return m.updateFn(ctx, excursionID, actorID, patch)
}
func (m *mockExcursionService) Delete(ctx context.Context, excursionID, actorID uuid.UUID) error {
	return m.deleteFn(ctx, excursionID, actorID)
}
func (m *mockExcursionService) Leave(ctx context.Context, excursionID, userID uuid.UUID) error {
	return m.leaveFn(ctx, excursionID, userID)
}
func (m *mockExcursionService) RemoveParticipant(ctx context.Context, excursionID, actorID, participantID uuid.UUID) error {
	return m.removeParticipantFn(ctx, excursionID, actorID, participantID)
}

type mockFriendService struct {
	sendRequestFn     func(ctx context.Context, senderID, receiverID uuid.UUID) (domain.FriendRequest, error)
	listRequestsFn    func(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.FriendRequest], error)
	resolveRequestFn  func(ctx context.Context, requestID, actorID uuid.UUID, accept bool) error
	withdrawRequestFn func(ctx context.Context, requestID, actorID uuid.UUID) error
	listFriendsFn     func(ctx context.Context, userID uuid.UUID) ([]domain.User, error)
	removeFriendFn    func(ctx context.Context, userID, friendID uuid.UUID) error
}

var _ FriendServicer = (*mockFriendService)(nil)

func (m *mockFriendService) SendRequest(ctx context.Context, senderID, receiverID uuid.UUID) (domain.FriendRequest, error) {
	return m.sendRequestFn(ctx, senderID, receiverID)
}
func (m *mockFriendService) ListRequests(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.FriendRequest], error) {
	return m.listRequestsFn(ctx, userID)
}
func (m *mockFriendService) ResolveRequest(ctx context.Context, requestID, actorID uuid.UUID, accept bool) error {
	return m.resolveRequestFn(ctx, requestID, actorID, accept)
}
func (m *mockFriendService) WithdrawRequest(ctx context.Context, requestID, actorID uuid.UUID) error {
	return m.withdrawRequestFn(ctx, requestID, actorID)
}
func (m *mockFriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.User, error) {
	return m.listFriendsFn(ctx, userID)
}
func (m *mockFriendService) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	return m.removeFriendFn(ctx, userID, friendID)
}

type mockInviteService struct {
	sendFn        func(ctx context.Context, senderID, receiverID, excursionID uuid.UUID) (domain.ExcursionInvite, error)
	listForUserFn func(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.ExcursionInvite], error)
	resolveFn     func(ctx context.Context, inviteID, actorID uuid.UUID, accept bool) error
	withdrawFn    func(ctx context.Context, inviteID, actorID uuid.UUID) error
}

var _ InviteServicer = (*mockInviteService)(nil)

func (m *mockInviteService) Send(ctx context.Context, senderID, receiverID, excursionID uuid.UUID) (domain.ExcursionInvite, error) {
	return m.sendFn(ctx, senderID, receiverID, excursionID)
}
func (m *mockInviteService) ListForUser(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.ExcursionInvite], error) {
	return m.listForUserFn(ctx, userID)
}
func (m *mockInviteService) Resolve(ctx context.Context, inviteID, actorID uuid.UUID, accept bool) error {
	return m.resolveFn(ctx, inviteID, actorID, accept)
}
func (m *mockInviteService) Withdraw(ctx context.Context, inviteID, actorID uuid.UUID) error {
	return m.withdrawFn(ctx, inviteID, actorID)
}

type mockParkProxy struct {
	getFn func(ctx context.Context, endpoint string, query url.Values) (nps.Result, error)
}

var _ ParkProxy = (*mockParkProxy)(nil)

func (m *mockParkProxy) Get(ctx context.Context, endpoint string, query url.Values) (nps.Result, error) {
	return m.getFn(ctx, endpoint, query)
}

// mockVerifier authenticates every request as the given user so handler
// tests can drive the real route table, auth middleware included.
type mockVerifier struct {
	user domain.User
}

func (v *mockVerifier) VerifySession(context.Context, string) (domain.User, error) {
	return v.user, nil
}

// newTestServer builds a Server with every dependency defaulted to an empty
// mock; tests overwrite the ones they exercise.
func newTestServer() *Server {
	return NewServer(
		&mockAuthService{},
		&mockUserService{},
		&mockTripService{},
		&mockExcursionService{},
		&mockFriendService{},
		&mockInviteService{},
		&mockParkProxy{},
	)
}

// passthroughAuth is a no-op auth middleware for tests that hit public
// routes only.
func passthroughAuth(next http.Handler) http.Handler { return next }
