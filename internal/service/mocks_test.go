package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/repo"
)

// Hand-written mocks with function fields: each test sets only the methods
// it expects to be called. An unset method panics, which immediately flags
// unexpected repo calls.

type mockUserRepo struct {
	createFn     func(ctx context.Context, user domain.User) (domain.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (domain.User, error)
	updateFn     func(ctx context.Context, user domain.User) (domain.User, error)
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmailFn(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	return m.updateFn(ctx, user)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, session domain.Session) error
	getUserFn       func(ctx context.Context, token string) (domain.User, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteForUserFn func(ctx context.Context, userID uuid.UUID) error
}

var _ repo.SessionRepo = (*mockSessionRepo)(nil)

func (m *mockSessionRepo) Create(ctx context.Context, session domain.Session) error {
	return m.createFn(ctx, session)
}
func (m *mockSessionRepo) GetUser(ctx context.Context, token string) (domain.User, error) {
	return m.getUserFn(ctx, token)
}
func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	return m.deleteFn(ctx, token)
}
func (m *mockSessionRepo) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	return m.deleteForUserFn(ctx, userID)
}

type mockTripRepo struct {
	createFn      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByIDFn     func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByHostFn  func(ctx context.Context, hostID uuid.UUID) ([]domain.Trip, error)
	updateFn      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	deleteFn      func(ctx context.Context, id uuid.UUID) error
	countByHostFn func(ctx context.Context, hostID uuid.UUID) (int64, error)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.createFn(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockTripRepo) ListByHost(ctx context.Context, hostID uuid.UUID) ([]domain.Trip, error) {
	return m.listByHostFn(ctx, hostID)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.updateFn(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}
func (m *mockTripRepo) CountByHost(ctx context.Context, hostID uuid.UUID) (int64, error) {
	return m.countByHostFn(ctx, hostID)
}

type mockExcursionRepo struct {
	createFn                  func(ctx context.Context, excursion domain.Excursion) (domain.Excursion, error)
	getByIDFn                 func(ctx context.Context, id uuid.UUID) (domain.Excursion, error)
	listForUserFn             func(ctx context.Context, userID uuid.UUID) ([]domain.Excursion, error)
	updateFn                  func(ctx context.Context, excursion domain.Excursion) (domain.Excursion, error)
	deleteFn                  func(ctx context.Context, id uuid.UUID) error
	setTripsFn                func(ctx context.Context, excursionID uuid.UUID, tripIDs []uuid.UUID) error
	unlinkTripFn              func(ctx context.Context, tripID uuid.UUID) error
	addParticipantFn          func(ctx context.Context, excursionID, userID uuid.UUID) error
	removeParticipantFn       func(ctx context.Context, excursionID, userID uuid.UUID) error
	removeAllParticipationsFn func(ctx context.Context, userID uuid.UUID) error
	countByHostFn             func(ctx context.Context, hostID uuid.UUID) (int64, error)
}

var _ repo.ExcursionRepo = (*mockExcursionRepo)(nil)

func (m *mockExcursionRepo) Create(ctx context.Context, excursion domain.Excursion) (domain.Excursion, error) {
	return m.createFn(ctx, excursion)
}
func (m *mockExcursionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Excursion, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockExcursionRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Excursion, error) {
	return m.listForUserFn(ctx, userID)
}
func (m *mockExcursionRepo) Update(ctx context.Context, excursion domain.Excursion) (domain.Excursion, error) {
	return m.updateFn(ctx, excursion)
}
func (m *mockExcursionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}
func (m *mockExcursionRepo) SetTrips(ctx context.Context, excursionID uuid.UUID, tripIDs []uuid.UUID) error {
	return m.setTripsFn(ctx, excursionID, tripIDs)
}
func (m *mockExcursionRepo) UnlinkTrip(ctx context.Context, tripID uuid.UUID) error {
	return m.unlinkTripFn(ctx, tripID)
}
func (m *mockExcursionRepo) AddParticipant(ctx context.Context, excursionID, userID uuid.UUID) error {
	return m.addParticipantFn(ctx, excursionID, userID)
}
func (m *mockExcursionRepo) RemoveParticipant(ctx context.Context, excursionID, userID uuid.UUID) error {
	return m.removeParticipantFn(ctx, excursionID, userID)
}
func (m *mockExcursionRepo) RemoveAllParticipations(ctx context.Context, userID uuid.UUID) error {
	return m.removeAllParticipationsFn(ctx, userID)
}
func (m *mockExcursionRepo) CountByHost(ctx context.Context, hostID uuid.UUID) (int64, error) {
	return m.countByHostFn(ctx, hostID)
}

type mockFriendshipRepo struct {
	addFn         func(ctx context.Context, userID, friendID uuid.UUID) error
	removeFn      func(ctx context.Context, userID, friendID uuid.UUID) error
	existsFn      func(ctx context.Context, userID, friendID uuid.UUID) (bool, error)
	listFriendsFn func(ctx context.Context, userID uuid.UUID) ([]domain.User, error)
}

var _ repo.FriendshipRepo = (*mockFriendshipRepo)(nil)

func (m *mockFriendshipRepo) Add(ctx context.Context, userID, friendID uuid.UUID) error {
	return m.addFn(ctx, userID, friendID)
}
func (m *mockFriendshipRepo) Remove(ctx context.Context, userID, friendID uuid.UUID) error {
	return m.removeFn(ctx, userID, friendID)
}
func (m *mockFriendshipRepo) Exists(ctx context.Context, userID, friendID uuid.UUID) (bool, error) {
	return m.existsFn(ctx, userID, friendID)
}
func (m *mockFriendshipRepo) ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.User, error) {
	return m.listFriendsFn(ctx, userID)
}

type mockFriendRequestRepo struct {
	createFn        func(ctx context.Context, senderID, receiverID uuid.UUID) (domain.FriendRequest, error)
	getByIDFn       func(ctx context.Context, id uuid.UUID) (domain.FriendRequest, error)
	listForUserFn   func(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.FriendRequest], error)
	existsBetweenFn func(ctx context.Context, a, b uuid.UUID) (bool, error)
	deleteFn        func(ctx context.Context, id uuid.UUID) error
}

var _ repo.FriendRequestRepo = (*mockFriendRequestRepo)(nil)

func (m *mockFriendRequestRepo) Create(ctx context.Context, senderID, receiverID uuid.UUID) (domain.FriendRequest, error) {
	return m.createFn(ctx, senderID, receiverID)
}
func (m *mockFriendRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.FriendRequest, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockFriendRequestRepo) ListForUser(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.FriendRequest], error) {
	return m.listForUserFn(ctx, userID)
}
func (m *mockFriendRequestRepo) ExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return m.existsBetweenFn(ctx, a, b)
}
func (m *mockFriendRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockExcursionInviteRepo struct {
	createFn      func(ctx context.Context, senderID, receiverID, excursionID uuid.UUID) (domain.ExcursionInvite, error)
	getByIDFn     func(ctx context.Context, id uuid.UUID) (domain.ExcursionInvite, error)
	listForUserFn func(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.ExcursionInvite], error)
	deleteFn      func(ctx context.Context, id uuid.UUID) error
}

var _ repo.ExcursionInviteRepo = (*mockExcursionInviteRepo)(nil)

func (m *mockExcursionInviteRepo) Create(ctx context.Context, senderID, receiverID, excursionID uuid.UUID) (domain.ExcursionInvite, error) {
	return m.createFn(ctx, senderID, receiverID, excursionID)
}
func (m *mockExcursionInviteRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ExcursionInvite, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockExcursionInviteRepo) ListForUser(ctx context.Context, userID uuid.UUID) (domain.Mailbox[domain.ExcursionInvite], error) {
	return m.listForUserFn(ctx, userID)
}
func (m *mockExcursionInviteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

// mockTxManager runs the closure immediately against the given Repos, so
// unit tests exercise the transactional code path without a database.
type mockTxManager struct {
	repos repo.Repos
	err   error
}

var _ repo.TxManager = (*mockTxManager)(nil)

func (m *mockTxManager) WithinTx(_ context.Context, fn func(r repo.Repos) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(m.repos)
}
