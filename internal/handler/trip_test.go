package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/middleware"
)

// serveAs routes the request through the real route table with every
// request authenticated as the given user.
func serveAs(s *Server, user domain.User, req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	s.Routes(middleware.NewAuthenticator(&mockVerifier{user: user})).ServeHTTP(rec, req)
	return rec
}

func TestCreateTrip(t *testing.T) {
	user := domain.User{ID: uuid.New()}

	t.Run("parses date-only strings and returns 201", func(t *testing.T) {
		s := newTestServer()
		s.trips = &mockTripService{
			createFn: func(_ context.Context, hostID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
				assert.Equal(t, user.ID, hostID)
				assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), trip.StartDate)
				assert.Equal(t, "grca", trip.Park.Code)
				trip.ID = uuid.New()
				trip.HostID = hostID
				return trip, nil
			},
		}

		body := `{
			"name": "Canyon week",
			"description": "South rim",
			"park": {"name": "Grand Canyon", "code": "grca"},
			"startDate": "2026-06-01",
			"endDate": "2026-06-07",
			"activities": [{"id": "act-1", "title": "Hike Bright Angel"}]
		}`
		req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(body))
		rec := serveAs(s, user, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "2026-06-01", got["startDate"])
		assert.Equal(t, user.ID.String(), got["host"])
	})

	t.Run("validation failure surfaces the message", func(t *testing.T) {
		s := newTestServer()
		s.trips = &mockTripService{
			createFn: func(context.Context, uuid.UUID, domain.Trip) (domain.Trip, error) {
				return domain.Trip{}, domain.ErrValidation
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/trips", strings.NewReader(`{"name":"x"}`))
		rec := serveAs(s, user, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetTrip(t *testing.T) {
	user := domain.User{ID: uuid.New()}

	t.Run("unknown id is a 404", func(t *testing.T) {
		s := newTestServer()
		s.trips = &mockTripService{
			getByIDFn: func(context.Context, uuid.UUID) (domain.Trip, error) {
				return domain.Trip{}, domain.ErrNotFound
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString(), nil)
		rec := serveAs(s, user, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		s := newTestServer()

		req := httptest.NewRequest(http.MethodGet, "/trips/not-a-uuid", nil)
		rec := serveAs(s, user, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("linked trip exposes its excursion id", func(t *testing.T) {
		excursionID := uuid.New()
		s := newTestServer()
		s.trips = &mockTripService{
			getByIDFn: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
				return domain.Trip{
					ID:          id,
					HostID:      user.ID,
					ExcursionID: &excursionID,
					Park:        domain.Park{Name: "Grand Canyon", Code: "grca"},
					StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
					EndDate:     time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC),
				}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString(), nil)
		rec := serveAs(s, user, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), excursionID.String())
	})
}

func TestUpdateTrip(t *testing.T) {
	user := domain.User{ID: uuid.New()}

	t.Run("non-host is a 403", func(t *testing.T) {
		s := newTestServer()
		s.trips = &mockTripService{
			updateFn: func(context.Context, uuid.UUID, uuid.UUID, domain.TripPatch) (domain.Trip, error) {
				return domain.Trip{}, domain.ErrForbidden
			},
		}

		req := httptest.NewRequest(http.MethodPatch, "/trips/"+uuid.NewString(), strings.NewReader(`{"name":"hijack"}`))
		rec := serveAs(s, user, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("passes through only the provided fields", func(t *testing.T) {
		s := newTestServer()
		s.trips = &mockTripService{
			updateFn: func(_ context.Context, _, actorID uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
				assert.Equal(t, user.ID, actorID)
				require.NotNil(t, patch.Name)
				assert.Equal(t, "Canyon fortnight", *patch.Name)
				assert.Nil(t, patch.Park)
				assert.Nil(t, patch.StartDate)
				return domain.Trip{Name: *patch.Name}, nil
			},
		}

		req := httptest.NewRequest(http.MethodPatch, "/trips/"+uuid.NewString(), strings.NewReader(`{"name":"Canyon fortnight"}`))
		rec := serveAs(s, user, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestListTrips(t *testing.T) {
	user := domain.User{ID: uuid.New()}

	s := newTestServer()
	s.trips = &mockTripService{
		listForHostFn: func(_ context.Context, hostID uuid.UUID) ([]domain.Trip, error) {
			assert.Equal(t, user.ID, hostID)
			return []domain.Trip{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := serveAs(s, user, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Empty list is a JSON array, never null.
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestDeleteTrip(t *testing.T) {
	user := domain.User{ID: uuid.New()}

	s := newTestServer()
	tripID := uuid.New()
	var deleted bool
	s.trips = &mockTripService{
		deleteFn: func(_ context.Context, id, actorID uuid.UUID) error {
			assert.Equal(t, tripID, id)
			assert.Equal(t, user.ID, actorID)
			deleted = true
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/trips/"+tripID.String(), nil)
	rec := serveAs(s, user, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, deleted)
}
