package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/middleware"
)

// dateOnly marshals as "2006-01-02". Trip dates are calendar days; time of
// day is not stored. Unmarshal also accepts full RFC 3339 timestamps and
// keeps their written calendar day.
type dateOnly time.Time

func (d dateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format("2006-01-02") + `"`), nil
}

func (d *dateOnly) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	s = s[1 : len(s)-1]
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		// Full timestamps keep their written calendar day; converting to
		// UTC first could shift zoned timestamps across midnight.
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			return fmt.Errorf("invalid date %q", s)
		}
		t, err = time.Parse("2006-01-02", s[:10])
		if err != nil {
			return fmt.Errorf("invalid date %q", s)
		}
	}
	*d = dateOnly(t)
	return nil
}

type parkPayload struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type campgroundPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type activityPayload struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type createTripRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Park        parkPayload        `json:"park"`
	Campground  *campgroundPayload `json:"campground"`
	StartDate   dateOnly           `json:"startDate"`
	EndDate     dateOnly           `json:"endDate"`
	Activities  []activityPayload  `json:"activities"`
}

type updateTripRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Park        *parkPayload       `json:"park"`
	Campground  *campgroundPayload `json:"campground"`
	StartDate   *dateOnly          `json:"startDate"`
	EndDate     *dateOnly          `json:"endDate"`
	Activities  *[]activityPayload `json:"activities"`
}

type tripResponse struct {
	ID          uuid.UUID          `json:"id"`
	Host        uuid.UUID          `json:"host"`
	Excursion   *uuid.UUID         `json:"excursion,omitempty"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Park        parkPayload        `json:"park"`
	Campground  *campgroundPayload `json:"campground,omitempty"`
	StartDate   dateOnly           `json:"startDate"`
	EndDate     dateOnly           `json:"endDate"`
	Activities  []activityPayload  `json:"activities"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func toTripResponse(t domain.Trip) tripResponse {
	resp := tripResponse{
		ID:          t.ID,
		Host:        t.HostID,
		Excursion:   t.ExcursionID,
		Name:        t.Name,
		Description: t.Description,
		Park:        parkPayload{Name: t.Park.Name, Code: t.Park.Code},
		StartDate:   dateOnly(t.StartDate),
		EndDate:     dateOnly(t.EndDate),
		Activities:  make([]activityPayload, 0, len(t.Activities)),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Campground.ID != "" || t.Campground.Name != "" {
		resp.Campground = &campgroundPayload{ID: t.Campground.ID, Name: t.Campground.Name}
	}
	for _, a := range t.Activities {
		resp.Activities = append(resp.Activities, activityPayload{ID: a.ID, Title: a.Title})
	}
	return resp
}

func toActivities(payloads []activityPayload) []domain.Activity {
	out := make([]domain.Activity, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, domain.Activity{ID: p.ID, Title: p.Title})
	}
	return out
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	trip := domain.Trip{
		Name:        req.Name,
		Description: req.Description,
		Park:        domain.Park{Name: req.Park.Name, Code: req.Park.Code},
		StartDate:   time.Time(req.StartDate),
		EndDate:     time.Time(req.EndDate),
		Activities:  toActivities(req.Activities),
	}
	if req.Campground != nil {
		trip.Campground = domain.Campground{ID: req.Campground.ID, Name: req.Campground.Name}
	}

	created, err := s.trips.Create(r.Context(), user.ID, trip)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toTripResponse(created))
}

// ListTrips handles GET /trips. It lists the trips hosted by the caller,
// newest start date first.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	trips, err := s.trips.ListForHost(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResponse(t))
	}
	respondJSON(w, http.StatusOK, out)
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toTripResponse(trip))
}

// UpdateTrip handles PATCH /trips/{tripId}. Host only.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	id, err := pathUUID(r, "tripId")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	var req updateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	patch := domain.TripPatch{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Park != nil {
		patch.Park = &domain.Park{Name: req.Park.Name, Code: req.Park.Code}
	}
	if req.Campground != nil {
		patch.Campground = &domain.Campground{ID: req.Campground.ID, Name: req.Campground.Name}
	}
	if req.StartDate != nil {
		t := time.Time(*req.StartDate)
		patch.StartDate = &t
	}
	if req.EndDate != nil {
		t := time.Time(*req.EndDate)
		patch.EndDate = &t
	}
	if req.Activities != nil {
		activities := toActivities(*req.Activities)
		patch.Activities = &activities
	}

	updated, err := s.trips.Update(r.Context(), id, user.ID, patch)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toTripResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripId}. Host only. The trip is also
// unlinked from its excursion, if it was in one.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	id, err := pathUUID(r, "tripId")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), id, user.ID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
