package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/middleware"
)

type createExcursionRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	TripIDs     []uuid.UUID `json:"trips"`
}

type updateExcursionRequest struct {
	Name         *string        `json:"name"`
	Description  *string        `json:"description"`
	TripIDs      *[]uuid.UUID   `json:"trips"`
	Participants *[]uuid.UUID   `json:"participants"`
	IsComplete   *bool          `json:"isComplete"`
}

type excursionResponse struct {
	ID           uuid.UUID   `json:"id"`
	Host         uuid.UUID   `json:"host"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	IsComplete   bool        `json:"isComplete"`
	Trips        []uuid.UUID `json:"trips"`
	Participants []uuid.UUID `json:"participants"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func toExcursionResponse(e domain.Excursion) excursionResponse {
	resp := excursionResponse{
		ID:           e.ID,
		Host:         e.HostID,
		Name:         e.Name,
		Description:  e.Description,
		IsComplete:   e.IsComplete,
		Trips:        e.TripIDs,
		Participants: e.ParticipantIDs,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if resp.Trips == nil {
		resp.Trips = []uuid.UUID{}
	}
	if resp.Participants == nil {
		resp.Participants = []uuid.UUID{}
	}
	return resp
}

// CreateExcursion handles POST /excursions.
// Every referenced trip must exist, be hosted by the caller, and not already
// belong to another excursion.
func (s *Server) CreateExcursion(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	var req createExcursionRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.excursions.Create(r.Context(), user.ID, req.Name, req.Description, req.TripIDs)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toExcursionResponse(created))
}

// ListExcursions handles GET /excursions. It lists every excursion the
// caller hosts or participates in.
func (s *Server) ListExcursions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	excursions, err := s.excursions.ListForUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]excursionResponse, 0, len(excursions))
	for _, e := range excursions {
		out = append(out, toExcursionResponse(e))
	}
	respondJSON(w, http.StatusOK, out)
}

// GetExcursion handles GET /excursions/{excursionId}.
// Visible only to the host and participants; everyone else gets 403.
func (s *Server) GetExcursion(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	id, err := pathUUID(r, "excursionId")
	if err != nil {
		badRequest(w, "invalid excursion id")
		return
	}

	excursion, err := s.excursions.GetByID(r.Context(), id, user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toExcursionResponse(excursion))
}

// UpdateExcursion handles PATCH /excursions/{excursionId}. Host only.
// The participants field may only shrink the list; new participants join
// through invites. isComplete may only flip false→true.
func (s *Server) UpdateExcursion(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	id, err := pathUUID(r, "excursionId")
	if err != nil {
		badRequest(w, "invalid excursion id")
		return
	}

	var req updateExcursionRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	updated, err := s.excursions.Update(r.Context(), id, user.ID, domain.ExcursionPatch{
		Name:           req.Name,
		Description:    req.Description,
		TripIDs:        req.TripIDs,
		ParticipantIDs: req.Participants,
		IsComplete:     req.IsComplete,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toExcursionResponse(updated))
}

// DeleteExcursion handles DELETE /excursions/{excursionId}. Host only.
// Member trips survive; they simply become unlinked.
func (s *Server) DeleteExcursion(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	id, err := pathUUID(r, "excursionId")
	if err != nil {
		badRequest(w, "invalid excursion id")
		return
	}

	if err := s.excursions.Delete(r.Context(), id, user.ID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LeaveExcursion handles POST /excursions/{excursionId}/leave.
// Participants may leave at any time; the host cannot leave their own
// excursion (delete it instead).
func (s *Server) LeaveExcursion(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	id, err := pathUUID(r, "excursionId")
	if err != nil {
		badRequest(w, "invalid excursion id")
		return
	}

	if err := s.excursions.Leave(r.Context(), id, user.ID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveParticipant handles DELETE /excursions/{excursionId}/participants/{userId}.
// Host only.
func (s *Server) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	excursionID, err := pathUUID(r, "excursionId")
	if err != nil {
		badRequest(w, "invalid excursion id")
		return
	}
	participantID, err := pathUUID(r, "userId")
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}

	if err := s.excursions.RemoveParticipant(r.Context(), excursionID, user.ID, participantID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
