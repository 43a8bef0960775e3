package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/middleware"
)

// userResponse is the public shape of a user. The password hash never
// leaves the service layer.
type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		UserName:  u.UserName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type updateUserRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	UserName  *string `json:"userName"`
}

// GetMe handles GET /users/me.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// GetUser handles GET /users/{userId}.
// Any authenticated user may look up any profile by id.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "userId")
	if err != nil {
		badRequest(w, "invalid user id")
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateMe handles PATCH /users/me.
// Only the listed fields may change; an empty patch is a 400.
func (s *Server) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	updated, err := s.users.Update(r.Context(), user.ID, domain.UserPatch{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserName:  req.UserName,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toUserResponse(updated))
}

// DeleteMe handles DELETE /users/me.
// Deletion is refused with 409 while the user still hosts trips or
// excursions; those must be deleted first.
func (s *Server) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	if err := s.users.Delete(r.Context(), user.ID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
