package handler

import (
	"net/http"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/middleware"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"userName"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is returned by registration and sign-in: the profile plus a
// bearer token for the new session.
type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// Register handles POST /users.
// It creates an account and opens a first session, returning 201 with the
// profile and bearer token. A duplicate email or user name yields 409.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, token, err := s.auth.Register(r.Context(), domain.NewUser{
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

	respondJSON(w, http.StatusCreated, authResponse{User: toUserResponse(user), Token: token})
}

// SignIn handles POST /users/sign-in.
// Wrong email and wrong password both yield the same 401 body.
func (s *Server) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, token, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{User: toUserResponse(user), Token: token})
}

// SignOut handles POST /users/sign-out.
// It revokes the presenting session only; the user's other sessions stay
// valid. Always 204 — signing out an already-dead session is not an error.
func (s *Server) SignOut(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	if err := s.auth.SignOut(r.Context(), token); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
