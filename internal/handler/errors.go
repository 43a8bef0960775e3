package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/excursions-app/backend/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes v as a JSON response body with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("handler: encode response", "error", err)
	}
}

// respondError maps the service error chain to an HTTP status and a JSON
// error body. Validation and conflict messages are surfaced to the client
// (stripped of internal wrap prefixes); everything unexpected becomes an
// opaque 500 and is logged with the request context.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: clientMessage(err)})
	case errors.Is(err, domain.ErrAuth):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: domain.ErrAuth.Error()})
	case errors.Is(err, domain.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: domain.ErrForbidden.Error()})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: clientMessage(err)})
	case errors.Is(err, domain.ErrConflict):
		respondJSON(w, http.StatusConflict, errorResponse{Error: clientMessage(err)})
	case errors.Is(err, domain.ErrUpstream):
		respondJSON(w, http.StatusBadGateway, errorResponse{Error: domain.ErrUpstream.Error()})
	default:
		slog.ErrorContext(r.Context(), "handler: internal error", "error", err, "method", r.Method, "path", r.URL.Path)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// clientMessage strips the "repo.X.Y:" / "service.X.Y:" wrap prefixes that
// services add for log context, leaving only the human-readable tail for the
// response body. "service.TripService.Create: validation error: park name is
// required" becomes "validation error: park name is required".
func clientMessage(err error) string {
	msg := err.Error()
	for {
		head, tail, found := strings.Cut(msg, ": ")
		if !found || !strings.HasPrefix(head, "repo.") && !strings.HasPrefix(head, "service.") {
			return msg
		}
		msg = tail
	}
}

// badRequest writes a 400 with the given message.
func badRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// decodeJSON decodes the request body into v, rejecting unknown fields so
// client typos surface as 400s instead of silently ignored keys.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
