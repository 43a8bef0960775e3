package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/middleware"
)

type sendFriendRequestRequest struct {
	Receiver uuid.UUID `json:"receiver"`
}

// resolveRequest carries the accept/decline verdict for a pending friend
// request or excursion invite.
type resolveRequest struct {
	Accept *bool `json:"accept"`
}

type friendRequestResponse struct {
	ID        uuid.UUID `json:"id"`
	Sender    uuid.UUID `json:"sender"`
	Receiver  uuid.UUID `json:"receiver"`
	CreatedAt time.Time `json:"createdAt"`
}

func toFriendRequestResponse(fr domain.FriendRequest) friendRequestResponse {
	return friendRequestResponse{
		ID:        fr.ID,
		Sender:    fr.SenderID,
		Receiver:  fr.ReceiverID,
		CreatedAt: fr.CreatedAt,
	}
}

type friendRequestMailboxResponse struct {
	Incoming []friendRequestResponse `json:"incoming"`
	Outgoing []friendRequestResponse `json:"outgoing"`
}

// SendFriendRequest handles POST /friends/requests.
// Duplicate pending requests (in either direction) and requests to existing
// friends yield 409.
func (s *Server) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	var req sendFriendRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.friends.SendRequest(r.Context(), user.ID, req.Receiver)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toFriendRequestResponse(created))
}

// ListFriendRequests handles GET /friends/requests, returning the caller's
// pending requests split into incoming and outgoing.
func (s *Server) ListFriendRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	mailbox, err := s.friends.ListRequests(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := friendRequestMailboxResponse{
		Incoming: make([]friendRequestResponse, 0, len(mailbox.Incoming)),
		Outgoing: make([]friendRequestResponse, 0, len(mailbox.Outgoing)),
	}
	for _, fr := range mailbox.Incoming {
		resp.Incoming = append(resp.Incoming, toFriendRequestResponse(fr))
	}
	for _, fr := range mailbox.Outgoing {
		resp.Outgoing = append(resp.Outgoing, toFriendRequestResponse(fr))
	}
	respondJSON(w, http.StatusOK, resp)
}

// ResolveFriendRequest handles PATCH /friends/requests/{requestId}.
// Receiver only. Accepting makes both users friends; either way the request
// is gone afterwards, so a second resolve yields 404.
func (s *Server) ResolveFriendRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	id, err := pathUUID(r, "requestId")
	if err != nil {
		badRequest(w, "invalid request id")
		return
	}

	var req resolveRequest
	if err := decodeJSON(r, &req); err != nil || req.Accept == nil {
		badRequest(w, "accept field is required")
		return
	}

	if err := s.friends.ResolveRequest(r.Context(), id, user.ID, *req.Accept); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// WithdrawFriendRequest handles DELETE /friends/requests/{requestId}.
// Sender only.
func (s *Server) WithdrawFriendRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	id, err := pathUUID(r, "requestId")
	if err != nil {
		badRequest(w, "invalid request id")
		return
	}

	if err := s.friends.WithdrawRequest(r.Context(), id, user.ID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListFriends handles GET /friends.
func (s *Server) ListFriends(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	friends, err := s.friends.ListFriends(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toUserResponses(friends))
}

// RemoveFriend handles DELETE /friends/{friendId}.
// Unfriending is symmetric: both directions of the friendship are removed.
func (s *Server) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	id, err := pathUUID(r, "friendId")
	if err != nil {
		badRequest(w, "invalid friend id")
		return
	}

	if err := s.friends.RemoveFriend(r.Context(), user.ID, id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
