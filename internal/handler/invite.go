package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/excursions-app/backend/internal/domain"
	"github.com/excursions-app/backend/internal/middleware"
)

type sendInviteRequest struct {
	Receiver uuid.UUID `json:"receiver"`
}

type inviteResponse struct {
	ID        uuid.UUID `json:"id"`
	Sender    uuid.UUID `json:"sender"`
	Receiver  uuid.UUID `json:"receiver"`
	Excursion uuid.UUID `json:"excursion"`
	CreatedAt time.Time `json:"createdAt"`
}

func toInviteResponse(inv domain.ExcursionInvite) inviteResponse {
	return inviteResponse{
		ID:        inv.ID,
		Sender:    inv.SenderID,
		Receiver:  inv.ReceiverID,
		Excursion: inv.ExcursionID,
		CreatedAt: inv.CreatedAt,
	}
}

type inviteMailboxResponse struct {
	Incoming []inviteResponse `json:"incoming"`
	Outgoing []inviteResponse `json:"outgoing"`
}

// SendInvite handles POST /excursions/{excursionId}/invites.
// Only the excursion host may invite. Inviting an existing participant or
// re-inviting someone with a pending invite yields 409.
func (s *Server) SendInvite(w http.ResponseWriter, r *http.Request) {
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

	var req sendInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.invites.Send(r.Context(), user.ID, req.Receiver, excursionID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toInviteResponse(created))
}

// ListInvites handles GET /invites/excursions, returning the caller's
// pending invites split into incoming and outgoing.
func (s *Server) ListInvites(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	mailbox, err := s.invites.ListForUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := inviteMailboxResponse{
		Incoming: make([]inviteResponse, 0, len(mailbox.Incoming)),
		Outgoing: make([]inviteResponse, 0, len(mailbox.Outgoing)),
	}
	for _, inv := range mailbox.Incoming {
		resp.Incoming = append(resp.Incoming, toInviteResponse(inv))
	}
	for _, inv := range mailbox.Outgoing {
		resp.Outgoing = append(resp.Outgoing, toInviteResponse(inv))
	}
	respondJSON(w, http.StatusOK, resp)
}

// ResolveInvite handles PATCH /invites/excursions/{inviteId}.
// Receiver only. Accepting joins the excursion; either way the invite is
// gone afterwards, so a second resolve yields 404.
func (s *Server) ResolveInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	id, err := pathUUID(r, "inviteId")
	if err != nil {
		badRequest(w, "invalid invite id")
		return
	}

	var req resolveRequest
	if err := decodeJSON(r, &req); err != nil || req.Accept == nil {
		badRequest(w, "accept field is required")
		return
	}

	if err := s.invites.Resolve(r.Context(), id, user.ID, *req.Accept); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// WithdrawInvite handles DELETE /invites/excursions/{inviteId}.
// Sender only.
func (s *Server) WithdrawInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondError(w, r, domain.ErrAuth)
		return
	}

	id, err := pathUUID(r, "inviteId")
	if err != nil {
		badRequest(w, "invalid invite id")
		return
	}

	if err := s.invites.Withdraw(r.Context(), id, user.ID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
