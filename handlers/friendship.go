package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/velo/middleware"
	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/services"
)

// FriendshipHandler, arkadaşlık isteği endpoint'leri.
type FriendshipHandler struct {
	friendships *services.FriendshipService
}

// NewFriendshipHandler, yeni bir FriendshipHandler oluşturur.
func NewFriendshipHandler(friendships *services.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendships: friendships}
}

// Send: POST /api/friends/requests
func (h *FriendshipHandler) Send(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	var req models.SendFriendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.friendships.Send(r.Context(), claims.UserID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, request)
}

// ListIncoming: GET /api/friends/requests
func (h *FriendshipHandler) ListIncoming(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	requests, err := h.friendships.ListIncoming(r.Context(), claims.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, requests)
}

// Accept: POST /api/friends/requests/{id}/accept
func (h *FriendshipHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, true)
}

// Decline: POST /api/friends/requests/{id}/decline
func (h *FriendshipHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, false)
}

func (h *FriendshipHandler) respond(w http.ResponseWriter, r *http.Request, accept bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	request, err := h.friendships.Respond(r.Context(), r.PathValue("id"), claims.UserID, accept)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, request)
}
