package handlers

import (
	"net/http"

	"github.com/akinalp/velo/middleware"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/services"
)

// UnreadHandler, unread ledger endpoint'leri.
type UnreadHandler struct {
	unread *services.UnreadService
}

// NewUnreadHandler, yeni bir UnreadHandler oluşturur.
func NewUnreadHandler(unread *services.UnreadService) *UnreadHandler {
	return &UnreadHandler{unread: unread}
}

// List: GET /api/unread
// Client login/reconnect'te tüm badge'leri bununla kurar.
func (h *UnreadHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	states, err := h.unread.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, states)
}

// Get: GET /api/channels/{id}/unread
func (h *UnreadHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	state, err := h.unread.GetForChannel(r.Context(), claims.UserID, r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, state)
}

// MarkRead: POST /api/channels/{id}/read
//
// Explicit read-acknowledgement: kanal "açık olduğu için" otomatik okunmuş
// SAYILMAZ — client kanalı gerçekten görüntülediğinde bu endpoint'i çağırır.
// İdempotent: zaten sıfır olan sayaç için no-op.
func (h *UnreadHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	if err := h.unread.MarkRead(r.Context(), claims.UserID, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"status": "read"})
}
