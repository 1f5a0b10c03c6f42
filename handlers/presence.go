package handlers

import (
	"net/http"

	"github.com/akinalp/velo/middleware"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/services"
)

// PresenceHandler, presence snapshot endpoint'i.
//
// Asıl presence akışı WebSocket üzerindendir (presence_update event'leri);
// bu endpoint client'ın İLK yüklemede mevcut durumu çekmesi içindir.
type PresenceHandler struct {
	presence *services.PresenceService
}

// NewPresenceHandler, yeni bir PresenceHandler oluşturur.
func NewPresenceHandler(presence *services.PresenceService) *PresenceHandler {
	return &PresenceHandler{presence: presence}
}

// Snapshot: GET /api/presence
func (h *PresenceHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}
	pkg.JSON(w, http.StatusOK, h.presence.Snapshot())
}

// Typing: GET /api/channels/{id}/typing
// Kanalda şu an yazmakta olan kullanıcılar — ilk yükleme senkronu için.
func (h *PresenceHandler) Typing(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string][]string{
		"typing": h.presence.TypingUsers(r.PathValue("id")),
	})
}
