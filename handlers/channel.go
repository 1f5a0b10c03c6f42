package handlers

import (
	"net/http"

	"github.com/akinalp/velo/middleware"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/services"
)

// ChannelHandler, tekil kanal endpoint'leri.
type ChannelHandler struct {
	channels *services.ChannelService
}

// NewChannelHandler, yeni bir ChannelHandler oluşturur.
func NewChannelHandler(channels *services.ChannelService) *ChannelHandler {
	return &ChannelHandler{channels: channels}
}

// Get: GET /api/channels/{id}
func (h *ChannelHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	channel, err := h.channels.GetByID(r.Context(), r.PathValue("id"), claims.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, channel)
}
