package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/velo/middleware"
	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/services"
)

// ServerHandler, sunucu endpoint'leri.
type ServerHandler struct {
	servers  *services.ServerService
	channels *services.ChannelService
}

// NewServerHandler, yeni bir ServerHandler oluşturur.
func NewServerHandler(servers *services.ServerService, channels *services.ChannelService) *ServerHandler {
	return &ServerHandler{servers: servers, channels: channels}
}

// Create: POST /api/servers
func (h *ServerHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	var req models.CreateServerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	server, err := h.servers.Create(r.Context(), claims.UserID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, server)
}

// List: GET /api/servers — kullanıcının üyesi olduğu sunucular.
func (h *ServerHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	servers, err := h.servers.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, servers)
}

// Get: GET /api/servers/{id}
func (h *ServerHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	server, err := h.servers.GetByID(r.Context(), r.PathValue("id"), claims.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, server)
}

// Join: POST /api/servers/{id}/join
// Üyelik anından itibaren "@everyone" bu kullanıcıyı da kapsar.
func (h *ServerHandler) Join(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	if err := h.servers.Join(r.Context(), r.PathValue("id"), claims.UserID); err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"status": "joined"})
}

// CreateChannel: POST /api/servers/{id}/channels
func (h *ServerHandler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	var req models.CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	channel, err := h.channels.Create(r.Context(), r.PathValue("id"), claims.UserID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, channel)
}

// ListChannels: GET /api/servers/{id}/channels
func (h *ServerHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	channels, err := h.channels.ListByServer(r.Context(), r.PathValue("id"), claims.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, channels)
}
