package handlers

import (
	"net/http"

	"github.com/akinalp/velo/middleware"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/services"
)

// NotificationHandler, bildirim feed endpoint'i.
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler, yeni bir NotificationHandler oluşturur.
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Feed: GET /api/notifications
// Mention + arkadaşlık isteği bildirimlerinin zaman sıralı birleşimi.
func (h *NotificationHandler) Feed(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		pkg.Error(w, pkg.ErrUnauthorized)
		return
	}

	feed, err := h.notifications.Feed(r.Context(), claims.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	pkg.JSON(w, http.StatusOK, feed)
}
