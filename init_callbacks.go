package main

import (
	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/services"
	"github.com/akinalp/velo/ws"
)

// initCallbacks, hub'ın client event'lerini presence service'e bağlar.
//
// Bağımlılık yönü bilinçli terstir: ws paketi services'i import ETMEZ —
// hub sadece function field'lar tanımlar, bağlama burada yapılır.
// Böylece ws ↔ services arasında circular import oluşmaz.
func initCallbacks(hub *ws.Hub, presence *services.PresenceService) {
	hub.OnTyping = func(channelID, userID, username string, typing bool) {
		presence.TrackTyping(channelID, userID, username, typing)
	}
	hub.OnStatusChange = func(userID string, status models.UserStatus) {
		presence.SetStatus(userID, status)
	}
	hub.OnConnect = presence.HandleConnect
	hub.OnDisconnect = presence.HandleDisconnect
}
