package main

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/akinalp/velo/middleware"
	"github.com/akinalp/velo/ws"
)

// initRoutes, tüm HTTP route'larını kurar ve middleware zincirini sarar.
//
// Go 1.22+ ServeMux pattern'ları kullanılır: "METHOD /path/{param}".
// Route tanımları tek dosyada toplanır — API yüzeyi bir bakışta görünür.
func initRoutes(h *appHandlers, authMW *middleware.AuthMiddleware, wsHandler *ws.Handler) http.Handler {
	mux := http.NewServeMux()

	// WebSocket — auth'u query param token ile kendisi yapar.
	mux.Handle("GET /ws", wsHandler)

	// Korumalı API route'ları.
	api := http.NewServeMux()

	// Sunucular ve kanallar
	api.HandleFunc("POST /api/servers", h.servers.Create)
	api.HandleFunc("GET /api/servers", h.servers.List)
	api.HandleFunc("GET /api/servers/{id}", h.servers.Get)
	api.HandleFunc("POST /api/servers/{id}/join", h.servers.Join)
	api.HandleFunc("POST /api/servers/{id}/channels", h.servers.CreateChannel)
	api.HandleFunc("GET /api/servers/{id}/channels", h.servers.ListChannels)
	api.HandleFunc("GET /api/channels/{id}", h.channels.Get)

	// Mesajlar
	api.HandleFunc("POST /api/channels/{id}/messages", h.messages.Create)
	api.HandleFunc("GET /api/channels/{id}/messages", h.messages.List)

	// Unread ledger
	api.HandleFunc("GET /api/unread", h.unread.List)
	api.HandleFunc("GET /api/channels/{id}/unread", h.unread.Get)
	api.HandleFunc("POST /api/channels/{id}/read", h.unread.MarkRead)

	// Bildirimler ve presence
	api.HandleFunc("GET /api/notifications", h.notifications.Feed)
	api.HandleFunc("GET /api/presence", h.presence.Snapshot)
	api.HandleFunc("GET /api/channels/{id}/typing", h.presence.Typing)

	// Arkadaşlık istekleri
	api.HandleFunc("POST /api/friends/requests", h.friendships.Send)
	api.HandleFunc("GET /api/friends/requests", h.friendships.ListIncoming)
	api.HandleFunc("POST /api/friends/requests/{id}/accept", h.friendships.Accept)
	api.HandleFunc("POST /api/friends/requests/{id}/decline", h.friendships.Decline)

	mux.Handle("/api/", authMW.Handler(api))

	// Health check — auth gerektirmez, load balancer probe'ları için.
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// CORS: browser client'ların farklı origin'den erişimi için.
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	return c.Handler(mux)
}
