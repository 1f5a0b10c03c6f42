package main

import (
	"time"

	"github.com/akinalp/velo/handlers"
	"github.com/akinalp/velo/pkg/ratelimit"
)

// appHandlers, HTTP handler katmanının tamamı.
type appHandlers struct {
	servers       *handlers.ServerHandler
	channels      *handlers.ChannelHandler
	messages      *handlers.MessageHandler
	unread        *handlers.UnreadHandler
	notifications *handlers.NotificationHandler
	presence      *handlers.PresenceHandler
	friendships   *handlers.FriendshipHandler

	messageLimiter *ratelimit.MessageRateLimiter
}

// initHandlers, handler katmanını kurar.
// Mesaj rate limit: 5 saniyede 5 mesaj, aşımda 15 saniye cooldown.
func initHandlers(svcs *appServices) *appHandlers {
	messageLimiter := ratelimit.NewMessageRateLimiter(5, 5*time.Second, 15*time.Second)

	return &appHandlers{
		servers:        handlers.NewServerHandler(svcs.servers, svcs.channels),
		channels:       handlers.NewChannelHandler(svcs.channels),
		messages:       handlers.NewMessageHandler(svcs.messages, messageLimiter),
		unread:         handlers.NewUnreadHandler(svcs.unread),
		notifications:  handlers.NewNotificationHandler(svcs.notifications),
		presence:       handlers.NewPresenceHandler(svcs.presence),
		friendships:    handlers.NewFriendshipHandler(svcs.friendships),
		messageLimiter: messageLimiter,
	}
}

// close, rate limiter'ın temizlik goroutine'ini durdurur.
func (h *appHandlers) close() {
	h.messageLimiter.Close()
}
