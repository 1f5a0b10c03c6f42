package main

import (
	"github.com/akinalp/velo/config"
	"github.com/akinalp/velo/database"
	"github.com/akinalp/velo/services"
	"github.com/akinalp/velo/ws"
)

// appServices, service katmanının tamamı.
type appServices struct {
	auth          *services.AuthService
	users         *services.UserService
	servers       *services.ServerService
	channels      *services.ChannelService
	resolver      *services.MentionResolverService
	unread        *services.UnreadService
	messages      *services.MessageService
	presence      *services.PresenceService
	notifications *services.NotificationService
	friendships   *services.FriendshipService
}

// initServices, service katmanını kurar.
// Hub, EventPublisher olarak geçer — service'ler ws'nin iç yapısını bilmez.
func initServices(cfg *config.Config, db *database.DB, repos *appRepos, hub *ws.Hub) *appServices {
	resolver := services.NewMentionResolverService(repos.users, repos.servers)
	unread := services.NewUnreadService(repos.unread, hub)

	return &appServices{
		auth:     services.NewAuthService(cfg.JWT.Secret),
		users:    services.NewUserService(repos.users),
		servers:  services.NewServerService(db.Conn, repos.servers, repos.channels),
		channels: services.NewChannelService(db.Conn, repos.channels, repos.servers),
		resolver: resolver,
		unread:   unread,
		messages: services.NewMessageService(
			repos.messages, repos.mentions, repos.channels, repos.servers,
			resolver, unread, hub,
		),
		presence:      services.NewPresenceService(hub, cfg.Presence.TypingTTL),
		notifications: services.NewNotificationService(repos.unread, repos.friendships),
		friendships:   services.NewFriendshipService(repos.friendships, repos.users, hub),
	}
}

// close, arka plan goroutine'li service'leri durdurur (graceful shutdown).
func (s *appServices) close() {
	s.resolver.Close()
	s.users.Close()
}
