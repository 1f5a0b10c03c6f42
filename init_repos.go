package main

import (
	"github.com/akinalp/velo/database"
	"github.com/akinalp/velo/repository"
)

// appRepos, tüm repository'leri tek struct'ta toplar.
// main.go'nun wire-up kodunu okunur tutmak için katman başına bir
// init fonksiyonu kullanılır.
type appRepos struct {
	users       repository.UserRepository
	servers     repository.ServerRepository
	channels    repository.ChannelRepository
	messages    repository.MessageRepository
	mentions    repository.MentionRepository
	unread      repository.UnreadRepository
	friendships repository.FriendshipRepository
}

// initRepos, repository katmanını kurar.
func initRepos(db *database.DB) *appRepos {
	return &appRepos{
		users:       repository.NewUserRepository(db.Conn),
		servers:     repository.NewServerRepository(db.Conn),
		channels:    repository.NewChannelRepository(db.Conn),
		messages:    repository.NewMessageRepository(db.Conn),
		mentions:    repository.NewMentionRepository(db.Conn),
		unread:      repository.NewUnreadRepository(db.Conn),
		friendships: repository.NewFriendshipRepository(db.Conn),
	}
}
