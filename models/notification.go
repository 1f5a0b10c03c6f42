// Package models — Notification tagged union.
//
// Bildirimler iki kaynaktan gelir ve tek bir akışta birleşir:
// 1. Mention: unread ledger'da has_mention=true olan kanallar
// 2. FriendRequest: bekleyen gelen arkadaşlık istekleri
//
// Neden class hierarchy değil tagged union?
// Go'da inheritance yoktur; varyantlar tek struct'ta Type discriminator
// + varyanta özgü opsiyonel alanlarla ifade edilir. Aggregation sadece
// CreatedAt'e bakarak sıralar, varyant tipini umursamaz.
package models

import "time"

// NotificationType, bildirimin hangi varyant olduğunu belirtir.
type NotificationType string

const (
	NotificationMention       NotificationType = "mention"
	NotificationFriendRequest NotificationType = "friend_request"
)

// Notification, feed'deki tek bir bildirimi temsil eder.
//
// Varyant alanları:
//   - mention:        ChannelID dolu (hangi kanalda mention'landın)
//   - friend_request: RequestID, FromUserID, FromUsername dolu
//
// Read alanı sadece client session'ında yaşar — server durable "okundu"
// state'i TUTMAZ. Feed her seferinde kaynaklardan yeniden hesaplanır.
type Notification struct {
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`

	// Mention varyantı
	ChannelID string `json:"channel_id,omitempty"`

	// FriendRequest varyantı
	RequestID    string  `json:"request_id,omitempty"`
	FromUserID   string  `json:"from_user_id,omitempty"`
	FromUsername string  `json:"from_username,omitempty"`
	FromAvatar   *string `json:"from_avatar,omitempty"`
}
