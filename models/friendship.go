// Package models — FriendRequest domain modeli.
//
// Arkadaşlık isteği sistemi tek tablo üzerinden çalışır:
// - "pending": İstek gönderildi, henüz yanıtlanmadı
// - "accepted": İstek kabul edildi
// - "declined": İstek reddedildi
//
// sender_id her zaman isteği gönderen, receiver_id hedef kullanıcıdır.
// Notification feed'i pending gelen istekleri mention bildirimleriyle
// birleştirerek tek bir zaman sıralı akış üretir.
package models

import (
	"fmt"
	"strings"
	"time"
)

// FriendRequestStatus, isteğin durumunu temsil eden typed constant.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestDeclined FriendRequestStatus = "declined"
)

// FriendRequest, bir arkadaşlık isteği kaydını temsil eder.
type FriendRequest struct {
	ID         string              `json:"id"`
	SenderID   string              `json:"sender_id"`
	ReceiverID string              `json:"receiver_id"`
	Status     FriendRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

// FriendRequestWithSender, gelen isteği gönderen kullanıcının bilgisiyle
// döner (JOIN ile gelir). Notification feed ve istek listesi için.
type FriendRequestWithSender struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	SenderAvatar   *string   `json:"sender_avatar"`
	CreatedAt      time.Time `json:"created_at"`
}

// SendFriendRequestRequest, arkadaşlık isteği gönderme payload'ı.
// Username ile arama yapılır — ID frontend'de bilinmeyebilir.
type SendFriendRequestRequest struct {
	Username string `json:"username"`
}

// Validate, SendFriendRequestRequest kontrolü.
func (r *SendFriendRequestRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}
