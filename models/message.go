package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Message, bir chat mesajını temsil eder.
// DB'deki "messages" tablosunun Go karşılığı.
//
// Mesaj oluşturulduktan sonra IMMUTABLE'dır — ID ve created_at kimliği
// ingest sırasında bir kez atanır, sonradan değişmez.
//
// Author alanı JOIN sorgusu ile doldurulur — veritabanında ayrı tablodadır
// ama API response'unda birlikte döner. Mentions alanı, ingest sırasında
// çözümlenen alıcı ID'leridir (@username parse + resolve sonucu).
type Message struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    *User     `json:"author,omitempty"` // JOIN ile gelen yazar bilgisi
	Mentions  []string  `json:"mentions"`         // Çözümlenmiş alıcı kullanıcı ID'leri
}

// MessagePage, cursor-based pagination (sayfalama) sonucu.
//
// Offset-based ("LIMIT 50 OFFSET 100") yerine "bu ID'den önceki 50 mesajı
// getir" kullanılır — yeni mesaj eklendiğinde sayfa kayması olmaz.
// Reconnect resync de bu path'ten geçer: client kopup geri geldiğinde
// backlog replay YOKTUR, güncel durumu buradan fetch eder.
type MessagePage struct {
	Messages []Message `json:"messages"`
	HasMore  bool      `json:"has_more"`
}

// CreateMessageRequest, yeni mesaj gönderme isteği.
type CreateMessageRequest struct {
	Content string `json:"content"`
}

// Validate, CreateMessageRequest'in geçerli olup olmadığını kontrol eder.
// İçerik trim sonrası 1-2000 karakter arası olmalı.
// Boş içerik ingest'in İLK aşamasında reddedilir — hiçbir yan etki oluşmaz.
func (r *CreateMessageRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	n := utf8.RuneCountInString(r.Content)
	if n == 0 {
		return fmt.Errorf("message content is empty")
	}
	if n > 2000 {
		return fmt.Errorf("message content must be at most 2000 characters")
	}
	return nil
}
