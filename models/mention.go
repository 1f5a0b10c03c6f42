package models

import "time"

// MentionRecord, bir mesajın bir alıcıya yaptığı mention'ı temsil eder.
// DB'deki "message_mentions" tablosunun Go karşılığı.
//
// (message_id, user_id) çifti başına bir satır — aynı kullanıcı bir
// mesajda iki kez bahsedilse bile tek kayıt oluşur (resolver dedup +
// INSERT OR IGNORE çift emniyet). Kayıtlar append-only'dir: mesaj
// ingest'i ile oluşur, sonradan değiştirilmez veya silinmez.
type MentionRecord struct {
	MessageID string    `json:"message_id"`
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"` // Mention'lanan alıcı
	CreatedAt time.Time `json:"created_at"`
}
