package models

import "time"

// UnreadCounter, bir kullanıcının belirli bir kanaldaki "görülmemiş
// aktivite" sayacını temsil eder. DB'deki "unread_counters" tablosunun
// Go karşılığı — PRIMARY KEY (user_id, channel_id).
//
// Invariant'lar:
//   - Count, kullanıcı read-acknowledgement yapana kadar monoton artar.
//   - HasMention true ⇔ görülmemiş mesajlardan en az biri kullanıcıyı
//     (doğrudan veya @everyone ile) mention'lamıştır.
//   - Satır ilk görülmemiş mesajla lazy oluşur; tek yazarı ledger'ın
//     atomik Bump operasyonudur. MarkRead dışında asla azalmaz.
//
// UpdatedAt, notification feed'inin zaman sıralaması için kullanılır
// (son mention aktivitesinin zamanı).
type UnreadCounter struct {
	UserID     string    `json:"user_id"`
	ChannelID  string    `json:"channel_id"`
	Count      int       `json:"count"`
	HasMention bool      `json:"has_mention"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UnreadState, tek bir kanalın unread özeti — API response ve WS
// "unread_update" event payload'ı olarak kullanılır.
type UnreadState struct {
	ChannelID  string `json:"channel_id"`
	Count      int    `json:"count"`
	HasMention bool   `json:"has_mention"`
}
