// Package ws, gerçek zamanlı fan-out katmanıdır (WebSocket).
//
// Tasarım: gorilla/websocket + hub pattern.
// Hub tüm bağlı client'ları tanır; her client kendi okuma/yazma
// goroutine çiftini (ReadPump/WritePump) çalıştırır. Handler'lar ve
// service'ler socket'lere doğrudan DOKUNMAZ — event'i hub'a verir,
// hub dağıtır.
package ws

import "encoding/json"

// Op kodları — client ↔ server arasındaki event tipleri.
//
// Client → server: heartbeat, subscribe, unsubscribe, typing,
// presence_update. Server → client: geri kalanlar.
const (
	OpHeartbeat      = "heartbeat"
	OpHeartbeatAck   = "heartbeat_ack"
	OpReady          = "ready"
	OpSubscribe      = "subscribe"
	OpUnsubscribe    = "unsubscribe"
	OpTyping         = "typing"
	OpPresenceUpdate = "presence_update"

	OpMessageCreate = "message_create"
	OpTypingStart   = "typing_start"
	OpTypingStop    = "typing_stop"
	OpUnreadUpdate  = "unread_update"
	OpNotification  = "notification"
)

// Event, tek bir WebSocket frame'inin zarfıdır.
//
// Seq, server → client event'lerinde monoton artan global sıra
// numarasıdır. Client reconnect'te son gördüğü Seq ile güncel Seq'i
// karşılaştırıp "arayı kaçırdım mı?" kararını verir — kaçırdıysa
// backlog replay DEĞİL, REST üzerinden resync yapar.
type Event struct {
	Op   string          `json:"op"`
	Data json.RawMessage `json:"d,omitempty"`
	Seq  uint64          `json:"s,omitempty"`
}

// inboundPayload, client'tan gelen event'lerin data alanı.
// Tüm client op'ları aynı gevşek şemayı paylaşır — op'a göre
// ilgili alanlar okunur.
type inboundPayload struct {
	ChannelID string `json:"channel_id,omitempty"`
	Typing    bool   `json:"typing,omitempty"`
	Status    string `json:"status,omitempty"`
}
