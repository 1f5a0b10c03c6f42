package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"

	"github.com/akinalp/velo/models"
)

// Hub, tüm aktif WebSocket bağlantılarının kayıt merkezidir.
//
// İki registry tutar:
//   - userClients: user ID → bağlantı kümesi. Bir kullanıcının birden
//     fazla cihazı/sekmesi olabilir — hepsi aynı user-hedefli event'leri alır.
//   - channelSubs: kanal ID → aboneler. Kanal-hedefli event'ler (mesaj,
//     typing) sadece o kanalı AÇIK tutan client'lara gider.
//
// Tüm erişim mutex ile korunur. Broadcast metodları herhangi bir
// goroutine'den güvenle çağrılabilir (service'ler, callback'ler, pumps).
type Hub struct {
	mu          sync.RWMutex
	clients     map[*Client]bool
	userClients map[string]map[*Client]bool
	channelSubs map[string]map[*Client]bool

	// seq, server → client event'lerinin global sıra numarası.
	// atomic.Uint64 — mutex olmadan artırılabilir.
	seq atomic.Uint64

	// Callback'ler wiring sırasında atanır (bkz. init_callbacks.go).
	// Hub, service katmanını import ETMEZ — bağımlılık oku tersine
	// çevrilir, circular import önlenir.
	OnTyping       func(channelID, userID, username string, typing bool)
	OnStatusChange func(userID string, status models.UserStatus)
	OnConnect      func(userID string)
	OnDisconnect   func(userID string)
}

// NewHub, boş bir Hub oluşturur.
func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		userClients: make(map[string]map[*Client]bool),
		channelSubs: make(map[string]map[*Client]bool),
	}
}

// NextSeq, bir sonraki event sıra numarasını üretir.
func (h *Hub) NextSeq() uint64 {
	return h.seq.Add(1)
}

// CurrentSeq, en son üretilen sıra numarasını döner (ready event'i için).
func (h *Hub) CurrentSeq() uint64 {
	return h.seq.Load()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	if h.userClients[c.userID] == nil {
		h.userClients[c.userID] = make(map[*Client]bool)
	}
	h.userClients[c.userID][c] = true
	first := len(h.userClients[c.userID]) == 1
	h.mu.Unlock()

	if first && h.OnConnect != nil {
		h.OnConnect(c.userID)
	}
	log.Printf("[ws] client connected: user=%s", c.userID)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if !h.clients[c] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	if set := h.userClients[c.userID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.userClients, c.userID)
		}
	}
	for channelID, subs := range h.channelSubs {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.channelSubs, channelID)
		}
	}
	last := h.userClients[c.userID] == nil
	// close mutlaka write lock altında yapılır — deliver send'i read lock
	// altında yaptığı için "send on closed channel" panic'i imkansızdır.
	close(c.send)
	h.mu.Unlock()

	// Kullanıcının SON bağlantısı koptuğunda presence katmanına haber ver.
	if last && h.OnDisconnect != nil {
		h.OnDisconnect(c.userID)
	}
	log.Printf("[ws] client disconnected: user=%s", c.userID)
}

// Subscribe, client'ı bir kanalın event'lerine abone eder.
func (h *Hub) Subscribe(c *Client, channelID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[c] {
		return
	}
	if h.channelSubs[channelID] == nil {
		h.channelSubs[channelID] = make(map[*Client]bool)
	}
	h.channelSubs[channelID][c] = true
}

// Unsubscribe, aboneliği kaldırır.
func (h *Hub) Unsubscribe(c *Client, channelID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs := h.channelSubs[channelID]; subs != nil {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.channelSubs, channelID)
		}
	}
}

// BroadcastToChannel, kanal abonelerine event gönderir.
func (h *Hub) BroadcastToChannel(channelID, op string, data any) {
	frame := h.marshal(op, data)
	if frame == nil {
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.channelSubs[channelID]))
	for c := range h.channelSubs[channelID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		h.deliver(c, frame)
	}
}

// BroadcastToUser, kullanıcının TÜM bağlantılarına event gönderir
// (unread_update, notification gibi kişiye özel event'ler).
func (h *Hub) BroadcastToUser(userID, op string, data any) {
	frame := h.marshal(op, data)
	if frame == nil {
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.userClients[userID]))
	for c := range h.userClients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		h.deliver(c, frame)
	}
}

// BroadcastToAll, tüm bağlı client'lara event gönderir (presence değişimi).
func (h *Hub) BroadcastToAll(op string, data any) {
	frame := h.marshal(op, data)
	if frame == nil {
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		h.deliver(c, frame)
	}
}

// deliver, frame'i client'ın send buffer'ına bırakır.
//
// Buffer doluysa client YAVAŞTIR: event'i bekletmek yerine bağlantı
// kapatılır (drop-and-resync). Client reconnect'te ready event'indeki
// Seq farkından kopukluğu anlar ve REST üzerinden güncel durumu çeker.
// Yavaş bir client hiçbir zaman hub'ı veya diğer client'ları bloklamaz.
func (h *Hub) deliver(c *Client, frame []byte) {
	full := false

	// Send, read lock altında yapılır: kayıttan düşmüş client'a (kapalı
	// channel'a) yazmayı engeller — unregister close'u write lock altında yapar.
	h.mu.RLock()
	if h.clients[c] {
		select {
		case c.send <- frame:
		default:
			full = true
		}
	}
	h.mu.RUnlock()

	if full {
		log.Printf("[ws] send buffer full, dropping client: user=%s", c.userID)
		h.unregister(c)
	}
}

func (h *Hub) marshal(op string, data any) []byte {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("[ws] failed to marshal event data: op=%s err=%v", op, err)
		return nil
	}
	frame, err := json.Marshal(Event{Op: op, Data: raw, Seq: h.NextSeq()})
	if err != nil {
		log.Printf("[ws] failed to marshal event: op=%s err=%v", op, err)
		return nil
	}
	return frame
}

// OnlineUserIDs, en az bir aktif bağlantısı olan kullanıcıları döner.
func (h *Hub) OnlineUserIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.userClients))
	for id := range h.userClients {
		ids = append(ids, id)
	}
	return ids
}

// Shutdown, tüm client bağlantılarını kapatır (graceful shutdown).
func (h *Hub) Shutdown() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.unregister(c)
		_ = c.conn.Close()
	}
	log.Printf("[ws] hub shut down, %d clients closed", len(clients))
}
