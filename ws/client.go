package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/akinalp/velo/models"
)

const (
	// writeWait, tek bir frame yazımı için izin verilen süre.
	writeWait = 10 * time.Second

	// pongWait, client'tan yaşam belirtisi bekleme süresi.
	// Bu süre içinde pong veya heartbeat gelmezse bağlantı ölü sayılır.
	pongWait = 60 * time.Second

	// pingPeriod, pongWait'ten KISA olmalı — ping gidip pong dönecek
	// kadar pay bırakılır.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize, client'tan kabul edilen maksimum frame boyutu.
	maxMessageSize = 4096

	// sendBufferSize, client başına bekleyen event kuyruğu.
	// Dolarsa client düşürülür (bkz. Hub.deliver).
	sendBufferSize = 256
)

// Client, tek bir WebSocket bağlantısını temsil eder.
// Her client iki goroutine çalıştırır: ReadPump (client→server) ve
// WritePump (server→client). conn'a SADECE bu ikisi dokunur —
// gorilla/websocket eşzamanlı yazmayı desteklemez.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	userID   string
	username string
}

// newClient, bağlantıyı sarar ve hub'a kaydeder.
func newClient(hub *Hub, conn *websocket.Conn, claims *models.TokenClaims) *Client {
	c := &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		userID:   claims.UserID,
		username: claims.Username,
	}
	hub.register(c)
	return c
}

// ReadPump, client'tan gelen frame'leri okur ve op'a göre işler.
// Bağlantı kopunca (veya herhangi bir okuma hatasında) client hub'dan
// düşürülür — defer zinciri temizliği garantiler.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error: user=%s err=%v", c.userID, err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			continue // bozuk frame sessizce atlanır
		}
		c.handleEvent(&event)
	}
}

// handleEvent, client op'larını yönlendirir.
func (c *Client) handleEvent(event *Event) {
	var payload inboundPayload
	if len(event.Data) > 0 {
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return
		}
	}

	switch event.Op {
	case OpHeartbeat:
		// Heartbeat de yaşam belirtisidir — read deadline yenilenir.
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.sendEvent(OpHeartbeatAck, nil)

	case OpSubscribe:
		if payload.ChannelID != "" {
			c.hub.Subscribe(c, payload.ChannelID)
		}

	case OpUnsubscribe:
		if payload.ChannelID != "" {
			c.hub.Unsubscribe(c, payload.ChannelID)
		}

	case OpTyping:
		if payload.ChannelID != "" && c.hub.OnTyping != nil {
			c.hub.OnTyping(payload.ChannelID, c.userID, c.username, payload.Typing)
		}

	case OpPresenceUpdate:
		status := models.UserStatus(payload.Status)
		if status.Valid() && c.hub.OnStatusChange != nil {
			c.hub.OnStatusChange(c.userID, status)
		}
	}
}

// sendEvent, tek client'a event gönderir (hub broadcast'i değil).
func (c *Client) sendEvent(op string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	frame, err := json.Marshal(Event{Op: op, Data: raw, Seq: c.hub.NextSeq()})
	if err != nil {
		return
	}
	c.hub.deliver(c, frame)
}

// WritePump, send channel'ından gelen frame'leri socket'e yazar ve
// periyodik ping atar. Channel kapanınca (unregister) close frame
// gönderip çıkar.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
