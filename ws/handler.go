package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/akinalp/velo/models"
)

// TokenValidator, JWT doğrulama bağımlılığı.
// middleware.AuthMiddleware ile aynı doğrulayıcı kullanılır ama ws
// katmanı middleware'i import etmez — küçük bir interface yeter.
type TokenValidator interface {
	ValidateToken(tokenString string) (*models.TokenClaims, error)
}

// Handler, HTTP isteğini WebSocket bağlantısına yükseltir.
type Handler struct {
	hub       *Hub
	validator TokenValidator
	upgrader  websocket.Upgrader
}

// NewHandler, yeni bir WebSocket handler oluşturur.
func NewHandler(hub *Hub, validator TokenValidator) *Handler {
	return &Handler{
		hub:       hub,
		validator: validator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin kontrolü CORS katmanında yapılır; ws upgrade'i
			// token doğrulamasına güvenir.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// readyPayload, bağlantı kurulunca gönderilen ilk event'in içeriği.
// Seq: client bir önceki oturumdan hatırladığı sıra numarasıyla
// karşılaştırır — fark varsa REST'ten resync eder.
type readyPayload struct {
	UserID string   `json:"user_id"`
	Seq    uint64   `json:"seq"`
	Online []string `json:"online"` // şu an bağlı kullanıcılar
}

// ServeHTTP: GET /ws?token=<jwt>
//
// Browser WebSocket API'si custom header DESTEKLEMEZ — token bu yüzden
// query parameter ile taşınır. Doğrulama upgrade'den ÖNCE yapılır:
// geçersiz token socket bile açamaz.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.validator.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	client := newClient(h.hub, conn, claims)

	// İlk frame: ready. Client bununla resync kararını verir.
	data, _ := json.Marshal(readyPayload{
		UserID: claims.UserID,
		Seq:    h.hub.CurrentSeq(),
		Online: h.hub.OnlineUserIDs(),
	})
	frame, _ := json.Marshal(Event{Op: OpReady, Data: data, Seq: h.hub.NextSeq()})
	h.hub.deliver(client, frame)

	go client.WritePump()
	go client.ReadPump()
}
