package services

import (
	"sync"
	"time"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/ws"
)

// typingKey, (kanal, kullanıcı) çiftini tek map key'inde birleştirir.
type typingKey struct {
	channelID string
	userID    string
}

// typingEvent, typing_start/typing_stop event'lerinin payload'ı.
type typingEvent struct {
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username,omitempty"`
}

// presenceEvent, presence_update event'inin payload'ı.
type presenceEvent struct {
	UserID string            `json:"user_id"`
	Status models.UserStatus `json:"status"`
}

// PresenceService, ephemeral canlılık katmanıdır: typing göstergeleri ve
// online durumları.
//
// HİÇBİR ŞEY KALICI DEĞİLDİR — tüm state bellekte yaşar, DB'ye yazılmaz.
// Process restart'ta herkes offline/sessiz başlar; client'lar reconnect'te
// durumlarını yeniden bildirir. Bu kayıp bir defect değil, tasarımdır.
//
// Typing TTL: her typing sinyali (kanal, kullanıcı) timer'ını yeniden
// kurar. Client explicit stop göndermeden ortadan kaybolsa bile (tab
// kapandı, bağlantı koptu) gösterge TTL sonunda kendiliğinden düşer —
// "hayalet yazıyor" göstergesi kalamaz.
type PresenceService struct {
	publisher EventPublisher
	typingTTL time.Duration

	mu       sync.Mutex
	typing   map[typingKey]*time.Timer
	statuses map[string]models.UserStatus
}

// NewPresenceService, yeni bir PresenceService oluşturur.
// typingTTL konfigürasyondan gelir (PRESENCE_TYPING_TTL_MS, varsayılan 3sn).
func NewPresenceService(publisher EventPublisher, typingTTL time.Duration) *PresenceService {
	return &PresenceService{
		publisher: publisher,
		typingTTL: typingTTL,
		typing:    make(map[typingKey]*time.Timer),
		statuses:  make(map[string]models.UserStatus),
	}
}

// TrackTyping, client'tan gelen typing sinyalini işler.
//
// typing=true: gösterge yoksa typing_start yayınlanır; varsa sadece
// timer yeniden kurulur (yayın tekrarı yok — abonelere spam olmaz).
// typing=false: explicit stop — timer iptal, typing_stop yayını.
func (s *PresenceService) TrackTyping(channelID, userID, username string, typing bool) {
	key := typingKey{channelID: channelID, userID: userID}

	s.mu.Lock()
	timer, active := s.typing[key]

	if !typing {
		if !active {
			s.mu.Unlock()
			return
		}
		timer.Stop()
		delete(s.typing, key)
		s.mu.Unlock()
		s.publisher.BroadcastToChannel(channelID, ws.OpTypingStop, typingEvent{
			ChannelID: channelID, UserID: userID, Username: username,
		})
		return
	}

	if active {
		// Devam eden yazma: timer'ı yeniden kur, yayını tekrarlama.
		timer.Reset(s.typingTTL)
		s.mu.Unlock()
		return
	}

	// time.AfterFunc kendi goroutine'inde çalışır — expire callback'i
	// lock tutmadan yayın yapar.
	s.typing[key] = time.AfterFunc(s.typingTTL, func() {
		s.expireTyping(key, username)
	})
	s.mu.Unlock()

	s.publisher.BroadcastToChannel(channelID, ws.OpTypingStart, typingEvent{
		ChannelID: channelID, UserID: userID, Username: username,
	})
}

// expireTyping, TTL dolunca göstergeyi düşürür.
func (s *PresenceService) expireTyping(key typingKey, username string) {
	s.mu.Lock()
	if _, ok := s.typing[key]; !ok {
		// Explicit stop ile yarıştı ve kaybetti — çift yayın yapma.
		s.mu.Unlock()
		return
	}
	delete(s.typing, key)
	s.mu.Unlock()

	s.publisher.BroadcastToChannel(key.channelID, ws.OpTypingStop, typingEvent{
		ChannelID: key.channelID, UserID: key.userID, Username: username,
	})
}

// SetStatus, kullanıcının durumunu günceller ve yayınlar.
//
// "invisible" seçen kullanıcı diğerlerine "offline" görünür — gerçek
// durum sadece bellekte tutulur, yayına düşmez.
func (s *PresenceService) SetStatus(userID string, status models.UserStatus) {
	if !status.Valid() {
		return
	}

	s.mu.Lock()
	s.statuses[userID] = status
	s.mu.Unlock()

	visible := status
	if status == models.UserStatusInvisible {
		visible = models.UserStatusOffline
	}
	s.publisher.BroadcastToAll(ws.OpPresenceUpdate, presenceEvent{UserID: userID, Status: visible})
}

// HandleConnect, kullanıcının İLK bağlantısı kurulunca çağrılır (hub callback).
func (s *PresenceService) HandleConnect(userID string) {
	s.SetStatus(userID, models.UserStatusOnline)
}

// HandleDisconnect, kullanıcının SON bağlantısı kopunca çağrılır (hub callback).
// Durum silinir, aktif typing göstergeleri anında düşürülür.
func (s *PresenceService) HandleDisconnect(userID string) {
	s.mu.Lock()
	delete(s.statuses, userID)

	var stopped []typingKey
	for key, timer := range s.typing {
		if key.userID == userID {
			timer.Stop()
			delete(s.typing, key)
			stopped = append(stopped, key)
		}
	}
	s.mu.Unlock()

	for _, key := range stopped {
		s.publisher.BroadcastToChannel(key.channelID, ws.OpTypingStop, typingEvent{
			ChannelID: key.channelID, UserID: key.userID,
		})
	}
	s.publisher.BroadcastToAll(ws.OpPresenceUpdate, presenceEvent{
		UserID: userID, Status: models.UserStatusOffline,
	})
}

// TypingUsers, kanalda şu an "yazıyor" görünen kullanıcı ID'lerini döner.
// Client ilk açılışta göstergeyi bununla senkronlar; sonrası event akışıdır.
func (s *PresenceService) TypingUsers(channelID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := []string{}
	for key := range s.typing {
		if key.channelID == channelID {
			users = append(users, key.userID)
		}
	}
	return users
}

// Status, tek kullanıcının görünür durumunu döner.
func (s *PresenceService) Status(userID string) models.UserStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.statuses[userID]
	if !ok || status == models.UserStatusInvisible {
		return models.UserStatusOffline
	}
	return status
}

// Snapshot, tüm görünür durumların kopyasını döner (REST presence endpoint'i).
// Invisible kullanıcılar snapshot'ta HİÇ görünmez.
func (s *PresenceService) Snapshot() map[string]models.UserStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]models.UserStatus, len(s.statuses))
	for userID, status := range s.statuses {
		if status == models.UserStatusInvisible {
			continue
		}
		snapshot[userID] = status
	}
	return snapshot
}
