package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/repository"
	"github.com/akinalp/velo/ws"
)

// EventPublisher, service katmanının gerçek zamanlı fan-out bağımlılığı.
// *ws.Hub bu interface'i karşılar; testlerde fake publisher kullanılır.
type EventPublisher interface {
	BroadcastToChannel(channelID, op string, data any)
	BroadcastToUser(userID, op string, data any)
	BroadcastToAll(op string, data any)
}

// bumpRetries, ledger artışının toplam deneme sayısı.
// Retry SINIRLIDIR: sonsuz retry yerine açık ErrLedgerUnavailable dönmek
// tercih edilir — sayaç sessizce eksik kalmaz, hata görünür olur.
const bumpRetries = 3

// UnreadService, unread ledger'ın iş mantığı sahibidir.
//
// Sayaç artışı repository'nin atomik upsert'ine delege edilir; bu katman
// bounded retry ve WS "unread_update" yayınını ekler.
type UnreadService struct {
	unreadRepo repository.UnreadRepository
	publisher  EventPublisher
}

// NewUnreadService, yeni bir UnreadService oluşturur.
func NewUnreadService(unreadRepo repository.UnreadRepository, publisher EventPublisher) *UnreadService {
	return &UnreadService{unreadRepo: unreadRepo, publisher: publisher}
}

// Bump, kullanıcının kanaldaki sayacını 1 artırır ve güncel durumu
// kullanıcının tüm bağlantılarına yayınlar.
//
// Geçici DB hatalarında (SQLITE_BUSY gibi) kısa backoff ile tekrar dener.
// Denemeler tükenirse ErrLedgerUnavailable döner — artış YA tam olarak
// bir kez uygulanmıştır YA da hiç uygulanmamıştır, asla yarım değil.
func (s *UnreadService) Bump(ctx context.Context, userID, channelID string, mentioned bool) error {
	var lastErr error
	for attempt := 1; attempt <= bumpRetries; attempt++ {
		lastErr = s.unreadRepo.Bump(ctx, userID, channelID, mentioned)
		if lastErr == nil {
			s.publishState(ctx, userID, channelID)
			return nil
		}
		if ctx.Err() != nil {
			break
		}
		log.Printf("[unread] bump attempt %d/%d failed: user=%s channel=%s err=%v",
			attempt, bumpRetries, userID, channelID, lastErr)
		time.Sleep(time.Duration(attempt) * 25 * time.Millisecond)
	}
	return fmt.Errorf("%w: %v", pkg.ErrLedgerUnavailable, lastErr)
}

// MarkRead, sayacı sıfırlar ve sıfırlanmış durumu yayınlar.
// Tüm cihazlar aynı anda güncellenir — badge her yerde birlikte söner.
func (s *UnreadService) MarkRead(ctx context.Context, userID, channelID string) error {
	if err := s.unreadRepo.MarkRead(ctx, userID, channelID); err != nil {
		return err
	}
	s.publisher.BroadcastToUser(userID, ws.OpUnreadUpdate, models.UnreadState{
		ChannelID: channelID, Count: 0, HasMention: false,
	})
	return nil
}

// ListForUser, kullanıcının görülmemiş aktivitesi olan tüm kanallarını döner.
// Client login/reconnect'te badge'leri bununla kurar.
func (s *UnreadService) ListForUser(ctx context.Context, userID string) ([]models.UnreadState, error) {
	counters, err := s.unreadRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	states := make([]models.UnreadState, 0, len(counters))
	for _, c := range counters {
		states = append(states, models.UnreadState{
			ChannelID: c.ChannelID, Count: c.Count, HasMention: c.HasMention,
		})
	}
	return states, nil
}

// GetForChannel, tek kanalın sayacını döner (satır yoksa sıfır değerli).
func (s *UnreadService) GetForChannel(ctx context.Context, userID, channelID string) (*models.UnreadState, error) {
	c, err := s.unreadRepo.Get(ctx, userID, channelID)
	if err != nil {
		return nil, err
	}
	return &models.UnreadState{
		ChannelID: channelID, Count: c.Count, HasMention: c.HasMention,
	}, nil
}

// publishState, güncel sayacı okuyup yayınlar. Yayın best-effort'tur:
// okuma hatası bump'ın başarısını geri almaz, sadece loglanır.
func (s *UnreadService) publishState(ctx context.Context, userID, channelID string) {
	c, err := s.unreadRepo.Get(ctx, userID, channelID)
	if err != nil {
		log.Printf("[unread] failed to read state for publish: user=%s channel=%s err=%v", userID, channelID, err)
		return
	}
	s.publisher.BroadcastToUser(userID, ws.OpUnreadUpdate, models.UnreadState{
		ChannelID: channelID, Count: c.Count, HasMention: c.HasMention,
	})
}
