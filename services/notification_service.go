package services

import (
	"context"
	"sort"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/repository"
)

// NotificationService, bildirim akışını iki kaynaktan derler:
//  1. Mention'lı unread kanalları (ledger'da has_mention=true)
//  2. Bekleyen gelen arkadaşlık istekleri
//
// Feed her istekte kaynaklardan YENİDEN hesaplanır — ayrı bir
// notifications tablosu yoktur, durable "okundu" state'i tutulmaz.
// Mention bildirimi, kanal okununca (MarkRead) kendiliğinden düşer;
// arkadaşlık bildirimi, istek yanıtlanınca düşer.
type NotificationService struct {
	unreadRepo     repository.UnreadRepository
	friendshipRepo repository.FriendshipRepository
}

// NewNotificationService, yeni bir NotificationService oluşturur.
func NewNotificationService(unreadRepo repository.UnreadRepository, friendshipRepo repository.FriendshipRepository) *NotificationService {
	return &NotificationService{unreadRepo: unreadRepo, friendshipRepo: friendshipRepo}
}

// Feed, kullanıcının bildirim akışını yeniden eskiye sıralı döner.
// İki varyant tek listede birleşir; sıralama SADECE zamana göredir,
// varyant tipi öncelik belirlemez.
func (s *NotificationService) Feed(ctx context.Context, userID string) ([]models.Notification, error) {
	mentions, err := s.unreadRepo.ListMentionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	requests, err := s.friendshipRepo.ListIncoming(ctx, userID)
	if err != nil {
		return nil, err
	}

	feed := make([]models.Notification, 0, len(mentions)+len(requests))
	for _, m := range mentions {
		feed = append(feed, models.Notification{
			Type:      models.NotificationMention,
			CreatedAt: m.UpdatedAt, // son mention aktivitesinin zamanı
			ChannelID: m.ChannelID,
		})
	}
	for _, r := range requests {
		feed = append(feed, models.Notification{
			Type:         models.NotificationFriendRequest,
			CreatedAt:    r.CreatedAt,
			RequestID:    r.ID,
			FromUserID:   r.SenderID,
			FromUsername: r.SenderUsername,
			FromAvatar:   r.SenderAvatar,
		})
	}

	sort.Slice(feed, func(i, j int) bool {
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})

	return feed, nil
}
