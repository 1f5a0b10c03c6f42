package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/repository"
	"github.com/akinalp/velo/ws"
)

// Mesaj listeleme sayfa limitleri.
const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// MessageService, mesaj ingest pipeline'ının sahibidir.
//
// Ingest sırası SABITTIR: validate → persist → resolve → record+bump →
// publish. Sıralama kasıtlıdır:
//   - Validation başarısızsa HİÇBİR yan etki oluşmaz.
//   - Persist başarısızsa mention/sayaç/yayın hiçbiri olmaz.
//   - Resolve başarısızsa mesaj KALIR (kısmi ingest) — alıcılar mesajı
//     görür ama mention kayıtları/sayaç artışları uygulanmamıştır ve
//     caller bunu ErrDependencyUnavailable ile öğrenir.
type MessageService struct {
	messageRepo repository.MessageRepository
	mentionRepo repository.MentionRepository
	channelRepo repository.ChannelRepository
	serverRepo  repository.ServerRepository
	resolver    *MentionResolverService
	unread      *UnreadService
	publisher   EventPublisher
}

// NewMessageService, yeni bir MessageService oluşturur.
func NewMessageService(
	messageRepo repository.MessageRepository,
	mentionRepo repository.MentionRepository,
	channelRepo repository.ChannelRepository,
	serverRepo repository.ServerRepository,
	resolver *MentionResolverService,
	unread *UnreadService,
	publisher EventPublisher,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		mentionRepo: mentionRepo,
		channelRepo: channelRepo,
		serverRepo:  serverRepo,
		resolver:    resolver,
		unread:      unread,
		publisher:   publisher,
	}
}

// Ingest, yeni bir mesajı sisteme alır.
//
// Başarıda mesajı döner. Kısmi ingest durumunda mesaj DÖNER ama error da
// dolu gelir (ErrDependencyUnavailable / ErrLedgerUnavailable) — handler
// client'a durumu bildirir, mesaj yayında kalır.
func (s *MessageService) Ingest(ctx context.Context, channelID, authorID string, req *models.CreateMessageRequest) (*models.Message, error) {
	// 1. Validate — yan etkisiz red.
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.serverRepo.IsMember(ctx, channel.ServerID, authorID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, pkg.ErrForbidden
	}

	// 2. Persist — mesaj kimliği (ID, created_at) burada BİR KEZ atanır.
	msg := &models.Message{
		ID:        uuid.NewString(),
		ChannelID: channelID,
		UserID:    authorID,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
		Mentions:  []string{},
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	// 3. Resolve — başarısızlık mesajı GERİ ALMAZ (kısmi ingest).
	recipients, resolveErr := s.resolver.Resolve(ctx, channel, authorID, msg.Content)
	if resolveErr != nil {
		log.Printf("[message] mention resolution failed, partial ingest: message=%s err=%v", msg.ID, resolveErr)
		s.publisher.BroadcastToChannel(channelID, ws.OpMessageCreate, msg)
		return msg, resolveErr
	}
	msg.Mentions = recipients

	// 4. Record + bump — her alıcı için mention kaydı ve sayaç artışı.
	var bumpErr error
	if len(recipients) > 0 {
		records := make([]models.MentionRecord, 0, len(recipients))
		for _, userID := range recipients {
			records = append(records, models.MentionRecord{
				MessageID: msg.ID,
				ChannelID: channelID,
				UserID:    userID,
				CreatedAt: msg.CreatedAt,
			})
		}
		if err := s.mentionRepo.SaveMentions(ctx, records); err != nil {
			log.Printf("[message] failed to save mention records: message=%s err=%v", msg.ID, err)
			bumpErr = fmt.Errorf("%w: %v", pkg.ErrLedgerUnavailable, err)
		} else {
			// Bir alıcının bump'ı patlasa da diğerleri denenir —
			// tek kullanıcının sayacı için tüm alıcıları cezalandırma.
			for _, userID := range recipients {
				if err := s.unread.Bump(ctx, userID, channelID, true); err != nil {
					log.Printf("[message] bump failed: message=%s user=%s err=%v", msg.ID, userID, err)
					if bumpErr == nil {
						bumpErr = err
					}
				}
			}
		}
	}

	// 5. Publish — kanal abonelerine fan-out.
	s.publisher.BroadcastToChannel(channelID, ws.OpMessageCreate, msg)

	return msg, bumpErr
}

// List, kanal geçmişini cursor-based sayfalar ve her mesajın mention
// listesini doldurur. Reconnect resync de bu path'ten geçer.
func (s *MessageService) List(ctx context.Context, channelID, userID, before string, limit int) (*models.MessagePage, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	isMember, err := s.serverRepo.IsMember(ctx, channel.ServerID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, pkg.ErrForbidden
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	page, err := s.messageRepo.GetByChannelID(ctx, channelID, before, limit)
	if err != nil {
		return nil, err
	}

	if len(page.Messages) > 0 {
		ids := make([]string, len(page.Messages))
		for i, m := range page.Messages {
			ids[i] = m.ID
		}
		mentions, err := s.mentionRepo.GetByMessageIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range page.Messages {
			if list, ok := mentions[page.Messages[i].ID]; ok {
				page.Messages[i].Mentions = list
			}
		}
	}

	return page, nil
}
