package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/repository"
	"github.com/akinalp/velo/ws"
)

// FriendshipService, arkadaşlık isteği akışı.
type FriendshipService struct {
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
	publisher      EventPublisher
}

// NewFriendshipService, yeni bir FriendshipService oluşturur.
func NewFriendshipService(friendshipRepo repository.FriendshipRepository, userRepo repository.UserRepository, publisher EventPublisher) *FriendshipService {
	return &FriendshipService{friendshipRepo: friendshipRepo, userRepo: userRepo, publisher: publisher}
}

// Send, username ile arkadaşlık isteği gönderir.
// Alıcı online ise anlık notification event'i de düşer; değilse istek
// notification feed'inde bekler — push best-effort, feed kalıcı kaynaktır.
func (s *FriendshipService) Send(ctx context.Context, senderID string, req *models.SendFriendRequestRequest) (*models.FriendRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	receiver, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if receiver.ID == senderID {
		return nil, fmt.Errorf("%w: cannot send a friend request to yourself", pkg.ErrBadRequest)
	}

	// Yönden bağımsız duplicate kontrolü: iki taraftan biri zaten istek
	// atmışsa (veya arkadaşlarsa) yenisi açılmaz.
	existing, err := s.friendshipRepo.GetByPair(ctx, senderID, receiver.ID)
	if err != nil && !errors.Is(err, pkg.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status != models.FriendRequestDeclined {
		return nil, pkg.ErrAlreadyExists
	}

	request := &models.FriendRequest{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Status:     models.FriendRequestPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.friendshipRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err == nil {
		s.publisher.BroadcastToUser(receiver.ID, ws.OpNotification, models.Notification{
			Type:         models.NotificationFriendRequest,
			CreatedAt:    request.CreatedAt,
			RequestID:    request.ID,
			FromUserID:   sender.ID,
			FromUsername: sender.Username,
			FromAvatar:   sender.AvatarURL,
		})
	}

	return request, nil
}

// ListIncoming, bekleyen gelen istekleri döner.
func (s *FriendshipService) ListIncoming(ctx context.Context, userID string) ([]models.FriendRequestWithSender, error) {
	return s.friendshipRepo.ListIncoming(ctx, userID)
}

// Respond, isteği kabul eder veya reddeder.
// Sadece alıcı yanıtlayabilir; zaten yanıtlanmış istek tekrar yanıtlanamaz.
func (s *FriendshipService) Respond(ctx context.Context, requestID, userID string, accept bool) (*models.FriendRequest, error) {
	request, err := s.friendshipRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ReceiverID != userID {
		return nil, pkg.ErrForbidden
	}
	if request.Status != models.FriendRequestPending {
		return nil, fmt.Errorf("%w: request already %s", pkg.ErrBadRequest, request.Status)
	}

	status := models.FriendRequestDeclined
	if accept {
		status = models.FriendRequestAccepted
	}
	if err := s.friendshipRepo.UpdateStatus(ctx, requestID, status); err != nil {
		return nil, err
	}
	request.Status = status
	return request, nil
}
