package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/repository"
)

// ChannelService, kanal işlemleri.
type ChannelService struct {
	db          *sql.DB
	channelRepo repository.ChannelRepository
	serverRepo  repository.ServerRepository
}

// NewChannelService, yeni bir ChannelService oluşturur.
func NewChannelService(db *sql.DB, channelRepo repository.ChannelRepository, serverRepo repository.ServerRepository) *ChannelService {
	return &ChannelService{db: db, channelRepo: channelRepo, serverRepo: serverRepo}
}

// Create, sunucuya yeni kanal ekler — sadece sunucu sahibi yapabilir.
func (s *ChannelService) Create(ctx context.Context, serverID, userID string, req *models.CreateChannelRequest) (*models.Channel, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return nil, err
	}
	if server.OwnerID != userID {
		return nil, pkg.ErrForbidden
	}

	channel := &models.Channel{
		ID:        uuid.NewString(),
		ServerID:  serverID,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.channelRepo.Create(ctx, s.db, channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// ListByServer, sunucunun kanallarını döner — sadece üyeler görebilir.
func (s *ChannelService) ListByServer(ctx context.Context, serverID, userID string) ([]models.Channel, error) {
	isMember, err := s.serverRepo.IsMember(ctx, serverID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, pkg.ErrForbidden
	}
	return s.channelRepo.ListByServer(ctx, serverID)
}

// GetByID, kanalı döner — kanalın sunucusuna üyelik şarttır.
func (s *ChannelService) GetByID(ctx context.Context, channelID, userID string) (*models.Channel, error) {
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
	return channel, nil
}
