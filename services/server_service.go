package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/velo/database"
	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/repository"
)

// ServerService, sunucu yaşam döngüsü ve üyelik işlemleri.
type ServerService struct {
	db          *sql.DB
	serverRepo  repository.ServerRepository
	channelRepo repository.ChannelRepository
}

// NewServerService, yeni bir ServerService oluşturur.
// *sql.DB'yi doğrudan alır çünkü Create transaction başlatır.
func NewServerService(db *sql.DB, serverRepo repository.ServerRepository, channelRepo repository.ChannelRepository) *ServerService {
	return &ServerService{db: db, serverRepo: serverRepo, channelRepo: channelRepo}
}

// Create, yeni sunucu kurar: sunucu kaydı + sahibin üyeliği + varsayılan
// "general" kanalı TEK transaction içinde oluşur. Herhangi biri
// başarısızsa hepsi geri alınır — kanalı olmayan sunucu kalamaz.
func (s *ServerService) Create(ctx context.Context, ownerID string, req *models.CreateServerRequest) (*models.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	now := time.Now().UTC()
	server := &models.Server{
		ID:        uuid.NewString(),
		Name:      req.Name,
		OwnerID:   ownerID,
		CreatedAt: now,
	}

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.serverRepo.Create(ctx, tx, server); err != nil {
			return err
		}
		if err := s.serverRepo.AddMember(ctx, tx, server.ID, ownerID); err != nil {
			return err
		}
		return s.channelRepo.Create(ctx, tx, &models.Channel{
			ID:        uuid.NewString(),
			ServerID:  server.ID,
			Name:      "general",
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	return server, nil
}

// Join, kullanıcıyı sunucuya üye yapar. Üyelik anından itibaren
// "@everyone" genişletmesi bu kullanıcıyı da kapsar.
func (s *ServerService) Join(ctx context.Context, serverID, userID string) error {
	if _, err := s.serverRepo.GetByID(ctx, serverID); err != nil {
		return err
	}
	return s.serverRepo.AddMember(ctx, s.db, serverID, userID)
}

// ListForUser, kullanıcının üyesi olduğu sunucuları döner.
func (s *ServerService) ListForUser(ctx context.Context, userID string) ([]models.Server, error) {
	return s.serverRepo.ListByUser(ctx, userID)
}

// GetByID, sunucuyu döner — sadece üyeler görebilir.
func (s *ServerService) GetByID(ctx context.Context, serverID, userID string) (*models.Server, error) {
	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		return nil, err
	}
	isMember, err := s.serverRepo.IsMember(ctx, serverID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, pkg.ErrForbidden
	}
	return server, nil
}
