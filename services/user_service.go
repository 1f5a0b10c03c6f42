package services

import (
	"context"
	"errors"
	"time"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/pkg/cache"
	"github.com/akinalp/velo/repository"
)

// UserService, kullanıcı dizini işlemleri.
//
// Hesaplar harici auth platformunda yaşar; buradaki users tablosu
// mention çözümleme ve üyelik için gereken dizindir. EnsureUser,
// doğrulanmış bir token ilk görüldüğünde dizin satırını lazy oluşturur.
type UserService struct {
	userRepo repository.UserRepository

	// seenCache: son zamanlarda doğrulanmış user ID'leri.
	// Her request'te INSERT denemek yerine dizinde olduğu bilinen
	// kullanıcılar TTL süresince atlanır.
	seenCache *cache.TTLCache[string, struct{}]
}

// NewUserService, yeni bir UserService oluşturur.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		seenCache: cache.New[string, struct{}](5*time.Minute, time.Minute),
	}
}

// EnsureUser, token claims'indeki kullanıcının dizinde var olmasını sağlar.
// Yoksa oluşturur; varsa no-op. Auth middleware her doğrulamadan sonra çağırır.
func (s *UserService) EnsureUser(ctx context.Context, claims *models.TokenClaims) error {
	if _, ok := s.seenCache.Get(claims.UserID); ok {
		return nil
	}

	_, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err == nil {
		s.seenCache.Set(claims.UserID, struct{}{})
		return nil
	}
	if !errors.Is(err, pkg.ErrNotFound) {
		return err
	}

	if err := s.userRepo.Create(ctx, &models.User{
		ID:        claims.UserID,
		Username:  claims.Username,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}
	s.seenCache.Set(claims.UserID, struct{}{})
	return nil
}

// GetByID, kullanıcıyı ID ile döner.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Close, cache'in arka plan temizlik goroutine'ini durdurur.
func (s *UserService) Close() {
	s.seenCache.Close()
}
