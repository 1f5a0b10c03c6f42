package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
	"github.com/akinalp/velo/pkg/cache"
	"github.com/akinalp/velo/pkg/mention"
	"github.com/akinalp/velo/repository"
)

// MentionResolverService, parse edilmiş mention token'larını somut alıcı
// kullanıcı ID'lerine çözümler.
//
// Kurallar:
//   - "@everyone" kanalın bağlı olduğu sunucunun ANLIK üye listesine
//     açılır (yazar hariç).
//   - Kullanıcı adları dizinde case-sensitive tam eşleşmeyle aranır;
//     eşleşmeyen token sessizce düşer (mesajı bloklamaz).
//   - Çözümlenen kullanıcı sunucu üyesi değilse alıcı OLMAZ.
//   - Yazar hiçbir zaman kendi mesajının alıcısı değildir.
//   - Üyelik/dizin altyapısına ulaşılamazsa ErrDependencyUnavailable
//     döner — caller kısmi ingest kararını verir.
type MentionResolverService struct {
	userRepo   repository.UserRepository
	serverRepo repository.ServerRepository

	// userCache: username → user ID. Aynı kişi art arda mention'landığında
	// her mesajda dizine gitmeyi önler. TTL kısa tutulur ki username
	// değişiklikleri makul sürede görünsün.
	userCache *cache.TTLCache[string, string]
}

// NewMentionResolverService, yeni bir resolver oluşturur.
func NewMentionResolverService(userRepo repository.UserRepository, serverRepo repository.ServerRepository) *MentionResolverService {
	return &MentionResolverService{
		userRepo:   userRepo,
		serverRepo: serverRepo,
		userCache:  cache.New[string, string](30*time.Second, time.Minute),
	}
}

// Resolve, mesaj içeriğindeki mention'ları alıcı ID listesine çevirir.
// Dönen liste dedup'lıdır ve yazarı içermez; mention yoksa boş liste döner.
func (s *MentionResolverService) Resolve(ctx context.Context, channel *models.Channel, authorID, content string) ([]string, error) {
	tokens := mention.Parse(content)
	if len(tokens) == 0 {
		return []string{}, nil
	}

	// Üye kümesi iki iş görür: @everyone genişletmesi ve doğrudan
	// mention'ların üyelik filtresi. Tek sorguda çekilir.
	memberIDs, err := s.serverRepo.GetMemberIDs(ctx, channel.ServerID)
	if err != nil {
		return nil, fmt.Errorf("%w: membership lookup failed: %v", pkg.ErrDependencyUnavailable, err)
	}
	members := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	recipients := []string{}
	seen := map[string]bool{}
	add := func(userID string) {
		if userID == authorID || seen[userID] || !members[userID] {
			return
		}
		seen[userID] = true
		recipients = append(recipients, userID)
	}

	for _, token := range tokens {
		if token == mention.EveryoneToken {
			// Broadcast: anlık üye listesi, yazar hariç.
			for _, id := range memberIDs {
				add(id)
			}
			continue
		}

		userID, err := s.lookupUserID(ctx, token)
		if errors.Is(err, pkg.ErrNotFound) {
			continue // bilinmeyen username: mention değil, düz metin
		}
		if err != nil {
			return nil, fmt.Errorf("%w: user lookup failed: %v", pkg.ErrDependencyUnavailable, err)
		}
		add(userID)
	}

	return recipients, nil
}

func (s *MentionResolverService) lookupUserID(ctx context.Context, username string) (string, error) {
	if id, ok := s.userCache.Get(username); ok {
		return id, nil
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Negatif sonuç cache'lenmez: yeni kaydolan kullanıcının
		// mention'ı TTL beklemeden çalışmalı.
		return "", err
	}

	s.userCache.Set(username, user.ID)
	return user.ID, nil
}

// Close, cache'in arka plan goroutine'ini durdurur.
func (s *MentionResolverService) Close() {
	s.userCache.Close()
}
