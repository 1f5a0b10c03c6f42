package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/velo/models"
)

// UnreadRepository, unread ledger (kullanıcı × kanal sayaçları).
//
// Ledger'ın tek yazma yolu Bump ve MarkRead'dir. Bump'ın read-modify-write
// OLMAMASI kritik invariant'tır: sayaç artışı tek SQL statement içinde
// atomik yapılır, böylece eşzamanlı mesajlar birbirinin artışını ezemez.
type UnreadRepository interface {
	Bump(ctx context.Context, userID, channelID string, mentioned bool) error
	Get(ctx context.Context, userID, channelID string) (*models.UnreadCounter, error)
	ListByUser(ctx context.Context, userID string) ([]models.UnreadCounter, error)
	ListMentionsByUser(ctx context.Context, userID string) ([]models.UnreadCounter, error)
	MarkRead(ctx context.Context, userID, channelID string) error
}

type sqliteUnreadRepository struct {
	db *sql.DB
}

// NewUnreadRepository, yeni bir UnreadRepository oluşturur.
func NewUnreadRepository(db *sql.DB) UnreadRepository {
	return &sqliteUnreadRepository{db: db}
}

// Bump, sayacı 1 artırır; satır yoksa (count=1) olarak oluşturur.
//
// Tek statement'lık upsert — SELECT + UPDATE çifti DEĞİL:
//   - count = count + 1 artışı DB içinde hesaplanır, Go tarafında değil.
//   - has_mention OR excluded.has_mention: bir kez true olan flag,
//     sonraki mention'sız mesajlarla false'a DÖNMEZ (sticky).
//
// Bu sayede N eşzamanlı mesaj her zaman tam N artış üretir.
func (r *sqliteUnreadRepository) Bump(ctx context.Context, userID, channelID string, mentioned bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO unread_counters (user_id, channel_id, count, has_mention, updated_at)
		VALUES (?, ?, 1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, channel_id) DO UPDATE SET
			count = count + 1,
			has_mention = has_mention OR excluded.has_mention,
			updated_at = CURRENT_TIMESTAMP
	`, userID, channelID, mentioned)
	if err != nil {
		return fmt.Errorf("failed to bump unread counter: %w", err)
	}
	return nil
}

// Get, tek kanalın sayacını döner. Satır yoksa error DEĞİL, sıfır
// değerli sayaç döner — "hiç görülmemiş aktivite yok" geçerli bir durumdur.
func (r *sqliteUnreadRepository) Get(ctx context.Context, userID, channelID string) (*models.UnreadCounter, error) {
	var c models.UnreadCounter
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, channel_id, count, has_mention, updated_at
		FROM unread_counters WHERE user_id = ? AND channel_id = ?
	`, userID, channelID).Scan(&c.UserID, &c.ChannelID, &c.Count, &c.HasMention, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.UnreadCounter{UserID: userID, ChannelID: channelID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unread counter: %w", err)
	}
	return &c, nil
}

func (r *sqliteUnreadRepository) ListByUser(ctx context.Context, userID string) ([]models.UnreadCounter, error) {
	return r.list(ctx, `
		SELECT user_id, channel_id, count, has_mention, updated_at
		FROM unread_counters WHERE user_id = ? AND count > 0
	`, userID)
}

// ListMentionsByUser, has_mention=true olan sayaçları döner —
// notification feed'inin mention kaynağıdır.
func (r *sqliteUnreadRepository) ListMentionsByUser(ctx context.Context, userID string) ([]models.UnreadCounter, error) {
	return r.list(ctx, `
		SELECT user_id, channel_id, count, has_mention, updated_at
		FROM unread_counters WHERE user_id = ? AND has_mention = 1
	`, userID)
}

func (r *sqliteUnreadRepository) list(ctx context.Context, query, userID string) ([]models.UnreadCounter, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unread counters: %w", err)
	}
	defer rows.Close()

	counters := []models.UnreadCounter{}
	for rows.Next() {
		var c models.UnreadCounter
		if err := rows.Scan(&c.UserID, &c.ChannelID, &c.Count, &c.HasMention, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unread counter: %w", err)
		}
		counters = append(counters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate unread counters: %w", err)
	}
	return counters, nil
}

// MarkRead, sayacı sıfırlar ve mention flag'ini temizler.
// Satır yoksa no-op — idempotent'tir, çift tıklama zarar vermez.
func (r *sqliteUnreadRepository) MarkRead(ctx context.Context, userID, channelID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE unread_counters
		SET count = 0, has_mention = 0, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND channel_id = ?
	`, userID, channelID)
	if err != nil {
		return fmt.Errorf("failed to mark channel read: %w", err)
	}
	return nil
}
