package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
)

// MessageRepository, mesaj işlemleri.
//
// Mesajlar IMMUTABLE'dır: Create dışında yazma operasyonu yoktur.
// Okuma tarafı cursor-based pagination kullanır — reconnect resync'i
// de aynı path'ten geçer (backlog replay yok, fetch var).
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	GetByChannelID(ctx context.Context, channelID string, before string, limit int) (*models.MessagePage, error)
}

type sqliteMessageRepository struct {
	db *sql.DB
}

// NewMessageRepository, yeni bir MessageRepository oluşturur.
func NewMessageRepository(db *sql.DB) MessageRepository {
	return &sqliteMessageRepository{db: db}
}

func (r *sqliteMessageRepository) Create(ctx context.Context, message *models.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, channel_id, user_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, message.ID, message.ChannelID, message.UserID, message.Content, message.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *sqliteMessageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowContext(ctx, `
		SELECT id, channel_id, user_id, content, created_at
		FROM messages WHERE id = ?
	`, id).Scan(&msg.ID, &msg.ChannelID, &msg.UserID, &msg.Content, &msg.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &msg, nil
}

// GetByChannelID, kanalın mesajlarını yeniden eskiye doğru sayfalar.
//
// before boşsa en güncel sayfa döner; doluysa o mesajdan ÖNCEKİ mesajlar
// döner (cursor). Limit+1 tekniği: bir fazla satır çekilir — fazlalık
// varsa HasMore=true olur ve fazla satır atılır. Ayrı COUNT sorgusuna
// gerek kalmaz.
//
// Yazar bilgisi JOIN ile tek sorguda gelir — N+1 sorgu problemi yok.
func (r *sqliteMessageRepository) GetByChannelID(ctx context.Context, channelID string, before string, limit int) (*models.MessagePage, error) {
	query := `
		SELECT m.id, m.channel_id, m.user_id, m.content, m.created_at,
		       u.id, u.username, u.display_name, u.avatar_url, u.created_at
		FROM messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.channel_id = ?
	`
	args := []any{channelID}

	if before != "" {
		// Cursor: referans mesajın (created_at, id) çiftinden küçük olanlar.
		// Sadece created_at yetmez — aynı timestamp'li mesajlar atlanabilirdi.
		query += `
			AND (m.created_at, m.id) < (
				(SELECT created_at FROM messages WHERE id = ?),
				?
			)
		`
		args = append(args, before, before)
	}

	query += ` ORDER BY m.created_at DESC, m.id DESC LIMIT ?`
	args = append(args, limit+1)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		var author models.User
		if err := rows.Scan(
			&msg.ID, &msg.ChannelID, &msg.UserID, &msg.Content, &msg.CreatedAt,
			&author.ID, &author.Username, &author.DisplayName, &author.AvatarURL, &author.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Author = &author
		msg.Mentions = []string{}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	hasMore := false
	if len(messages) > limit {
		hasMore = true
		messages = messages[:limit]
	}

	return &models.MessagePage{Messages: messages, HasMore: hasMore}, nil
}
