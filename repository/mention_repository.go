package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/akinalp/velo/models"
)

// MentionRepository, mention kayıtları (append-only).
type MentionRepository interface {
	SaveMentions(ctx context.Context, records []models.MentionRecord) error
	GetByMessageIDs(ctx context.Context, messageIDs []string) (map[string][]string, error)
}

type sqliteMentionRepository struct {
	db *sql.DB
}

// NewMentionRepository, yeni bir MentionRepository oluşturur.
func NewMentionRepository(db *sql.DB) MentionRepository {
	return &sqliteMentionRepository{db: db}
}

// SaveMentions, bir mesajın tüm mention kayıtlarını tek INSERT ile yazar.
//
// INSERT OR IGNORE: (message_id, user_id) PK çakışmasında satır atlanır.
// Resolver zaten dedup yapar ama DB seviyesinde de emniyet vardır —
// aynı mesaj için tekrarlanan kayıt denemesi sayaçları bozmaz.
func (r *sqliteMentionRepository) SaveMentions(ctx context.Context, records []models.MentionRecord) error {
	if len(records) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT OR IGNORE INTO message_mentions (message_id, channel_id, user_id, created_at) VALUES ")
	args := make([]any, 0, len(records)*4)
	for i, rec := range records {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?)")
		args = append(args, rec.MessageID, rec.ChannelID, rec.UserID, rec.CreatedAt)
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("failed to save mentions: %w", err)
	}
	return nil
}

// GetByMessageIDs, mesaj sayfası render edilirken her mesajın mention
// listesini tek sorguda doldurur. Dönen map: message_id → []user_id.
func (r *sqliteMentionRepository) GetByMessageIDs(ctx context.Context, messageIDs []string) (map[string][]string, error) {
	result := make(map[string][]string)
	if len(messageIDs) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?, ", len(messageIDs)-1) + "?"
	args := make([]any, len(messageIDs))
	for i, id := range messageIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT message_id, user_id FROM message_mentions WHERE message_id IN ("+placeholders+")",
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mentions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var messageID, userID string
		if err := rows.Scan(&messageID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan mention: %w", err)
		}
		result[messageID] = append(result[messageID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mentions: %w", err)
	}
	return result, nil
}
