package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/velo/database"
	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
)

// ChannelRepository, kanal işlemleri.
type ChannelRepository interface {
	Create(ctx context.Context, q database.Querier, channel *models.Channel) error
	GetByID(ctx context.Context, id string) (*models.Channel, error)
	ListByServer(ctx context.Context, serverID string) ([]models.Channel, error)
}

type sqliteChannelRepository struct {
	db *sql.DB
}

// NewChannelRepository, yeni bir ChannelRepository oluşturur.
func NewChannelRepository(db *sql.DB) ChannelRepository {
	return &sqliteChannelRepository{db: db}
}

func (r *sqliteChannelRepository) Create(ctx context.Context, q database.Querier, channel *models.Channel) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO channels (id, server_id, name, created_at)
		VALUES (?, ?, ?, ?)
	`, channel.ID, channel.ServerID, channel.Name, channel.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}
	return nil
}

func (r *sqliteChannelRepository) GetByID(ctx context.Context, id string) (*models.Channel, error) {
	var ch models.Channel
	err := r.db.QueryRowContext(ctx, `
		SELECT id, server_id, name, created_at FROM channels WHERE id = ?
	`, id).Scan(&ch.ID, &ch.ServerID, &ch.Name, &ch.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	return &ch, nil
}

func (r *sqliteChannelRepository) ListByServer(ctx context.Context, serverID string) ([]models.Channel, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, server_id, name, created_at
		FROM channels WHERE server_id = ?
		ORDER BY created_at ASC
	`, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	channels := []models.Channel{}
	for rows.Next() {
		var ch models.Channel
		if err := rows.Scan(&ch.ID, &ch.ServerID, &ch.Name, &ch.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate channels: %w", err)
	}
	return channels, nil
}
