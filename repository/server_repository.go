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

// ServerRepository, sunucu ve üyelik işlemleri.
//
// GetMemberIDs mention resolver'ın "@everyone" genişletmesini besler —
// broadcast her zaman ANLIK üyelik listesine açılır, cache'lenmiş
// snapshot'a değil.
type ServerRepository interface {
	Create(ctx context.Context, q database.Querier, server *models.Server) error
	GetByID(ctx context.Context, id string) (*models.Server, error)
	AddMember(ctx context.Context, q database.Querier, serverID, userID string) error
	IsMember(ctx context.Context, serverID, userID string) (bool, error)
	GetMemberIDs(ctx context.Context, serverID string) ([]string, error)
	ListByUser(ctx context.Context, userID string) ([]models.Server, error)
}

type sqliteServerRepository struct {
	db *sql.DB
}

// NewServerRepository, yeni bir ServerRepository oluşturur.
func NewServerRepository(db *sql.DB) ServerRepository {
	return &sqliteServerRepository{db: db}
}

// Create, Querier kabul eder — sunucu oluşturma transaction içinde
// üyelik + varsayılan kanal ile birlikte çalışır (bkz. ServerService).
func (r *sqliteServerRepository) Create(ctx context.Context, q database.Querier, server *models.Server) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO servers (id, name, owner_id, icon_url, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, server.ID, server.Name, server.OwnerID, server.IconURL, server.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return nil
}

func (r *sqliteServerRepository) GetByID(ctx context.Context, id string) (*models.Server, error) {
	var server models.Server
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, owner_id, icon_url, created_at
		FROM servers WHERE id = ?
	`, id).Scan(&server.ID, &server.Name, &server.OwnerID, &server.IconURL, &server.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server: %w", err)
	}
	return &server, nil
}

func (r *sqliteServerRepository) AddMember(ctx context.Context, q database.Querier, serverID, userID string) error {
	// INSERT OR IGNORE: zaten üyeyse hata yerine no-op.
	_, err := q.ExecContext(ctx, `
		INSERT OR IGNORE INTO server_members (server_id, user_id)
		VALUES (?, ?)
	`, serverID, userID)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

func (r *sqliteServerRepository) IsMember(ctx context.Context, serverID, userID string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM server_members WHERE server_id = ? AND user_id = ?
	`, serverID, userID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return true, nil
}

func (r *sqliteServerRepository) GetMemberIDs(ctx context.Context, serverID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id FROM server_members WHERE server_id = ?
	`, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return ids, nil
}

func (r *sqliteServerRepository) ListByUser(ctx context.Context, userID string) ([]models.Server, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.owner_id, s.icon_url, s.created_at
		FROM servers s
		JOIN server_members sm ON sm.server_id = s.id
		WHERE sm.user_id = ?
		ORDER BY s.created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	defer rows.Close()

	servers := []models.Server{}
	for rows.Next() {
		var s models.Server
		if err := rows.Scan(&s.ID, &s.Name, &s.OwnerID, &s.IconURL, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan server: %w", err)
		}
		servers = append(servers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate servers: %w", err)
	}
	return servers, nil
}
