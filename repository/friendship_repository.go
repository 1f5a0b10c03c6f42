package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
)

// FriendshipRepository, arkadaşlık isteği işlemleri.
type FriendshipRepository interface {
	Create(ctx context.Context, req *models.FriendRequest) error
	GetByID(ctx context.Context, id string) (*models.FriendRequest, error)
	GetByPair(ctx context.Context, senderID, receiverID string) (*models.FriendRequest, error)
	ListIncoming(ctx context.Context, receiverID string) ([]models.FriendRequestWithSender, error)
	UpdateStatus(ctx context.Context, id string, status models.FriendRequestStatus) error
}

type sqliteFriendshipRepository struct {
	db *sql.DB
}

// NewFriendshipRepository, yeni bir FriendshipRepository oluşturur.
func NewFriendshipRepository(db *sql.DB) FriendshipRepository {
	return &sqliteFriendshipRepository{db: db}
}

func (r *sqliteFriendshipRepository) Create(ctx context.Context, req *models.FriendRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO friend_requests (id, sender_id, receiver_id, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, req.ID, req.SenderID, req.ReceiverID, req.Status, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create friend request: %w", err)
	}
	return nil
}

func (r *sqliteFriendshipRepository) GetByID(ctx context.Context, id string) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.QueryRowContext(ctx, `
		SELECT id, sender_id, receiver_id, status, created_at
		FROM friend_requests WHERE id = ?
	`, id).Scan(&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friend request: %w", err)
	}
	return &req, nil
}

// GetByPair, iki kullanıcı arasında (yönden bağımsız) istek arar —
// duplicate istek kontrolü için.
func (r *sqliteFriendshipRepository) GetByPair(ctx context.Context, senderID, receiverID string) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.QueryRowContext(ctx, `
		SELECT id, sender_id, receiver_id, status, created_at
		FROM friend_requests
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
	`, senderID, receiverID, receiverID, senderID).Scan(
		&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friend request pair: %w", err)
	}
	return &req, nil
}

// ListIncoming, bekleyen gelen istekleri gönderen bilgisiyle döner.
// JOIN ile tek sorgu — notification feed bu listeyi kullanır.
func (r *sqliteFriendshipRepository) ListIncoming(ctx context.Context, receiverID string) ([]models.FriendRequestWithSender, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT fr.id, fr.sender_id, u.username, u.avatar_url, fr.created_at
		FROM friend_requests fr
		JOIN users u ON u.id = fr.sender_id
		WHERE fr.receiver_id = ? AND fr.status = 'pending'
		ORDER BY fr.created_at DESC
	`, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incoming requests: %w", err)
	}
	defer rows.Close()

	requests := []models.FriendRequestWithSender{}
	for rows.Next() {
		var req models.FriendRequestWithSender
		if err := rows.Scan(&req.ID, &req.SenderID, &req.SenderUsername, &req.SenderAvatar, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan incoming request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incoming requests: %w", err)
	}
	return requests, nil
}

func (r *sqliteFriendshipRepository) UpdateStatus(ctx context.Context, id string, status models.FriendRequestStatus) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE friend_requests SET status = ? WHERE id = ?
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update friend request status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}
