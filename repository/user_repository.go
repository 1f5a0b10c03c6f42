// Package repository, veritabanı erişim katmanıdır (Data Access Layer).
//
// Neden interface + struct çifti?
// Service katmanı somut SQLite implementasyonunu değil interface'i görür.
// Böylece testlerde mock repository verilebilir, ileride SQLite yerine
// Postgres'e geçmek service kodunu değiştirmez.
//
// Go'nun kuralı: "Accept interfaces, return structs" — ama repository
// constructor'ları interface döner çünkü amaç implementasyonu saklamaktır.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/velo/models"
	"github.com/akinalp/velo/pkg"
)

// UserRepository, kullanıcı dizini üzerindeki veritabanı işlemleri.
//
// Bu servis kullanıcı HESABI yönetmez (o harici auth platformunda) —
// users tablosu mention çözümleme ve üyelik için senkronize edilen
// bir dizindir.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// sqliteUserRepository, UserRepository'nin SQLite implementasyonu.
// Küçük harfle başlar = private. Dışarıya sadece interface açılır.
type sqliteUserRepository struct {
	db *sql.DB
}

// NewUserRepository, yeni bir UserRepository oluşturur — interface döner.
func NewUserRepository(db *sql.DB) UserRepository {
	return &sqliteUserRepository{db: db}
}

func (r *sqliteUserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, display_name, avatar_url, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, user.ID, user.Username, user.DisplayName, user.AvatarURL, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *sqliteUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, display_name, avatar_url, created_at
		FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.Username, &user.DisplayName, &user.AvatarURL, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// GetByUsername, username tam eşleşmesiyle kullanıcı arar.
// Eşleşme CASE-SENSITIVE'dir: "@Alice" sadece "Alice" kullanıcısını bulur.
// (username kolonu TEXT — SQLite'ta = karşılaştırması varsayılan olarak
// case-sensitive'dir, ekstra COLLATE gerekmez.)
func (r *sqliteUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, display_name, avatar_url, created_at
		FROM users WHERE username = ?
	`, username).Scan(&user.ID, &user.Username, &user.DisplayName, &user.AvatarURL, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}
