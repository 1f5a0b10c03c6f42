package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier, hem *sql.DB hem *sql.Tx tarafından karşılanan ortak arayüz.
//
// Repository metodları bu arayüzü kabul ederse aynı kod hem normal
// bağlantıyla hem transaction içinde çalışır — duplicate sorgu kodu
// yazmaya gerek kalmaz.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Derleme zamanı kontrolü: her iki tip de Querier'ı karşılamalı.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// WithTx, verilen fonksiyonu bir transaction içinde çalıştırır.
//
// fn başarıyla dönerse COMMIT, error dönerse ROLLBACK yapılır.
// fn panic'lerse de ROLLBACK yapılır ve panic yeniden fırlatılır —
// yarım kalmış transaction bağlantı pool'una sızmaz.
//
// Kullanım:
//
//	err := database.WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
//	    // tx üzerinden sorgular...
//	    return nil
//	})
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p) // rollback sonrası panic'i yut MA
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
