// Package sqlite は単一ファイルの SQLite に文書を保持するストレージ実装です。
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Storage は SQLite を利用した onboarding.Storage の実装です。
type Storage struct {
	db *sql.DB
}

// Open は path のデータベースを開き、必要なテーブルを作成します。
func Open(ctx context.Context, path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// SQLite は単一ライターのため接続を 1 本に制限します。
	db.SetMaxOpenConns(1)

	s := &Storage{db: db}
	if err := s.initialize(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) initialize(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS kv_items (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: create schema: %w", err)
	}
	return nil
}

// GetItem は key の値を取得します。
func (s *Storage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_items WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("sqlite: get item %s: %w", key, err)
	}
	return value, true, nil
}

// SetItem は key の値を挿入または置き換えます。
func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO kv_items (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("sqlite: set item %s: %w", key, err)
	}
	return nil
}

// RemoveItem は key を削除します。
func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_items WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite: remove item %s: %w", key, err)
	}
	return nil
}

// Close はデータベースを閉じます。
func (s *Storage) Close() error {
	return s.db.Close()
}
