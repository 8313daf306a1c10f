// Package postgres は kv_items テーブルに文書を保持するストレージ実装です。
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	pg "github.com/celebrityscoop868/sunpowerabc/internal/platform/db/postgres"
)

// Storage は PostgreSQL を利用した onboarding.Storage の実装です。
// コンテキストにトランザクションがあればそれを利用します。
type Storage struct {
	db pg.Queryer
}

// NewStorage は Storage を生成します。
func NewStorage(db pg.Queryer) *Storage {
	return &Storage{db: db}
}

// GetItem は key の値を取得します。
func (s *Storage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := pg.QueryerFromContext(ctx, s.db).QueryRow(ctx, `
        SELECT value
          FROM kv_items
         WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("postgres: get item %s: %w", key, err)
	}
	return value, true, nil
}

// SetItem は key の値を挿入または置き換えます。
func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	_, err := pg.QueryerFromContext(ctx, s.db).Exec(ctx, `
        INSERT INTO kv_items (key, value, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE
           SET value = EXCLUDED.value,
               updated_at = now()
    `, key, value)
	if err != nil {
		return fmt.Errorf("postgres: set item %s: %w", key, err)
	}
	return nil
}

// RemoveItem は key を削除します。
func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if _, err := pg.QueryerFromContext(ctx, s.db).Exec(ctx, `DELETE FROM kv_items WHERE key = $1`, key); err != nil {
		return fmt.Errorf("postgres: remove item %s: %w", key, err)
	}
	return nil
}
