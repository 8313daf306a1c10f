// Package memory はプロセス内のマップに文書を保持するストレージ実装です。
package memory

import (
	"context"
	"sync"
)

// Storage は onboarding.Storage のインメモリ実装です。プロセス終了で内容は失われます。
type Storage struct {
	mu    sync.RWMutex
	items map[string]string
}

// New は空の Storage を生成します。
func New() *Storage {
	return &Storage{items: make(map[string]string)}
}

// GetItem は key の値を返します。存在しなければ false を返します。
func (s *Storage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem は key の値を置き換えます。
func (s *Storage) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

// RemoveItem は key を削除します。存在しなくてもエラーにはなりません。
func (s *Storage) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

// Len は保持しているキーの数を返します。
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
