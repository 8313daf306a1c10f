// Package storage は設定に応じて文書の保存先を組み立てます。
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/celebrityscoop868/sunpowerabc/internal/adapters/storage/memory"
	pgstorage "github.com/celebrityscoop868/sunpowerabc/internal/adapters/storage/postgres"
	"github.com/celebrityscoop868/sunpowerabc/internal/adapters/storage/sqlite"
	"github.com/celebrityscoop868/sunpowerabc/internal/core/onboarding"
	"github.com/celebrityscoop868/sunpowerabc/internal/platform/config"
	pg "github.com/celebrityscoop868/sunpowerabc/internal/platform/db/postgres"
)

// Backend は Store の構築に必要な保存先一式です。
type Backend struct {
	Storage onboarding.Storage
	// Tx は nil の場合があります。onboarding.NewStore は nil をトランザクションなしとして扱います。
	Tx    onboarding.TransactionManager
	close func()
}

// Close は保存先が保持する接続を解放します。
func (b *Backend) Close() {
	if b != nil && b.close != nil {
		b.close()
	}
}

// Open は cfg.Storage.Driver に応じた Backend を生成します。
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Storage.Driver {
	case config.DriverMemory, "":
		logger.Info("using in-memory storage")
		return &Backend{Storage: memory.New()}, nil

	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("using sqlite storage", zap.String("path", cfg.Storage.SQLitePath))
		return &Backend{
			Storage: s,
			close: func() {
				if err := s.Close(); err != nil {
					logger.Warn("close sqlite storage", zap.Error(err))
				}
			},
		}, nil

	case config.DriverPostgres:
		pool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("using postgres storage",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Name),
		)
		return &Backend{
			Storage: pgstorage.NewStorage(pool),
			Tx:      pg.NewTransactionManager(pool),
			close:   pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", cfg.Storage.Driver)
	}
}
