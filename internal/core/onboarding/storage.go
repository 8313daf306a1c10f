package onboarding

import (
	"context"
	"time"
)

// Storage はキーごとに JSON 文書を保持する永続化媒体の抽象です。
// ブラウザの localStorage と同じく、値は常に文書全体で読み書きされます。
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Publisher は通知作成イベントを外部へ配信します。
type Publisher interface {
	NotificationCreated(ctx context.Context, n Notification) error
}

type noopPublisher struct{}

func (noopPublisher) NotificationCreated(context.Context, Notification) error {
	return nil
}
