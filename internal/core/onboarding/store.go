package onboarding

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	userKey            = "spabc_mock_user"
	notificationsKey   = "spabc_mock_notifs"
	setupKeyPrefix     = "spabc_mock_employment_setup:"
	shiftsKeyPrefix    = "spabc_mock_shifts:"
	auditLogKey        = "spabc_mock_admin_audit"
	isoTimestampLayout = "2006-01-02T15:04:05.000Z"

	defaultAdminEmail = "admin@sunpowerabc.com"
)

// SetupKey は EmploymentSetup の保存キーを返します。
func SetupKey(userEmail string) string {
	return setupKeyPrefix + userEmail
}

// ShiftsKey は Shift 一覧の保存キーを返します。
func ShiftsKey(userEmail string) string {
	return shiftsKeyPrefix + userEmail
}

// UseCase はエンティティストアの公開インターフェースです。
type UseCase interface {
	Me(ctx context.Context) (*User, error)
	UpdateMe(ctx context.Context, patch UserPatch) (*User, error)
	Logout(ctx context.Context) error

	EnsureSeeded(ctx context.Context, userEmail string) error

	FilterNotifications(ctx context.Context, where NotificationFilter, orderBy string) ([]Notification, error)
	CreateNotification(ctx context.Context, in NotificationInput) (*Notification, error)
	UpdateNotification(ctx context.Context, id string, patch NotificationPatch) (*Notification, error)
	UpdateUserNotification(ctx context.Context, userEmail, id string, patch NotificationPatch) (*Notification, error)

	FilterEmploymentSetups(ctx context.Context, userEmail string) ([]EmploymentSetup, error)
	CreateEmploymentSetup(ctx context.Context, userEmail string) (*EmploymentSetup, error)
	UpdateEmploymentSetup(ctx context.Context, userEmail string, patch EmploymentSetupPatch) (*EmploymentSetup, error)

	FilterShifts(ctx context.Context, where ShiftFilter, orderBy string) ([]Shift, error)

	ApprovePPE(ctx context.Context, userEmail string) (*EmploymentSetup, error)
	RejectPPE(ctx context.Context, userEmail, reason string) (*EmploymentSetup, error)
	CompleteStep(ctx context.Context, userEmail string, screen int) (*EmploymentSetup, error)
	ResetStep(ctx context.Context, userEmail string, screen int) (*EmploymentSetup, error)
	BlockUser(ctx context.Context, reason string) (*User, error)
	UnblockUser(ctx context.Context) (*User, error)
	ListAuditLog(ctx context.Context) ([]AuditEntry, error)
}

// Store は Storage 上に構築されたモックのエンティティストアです。
// 各操作はコレクション文書を読み込み、変更し、文書全体を書き戻します。
type Store struct {
	storage    Storage
	clock      Clock
	tx         TransactionManager
	logger     *zap.Logger
	publisher  Publisher
	newID      func() string
	adminEmail string
	lazySeed   bool

	mu sync.Mutex
}

// Option は Store の任意設定です。
type Option func(*Store)

// WithLogger はロガーを設定します。
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPublisher は通知イベントの配信先を設定します。
func WithPublisher(p Publisher) Option {
	return func(s *Store) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithAdminEmail は監査ログに記録する管理者メールアドレスを設定します。
func WithAdminEmail(email string) Option {
	return func(s *Store) {
		if trimmed := strings.TrimSpace(email); trimmed != "" {
			s.adminEmail = trimmed
		}
	}
}

// WithLazySeeding は一覧取得・作成時にスコープのシードを行うかどうかを設定します。
// 既定は無効で、シードは EnsureSeeded でのみ行われ、読み取りは書き込みを伴いません。
func WithLazySeeding(enabled bool) Option {
	return func(s *Store) {
		s.lazySeed = enabled
	}
}

// WithIDGenerator は ID 採番関数を差し替えます。
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore は Store を生成します。
func NewStore(storage Storage, clock Clock, tx TransactionManager, opts ...Option) *Store {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}

	s := &Store{
		storage:    storage,
		clock:      clock,
		tx:         tx,
		logger:     zap.NewNop(),
		publisher:  noopPublisher{},
		newID:      uuid.NewString,
		adminEmail: defaultAdminEmail,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) readWrite(ctx context.Context, fn func(context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx.WithinReadWrite(ctx, fn)
}

// read は遅延シードが有効な場合は書き込みを伴う可能性があるため読み書きトランザクションを使います。
func (s *Store) read(ctx context.Context, fn func(context.Context) error) error {
	if s.lazySeed {
		return s.readWrite(ctx, fn)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx.WithinReadOnly(ctx, fn)
}

// loadJSON は key の文書を dest へ復元します。dest はポインタでなければなりません。
// 文書が存在しない、または壊れている場合は found=false を返し、dest は変更しません。
func (s *Store) loadJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, found, err := s.storage.GetItem(ctx, key)
	if err != nil {
		return false, fmt.Errorf("onboarding: get %s: %w", key, err)
	}

	trimmed := strings.TrimSpace(raw)
	if !found || trimmed == "" || trimmed == "null" {
		return false, nil
	}

	// 型が合わない JSON でも Unmarshal は途中まで書き込むため、別の値へ復元してから反映します。
	target := reflect.ValueOf(dest).Elem()
	decoded := reflect.New(target.Type())
	if err := json.Unmarshal([]byte(trimmed), decoded.Interface()); err != nil {
		s.logger.Warn("ignoring corrupt persisted document",
			zap.String("key", key),
			zap.Error(err))
		return false, nil
	}
	target.Set(decoded.Elem())
	return true, nil
}

func (s *Store) saveJSON(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("onboarding: encode %s: %w", key, err)
	}
	if err := s.storage.SetItem(ctx, key, string(b)); err != nil {
		return fmt.Errorf("onboarding: set %s: %w", key, err)
	}
	return nil
}

func (s *Store) timestamp(offset time.Duration) string {
	return s.clock.Now().Add(offset).UTC().Format(isoTimestampLayout)
}

func normalizeScope(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	return trimmed, trimmed != ""
}
