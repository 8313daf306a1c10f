package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ストレージドライバー名です。
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	defaultSQLitePath        = "data/onboarding.db"
	defaultNotificationTopic = "onboarding.notifications"
	defaultLogLevel          = "info"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Admin    AdminConfig    `yaml:"admin"`
}

// ServerConfig は gRPC サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr" env:"SERVER_LISTEN_ADDR"`
}

// LogConfig はロガーの設定です。
type LogConfig struct {
	Level       string `yaml:"level" env:"LOG_LEVEL"`
	Development bool   `yaml:"development" env:"LOG_DEVELOPMENT"`
}

// StorageConfig は文書の保存先に関する設定です。
type StorageConfig struct {
	Driver     string `yaml:"driver" env:"STORAGE_DRIVER"`
	SQLitePath string `yaml:"sqlite_path" env:"STORAGE_SQLITE_PATH"`
	// LazySeed が true の場合、一覧取得時にもスコープのシードを行います。省略時は false で、シードは明示的な呼び出しのみです。
	LazySeed bool `yaml:"lazy_seed" env:"STORAGE_LAZY_SEED"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host" env:"DATABASE_HOST"`
	Port               int           `yaml:"port" env:"DATABASE_PORT"`
	User               string        `yaml:"user" env:"DATABASE_USER"`
	Password           string        `yaml:"password" env:"DATABASE_PASSWORD"`
	Name               string        `yaml:"name" env:"DATABASE_NAME"`
	SSLMode            string        `yaml:"ssl_mode" env:"DATABASE_SSL_MODE"`
	MaxOpenConns       int           `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns       int           `yaml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time" env:"DATABASE_CONN_MAX_IDLE_TIME"`
}

// EventsConfig は通知イベント配信の設定です。ブローカー未指定なら配信しません。
type EventsConfig struct {
	KafkaBrokers      []string `yaml:"kafka_brokers" env:"KAFKA_BROKERS" envSeparator:","`
	NotificationTopic string   `yaml:"notification_topic" env:"KAFKA_NOTIFICATION_TOPIC"`
}

// Enabled はイベント配信が有効かどうかを返します。
func (e EventsConfig) Enabled() bool {
	return len(e.KafkaBrokers) > 0
}

// AdminConfig は管理操作に関する設定です。
type AdminConfig struct {
	Email string `yaml:"email" env:"ADMIN_EMAIL"`
}

// Load は指定されたパスから設定ファイルを読み込み、環境変数で上書きします。
// カレントディレクトリに .env があれば先に読み込みます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = DriverMemory
	case DriverMemory, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: storage.driver %q is not supported", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = defaultSQLitePath
	}

	db := &c.Database
	if c.Storage.Driver == DriverPostgres {
		if err := db.Validate(); err != nil {
			return err
		}
	} else if err := db.normalize(); err != nil {
		return err
	}

	if c.Events.NotificationTopic == "" {
		c.Events.NotificationTopic = defaultNotificationTopic
	}
	c.Admin.Email = strings.TrimSpace(c.Admin.Email)

	return nil
}

// Validate は PostgreSQL 接続に必要な項目が揃っているか確認し、値を正規化します。
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	return d.normalize()
}

func (d *DatabaseConfig) normalize() error {
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。認証情報はエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
