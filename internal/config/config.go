package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Mailer    MailerConfig    `toml:"mailer"`
	Reminders RemindersConfig `toml:"reminders"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// StorageConfig настройки бакета документов (Google Cloud Storage)
type StorageConfig struct {
	Bucket              string `toml:"bucket"`
	SignerEmail         string `toml:"signer_email"`
	SignerPrivateKeyRaw string `toml:"signer_private_key"`      // PEM ключ (с \n)
	CredentialsFile     string `toml:"credentials_file"`        // путь к service account JSON
	SignedURLTTL        int    `toml:"signed_url_ttl"`          // секунды, TTL подписанных ссылок
	MaxUploadSizeBytes  int64  `toml:"max_upload_size_bytes"`   // лимит размера загружаемого файла
	ShareTokenTTLHours  int    `toml:"share_token_ttl_hours"`   // срок жизни публичных ссылок
}

// MailerConfig настройки вебхука почтовой автоматизации
type MailerConfig struct {
	WebhookURL string `toml:"webhook_url"`
	Timeout    int    `toml:"timeout"` // секунды
}

// RemindersConfig настройки планировщика напоминаний об оплате
type RemindersConfig struct {
	Enabled         bool    `toml:"enabled"`
	IntervalMinutes int     `toml:"interval_minutes"`
	OpsUserIDs      []int64 `toml:"ops_user_ids"` // получатели уведомлений о сбоях отправки
}

// Load читает конфигурацию из TOML файла и валидирует обязательные поля
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port is required")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Mailer.WebhookURL == "" {
		return fmt.Errorf("config: mailer.webhook_url is required")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "rental-service"
	}
	if c.Storage.SignedURLTTL <= 0 {
		c.Storage.SignedURLTTL = 900 // 15 минут
	}
	if c.Storage.MaxUploadSizeBytes <= 0 {
		c.Storage.MaxUploadSizeBytes = 10 * 1024 * 1024
	}
	if c.Storage.ShareTokenTTLHours <= 0 {
		c.Storage.ShareTokenTTLHours = 72
	}
	if c.Mailer.Timeout <= 0 {
		c.Mailer.Timeout = 10
	}
	if c.Reminders.IntervalMinutes <= 0 {
		c.Reminders.IntervalMinutes = 30
	}
}
