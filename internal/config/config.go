package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting the process needs. It is built once in main
// and passed by reference; business logic never reads the environment.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Email      EmailConfig
	Notify     NotifyConfig
	Newsletter NewsletterConfig
	CORS       CORSConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig contains settings for the optional Redis instance backing the
// rate limiter. An empty Addr disables rate limiting entirely.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// EmailConfig contains outbound mail settings. When Enabled is false the
// NoopEmailService is used and no API key is required.
type EmailConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"from"`
	AdminEmail   string `mapstructure:"admin_email"`
}

// NotifyConfig contains the notification fan-out settings: the contact-type
// routing table, investor relations recipients and the Slack webhook.
type NotifyConfig struct {
	SlackWebhookURL string            `mapstructure:"slack_webhook_url"`
	InvestorEmails  []string          `mapstructure:"investor_emails"`
	ThrottleMs      int               `mapstructure:"throttle_ms"`
	ContactRouting  map[string]string `mapstructure:"contact_routing"`
	DashboardURL    string            `mapstructure:"dashboard_url"`
}

// NewsletterConfig contains the unsubscribe-token settings.
type NewsletterConfig struct {
	UnsubscribeSecret string        `mapstructure:"unsubscribe_secret"`
	TokenTTL          time.Duration `mapstructure:"token_ttl"`
}

// CORSConfig lists the origins the marketing site is served from.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// PostgresConnectionString builds the PostgreSQL DSN.
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// TeamEmail resolves the mailbox for a contact type. Unknown types fall
// back to the GENERAL route, which itself falls back to the from-address.
func (n *NotifyConfig) TeamEmail(contactType, fallback string) string {
	if addr, ok := n.ContactRouting[contactType]; ok && addr != "" {
		return addr
	}
	if addr, ok := n.ContactRouting["GENERAL"]; ok && addr != "" {
		return addr
	}
	return fallback
}

// Load reads the configuration from the given file, overlaid with
// explicitly bound environment variables.
func Load(configPath string) (*Config, error) {
	vip := viper.New()

	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 10)
	vip.SetDefault("server.writetimeout", 10)
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("email.enabled", true)
	vip.SetDefault("email.from", "noreply@xeur.ai")
	vip.SetDefault("notify.throttle_ms", 100)
	vip.SetDefault("notify.dashboard_url", "https://xeur.ai/admin")
	vip.SetDefault("notify.contact_routing", map[string]string{
		"TECHNICAL":   "support@xeur.ai",
		"PARTNERSHIP": "partnerships@xeur.ai",
		"INVESTMENT":  "investors@xeur.ai",
		"PRESS":       "press@xeur.ai",
		"SUPPORT":     "support@xeur.ai",
	})
	vip.SetDefault("notify.investor_emails", []string{"investors@xeur.ai"})
	vip.SetDefault("newsletter.token_ttl", 30*24*time.Hour)

	vip.BindEnv("server.port", "SERVER_PORT")

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")

	vip.BindEnv("email.enabled", "EMAIL_ENABLED")
	vip.BindEnv("email.resend_api_key", "RESEND_API_KEY")
	vip.BindEnv("email.from", "EMAIL_FROM")
	vip.BindEnv("email.admin_email", "ADMIN_EMAIL")

	vip.BindEnv("notify.slack_webhook_url", "SLACK_WEBHOOK_URL")
	vip.BindEnv("notify.investor_emails", "INVESTOR_EMAILS")
	vip.BindEnv("notify.throttle_ms", "NOTIFY_THROTTLE_MS")
	vip.BindEnv("notify.dashboard_url", "DASHBOARD_URL")

	vip.BindEnv("newsletter.unsubscribe_secret", "NEWSLETTER_UNSUBSCRIBE_SECRET")

	vip.BindEnv("cors.allow_origins", "CORS_ALLOW_ORIGINS")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Config file '%s' not found, relying on environment variables and defaults.", configPath)
			} else {
				log.Printf("Warning: failed to read config file '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if cfg.Email.Enabled && cfg.Email.ResendAPIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is required while email is enabled (set EMAIL_ENABLED=false to run without outbound mail)")
	}
	if cfg.Newsletter.UnsubscribeSecret == "" {
		return nil, fmt.Errorf("newsletter unsubscribe secret is required (check NEWSLETTER_UNSUBSCRIBE_SECRET env var)")
	}

	return &cfg, nil
}
