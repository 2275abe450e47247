package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Contact registration providers
const (
	ProviderBrevo   = "brevo"
	ProviderMailgun = "mailgun"
)

// Asset sources
const (
	AssetSourceEmbedded = "embedded"
	AssetSourceS3       = "s3"
	AssetSourceHTTP     = "http"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	ServerPort    int    `env:"SERVER_PORT" envDefault:"4002"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Signup workflow
	Signup SignupConfig

	// Contact registration
	Contacts ContactsConfig

	// Guide asset location
	Asset AssetConfig

	// Object storage (only used when ASSET_SOURCE=s3)
	Storage StorageConfig

	// OpenTelemetry
	Otel OtelConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"0s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// SignupConfig holds the fixed parameters of the signup workflow
type SignupConfig struct {
	// SourceLabel is stored on the contact as the SOURCE attribute
	SourceLabel string `env:"SIGNUP_SOURCE_LABEL" envDefault:"Emergency Guide Landing Page"`
	// AssetPath is the path of the guide inside the asset source
	AssetPath string `env:"GUIDE_ASSET_PATH" envDefault:"guide.pdf"`
	// DownloadFilename is the name the visitor's browser saves the guide under
	DownloadFilename string `env:"GUIDE_DOWNLOAD_FILENAME" envDefault:"ResQX-Emergency-Guide.pdf"`
	// SuccessDisplayMs is how long the success notice stays up (default: 5000)
	SuccessDisplayMs int `env:"SIGNUP_SUCCESS_DISPLAY_MS" envDefault:"5000"`
	// SessionIdleTTL evicts visitor workflow state after this much inactivity
	SessionIdleTTL time.Duration `env:"SIGNUP_SESSION_IDLE_TTL" envDefault:"30m"`
	// SessionSweep is the cron spec of the eviction task
	SessionSweep string `env:"SIGNUP_SESSION_SWEEP" envDefault:"@every 1m"`
	// CookieSecure marks the visitor cookie Secure (enable behind TLS)
	CookieSecure bool `env:"SIGNUP_COOKIE_SECURE" envDefault:"false"`
}

// SuccessDisplay returns the success display window as a Duration
func (s *SignupConfig) SuccessDisplay() time.Duration {
	return time.Duration(s.SuccessDisplayMs) * time.Millisecond
}

// ContactsConfig selects and configures the contact registration provider
type ContactsConfig struct {
	// Provider is "brevo" (default) or "mailgun"
	Provider string `env:"CONTACTS_PROVIDER" envDefault:"brevo"`

	Brevo   BrevoConfig
	Mailgun MailgunConfig
}

// BrevoConfig holds Brevo contacts API settings
type BrevoConfig struct {
	// APIKey is sent in the api-key header
	APIKey string `env:"BREVO_API_KEY" envDefault:""`
	// ListID is the contact list signups are added to. 0 means unset.
	ListID int `env:"BREVO_LIST_ID" envDefault:"0"`
	// BaseURL is the API origin
	BaseURL string `env:"BREVO_BASE_URL" envDefault:"https://api.brevo.com"`
}

// MailgunConfig holds Mailgun mailing list settings
type MailgunConfig struct {
	Domain string `env:"MAILGUN_DOMAIN" envDefault:""`
	APIKey string `env:"MAILGUN_API_KEY" envDefault:""`
	// APIBase overrides the API origin (e.g. the EU region endpoint)
	APIBase string `env:"MAILGUN_API_BASE" envDefault:""`
	// ListID is the numeric list identifier used by the signup workflow
	ListID int `env:"MAILGUN_LIST_ID" envDefault:"0"`
	// Lists maps list identifiers to mailing list addresses, e.g. "5:guide@mg.example.com"
	Lists map[string]string `env:"MAILGUN_LISTS"`
}

// Credential returns the API key of the selected provider
func (c *ContactsConfig) Credential() string {
	if c.Provider == ProviderMailgun {
		return c.Mailgun.APIKey
	}
	return c.Brevo.APIKey
}

// ListID returns the list identifier of the selected provider
func (c *ContactsConfig) ListID() int {
	if c.Provider == ProviderMailgun {
		return c.Mailgun.ListID
	}
	return c.Brevo.ListID
}

// IsConfigured returns true if the selected provider has a credential and a usable list
func (c *ContactsConfig) IsConfigured() bool {
	return c.Credential() != "" && c.ListID() > 0
}

// AssetConfig selects where the guide is read from
type AssetConfig struct {
	// Source is "embedded" (default), "s3" or "http"
	Source string `env:"ASSET_SOURCE" envDefault:"embedded"`
	// BaseURL is the origin serving the guide when Source is "http"
	BaseURL string `env:"ASSET_BASE_URL" envDefault:""`
}

// StorageConfig holds storage (MinIO/S3) configuration
type StorageConfig struct {
	Endpoint  string `env:"STORAGE_ENDPOINT" envDefault:""`
	AccessKey string `env:"STORAGE_ACCESS_KEY" envDefault:""`
	SecretKey string `env:"STORAGE_SECRET_KEY" envDefault:""`
	Region    string `env:"STORAGE_REGION" envDefault:"us-east-1"`
	Bucket    string `env:"STORAGE_BUCKET_ASSETS" envDefault:"assets"`
}

// IsConfigured returns true if storage is configured
func (s *StorageConfig) IsConfigured() bool {
	return s.Endpoint != "" && s.AccessKey != "" && s.SecretKey != ""
}

// Validate rejects settings the server cannot start with.
// A missing provider credential is not one of them: the signup workflow
// reports it per submission.
func (c *Config) Validate() error {
	var problems []string

	switch c.Contacts.Provider {
	case ProviderBrevo, ProviderMailgun:
	default:
		problems = append(problems, fmt.Sprintf("CONTACTS_PROVIDER %q is not one of brevo, mailgun", c.Contacts.Provider))
	}

	switch c.Asset.Source {
	case AssetSourceEmbedded:
	case AssetSourceS3:
		if !c.Storage.IsConfigured() {
			problems = append(problems, "ASSET_SOURCE=s3 requires STORAGE_ENDPOINT, STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY")
		}
	case AssetSourceHTTP:
		if c.Asset.BaseURL == "" {
			problems = append(problems, "ASSET_SOURCE=http requires ASSET_BASE_URL")
		}
	default:
		problems = append(problems, fmt.Sprintf("ASSET_SOURCE %q is not one of embedded, s3, http", c.Asset.Source))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// NewConfig loads configuration from environment variables
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.ServerPort),
		slog.String("contacts_provider", cfg.Contacts.Provider),
		slog.String("asset_source", cfg.Asset.Source),
	)

	if cfg.Contacts.Credential() == "" {
		log.Warn("contact registration credential is not set; every signup will fail until it is",
			slog.String("provider", cfg.Contacts.Provider))
	}
	if cfg.Contacts.ListID() <= 0 {
		log.Warn("contact list id is unset or not positive; signups will be rejected",
			slog.String("provider", cfg.Contacts.Provider),
			slog.Int("list_id", cfg.Contacts.ListID()))
	}

	return cfg, nil
}
