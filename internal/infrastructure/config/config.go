package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AdminUsername is the reserved administrator account. It receives the
	// admin role at signup and can never be deleted.
	AdminUsername string `env:"ADMIN_USERNAME, default=mswadmin"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
	ERP   ERPConfig
	Jobs  JobsConfig
}

type AuthConfig struct {
	// Access and refresh tokens are signed with distinct secrets so that
	// compromise of one class does not compromise the other.
	AccessSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL, default=30m"`
	OTPTTL        time.Duration `env:"OTP_TTL,           default=5m"`
	// OTPBackend selects the challenge store: "memory" for a single instance,
	// "redis" when the service is horizontally scaled.
	OTPBackend  string        `env:"OTP_BACKEND,       default=memory"`
	CallTimeout time.Duration `env:"AUTH_CALL_TIMEOUT, default=5s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=msw_portal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host        string `env:"EMAIL_HOST"`
	Port        int    `env:"EMAIL_PORT, default=587"`
	Username    string `env:"EMAIL_ID"`
	Password    string `env:"EMAIL_PASS"`
	FromName    string `env:"EMAIL_FROM_NAME,    default=MSW Auto Mailer"`
	FromAddress string `env:"EMAIL_FROM_ADDRESS"`
}

type ERPConfig struct {
	BaseURL         string        `env:"ERP_BASE_URL"`
	Username        string        `env:"ERP_USERNAME"`
	Password        string        `env:"ERP_PASSWORD"`
	InventoryPath   string        `env:"ERP_INVENTORY_PATH,   default=/api/v1/BaqSvc/MSW-OMPSTOCK?comp=MSW"`
	TransactionPath string        `env:"ERP_TRANSACTION_PATH, default=/api/v1/BaqSvc/MSW-OMPTransaction1?comp=MSW"`
	Timeout         time.Duration `env:"ERP_TIMEOUT, default=30s"`
}

type JobsConfig struct {
	Enabled     bool          `env:"JOBS_ENABLED, default=true"`
	MirrorSpec  string        `env:"JOBS_MIRROR_SPEC,  default=0 0 * * *"`
	ArchiveSpec string        `env:"JOBS_ARCHIVE_SPEC, default=15 11 * * *"`
	Timeout     time.Duration `env:"JOBS_TIMEOUT, default=5m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
