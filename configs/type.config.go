package config

import (
	"context"
	"portrait-backend/internal/common/enum"
	"portrait-backend/internal/pkg/conversion"
	database "portrait-backend/internal/pkg/db"
	"portrait-backend/internal/pkg/gateway"
	"portrait-backend/internal/pkg/rabbitmq"
	"portrait-backend/internal/pkg/redis"
	"sync"
)

// Config holds all application configuration loaded from environment variables
type Config struct {
	AppEnv        enum.EnvEnum `env:"APP_ENV" envDefault:"development"`
	AppPort       int          `env:"APP_PORT" envDefault:"8080"`
	AppBaseURL    string       `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	CorsOrigins   string       `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
	RedisHost     string       `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int          `env:"REDIS_PORT" envDefault:"6379"`
	RedisUser     string       `env:"REDIS_USER" envDefault:"default"`
	RedisPass     string       `env:"REDIS_PASS" envDefault:""`
	RedisPoolSize int          `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RabbitHost    string       `env:"RABBIT_HOST" envDefault:"localhost"`
	RabbitPort    int          `env:"RABBIT_PORT" envDefault:"5672"`
	RabbitUser    string       `env:"RABBIT_USER" envDefault:"guest"`
	RabbitPass    string       `env:"RABBIT_PASS" envDefault:"guest"`
	RabbitVHost   string       `env:"RABBIT_VHOST" envDefault:""`
	DBDriver      string       `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost        string       `env:"DB_HOST" envDefault:"localhost"`
	DBPort        int          `env:"DB_PORT" envDefault:"5432"`
	DBUser        string       `env:"DB_USER" envDefault:"postgres"`
	DBPass        string       `env:"DB_PASS" envDefault:""`
	DBName        string       `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode     string       `env:"DB_SSLMODE" envDefault:"disable"`
	DBCache       bool         `env:"DB_CACHE" envDefault:"false"`
	GeminiAPIKey  string       `env:"GEMINI_API_KEY" envDefault:""`
	GeminiModel   string       `env:"GEMINI_EMBEDDING_MODEL" envDefault:"text-embedding-004"`

	// Payment provider: "gateway" (REST order API) or "midtrans"
	PaymentProvider     string `env:"PAYMENT_PROVIDER" envDefault:"gateway"`
	PaymentGatewayURL   string `env:"PAYMENT_GATEWAY_URL" envDefault:""`
	PaymentGatewayKey   string `env:"PAYMENT_GATEWAY_KEY" envDefault:""`
	PaymentTimeout      int    `env:"PAYMENT_TIMEOUT_SECONDS" envDefault:"15"`
	MidtransServerKey   string `env:"MIDTRANS_SERVER_KEY" envDefault:""`
	MidtransClientKey   string `env:"MIDTRANS_CLIENT_KEY" envDefault:""`
	MidtransEnvironment string `env:"MIDTRANS_ENVIRONMENT" envDefault:"sandbox"`
	OutboundProxyURL    string `env:"OUTBOUND_PROXY_URL" envDefault:""`

	// Conversion tracking (Meta Conversions API)
	MetaPixelID       string `env:"META_PIXEL_ID" envDefault:""`
	MetaAccessToken   string `env:"META_ACCESS_TOKEN" envDefault:""`
	MetaAPIVersion    string `env:"META_API_VERSION" envDefault:"v19.0"`
	MetaTestEventCode string `env:"META_TEST_EVENT_CODE" envDefault:""`
	DefaultCurrency   string `env:"DEFAULT_CURRENCY" envDefault:"EUR"`

	// Polls per client IP per minute on the status endpoint, 0 disables
	StatusPollLimit int `env:"STATUS_POLL_LIMIT" envDefault:"60"`

	// Push daemon
	PushClientTTL int `env:"PUSH_CLIENT_TTL_SECONDS" envDefault:"120"`

	// AWS S3 Configuration (optional, used by cmd/embed snapshots)
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:""`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:""`
	AWSRegion          string `env:"AWS_REGION" envDefault:"eu-central-1"`
	AWSBucketName      string `env:"AWS_BUCKET_NAME" envDefault:""`
}

// SetupServerDto contains dependencies for server setup
type SetupServerDto struct {
	Ctx        *context.Context
	Cancel     context.CancelFunc
	Wg         *sync.WaitGroup
	Env        *Config
	Db         *database.Database
	Rds        *redis.Client
	Rb         *rabbitmq.ConnectionManager
	Provider   gateway.Provider
	Conversion conversion.IClient
}
