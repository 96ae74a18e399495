package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=5001"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Session  SessionConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
	HTTP     HTTPConfig
	MaxMedia int64 `env:"MEDIA_MAX_BYTES, default=5242880"`
}

type SessionConfig struct {
	TTL        time.Duration `env:"SESSION_TTL, default=168h"`
	CookieName string        `env:"COOKIE_NAME, default=jwt"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,            default=talenthub"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=100"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// AMQPConfig enables domain event publishing when URL is set.
type AMQPConfig struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE, default=talenthub.events"`
}

type HTTPConfig struct {
	ClientOrigin    string        `env:"CLIENT_ORIGIN,     default=http://localhost:3000"`
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT,  default=10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW, default=60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,  default=15s"`
	// TrustedProxies lists the CIDRs whose X-Forwarded-For is believed.
	// Empty means the socket peer is the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// IsDevelopment reports whether the service runs in local development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// MaxRequestBytes bounds request bodies. A base64 data URL of MaxMedia
// bytes plus the surrounding JSON must fit.
func (c *Config) MaxRequestBytes() int64 {
	return c.MaxMedia*4/3 + 64<<10
}

// Load reads a .env file when one exists, then configuration from environment
// variables using go-envconfig.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := load(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
