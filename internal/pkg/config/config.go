package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string   `env:"PORT,            default=8080"`
	Env           string   `env:"ENV,             default=development"`
	JWTSecret     string   `env:"JWT_SECRET,      required"`
	LogLevel      string   `env:"LOG_LEVEL,       default=info"`
	PublicBaseURL string   `env:"PUBLIC_BASE_URL, default=http://localhost:3000"`
	CORSOrigins   []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:3000"`

	// AuthRateLimit is requests per minute per client IP on /api/auth.
	AuthRateLimit int `env:"AUTH_RATE_LIMIT_PER_MINUTE, default=20"`

	CacheTTL time.Duration `env:"CACHE_TTL, default=5m"`

	Airtable AirtableConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type AirtableConfig struct {
	APIKey  string        `env:"AIRTABLE_API_KEY,  required"`
	BaseID  string        `env:"AIRTABLE_BASE_ID,  required"`
	BaseURL string        `env:"AIRTABLE_BASE_URL, default=https://api.airtable.com/v0"`
	Timeout time.Duration `env:"AIRTABLE_TIMEOUT,  default=10s"`

	UsersTable        string `env:"AIRTABLE_USERS_TABLE,        default=Users"`
	BookingsTable     string `env:"AIRTABLE_BOOKINGS_TABLE,     default=Bookings"`
	ListingsTable     string `env:"AIRTABLE_LISTINGS_TABLE,     default=Listings"`
	DestinationsTable string `env:"AIRTABLE_DESTINATIONS_TABLE, default=Destinations"`
	BlogTable         string `env:"AIRTABLE_BLOG_TABLE,         default=Blog"`
}

// MongoConfig is optional; an empty URI disables the audit trail.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=marketplace"`
}

// RedisConfig is optional; an empty address disables caching and token revocation.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// IsDevelopment reports whether ENV is "development". Error details are only
// exposed to clients in development.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
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
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET must not be blank")
	}
	if c.AuthRateLimit <= 0 {
		return errors.New("AUTH_RATE_LIMIT_PER_MINUTE must be positive")
	}
	c.PublicBaseURL = strings.TrimRight(c.PublicBaseURL, "/")
	return nil
}
