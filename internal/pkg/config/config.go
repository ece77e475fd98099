package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// SessionTTL is the lifetime of a session token and of the cookie carrying it.
const SessionTTL = 24 * time.Hour

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret and Mongo.URI have no defaults: a process without them must not start.
	JWTSecret string `env:"JWT_SECRET, required"`

	Mongo MongoConfig
	Redis RedisConfig
	Auth  AuthConfig
	CORS  CORSConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=newsroom"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	UserTTL  time.Duration `env:"USER_CACHE_TTL, default=5m"`
}

type AuthConfig struct {
	HashWorkers int `env:"HASH_WORKERS, default=4"`
	// EnforceSession attaches the session middleware to role assignment and
	// requires the acting admin to be the session user.
	EnforceSession bool `env:"AUTH_ENFORCE_SESSION, default=true"`
	CookieSecure   bool `env:"COOKIE_SECURE,        default=false"`
}

// CORSConfig lists the browser origins allowed to call the API with the
// session cookie. Comma-separated in the environment.
type CORSConfig struct {
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS, default=http://localhost:3000"`
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
// It panics when a required variable is missing.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration from the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
