package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"APP_ENV,   default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret        string        `env:"JWT_SECRET, required"`
	JWTTTL           time.Duration `env:"JWT_TTL,    default=4h"`
	BcryptSaltRounds int           `env:"BCRYPT_SALT_ROUNDS, default=10"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI, default=mongodb://127.0.0.1:27017"`
	Database string `env:"MONGODB_DB,  default=formotex"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l. Tests pass an envconfig.MapLookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.BcryptSaltRounds < bcrypt.MinCost || c.BcryptSaltRounds > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_SALT_ROUNDS must be within [%d, %d], got %d",
			bcrypt.MinCost, bcrypt.MaxCost, c.BcryptSaltRounds)
	}
	return nil
}
