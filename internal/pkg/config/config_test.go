package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 4*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptSaltRounds)
	assert.Equal(t, "mongodb://127.0.0.1:27017", cfg.Mongo.URI)
	assert.Equal(t, "formotex", cfg.Mongo.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"APP_ENV":            "production",
		"PORT":               "8081",
		"JWT_TTL":            "30m",
		"BCRYPT_SALT_ROUNDS": "12",
		"MONGODB_DB":         "inventory_test",
		"REDIS_PASSWORD":     "hunter2",
		"REDIS_DB":           "3",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 12, cfg.BcryptSaltRounds)
	assert.Equal(t, "inventory_test", cfg.Mongo.Database)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":      {},
		"empty secret":        {"JWT_SECRET": ""},
		"rounds not a number": {"JWT_SECRET": "s", "BCRYPT_SALT_ROUNDS": "ten"},
		"rounds too low":      {"JWT_SECRET": "s", "BCRYPT_SALT_ROUNDS": "3"},
		"rounds too high":     {"JWT_SECRET": "s", "BCRYPT_SALT_ROUNDS": "32"},
		"bad ttl":             {"JWT_SECRET": "s", "JWT_TTL": "forever"},
		"negative ttl":        {"JWT_SECRET": "s", "JWT_TTL": "-1h"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}
