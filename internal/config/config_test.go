package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jeffreasy/PasswordLab/internal/hashing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "LOG_LEVEL", "PORT", "SENTRY_DSN", "SALT_LENGTH", "ADAPTIVE_ALGORITHM",
		"BCRYPT_COST", "ARGON2_MEMORY_KIB", "ARGON2_TIME", "ARGON2_THREADS", "RATE_LIMIT_RPS",
		"RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS", "TRUST_PROXY_HEADERS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, hashing.DefaultSaltLength, cfg.SaltLength)
	assert.Equal(t, "bcrypt", cfg.AdaptiveAlgorithm)
	assert.Equal(t, hashing.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, hashing.DefaultArgon2Memory, cfg.Argon2.Memory)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.TrustProxyHeaders)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SALT_LENGTH", "32")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("ADAPTIVE_ALGORITHM", "argon2id")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://demo.example ,")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 32, cfg.SaltLength)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "argon2id", cfg.AdaptiveAlgorithm)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, []string{"http://localhost:3000", "https://demo.example"}, cfg.AllowedOrigins)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "twelve")
	t.Setenv("SALT_LENGTH", "-4")
	t.Setenv("RATE_LIMIT_RPS", "0")

	cfg := Load()
	assert.Equal(t, hashing.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, hashing.DefaultSaltLength, cfg.SaltLength)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
}

func TestLoad_Argon2ValuesDoNotWrap(t *testing.T) {
	cases := []struct {
		name, key, val string
		check          func(t *testing.T, cfg Config)
	}{
		{"threads overflow uint8", "ARGON2_THREADS", "256", func(t *testing.T, cfg Config) {
			assert.Equal(t, hashing.DefaultArgon2Threads, cfg.Argon2.Threads)
		}},
		{"threads in range", "ARGON2_THREADS", "255", func(t *testing.T, cfg Config) {
			assert.Equal(t, uint8(255), cfg.Argon2.Threads)
		}},
		{"memory overflow uint32", "ARGON2_MEMORY_KIB", "4294967296", func(t *testing.T, cfg Config) {
			assert.Equal(t, hashing.DefaultArgon2Memory, cfg.Argon2.Memory)
		}},
		{"memory in range", "ARGON2_MEMORY_KIB", "131072", func(t *testing.T, cfg Config) {
			assert.Equal(t, uint32(131072), cfg.Argon2.Memory)
		}},
		{"negative time", "ARGON2_TIME", "-1", func(t *testing.T, cfg Config) {
			assert.Equal(t, hashing.DefaultArgon2Time, cfg.Argon2.Time)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			tc.check(t, Load())
		})
	}
}

func TestLoad_TrustProxyHeaders(t *testing.T) {
	t.Setenv("TRUST_PROXY_HEADERS", "true")
	assert.True(t, Load().TrustProxyHeaders)

	t.Setenv("TRUST_PROXY_HEADERS", "maybe")
	assert.False(t, Load().TrustProxyHeaders)
}
