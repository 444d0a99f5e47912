package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/Jeffreasy/PasswordLab/internal/hashing"
)

// Config holds all application configuration.
type Config struct {
	Env       string
	LogLevel  string
	Port      string
	SentryDSN string

	SaltLength        int
	AdaptiveAlgorithm string
	BcryptCost        int
	Argon2            hashing.Argon2Options

	RateLimitRPS   float64
	RateLimitBurst int

	// TrustProxyHeaders lets X-Forwarded-For / X-Real-IP replace the peer
	// address. Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool

	AllowedOrigins []string
}

// Load reads configuration from environment variables.
// Unparseable numbers fall back to their defaults; range checks happen when
// the hashing engines are built.
func Load() Config {
	env := getEnv("APP_ENV", "development")
	defaultLevel := "debug"
	if env == "production" {
		defaultLevel = "info"
	}

	return Config{
		Env:       env,
		LogLevel:  getEnv("LOG_LEVEL", defaultLevel),
		Port:      getEnv("PORT", "8080"),
		SentryDSN: os.Getenv("SENTRY_DSN"),

		SaltLength:        getEnvAsInt("SALT_LENGTH", hashing.DefaultSaltLength),
		AdaptiveAlgorithm: getEnv("ADAPTIVE_ALGORITHM", string(hashing.AlgorithmBcrypt)),
		BcryptCost:        getEnvAsInt("BCRYPT_COST", hashing.DefaultCost),
		Argon2: hashing.Argon2Options{
			Memory:  uint32(getEnvAsUint("ARGON2_MEMORY_KIB", uint64(hashing.DefaultArgon2Memory), 32)),
			Time:    uint32(getEnvAsUint("ARGON2_TIME", uint64(hashing.DefaultArgon2Time), 32)),
			Threads: uint8(getEnvAsUint("ARGON2_THREADS", uint64(hashing.DefaultArgon2Threads), 8)),
		},

		RateLimitRPS:      getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 10),
		TrustProxyHeaders: getEnvAsBool("TRUST_PROXY_HEADERS", false),

		AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(name, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return defaultVal
}

// Helper to read int env vars. Negative values are treated as unset.
func getEnvAsInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(strings.TrimSpace(valStr))
	if err != nil || val < 0 {
		return defaultVal
	}
	return val
}

// getEnvAsUint parses an unsigned value that must fit in bits. Values that do
// not parse or overflow fall back to defaultVal instead of wrapping.
func getEnvAsUint(name string, defaultVal uint64, bits int) uint64 {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseUint(strings.TrimSpace(valStr), 10, bits)
	if err != nil {
		return defaultVal
	}
	return val
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(strings.TrimSpace(valStr))
	if err != nil {
		return defaultVal
	}
	return val
}

func getEnvAsFloat(name string, defaultVal float64) float64 {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(valStr), 64)
	if err != nil || val <= 0 {
		return defaultVal
	}
	return val
}

func getEnvAsList(name string, defaultVal []string) []string {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
