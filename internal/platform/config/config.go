package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration for the session-security core.
type Server struct {
	Addr            string
	JWTSigningKey   string
	Issuer          string
	Audience        string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// StoreDeadline bounds every validation/rotation store lookup. A lookup
	// that misses the deadline is a fail-closed rejection, never an allow.
	StoreDeadline time.Duration

	CleanupInterval time.Duration

	// AdminAPIKeyHash is a bcrypt hash of the key required on /admin routes.
	// Empty disables the admin surface.
	AdminAPIKeyHash string

	Reputation Reputation
}

// Reputation holds the IP reputation guard thresholds.
type Reputation struct {
	// Window is the sliding window for counting attack signals per IP.
	Window time.Duration
	// WindowLimit is the signal count within Window that triggers a temporary block.
	WindowLimit int
	// TempBlockBase is the first temporary block duration; each repeat offense doubles it.
	TempBlockBase time.Duration
	// PermanentThreshold is the lifetime violation count that converts a block to permanent.
	PermanentThreshold int
}

// DefaultReputation returns production-leaning thresholds.
func DefaultReputation() Reputation {
	return Reputation{
		Window:             5 * time.Minute,
		WindowLimit:        10,
		TempBlockBase:      15 * time.Minute,
		PermanentThreshold: 50,
	}
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:            envOr("AEGIS_ADDR", ":8080"),
		JWTSigningKey:   envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		Issuer:          envOr("TOKEN_ISSUER", "https://aegis.local"),
		Audience:        envOr("TOKEN_AUDIENCE", "aegis-api"),
		AccessTokenTTL:  envDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTokenTTL: envDuration("REFRESH_TOKEN_TTL", 14*24*time.Hour),
		StoreDeadline:   envDuration("STORE_DEADLINE", 2*time.Second),
		CleanupInterval: envDuration("CLEANUP_INTERVAL", 5*time.Minute),
		AdminAPIKeyHash: os.Getenv("ADMIN_API_KEY_HASH"),
		Reputation:      DefaultReputation(),
	}

	cfg.Reputation.Window = envDuration("REPUTATION_WINDOW", cfg.Reputation.Window)
	cfg.Reputation.WindowLimit = envInt("REPUTATION_WINDOW_LIMIT", cfg.Reputation.WindowLimit)
	cfg.Reputation.TempBlockBase = envDuration("REPUTATION_TEMP_BLOCK_BASE", cfg.Reputation.TempBlockBase)
	cfg.Reputation.PermanentThreshold = envInt("REPUTATION_PERMANENT_THRESHOLD", cfg.Reputation.PermanentThreshold)

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
