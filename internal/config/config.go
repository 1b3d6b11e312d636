package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DBPath      string // path to the SQLite database file
	CatalogFile string // path to the catalog.yaml paper source file
	FetchDelay  time.Duration // simulated catalog latency (the source stands in for a remote API)

	RefreshInterval  time.Duration    // interval between automatic catalog refreshes (default: 1h)
	DefaultDateRange string           // lower bound preset used when a refresh runs ("today"|"3days"|"week"|"month"|"year")

	// Sessions
	SessionTTL       time.Duration // redis session lifetime (ignored by the in-memory store)
	SessionBackend   string        // "memory" | "redis"

	// Redis (only used when SessionBackend == "redis")
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisWarnThreshold  int           // warn after this many attempts

	// Write-endpoint rate limiting
	RateLimitBurst  int
	RateLimitPerMin int

	AllowedCIDRS []string // optional, restrict /refresh and probes to specific IPs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("PAPERDESK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("PAPERDESK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("PAPERDESK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("PAPERDESK_PRETTY_LOG", true),

		// Storage & source
		DBPath:      getenv("PAPERDESK_DB_PATH", "paperdesk.db"),
		CatalogFile: getenv("PAPERDESK_CATALOG_FILE", "catalog.yaml"),
		FetchDelay:  mustDuration("PAPERDESK_FETCH_DELAY", time.Second),

		RefreshInterval:  mustDuration("PAPERDESK_REFRESH_INTERVAL", time.Hour),
		DefaultDateRange: getenv("PAPERDESK_DEFAULT_RANGE", "week"),

		// Sessions
		SessionTTL:     mustDuration("PAPERDESK_SESSION_TTL", 12*time.Hour),
		SessionBackend: getenv("PAPERDESK_SESSION_BACKEND", "memory"),

		// Redis settings
		RedisAddr:           getenv("PAPERDESK_REDIS_ADDR", "localhost:6379"),
		RedisUser:           getenv("PAPERDESK_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("PAPERDESK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("PAPERDESK_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Rate limiting for votes/comments
		RateLimitBurst:  getenvInt("PAPERDESK_RATELIMIT_BURST", 10),
		RateLimitPerMin: getenvInt("PAPERDESK_RATELIMIT_PER_MIN", 30),

		// Access restrictions
		AllowedCIDRS: splitAndTrim(getenv("PAPERDESK_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("PAPERDESK_TRUST_PROXY", false),
	}

	if cfg.SessionBackend != "memory" && cfg.SessionBackend != "redis" {
		panic(fmt.Sprintf("❌ FATAL: PAPERDESK_SESSION_BACKEND must be \"memory\" or \"redis\", got %q", cfg.SessionBackend))
	}
	if cfg.FetchDelay < 0 {
		panic("❌ FATAL: PAPERDESK_FETCH_DELAY must not be negative")
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
