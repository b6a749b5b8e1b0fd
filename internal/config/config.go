package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout, uploads included (ex: 10s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	LinksFile        string        // path to links.yaml, used to seed an empty store (optional)
	IconsFile        string        // path to icons.yaml, the static icon pack (optional)
	IconsReload      time.Duration // interval to reload icons.yaml (default: 1h)
	OrphanGCInterval time.Duration // interval to drop link keys missing from the order list (default: 24h)

	// Uploads
	MaxUploadBytes    int64         // upper bound of an uploaded icon (ex: "1MB")
	DefaultUploadSize int           // display size given to a fresh upload (default: 24)
	DecodeTimeout     time.Duration // max time spent reading and decoding one upload
	UploadBurst       int           // rate limit: uploads allowed in a burst, per client IP
	UploadRefillPerIP int           // rate limit: uploads regained per minute, per client IP

	// Redis (optional, empty addr = memory only)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts   []string // optional, restrict access to specific Host headers
	AllowedCIDRS   []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy     bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	AllowedOrigins []string // CORS origins, "*" allowed (default: none)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LINKEDIT_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKEDIT_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("LINKEDIT_REQUEST_TIMEOUT", 10*time.Second),

		// Logging
		LogLevel:  getenv("LINKEDIT_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKEDIT_PRETTY_LOG", true),

		// Source files
		LinksFile:        getenv("LINKEDIT_LINKS_FILE", ""),
		IconsFile:        getenv("LINKEDIT_ICONS_FILE", ""),
		IconsReload:      mustDuration("LINKEDIT_ICONS_RELOAD_INTERVAL", time.Hour),
		OrphanGCInterval: mustDuration("LINKEDIT_GC_INTERVAL", 24*time.Hour),

		// Uploads
		MaxUploadBytes:    mustBytes("LINKEDIT_MAX_UPLOAD_SIZE", 1<<20),
		DefaultUploadSize: getenvInt("LINKEDIT_DEFAULT_UPLOAD_ICON_SIZE", 24),
		DecodeTimeout:     mustDuration("LINKEDIT_DECODE_TIMEOUT", 5*time.Second),
		UploadBurst:       getenvInt("LINKEDIT_UPLOAD_BURST", 10),
		UploadRefillPerIP: getenvInt("LINKEDIT_UPLOAD_REFILL_PER_MIN", 30),

		// Redis settings
		RedisAddr:             getenv("LINKEDIT_REDIS_ADDR", ""),
		RedisUser:             getenv("LINKEDIT_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("LINKEDIT_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("LINKEDIT_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("LINKEDIT_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts:   splitAndTrim(getenv("LINKEDIT_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   parseAllowedIPs(getenv("LINKEDIT_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("LINKEDIT_TRUST_PROXY", false),
		AllowedOrigins: splitAndTrim(getenv("LINKEDIT_ALLOWED_ORIGINS", "")),
	}

	// Validate Redis password configuration
	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: LINKEDIT_REDIS_PASSWORD is required when LINKEDIT_REDIS_PASSWORD_REQUIRED=true")
	}
	if cfg.MaxUploadBytes <= 0 {
		panic(fmt.Sprintf("❌ FATAL: LINKEDIT_MAX_UPLOAD_SIZE must be > 0, got %d", cfg.MaxUploadBytes))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// RedisEnabled reports whether links are persisted to Redis.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

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

// mustBytes accepts human sizes ("512KB", "1 MiB") or a plain byte count.
func mustBytes(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := humanize.ParseBytes(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid size value for %s: %s", key, v))
	}
	return int64(n)
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
