package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline for the API

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ConfigFile     string        // path to the docs configuration payload (.js, .json or .yaml)
	MembersFile    string        // optional member list or glob ("members/**/*.yaml") for toolbar filtering
	ReloadInterval time.Duration // interval to re-read the configuration (default: 1h)

	Debounce             time.Duration // settle delay before a typed query is evaluated
	Workers              int           // debounce worker pool size
	SessionIdleTTL       time.Duration // remote sessions unused for this long are closed
	SessionSweepInterval time.Duration // how often idle sessions are looked for

	// Redis (optional, enables snapshot publication)
	RedisAddr             string        // ex: "localhost:6379", empty = disabled
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

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict /reload to these networks (e.g. "10.0.0.0/8, 127.0.0.1")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string // browser origins allowed to call /api (default: any)

	SessionBurst        int // session creations allowed at once per client
	SessionRefillPerMin int // session creations regained per minute per client
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("DOCNAV_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("DOCNAV_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("DOCNAV_REQUEST_TIMEOUT", 2*time.Second),

		// Logging
		LogLevel:  getenv("DOCNAV_LOG_LEVEL", "info"),
		PrettyLog: mustBool("DOCNAV_PRETTY_LOG", true),

		// Sources
		ConfigFile:     getenv("DOCNAV_CONFIG_FILE", "/app/config.js"),
		MembersFile:    getenv("DOCNAV_MEMBERS_FILE", ""), // Optional, empty = no members
		ReloadInterval: mustDuration("DOCNAV_RELOAD_INTERVAL", time.Hour),

		// Sessions
		Debounce:             mustDuration("DOCNAV_DEBOUNCE", 150*time.Millisecond),
		Workers:              getenvInt("DOCNAV_WORKERS", 4),
		SessionIdleTTL:       mustDuration("DOCNAV_SESSION_IDLE_TTL", 15*time.Minute),
		SessionSweepInterval: mustDuration("DOCNAV_SESSION_SWEEP_INTERVAL", time.Minute),

		// Redis settings
		RedisAddr:             getenv("DOCNAV_REDIS_ADDR", ""),
		RedisUser:             getenv("DOCNAV_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("DOCNAV_REDIS_PASSWORD_REQUIRED", false),
		RedisDT:               mustDuration("DOCNAV_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("DOCNAV_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("DOCNAV_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("DOCNAV_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("DOCNAV_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("DOCNAV_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("DOCNAV_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("DOCNAV_REDIS_RETRY_INTERVAL", 2*time.Second),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("DOCNAV_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("DOCNAV_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("DOCNAV_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("DOCNAV_CORS_ORIGINS", "*")),

		SessionBurst:        getenvInt("DOCNAV_SESSION_BURST", 10),
		SessionRefillPerMin: getenvInt("DOCNAV_SESSION_REFILL_PER_MIN", 30),
	}

	// Redis settings only matter once publication is enabled
	if cfg.RedisAddr != "" {
		cfg.RedisDB = requireEnvInt("DOCNAV_REDIS_DB")
		if cfg.RedisPasswordRequired {
			cfg.RedisPassword = requireEnv("DOCNAV_REDIS_PASSWORD")
		} else {
			cfg.RedisPassword = getenv("DOCNAV_REDIS_PASSWORD", "")
		}
	}

	return cfg
}

// RedisEnabled reports whether snapshots are published.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ConfigFile) == "" {
		errs = append(errs, errors.New("configuration file is not set"))
	}
	if c.ReloadInterval <= 0 {
		errs = append(errs, fmt.Errorf("reload interval must be > 0, got %v", c.ReloadInterval))
	}
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce must be >= 0, got %v", c.Debounce))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", c.Workers))
	}
	if c.SessionSweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("session sweep interval must be > 0, got %v", c.SessionSweepInterval))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be > 0, got %v", c.RequestTimeout))
	}
	return errors.Join(errs...)
}

// Redacted returns a copy safe to log.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := requireEnv(key)
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
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
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
