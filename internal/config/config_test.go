package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DOCNAV_REDIS_ADDR", "")

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q", cfg.ListenPort)
	}
	if cfg.ReloadInterval != time.Hour {
		t.Errorf("ReloadInterval = %v, want 1h", cfg.ReloadInterval)
	}
	if cfg.Debounce != 150*time.Millisecond || cfg.Workers != 4 {
		t.Errorf("Debounce = %v Workers = %d", cfg.Debounce, cfg.Workers)
	}
	if cfg.RedisEnabled() {
		t.Error("redis enabled without DOCNAV_REDIS_ADDR")
	}
	if cfg.TrustProxy {
		t.Error("TrustProxy should default to false")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
	if cfg.SessionBurst != 10 || cfg.SessionRefillPerMin != 30 {
		t.Errorf("SessionBurst = %d SessionRefillPerMin = %d", cfg.SessionBurst, cfg.SessionRefillPerMin)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DOCNAV_CONFIG_FILE", "/srv/docs/config.js")
	t.Setenv("DOCNAV_MEMBERS_FILE", "/srv/docs/members.yaml")
	t.Setenv("DOCNAV_WORKERS", "8")
	t.Setenv("DOCNAV_ALLOWED_CIDRS", `"10.0.0.0/8", 127.0.0.1 ,`)
	t.Setenv("DOCNAV_REDIS_ADDR", "localhost:6379")
	t.Setenv("DOCNAV_REDIS_DB", "2")
	t.Setenv("DOCNAV_REDIS_PASSWORD", "secret")

	cfg := Load()

	if cfg.ConfigFile != "/srv/docs/config.js" || cfg.MembersFile != "/srv/docs/members.yaml" {
		t.Errorf("files = %q %q", cfg.ConfigFile, cfg.MembersFile)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if strings.Join(cfg.AllowedCIDRS, "|") != "10.0.0.0/8|127.0.0.1" {
		t.Errorf("AllowedCIDRS = %v", cfg.AllowedCIDRS)
	}
	if !cfg.RedisEnabled() || cfg.RedisDB != 2 || cfg.RedisPassword != "secret" {
		t.Errorf("redis = %q db %d", cfg.RedisAddr, cfg.RedisDB)
	}

	red := cfg.Redacted()
	if red.RedisPassword == "secret" || cfg.RedisPassword != "secret" {
		t.Error("Redacted() did not copy before masking")
	}
}

func TestLoadRedisRequiresDB(t *testing.T) {
	t.Setenv("DOCNAV_REDIS_ADDR", "localhost:6379")
	t.Setenv("DOCNAV_REDIS_DB", "")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic without DOCNAV_REDIS_DB")
		}
	}()
	Load()
}

func TestLoadRedisRequiredPassword(t *testing.T) {
	t.Setenv("DOCNAV_REDIS_ADDR", "localhost:6379")
	t.Setenv("DOCNAV_REDIS_DB", "0")
	t.Setenv("DOCNAV_REDIS_PASSWORD_REQUIRED", "true")
	t.Setenv("DOCNAV_REDIS_PASSWORD", "")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic when a required password is missing")
		}
	}()
	Load()
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ConfigFile:           "config.js",
			ReloadInterval:       time.Hour,
			Workers:              1,
			SessionSweepInterval: time.Minute,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no config file", mutate: func(c *Config) { c.ConfigFile = " " }, wantErr: true},
		{name: "zero reload interval", mutate: func(c *Config) { c.ReloadInterval = 0 }, wantErr: true},
		{name: "negative debounce", mutate: func(c *Config) { c.Debounce = -time.Second }, wantErr: true},
		{name: "no workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: true},
		{name: "no sweep interval", mutate: func(c *Config) { c.SessionSweepInterval = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequireEnvInt(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		want      int
		wantPanic bool
	}{
		{name: "valid integer", value: "42", want: 42},
		{name: "invalid integer", value: "forty", wantPanic: true},
		{name: "not set", value: "", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnvInt() should have panicked")
					}
				}()
			}

			if got := requireEnvInt("TEST_INT"); !tt.wantPanic && got != tt.want {
				t.Errorf("requireEnvInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "5s", def: time.Second, expected: 5 * time.Second},
		{name: "invalid duration uses default", value: "invalid", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing variable uses default", value: "", def: 15 * time.Second, expected: 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if result := mustDuration("TEST_DURATION", tt.def); result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "false", def: true, expected: false},
		{name: "invalid value uses default", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if result := mustBool("TEST_BOOL", tt.def); result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}
