package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the environment-driven client configuration. Session keys arrive
// base64-encoded; FromEnv decodes and validates them.
type Config struct {
	APIURL             string        `env:"READING_API_URL" envDefault:"http://localhost:3000"`
	HTTPTimeout        time.Duration `env:"READING_HTTP_TIMEOUT" envDefault:"10s"`
	SessionFile        string        `env:"READING_SESSION_FILE"`
	SessionHashKeyB64  string        `env:"READING_SESSION_HASH_KEY"`
	SessionBlockKeyB64 string        `env:"READING_SESSION_BLOCK_KEY"`
	SnapshotTTL        time.Duration `env:"READING_SNAPSHOT_TTL" envDefault:"30s"`
	WatchInterval      time.Duration `env:"READING_WATCH_INTERVAL" envDefault:"30s"`
	Debug              bool          `env:"READING_DEBUG"`

	// Decoded keys, populated by FromEnv.
	SessionHashKey  []byte `env:"-"`
	SessionBlockKey []byte `env:"-"`

	// ConfigDir holds the session file and logs.
	ConfigDir string `env:"-"`
}

func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	cfg.ConfigDir = filepath.Join(dir, "readingctl")

	if cfg.SessionFile == "" {
		cfg.SessionFile = filepath.Join(cfg.ConfigDir, "session")
	}
	if cfg.HTTPTimeout < time.Second {
		return cfg, fmt.Errorf("READING_HTTP_TIMEOUT must be at least 1s")
	}
	if cfg.WatchInterval < time.Second {
		return cfg, fmt.Errorf("READING_WATCH_INTERVAL must be at least 1s")
	}

	cfg.SessionHashKey, err = decodeKey("READING_SESSION_HASH_KEY", cfg.SessionHashKeyB64)
	if err != nil {
		return cfg, err
	}
	cfg.SessionBlockKey, err = decodeKey("READING_SESSION_BLOCK_KEY", cfg.SessionBlockKeyB64)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeKey(name, v string) ([]byte, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, fmt.Errorf("%s is required (base64; run `readingctl keys`)", name)
	}
	b, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		if b, err = base64.RawStdEncoding.DecodeString(v); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("%s must decode to 32 bytes (got %d)", name, len(b))
	}
	return b, nil
}
