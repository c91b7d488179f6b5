package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Backend
	APIBaseURL string
	InitData   string // platform launch payload, sent verbatim as the identity header

	// UI
	Theme           string        // "light" | "dark", empty = auto-detect
	RefreshInterval time.Duration // 0 disables background refresh
	ExportPath      string

	LogFile     string
	HTTPTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:      strings.TrimRight(envOr("API_BASE_URL", "http://localhost:8080"), "/"),
		InitData:        os.Getenv("INIT_DATA"),
		Theme:           strings.ToLower(strings.TrimSpace(os.Getenv("THEME"))),
		RefreshInterval: time.Duration(envInt("REFRESH_INTERVAL", 0)) * time.Second,
		ExportPath:      envOr("EXPORT_PATH", "."),
		LogFile:         envOr("LOG_FILE", "refbonus_admin.log"),
		HTTPTimeout:     time.Duration(envInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	if cfg.InitData == "" {
		return nil, fmt.Errorf("INIT_DATA not set (copy it from the chat platform's launch parameters)")
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
