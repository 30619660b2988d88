package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	GameBaseURL string

	MaxAttempts int
	ExitKeyword string

	HTTPTimeout time.Duration

	MsgTemplateDir string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		MaxAttempts: 10,
		ExitKeyword: "exit",
		HTTPTimeout: 10 * time.Second,
	}

	cfg.GameBaseURL = strings.TrimSpace(os.Getenv("GAME_BASE_URL"))

	if v := strings.TrimSpace(os.Getenv("GAME_MAX_ATTEMPTS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxAttempts = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("GAME_EXIT_KEYWORD")); v != "" {
		cfg.ExitKeyword = v
	}
	if v := strings.TrimSpace(os.Getenv("GAME_HTTP_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HTTPTimeout = d
		}
	}
	cfg.MsgTemplateDir = strings.TrimSpace(os.Getenv("MSG_TEMPLATE_DIR"))

	if cfg.GameBaseURL == "" {
		return nil, errors.New("GAME_BASE_URL is required")
	}

	return cfg, nil
}
