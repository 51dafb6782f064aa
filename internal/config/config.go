package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	SuapBaseURL      string
	HolidaysBaseURL  string
	ClassroomBaseURL string
	StorePath        string
	HTTPAddr         string
	SyncInterval     time.Duration
	Location         *time.Location
	LogLevel         string
	Env              string // dev|prod
	SentryDSN        string
	TelegramToken    string // optional: notifications off when empty
	TelegramChatID   int64
}

func Load() (*Config, error) {
	tz := getenv("TZ", "America/Fortaleza")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	interval, err := time.ParseDuration(getenv("SYNC_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("SYNC_INTERVAL: %w", err)
	}

	var chatID int64
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		chatID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
	}

	cfg := &Config{
		SuapBaseURL:      getenv("SUAP_BASE_URL", "https://suap.ifrn.edu.br"),
		HolidaysBaseURL:  getenv("HOLIDAYS_BASE_URL", "https://brasilapi.com.br"),
		ClassroomBaseURL: getenv("CLASSROOM_BASE_URL", "https://classroom.googleapis.com"),
		StorePath:        getenv("STORE_PATH", "supaco.db"),
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		SyncInterval:     interval,
		Location:         loc,
		LogLevel:         getenv("LOG_LEVEL", "info"),
		Env:              getenv("ENV", "dev"),
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   chatID,
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
