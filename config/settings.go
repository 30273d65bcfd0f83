package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Settings are the tunables that are safe to keep in a checked-in file.
type Settings struct {
	Log     LogSettings     `toml:"log"`
	Uploads UploadSettings  `toml:"uploads"`
	Session SessionSettings `toml:"session"`
	Auth    AuthSettings    `toml:"auth"`
}

type LogSettings struct {
	Level     string `toml:"level"`
	Format    string `toml:"format"`
	AddSource bool   `toml:"add_source"`
}

type UploadSettings struct {
	MaxBytes      int64 `toml:"max_bytes"`
	ThumbnailSize int   `toml:"thumbnail_size"`
}

type SessionSettings struct {
	CacheSize  int `toml:"cache_size"`
	TTLSeconds int `toml:"ttl_seconds"`
}

type AuthSettings struct {
	TokenTTLHours int `toml:"token_ttl_hours"`
}

func (s SessionSettings) TTL() time.Duration {
	return time.Duration(s.TTLSeconds) * time.Second
}

func (a AuthSettings) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

func DefaultSettings() Settings {
	return Settings{
		Log:     LogSettings{Level: "info", Format: "text"},
		Uploads: UploadSettings{MaxBytes: 10 << 20, ThumbnailSize: 480},
		Session: SessionSettings{CacheSize: 1024, TTLSeconds: 60},
		Auth:    AuthSettings{TokenTTLHours: 72},
	}
}

// Current is what the running process uses. LoadSettings replaces it.
var Current = DefaultSettings()

// LoadSettings decodes path over the defaults. An empty path keeps the
// defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(&s); err != nil {
		return s, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return s, nil
}

// SetupLogger installs the default slog logger.
func SetupLogger(ls LogSettings) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(ls.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: ls.AddSource}

	var h slog.Handler
	if strings.EqualFold(ls.Format, "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}
