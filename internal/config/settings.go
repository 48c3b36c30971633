package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Log levels accepted by LOG_LEVEL
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Settings is the resolved, typed view of the configuration
type Settings struct {
	InternalDir   string        `json:"INTERNAL_DIR"`
	ExternalDir   string        `json:"EXTERNAL_DIR"`
	GrantsDir     string        `json:"GRANTS_DIR"`
	LogLevel      string        `json:"LOG_LEVEL"`
	ToastDuration time.Duration `json:"TOAST_DURATION"`
}

// Settings resolves every key against the defaults table and validates the result
func (c *Config) Settings() (*Settings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return c.settingsFrom(c.data)
}

// settingsFrom builds Settings from data. Callers must hold c.mu.
func (c *Config) settingsFrom(data map[string]string) (*Settings, error) {
	toast, err := time.ParseDuration(c.lookup(data, KeyToastDuration, "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyToastDuration, err)
	}

	s := &Settings{
		InternalDir:   c.expandHome(c.lookup(data, KeyInternalDir, "")),
		ExternalDir:   c.expandHome(c.lookup(data, KeyExternalDir, "")),
		GrantsDir:     c.expandHome(c.lookup(data, KeyGrantsDir, "")),
		LogLevel:      strings.ToLower(c.lookup(data, KeyLogLevel, "info")),
		ToastDuration: toast,
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", c.filePath, err)
	}
	return s, nil
}

// Validate validates the settings
func (s *Settings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.InternalDir, validation.Required, validation.By(absolutePath)),
		validation.Field(&s.ExternalDir, validation.By(absolutePath)),
		validation.Field(&s.GrantsDir, validation.Required, validation.By(absolutePath)),
		validation.Field(&s.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&s.ToastDuration, validation.Required, validation.Min(time.Duration(0)).Exclusive()),
	)
}

// Level returns the slog level for LogLevel
func (s *Settings) Level() slog.Level {
	return ParseLevel(s.LogLevel)
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(name string) slog.Level {
	if level, ok := logLevels[strings.ToLower(name)]; ok {
		return level
	}
	return slog.LevelInfo
}

// absolutePath rejects relative paths. An empty value passes; Required
// covers that where it matters.
func absolutePath(value interface{}) error {
	path, _ := value.(string)
	if path == "" {
		return nil
	}
	if !filepath.IsAbs(path) {
		return errors.New("must be an absolute path")
	}
	return nil
}
