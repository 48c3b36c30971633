package config

import "path/filepath"

// Configuration key constants to prevent typos and enable autocomplete
const (
	// Storage roots
	KeyInternalDir = "INTERNAL_DIR" // App-private directory, always writable
	KeyExternalDir = "EXTERNAL_DIR" // App-specific documents directory on shared storage

	// Permission grants
	KeyGrantsDir = "GRANTS_DIR"

	// Presentation
	KeyLogLevel      = "LOG_LEVEL"
	KeyToastDuration = "TOAST_DURATION"
)

// AllKeys lists every recognised key in display order
var AllKeys = []string{
	KeyInternalDir,
	KeyExternalDir,
	KeyGrantsDir,
	KeyLogLevel,
	KeyToastDuration,
}

// defaults returns default values for configuration keys
func (c *Config) defaults() map[string]string {
	return map[string]string{
		KeyInternalDir:   filepath.Join(c.home, ".local", "share", "datasave", "files"),
		KeyExternalDir:   filepath.Join(c.home, "Documents", "datasave"),
		KeyGrantsDir:     filepath.Join(c.home, ".local", "share", "datasave", "grants"),
		KeyLogLevel:      "info",
		KeyToastDuration: "2s",
	}
}
