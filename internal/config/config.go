// Package config provides thread-safe settings management for datasave. Settings
// are KEY=VALUE pairs in a single file, written atomically, with defaults for
// every key resolved against the user's home directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config manages datasave settings with thread-safe operations
type Config struct {
	filePath string
	home     string
	data     map[string]string
	loaded   bool // Track if configuration has been loaded from disk
	mu       sync.RWMutex
}

// ensureLoaded loads configuration data from disk once before read operations.
// This method must only be called while holding c.mu.Lock.
func (c *Config) ensureLoaded() error {
	if c.loaded {
		return nil
	}
	return c.load()
}

// New creates a new Config instance. An empty filePath selects
// ~/.datasave.conf.
func New(filePath string) *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	if filePath == "" {
		filePath = filepath.Join(home, ".datasave.conf")
	}

	return &Config{
		filePath: filePath,
		home:     home,
		data:     make(map[string]string),
	}
}

// Load reads configuration from file
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *Config) load() error {
	// If file doesn't exist, that's okay - we'll create it on Save
	if _, err := os.Stat(c.filePath); os.IsNotExist(err) {
		c.loaded = true
		return nil
	}

	values, err := godotenv.Read(c.filePath)
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", c.filePath, err)
	}
	for key, value := range values {
		c.data[key] = value
	}

	c.loaded = true
	return nil
}

// save writes configuration to file using atomic write pattern.
// Must be called while holding c.mu.Lock.
func (c *Config) save() error {
	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".datasave.conf.tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := tmpFile.Chmod(0600); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	body, err := godotenv.Marshal(c.data)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}

	fmt.Fprintln(tmpFile, "# datasave configuration")
	fmt.Fprintf(tmpFile, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintln(tmpFile, "")
	fmt.Fprintln(tmpFile, body)

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	// Explicitly check close error to prevent data loss
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, c.filePath); err != nil {
		return fmt.Errorf("failed to rename temp file to config: %w", err)
	}

	return nil
}

// Get retrieves a configuration value (thread-safe)
func (c *Config) Get(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	value, exists := c.data[key]
	if !exists {
		return "", fmt.Errorf("config key not found: %s", key)
	}
	return value, nil
}

// GetOrDefault retrieves a value or returns default if not found (thread-safe).
// First checks the config, then the defaults table, then the provided fallback.
func (c *Config) GetOrDefault(key, defaultValue string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return defaultValue
	}
	return c.lookup(c.data, key, defaultValue)
}

// lookup resolves key against data, then the defaults table, then fallback
func (c *Config) lookup(data map[string]string, key, fallback string) string {
	if value, exists := data[key]; exists {
		return value
	}
	if tableDefault, exists := c.defaults()[key]; exists {
		return tableDefault
	}
	return fallback
}

// Set sets a configuration value and saves the file (thread-safe)
func (c *Config) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return fmt.Errorf("failed to load existing config before set: %w", err)
	}

	c.data[key] = value
	return c.save()
}

// SetValidated sets a configuration value only if the resulting settings are
// valid. An invalid value leaves both memory and the file unchanged.
func (c *Config) SetValidated(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return fmt.Errorf("failed to load existing config before set: %w", err)
	}

	next := make(map[string]string, len(c.data)+1)
	for k, v := range c.data {
		next[k] = v
	}
	next[key] = value
	if _, err := c.settingsFrom(next); err != nil {
		return err
	}

	prev := c.data
	c.data = next
	if err := c.save(); err != nil {
		c.data = prev
		return err
	}
	return nil
}

// Exists checks if a key exists (thread-safe)
func (c *Config) Exists(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return false
	}
	_, exists := c.data[key]
	return exists
}

// Keys returns the keys set in the file, sorted
func (c *Config) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return nil
	}
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Delete removes a configuration key and saves the file (thread-safe)
func (c *Config) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return fmt.Errorf("failed to load existing config before delete: %w", err)
	}

	delete(c.data, key)
	return c.save()
}

// FilePath returns the configuration file path
func (c *Config) FilePath() string {
	return c.filePath
}

// expandHome replaces a leading ~ with the home directory
func (c *Config) expandHome(path string) string {
	if path == "~" {
		return c.home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(c.home, path[2:])
	}
	return path
}
