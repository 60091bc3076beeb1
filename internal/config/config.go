// Package config handles user configuration for malcolmweb.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diogo/malcolmweb/internal/models"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`             // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`      // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"` // Preserve original line breaks
}

// LogConfig configures the diagnostic log file.
type LogConfig struct {
	// File is the log file path. Empty means <config dir>/malcolmweb.log.
	File string `json:"file,omitempty"`
	// Level is one of "debug", "info", "warn", "error".
	Level string `json:"level"`
	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
}

// Config represents the user configuration
type Config struct {
	// BaseURL is the Malcolm service root, e.g. "https://malcolmai.live".
	BaseURL string `json:"base_url"`
	// SocketURL is the realtime channel endpoint. When empty it is derived
	// from BaseURL by switching the scheme to ws/wss and appending /ws.
	SocketURL string `json:"socket_url,omitempty"`
	// Verbose enables detailed output during operations.
	Verbose bool `json:"verbose"`
	// CopyToClipboard copies the last assistant reply to the clipboard.
	CopyToClipboard bool `json:"copy_to_clipboard"`
	// DownloadDir is the destination for files fetched via download.
	DownloadDir string         `json:"download_dir,omitempty"`
	Markdown    MarkdownConfig `json:"markdown,omitempty"`
	Log         LogConfig      `json:"log,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		BaseURL:         models.DefaultBaseURL,
		Verbose:         false,
		CopyToClipboard: false,
		DownloadDir:     filepath.Join(homeDir, ".malcolmweb", "downloads"),
		Markdown:        DefaultMarkdownConfig(),
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".malcolmweb"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetDownloadDir returns the download directory from config, creating it if necessary
func GetDownloadDir(cfg Config) (string, error) {
	dir := cfg.DownloadDir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".malcolmweb", "downloads")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	return dir, nil
}

// ResolveSocketURL returns the realtime channel endpoint for cfg. An explicit
// SocketURL wins; otherwise the base URL is rewritten to the ws scheme.
func ResolveSocketURL(cfg Config) string {
	if cfg.SocketURL != "" {
		return cfg.SocketURL
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + models.PathSocket
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
