package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "https://malcolmai.live" {
		t.Errorf("unexpected default base URL: %s", cfg.BaseURL)
	}
	if cfg.Verbose {
		t.Error("verbose should default to false")
	}
	if cfg.Markdown.Style != "dark" {
		t.Errorf("unexpected default markdown style: %s", cfg.Markdown.Style)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("unexpected default log level: %s", cfg.Log.Level)
	}
}

func TestResolveSocketURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "derived from https base",
			cfg:  Config{BaseURL: "https://malcolmai.live"},
			want: "wss://malcolmai.live/ws",
		},
		{
			name: "derived from http base",
			cfg:  Config{BaseURL: "http://localhost:5000"},
			want: "ws://localhost:5000/ws",
		},
		{
			name: "trailing slash trimmed",
			cfg:  Config{BaseURL: "https://malcolmai.live/"},
			want: "wss://malcolmai.live/ws",
		},
		{
			name: "explicit socket URL wins",
			cfg:  Config{BaseURL: "https://malcolmai.live", SocketURL: "wss://other.example/socket"},
			want: "wss://other.example/socket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSocketURL(tt.cfg); got != tt.want {
				t.Errorf("ResolveSocketURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BaseURL != DefaultConfig().BaseURL {
		t.Errorf("expected defaults, got base URL %s", cfg.BaseURL)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.BaseURL = "http://localhost:5000"
	cfg.Verbose = true
	cfg.CopyToClipboard = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if loaded.BaseURL != cfg.BaseURL {
		t.Errorf("BaseURL = %s, want %s", loaded.BaseURL, cfg.BaseURL)
	}
	if !loaded.Verbose {
		t.Error("Verbose should round-trip as true")
	}
	if !loaded.CopyToClipboard {
		t.Error("CopyToClipboard should round-trip as true")
	}
}

func TestLoadConfigCorruptFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".malcolmweb")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("expected error for corrupt config")
	}
	// Falls back to defaults so the caller can continue.
	if cfg.BaseURL != DefaultConfig().BaseURL {
		t.Errorf("expected default base URL, got %s", cfg.BaseURL)
	}
}

func TestGetDownloadDirCreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	cfg := Config{DownloadDir: filepath.Join(tmp, "dl")}

	dir, err := GetDownloadDir(cfg)
	if err != nil {
		t.Fatalf("GetDownloadDir() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("download directory was not created: %v", err)
	}
}
