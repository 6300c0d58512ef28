package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	base := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = filepath.Join(base, "data")
	cfg.DocumentsDir = filepath.Join(base, "docs")
	cfg.CacheDir = filepath.Join(base, "cache")
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "stdio" {
		t.Errorf("Expected default mode to be 'stdio', got '%s'", cfg.Mode)
	}
	if cfg.Platform != "auto" {
		t.Errorf("Expected default platform to be 'auto', got '%s'", cfg.Platform)
	}
	if cfg.Debounce != 500*time.Millisecond {
		t.Errorf("Expected default debounce to be 500ms, got %v", cfg.Debounce)
	}
	if cfg.AppName != "harvest-report" {
		t.Errorf("Expected default app name to be 'harvest-report', got '%s'", cfg.AppName)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.PublicDir != "" || cfg.ShareCommand != "" {
		t.Errorf("Expected no public dir and no share command by default")
	}
	for _, dir := range []string{cfg.DataDir, cfg.DocumentsDir, cfg.CacheDir} {
		if !strings.HasSuffix(dir, "harvest-report") {
			t.Errorf("Expected default directory under harvest-report, got '%s'", dir)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid stdio config", modify: func(*Config) {}},
		{name: "valid interactive config", modify: func(c *Config) { c.Mode = ModeInteractive }},
		{name: "folder platform", modify: func(c *Config) { c.Platform = PlatformFolder }},
		{name: "invalid mode", modify: func(c *Config) { c.Mode = "server" }, wantErr: true},
		{name: "invalid platform", modify: func(c *Config) { c.Platform = "android" }, wantErr: true},
		{name: "zero debounce", modify: func(c *Config) { c.Debounce = 0 }, wantErr: true},
		{name: "invalid log level", modify: func(c *Config) { c.LogLevel = "verbose" }, wantErr: true},
		{name: "empty app name", modify: func(c *Config) { c.AppName = "" }, wantErr: true},
		{name: "empty data dir", modify: func(c *Config) { c.DataDir = "" }, wantErr: true},
		{name: "missing public dir", modify: func(c *Config) { c.PublicDir = "/does/not/exist/anywhere" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateDirectoryCreation(t *testing.T) {
	cfg := testConfig(t)

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	for _, dir := range []string{cfg.DataDir, cfg.DocumentsDir, cfg.CacheDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("Expected directory %s to be created: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Expected %s to be a directory", dir)
		}
	}
}

func TestConfigValidatePublicDirIsFile(t *testing.T) {
	cfg := testConfig(t)
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	cfg.PublicDir = file

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("Expected 'not a directory' error, got %v", err)
	}
}

func TestConfigResolvedPlatform(t *testing.T) {
	tests := []struct {
		mode     string
		platform string
		want     string
	}{
		{ModeStdio, PlatformAuto, PlatformDocuments},
		{ModeInteractive, PlatformAuto, PlatformFolder},
		{ModeStdio, PlatformFolder, PlatformFolder},
		{ModeInteractive, PlatformDocuments, PlatformDocuments},
	}

	for _, tt := range tests {
		t.Run(tt.mode+"/"+tt.platform, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode, Platform: tt.platform}
			if got := cfg.ResolvedPlatform(); got != tt.want {
				t.Errorf("ResolvedPlatform() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestConfigIsDebug(t *testing.T) {
	tests := []struct {
		logLevel string
		want     bool
	}{
		{"debug", true},
		{"info", false},
		{"warn", false},
		{"error", false},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			if got := cfg.IsDebug(); got != tt.want {
				t.Errorf("IsDebug() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigModes(t *testing.T) {
	stdio := &Config{Mode: ModeStdio}
	if !stdio.IsStdioMode() || stdio.IsInteractive() {
		t.Errorf("stdio config reports the wrong mode")
	}
	interactive := &Config{Mode: ModeInteractive}
	if interactive.IsStdioMode() || !interactive.IsInteractive() {
		t.Errorf("interactive config reports the wrong mode")
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{Mode: ModeInteractive, Platform: PlatformAuto, DataDir: "/data", LogLevel: "info"}
	s := cfg.String()
	for _, want := range []string{"Mode: interactive", "Platform: folder", "DataDir: /data"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %s, missing %s", s, want)
		}
	}
}

func TestConfigReportsDir(t *testing.T) {
	cfg := &Config{DocumentsDir: "/home/u/Documents/harvest-report"}
	if got := cfg.ReportsDir(); got != "/home/u/Documents/harvest-report/Reports" {
		t.Errorf("ReportsDir() = %s", got)
	}
}
