package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio       = "stdio"
	ModeInteractive = "interactive"

	// Platform constants
	PlatformAuto      = "auto"
	PlatformFolder    = "folder"
	PlatformDocuments = "documents"

	// Default values
	DefaultLogLevel = "info"
	DefaultDebounce = 500 * time.Millisecond
	DefaultAppName  = "harvest-report"

	// Directory permissions
	DefaultDirPerm = 0o750

	envPrefix = "HARVEST"
)

// Config holds all configuration for the harvest report application
type Config struct {
	// Front end: "stdio" serves MCP tools, "interactive" runs the terminal form
	Mode string
	// Platform selects how reports are saved: auto, folder or documents
	Platform string

	// Directories
	DataDir      string // key-value state
	DocumentsDir string // documents platform writes to DocumentsDir/Reports
	CacheDir     string // fallback location
	PublicDir    string // folder granted up front, or suggested by the prompt

	// ShareCommand opens a fallback report, e.g. "xdg-open"; empty disables it
	ShareCommand string
	Debounce     time.Duration

	// Application configuration
	Version    string
	AppName    string
	LogLevel   string
	ConfigFile string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataRoot, err := os.UserConfigDir()
	if err != nil {
		dataRoot = filepath.Join(home, ".config")
	}
	cacheRoot, err := os.UserCacheDir()
	if err != nil {
		cacheRoot = filepath.Join(home, ".cache")
	}

	return &Config{
		Mode:         ModeStdio,
		Platform:     PlatformAuto,
		DataDir:      filepath.Join(dataRoot, DefaultAppName),
		DocumentsDir: filepath.Join(home, "Documents", DefaultAppName),
		CacheDir:     filepath.Join(cacheRoot, DefaultAppName),
		Debounce:     DefaultDebounce,
		Version:      "1.0.0",
		AppName:      DefaultAppName,
		LogLevel:     DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags, the environment and the optional
// config file, and returns a validated configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read config file %s: %w", file, err)
		}
	}

	populateConfigFromViper(cfg)
	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("platform", cfg.Platform)
	viper.SetDefault("data-dir", cfg.DataDir)
	viper.SetDefault("documents-dir", cfg.DocumentsDir)
	viper.SetDefault("cache-dir", cfg.CacheDir)
	viper.SetDefault("public-dir", cfg.PublicDir)
	viper.SetDefault("share-command", cfg.ShareCommand)
	viper.SetDefault("debounce", cfg.Debounce)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("app-name", cfg.AppName)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Front end: 'stdio' for MCP standard I/O, 'interactive' for the terminal form")
	pflag.String("platform", cfg.Platform, "Save strategy: 'auto', 'folder' (chosen folder) or 'documents' (documents/Reports)")
	pflag.String("data-dir", cfg.DataDir, "Directory for the form draft and saved settings")
	pflag.String("documents-dir", cfg.DocumentsDir, "Documents directory (reports go to its Reports subfolder)")
	pflag.String("cache-dir", cfg.CacheDir, "Cache directory used when saving fails")
	pflag.String("public-dir", cfg.PublicDir, "Folder for the folder platform (granted up front in stdio mode)")
	pflag.String("share-command", cfg.ShareCommand, "Command that opens a report saved to the cache, e.g. xdg-open")
	pflag.Duration("debounce", cfg.Debounce, "Delay before the form draft is saved")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.String("app-name", cfg.AppName, "Application name recorded in the reports")
	pflag.String("config", "", "Optional configuration file (yaml, json or toml)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"mode", "platform", "data-dir", "documents-dir", "cache-dir", "public-dir",
		"share-command", "debounce", "loglevel", "app-name", "config",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nHarvest Report - fill in a harvest form and save it as a PDF report\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                        "+
			"# MCP tools over stdio, reports in documents (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=interactive                     "+
			"# terminal form, asks for a folder once\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --platform=folder --public-dir=~/Reports "+
			"# stdio with a pre-granted folder\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  HARVEST_MODE           Front end\n")
		fmt.Fprintf(os.Stderr, "  HARVEST_PLATFORM       Save strategy\n")
		fmt.Fprintf(os.Stderr, "  HARVEST_DATA_DIR       State directory\n")
		fmt.Fprintf(os.Stderr, "  HARVEST_DOCUMENTS_DIR  Documents directory\n")
		fmt.Fprintf(os.Stderr, "  HARVEST_CACHE_DIR      Cache directory\n")
		fmt.Fprintf(os.Stderr, "  HARVEST_PUBLIC_DIR     Report folder\n")
		fmt.Fprintf(os.Stderr, "  HARVEST_SHARE_COMMAND  Share command\n")
		fmt.Fprintf(os.Stderr, "  HARVEST_DEBOUNCE       Draft save delay\n")
		fmt.Fprintf(os.Stderr, "  HARVEST_LOGLEVEL       Log level\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Platform = viper.GetString("platform")
	cfg.DataDir = viper.GetString("data-dir")
	cfg.DocumentsDir = viper.GetString("documents-dir")
	cfg.CacheDir = viper.GetString("cache-dir")
	cfg.PublicDir = viper.GetString("public-dir")
	cfg.ShareCommand = strings.TrimSpace(viper.GetString("share-command"))
	cfg.Debounce = viper.GetDuration("debounce")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.AppName = viper.GetString("app-name")
	cfg.ConfigFile = viper.GetString("config")
}

// expandPaths turns a leading ~ into the home directory and makes every
// directory absolute
func (c *Config) expandPaths() {
	for _, p := range []*string{&c.DataDir, &c.DocumentsDir, &c.CacheDir, &c.PublicDir} {
		if *p == "" {
			continue
		}
		if strings.HasPrefix(*p, "~") {
			if home, err := os.UserHomeDir(); err == nil {
				*p = filepath.Join(home, strings.TrimPrefix(*p, "~"))
			}
		}
		if abs, err := filepath.Abs(*p); err == nil {
			*p = abs
		}
	}
}

// Validate checks if the configuration is valid and creates the
// directories it names
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeInteractive {
		return errors.New("mode must be either 'stdio' or 'interactive'")
	}

	switch c.Platform {
	case PlatformAuto, PlatformFolder, PlatformDocuments:
	default:
		return fmt.Errorf("invalid platform: %s (must be one of: auto, folder, documents)", c.Platform)
	}

	if c.Debounce <= 0 {
		return errors.New("debounce must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.AppName == "" {
		return errors.New("app name cannot be empty")
	}

	dirs := []struct {
		name string
		path string
	}{
		{"data", c.DataDir},
		{"documents", c.DocumentsDir},
		{"cache", c.CacheDir},
	}
	for _, d := range dirs {
		if err := ensureDir(d.name, d.path); err != nil {
			return err
		}
	}

	if c.PublicDir != "" {
		info, err := os.Stat(c.PublicDir)
		if err != nil {
			return fmt.Errorf("cannot access public directory %s: %w", c.PublicDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("public directory is not a directory: %s", c.PublicDir)
		}
	}

	return nil
}

func ensureDir(name, path string) error {
	if path == "" {
		return fmt.Errorf("%s directory cannot be empty", name)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create %s directory %s: %w", name, path, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access %s directory %s: %w", name, path, err)
	}
	return nil
}

// ResolvedPlatform returns the save strategy, resolving auto: the
// interactive form can ask for a folder, the stdio server cannot.
func (c *Config) ResolvedPlatform() string {
	if c.Platform != PlatformAuto {
		return c.Platform
	}
	if c.IsInteractive() {
		return PlatformFolder
	}
	return PlatformDocuments
}

// ReportsDir is where the documents platform writes reports
func (c *Config) ReportsDir() string {
	return filepath.Join(c.DocumentsDir, "Reports")
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Platform: %s, DataDir: %s, DocumentsDir: %s, CacheDir: %s, PublicDir: %s, LogLevel: %s}",
		c.Mode, c.ResolvedPlatform(), c.DataDir, c.DocumentsDir, c.CacheDir, c.PublicDir, c.LogLevel)
}

// IsInteractive returns true if the terminal form is the front end
func (c *Config) IsInteractive() bool {
	return c.Mode == ModeInteractive
}

// IsStdioMode returns true if the MCP server runs over stdio
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
