package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/afero"

	"github.com/a3tai/harvest-report/internal/app"
	"github.com/a3tai/harvest-report/internal/config"
	"github.com/a3tai/harvest-report/internal/form"
	"github.com/a3tai/harvest-report/internal/mcp"
	"github.com/a3tai/harvest-report/internal/pdf"
	"github.com/a3tai/harvest-report/internal/save"
	"github.com/a3tai/harvest-report/internal/store"
	"github.com/a3tai/harvest-report/internal/tui"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// stdout carries the MCP protocol
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(io.Discard)
		}
	} else {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// newSaver builds the save strategy for the configured platform. picker is
// only used on the folder platform.
func newSaver(cfg *config.Config, fs afero.Fs, kv store.KV, picker save.DirectoryPicker) (save.Saver, error) {
	opts := save.Options{
		Platform:     save.Platform(cfg.ResolvedPlatform()),
		FS:           fs,
		KV:           kv,
		Picker:       picker,
		DocumentsDir: cfg.DocumentsDir,
		CacheDir:     cfg.CacheDir,
	}
	if sharer := save.NewCommandSharer(cfg.ShareCommand); sharer != nil {
		opts.Sharer = sharer
	}
	return save.New(opts)
}

// newApp wires the application core on fs
func newApp(cfg *config.Config, fs afero.Fs, picker save.DirectoryPicker) (*app.App, error) {
	kv, err := store.NewFileStore(fs, cfg.DataDir)
	if err != nil {
		return nil, err
	}
	saver, err := newSaver(cfg, fs, kv, picker)
	if err != nil {
		return nil, fmt.Errorf("failed to create saver: %w", err)
	}

	dirs := []string{cfg.ReportsDir(), cfg.CacheDir}
	if cfg.PublicDir != "" {
		dirs = append(dirs, cfg.PublicDir)
	}

	return app.New(app.Options{
		Form:       form.NewManager(form.NewDraftStorage(kv), cfg.Debounce),
		Renderer:   pdf.NewRenderer(pdf.WithCreator(cfg.AppName)),
		Saver:      saver,
		KV:         kv,
		FS:         fs,
		ReportDirs: dirs,
	})
}

// runInteractive runs the terminal form until the user is done
func runInteractive(ctx context.Context, cfg *config.Config, fs afero.Fs) error {
	driver := tui.NewSurveyDriver(os.Stdout)
	a, err := newApp(cfg, fs, tui.NewFolderPicker(driver, fs, cfg.PublicDir))
	if err != nil {
		return err
	}
	defer a.Close()

	err = tui.NewShell(a, driver).Run(ctx)
	if errors.Is(err, tui.ErrAborted) {
		return nil
	}
	return err
}

// runStdioMode serves MCP on stdin and stdout. The parent process controls
// our lifecycle.
func runStdioMode(ctx context.Context, cfg *config.Config, fs afero.Fs) error {
	a, err := newApp(cfg, fs, save.StaticPicker{Dir: cfg.PublicDir})
	if err != nil {
		return err
	}
	defer a.Close()

	server, err := mcp.NewServer(cfg, a)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	return server.Run(ctx)
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fs := afero.NewOsFs()
	if cfg.IsInteractive() {
		err = runInteractive(ctx, cfg, fs)
	} else {
		err = runStdioMode(ctx, cfg, fs)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Harvest Report\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
