// ABOUTME: Entry point for the pastify clipboard history daemon
// ABOUTME: Captures clipboard changes in the background and serves them over a loopback API

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"github.com/pastify/pastify/internal/api"
	"github.com/pastify/pastify/internal/appnames"
	"github.com/pastify/pastify/internal/capture"
	"github.com/pastify/pastify/internal/clip"
	"github.com/pastify/pastify/internal/config"
	"github.com/pastify/pastify/internal/engine"
	"github.com/pastify/pastify/internal/hotkey"
	"github.com/pastify/pastify/internal/logging"
	"github.com/pastify/pastify/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                   _   _  __
  _ __   __ _ ___| |_(_)/ _|_   _
 | '_ \ / _' / __| __| | |_| | | |
 | |_) | (_| \__ \ |_| |  _| |_| |
 | .__/ \__,_|___/\__|_|_|  \__, |
 |_|                        |___/
`

// getConfigPath returns the path to the pastify config file.
// Priority: PASTIFY_CONFIG env var > XDG_CONFIG_HOME/pastify/config.yaml > ~/.config/pastify/config.yaml
func getConfigPath() string {
	if envPath := os.Getenv("PASTIFY_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "pastify", "config.yaml")
}

// getDataPath returns the path to the pastify data directory.
// Priority: XDG_DATA_HOME/pastify > ~/.local/share/pastify
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "pastify")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: pastify <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve    Start the clipboard capture daemon")
		fmt.Println("  init     Write a default config file")
		fmt.Println("  paths    Print the config and data locations")
		fmt.Println("  version  Print the version")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "paths":
		err = runPaths()
	case "version":
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when none
// exists yet.
func loadConfig() (*config.Config, string, error) {
	configPath := getConfigPath()
	cfg, err := config.Load(configPath, getDataPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Default(getDataPath()), configPath + " (defaults)", nil
		}
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	return cfg, configPath, nil
}

func runServe(ctx context.Context) error {
	cfg, configPath, err := loadConfig()
	if err != nil {
		return err
	}

	logging.Setup(logging.ParseFormat(cfg.Logging.Format), logging.ParseLevel(cfg.Logging.Level))

	// Print banner
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:   %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("Database: %s\n", cfg.Database.Path)
	green.Print("    ▶ ")
	fmt.Printf("API:      http://%s\n", cfg.API.Addr)
	fmt.Println()

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	names, err := appnames.Load(cfg.Apps.NamesFile)
	if err != nil {
		slog.Warn("loading app name overrides failed", "path", cfg.Apps.NamesFile, "err", err)
		names = appnames.New()
	}

	eng, err := engine.New(ctx, engine.Options{
		Store:        st,
		Clipboard:    clip.New(cfg.Watcher.PollInterval),
		Resolver:     capture.NewSourceResolver(names),
		PollInterval: cfg.Watcher.PollInterval,
		SettleDelay:  cfg.Paste.SettleDelay,
	})
	if err != nil {
		st.Close()
		return fmt.Errorf("creating engine: %w", err)
	}
	defer eng.Close()

	if err := eng.Start(ctx); err != nil {
		if errors.Is(err, hotkey.ErrConflict) {
			// Capture and recall keep working; only the shortcut is missing
			slog.Warn("recall hotkey is taken by another application", "err", err)
		} else {
			return fmt.Errorf("starting engine: %w", err)
		}
	}

	return api.NewServer(eng, cfg.API.Addr).Run(ctx)
}

const defaultConfigTemplate = `# pastify configuration
database:
  path: %s

watcher:
  # Clipboard poll interval, clamped to 200ms-500ms
  poll_interval: 250ms

paste:
  # Delay between hiding the window and injecting the paste gesture
  settle_delay: 150ms

api:
  # Keep this on the loopback interface
  addr: 127.0.0.1:7856

apps:
  # Optional TOML file mapping executable names to display names
  names_file: %s

logging:
  level: info
  format: auto
`

func runInit() error {
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	dataDir := getDataPath()
	content := fmt.Sprintf(defaultConfigTemplate,
		filepath.Join(dataDir, "pastify.db"),
		filepath.Join(dataDir, "app-names.toml"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Printf("Wrote %s\n", configPath)
	return nil
}

func runPaths() error {
	fmt.Printf("config: %s\n", getConfigPath())
	fmt.Printf("data:   %s\n", getDataPath())
	return nil
}
