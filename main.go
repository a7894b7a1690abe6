// pattern: Imperative Shell
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"fiberdesk/internal/api"
	"fiberdesk/internal/config"
	"fiberdesk/internal/instance"
	"fiberdesk/internal/logging"
	"fiberdesk/internal/tui"
)

var version = "dev"

func main() {
	configDir := flag.StringP("config-dir", "c", "", "config directory (default: ~/.config/fiberdesk)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("fiberdesk " + version)
		return
	}

	run(*configDir)
}

// loadConfig loads the configuration from the specified directory or default location.
func loadConfig(configDir string) (config.Config, error) {
	if configDir != "" {
		return config.LoadFromDir(configDir)
	}
	return config.Load()
}

// run wires the shell together and starts the TUI.
func run(configDir string) {
	cfg, err := loadConfig(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}

	dataDir := config.DataDir(configDir)

	// One running instance per data directory.
	fl, err := instance.Lock(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer instance.Unlock(fl)

	logManager, err := logging.NewManager(logging.Config{
		FilePath:       filepath.Join(dataDir, "fiberdesk.log"),
		MaxSizeMB:      10,
		MaxBackups:     3,
		MaxAgeDays:     7,
		ChannelBufSize: 1000,
		Level:          cfg.LogLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Info("application starting", "version", version, "base_url", cfg.APIBaseURL)

	client := api.New(cfg.APIBaseURL, cfg.Timeout(), logManager.For("api"))
	model := tui.NewModel(&cfg, client, logManager, dataDir)

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Theme and base-URL edits apply without a restart.
	watcher, err := config.Watch(configDir, logManager.For("config"), func(next config.Config) {
		p.Send(tui.ConfigChangedMsg{Config: next})
	})
	if err != nil {
		appLogger.Warn("config watcher unavailable", "error", err)
	} else {
		defer func() { _ = watcher.Close() }()
	}

	if _, err := p.Run(); err != nil {
		appLogger.Error("application exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	appLogger.Info("application stopped")
}
