package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/trainclock/internal/config"
	"github.com/sadopc/trainclock/internal/logger"
	"github.com/sadopc/trainclock/internal/store"
	"github.com/sadopc/trainclock/internal/tui"
)

var (
	configPath string
	dbPath     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "trainclock",
		Short:         "Analog clock and train departure board",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(settingsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies environment and flag
// overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if cfg == nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", err)
	}
	cfg.ApplyEnv()
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// setup loads the config, points the logger at stderr and opens the store.
func setup() (*config.Config, *store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg, os.Stderr)

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, s, nil
}

func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The terminal UI owns stdout, so logs go to a file.
	logFile, err := logger.OpenFile(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger.Init(cfg, logFile)

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := s.Watch(ctx); err != nil {
			logger.Log.WithError(err).Warn("database watcher stopped")
		}
	}()

	app := tui.NewApp(s, tui.OptionsFromConfig(cfg))
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
