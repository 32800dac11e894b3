package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/api"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/app"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/config"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/logging"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/storage"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/tui"
)

// cli holds what every command needs once PersistentPreRunE has run
type cli struct {
	// Global flags
	verbose    bool
	configPath string
	apiURL     string

	cfg    *config.Config
	logger *zap.Logger
	store  storage.Store
	client *api.Client
	app    *app.App
}

func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "adcraft",
		Short: "AdCraft AI - marketing content from one prompt",
		Long: `AdCraft AI generates a tagline, poster copy, a marketing email and a
short-form video script for a product and its target audience.

Run without arguments to start the interactive terminal UI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.Name() == "adcraft")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(tui.NewRootModel(c.app, c.logger.Named("tui")), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "Config file (default: .adcraft/config.yaml, then ~/.adcraft/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "API base URL (or set ADCRAFT_API_URL)")

	rootCmd.AddCommand(c.loginCmd())
	rootCmd.AddCommand(c.whoamiCmd())
	rootCmd.AddCommand(c.generateCmd())
	rootCmd.AddCommand(c.historyCmd())
	rootCmd.AddCommand(c.configCmd())
	return rootCmd, c
}

// execute runs the command tree. Cobra skips post-run hooks when a command
// fails, so teardown is deferred here instead.
func (c *cli) execute(root *cobra.Command) error {
	defer c.teardown()
	return root.Execute()
}

// setup loads config, builds the logger and opens the state store. The TUI
// logs to a file since it owns the terminal.
func (c *cli) setup(interactive bool) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.apiURL != "" {
		cfg.APIBaseURL = c.apiURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	c.cfg = cfg

	if interactive {
		c.logger, err = logging.NewFileLogger(cfg.LogFile, c.verbose)
	} else {
		c.logger, err = logging.NewConsoleLogger(c.verbose)
	}
	if err != nil {
		return err
	}

	c.store, err = storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}

	c.client = api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	c.app = app.New(c.client, c.store, c.logger)
	c.logger.Debug("client ready",
		zap.String("api", c.client.BaseURL()),
		zap.String("storage", cfg.Storage.Driver))
	return nil
}

func (c *cli) teardown() {
	if c.store != nil {
		if err := c.store.Close(); err != nil && c.logger != nil {
			c.logger.Warn("close state store", zap.Error(err))
		}
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func main() {
	rootCmd, c := newRootCmd()
	if err := c.execute(rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
