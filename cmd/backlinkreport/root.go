package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/backlinkreport/internal/config"
	"github.com/nao1215/backlinkreport/internal/log"
)

// NewRootCmd creates the root command for backlinkreport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backlinkreport",
		Short: "Affiliate report generator for backlink exports",
		Long: `backlinkreport reads a backlink export, extracts the affiliate token from
every tracking link and enriches it through the affiliate token feed.
The result is a spreadsheet with one row per backlink: affiliate, website,
landing page, tracking link and the date the link was last seen.

Reports are written to your desktop by default. Every generated report is
recorded in a small local ledger so "clear" can remove it later.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON")

	cmd.AddCommand(NewLoadCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewClearCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getBoolFlag reads a boolean flag from the command or the root's
// persistent flags.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// setupLogger creates the redacting structured logger for a command.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	verbose := getBoolFlag(cmd, "verbose")
	if getBoolFlag(cmd, "log-json") {
		return log.NewSecureJSONLogger(cmd.ErrOrStderr(), verbose)
	}
	return log.NewSecureLogger(cmd.ErrOrStderr(), verbose)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// loadConfig builds the configuration from defaults, the config file
// selected by --config (or found by search) and the verbose flag.
func loadConfig(cmd *cobra.Command, logger *slog.Logger) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, usedPath, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if usedPath != "" {
		logger.Debug("configuration file loaded", "path", usedPath)
	}
	cfg.Verbose = getBoolFlag(cmd, "verbose")

	return cfg, nil
}

// addConfigFlag registers the --config flag shared by several commands.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .backlinkreport in current or home directory)")
}
