package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/killallgit/moviepreview/internal/services/playback"
	"github.com/killallgit/moviepreview/pkg/config"
	"github.com/killallgit/moviepreview/pkg/logging"
)

// app carries what PersistentPreRunE prepares for the subcommands
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	// launcherOpts are passed to every playback.Launcher the CLI builds
	launcherOpts []playback.LauncherOption
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "moviepreview",
		Short: "Movie Preview - search iTunes movies and watch their trailers",
		Long: `Movie Preview - search the iTunes movie catalog and play preview clips

Features:
  • Movie search against the iTunes Search API
  • Preview playback through a local media player
  • HTTP API with Swagger documentation`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Add persistent flags for logging configuration
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")

	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup loads configuration and builds the logger. Commands that don't need
// config only get a logger.
func (a *app) setup(cmd *cobra.Command) error {
	level, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")

	if cmd.Name() == "version" || cmd.Name() == "help" {
		a.logger = logging.Setup(level, jsonLogs, cmd.ErrOrStderr())
		return nil
	}

	if err := config.Init(); err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	// Flags win over the config file
	if !cmd.Flags().Changed("log-level") && cfg.Logging.Level != "" {
		level = cfg.Logging.Level
	}
	if !cmd.Flags().Changed("json-logs") {
		jsonLogs = strings.EqualFold(cfg.Logging.Format, "json")
	}

	a.logger = logging.Setup(level, jsonLogs, cmd.ErrOrStderr())
	slog.SetDefault(a.logger)
	return nil
}
