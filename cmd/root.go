// Package cmd provides the command-line interface for the application.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hibare/mongostash/internal/config"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "mongostash",
	Short: "MongoDB backup and upload to object storage",
	Long: `mongostash exports every collection of a MongoDB database into
<output-dir>/<collection>.json and uploads the directory to an object storage bucket.

Every flag falls back to the environment variable of the same name
(e.g. --mongo-uri -> MONGO_URI), then to a .env file in the working directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		if err := cfg.Validate(); err != nil {
			slog.ErrorContext(cmd.Context(), "Invalid configuration", "error", err)
			return err
		}
		cmd.SilenceUsage = true

		report, err := doRun(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		slog.InfoContext(cmd.Context(), "Run finished", "action", report.Action)
		return nil
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (.env or yaml); defaults to ./.env when present")
	rootCmd.AddCommand(scheduleCmd, configCmd, versionCmd)
}

// setup resolves the configuration for cmd and installs the default logger.
func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags(), cfgFile)
	if err != nil {
		return nil, err
	}
	initLogger(cfg.Logger)
	return cfg, nil
}

func initLogger(c config.LoggerConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if strings.EqualFold(c.Mode, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// Execute runs the root command until it returns or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
