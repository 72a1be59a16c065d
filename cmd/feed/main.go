package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xqrs/stableview/internal/config"
	"github.com/xqrs/stableview/internal/statefile"
)

var rootCmd = &cobra.Command{
	Use:   "feed",
	Short: "Scroll-anchored feed demo",
	Long: `feed shows a live list of posts that keeps the post you are reading
in place while new posts arrive above it.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(stateCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().String("log", "", "append logs to this file (overrides log.path)")
	rootCmd.PersistentFlags().String("state", "", "saved anchor file (overrides state.path)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// settings is what every subcommand needs: the merged configuration and a
// logger writing to the configured file.
type settings struct {
	cfg       config.Config
	logger    *slog.Logger
	statePath string
	closeLog  func() error
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logPath, err := cmd.Flags().GetString("log")
	if err != nil {
		return nil, fmt.Errorf("failed to get log flag: %w", err)
	}
	if logPath != "" {
		cfg.Log.Path = logPath
	}
	statePath, err := cmd.Flags().GetString("state")
	if err != nil {
		return nil, fmt.Errorf("failed to get state flag: %w", err)
	}
	if statePath != "" {
		cfg.State.Path = statePath
	}
	if cfg.State.Path == "" {
		if cfg.State.Path, err = statefile.DefaultPath(); err != nil {
			return nil, fmt.Errorf("locate state file: %w", err)
		}
	}

	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	return &settings{cfg: cfg, logger: logger, statePath: cfg.State.Path, closeLog: closeLog}, nil
}

// openLogger returns a text logger appending to the configured file. Logs are
// discarded without a path, since stdout belongs to the UI.
func openLogger(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, level), f.Close, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
