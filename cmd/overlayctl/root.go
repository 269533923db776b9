package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/sugawarayuuta/sonnet"

	"github.com/joshuapare/overlaykit/internal/config"
	"github.com/joshuapare/overlaykit/internal/logger"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	noColor    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "overlayctl",
	Short: "Replay and inspect overlay message scripts",
	Long: `overlayctl drives the overlay message column without a screen. It replays
YAML scripts of timed refresh and push commands, prints the frame after every
tick and reports how slots were created, recycled and laid out.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		return initLogging()
	},
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default ./overlay.yaml or ~/.overlaykit/overlay.yaml)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogging sends debug logs to stderr with --verbose. Otherwise logs go to
// the configured directory, if any.
func initLogging() error {
	if verbose && !quiet {
		return logger.Init(logger.Options{Enabled: true, Writer: os.Stderr, Level: slog.LevelDebug})
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Logging.Dir == "" {
		return logger.Init(logger.Options{})
	}
	return logger.Init(logger.Options{Enabled: true, LogDir: cfg.Logging.Dir, Level: cfg.LogLevel()})
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as indented JSON
func printJSON(v any) error {
	data, err := sonnet.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintf(os.Stdout, "%s\n", data)
	return err
}
