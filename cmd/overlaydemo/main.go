package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/joshuapare/overlaykit/internal/config"
	"github.com/joshuapare/overlaykit/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run starts the demo and returns the process exit code. Deferred teardown
// runs before main exits.
func run(args []string, stdout, stderr io.Writer) int {
	var (
		debugMode   bool
		showVersion bool
		configPath  string
		metricsAddr string
	)
	fs := flag.NewFlagSet("overlaydemo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVarP(&debugMode, "debug", "d", false, "Enable debug logging to ~/.overlaykit/logs/")
	fs.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	fs.StringVar(&configPath, "config", "", "Config file (default ./overlay.yaml or ~/.overlaykit/overlay.yaml)")
	fs.StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	fs.Usage = func() { printHelp(stdout, fs) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintf(stdout, "overlaydemo %s\n", version)
		fmt.Fprintf(stdout, "  commit: %s\n", commit)
		fmt.Fprintf(stdout, "  built: %s\n", date)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		LogDir:  cfg.Logging.Dir,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(stderr, "Warning: failed to init logging: %v\n", err)
	}

	opts := Options{
		Overlay:          cfg.Options(),
		FrameInterval:    cfg.Demo.FrameInterval,
		MarginVertical:   cfg.Layout.MarginVertical,
		MarginHorizontal: cfg.Layout.MarginHorizontal,
	}
	opts.Overlay.Logger = logger.L

	if metricsAddr == "" {
		metricsAddr = cfg.Demo.MetricsAddr
	}
	if metricsAddr != "" {
		reg, m, err := newRegistry()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		srv, err := serveMetrics(metricsAddr, reg)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer srv.Close()
		opts.Overlay.Metrics = m
	}

	m, err := NewModel(opts, time.Now())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer m.Close()
	logger.Info("starting overlaydemo", "frame_interval", opts.FrameInterval, "debug", debugMode)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(stdout))
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(stderr, "Error running TUI: %v\n", err)
		return 1
	}

	logger.Info("overlaydemo exited normally")
	return 0
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "overlaydemo - Timed message overlay in the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  overlaydemo [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "DESCRIPTION:")
	fmt.Fprintln(w, "  Runs producers that refresh and push messages on fixed intervals and")
	fmt.Fprintln(w, "  draws them as a column in the top left corner. Lines keep their row")
	fmt.Fprintln(w, "  until they expire; new lines fill the first gap that fits.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Keys:")
	fmt.Fprintln(w, "    p   Push a message")
	fmt.Fprintln(w, "    y   Copy the newest message to the clipboard")
	fmt.Fprintln(w, "    q   Quit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPTIONS:")
	fmt.Fprint(w, fs.FlagUsages())
}
