package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/joshuapare/overlaykit/internal/config"
	"github.com/joshuapare/overlaykit/internal/logger"
	"github.com/joshuapare/overlaykit/internal/term"
	"github.com/joshuapare/overlaykit/internal/textarena"
	"github.com/joshuapare/overlaykit/overlay"
	"github.com/joshuapare/overlaykit/overlay/command"
	"github.com/joshuapare/overlaykit/overlay/metrics"
	"github.com/joshuapare/overlaykit/overlay/registry"
)

var (
	replayBlocks bool
	replayHeight int
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().BoolVar(&replayBlocks, "blocks", false, "Print the block sequence after every tick")
	cmd.Flags().IntVar(&replayHeight, "height", 0, "Clip frames to this many rows (default: terminal height)")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a script and print every frame",
		Long: `The replay command feeds a YAML script of timed refresh and push commands
through an overlay and prints the message column after every tick, followed by
a table of all slots.

Example:
  overlayctl replay demo.yaml
  overlayctl replay demo.yaml --blocks
  overlayctl replay demo.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

// replayer runs scripts against a headless overlay.
type replayer struct {
	cfg     *config.Config
	arena   *textarena.Arena
	ov      *overlay.Overlay[int]
	metrics *prometheus.Registry
}

func newReplayer(cfg *config.Config) (*replayer, error) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}

	opts := cfg.Options()
	opts.Logger = logger.L
	opts.Metrics = m

	arena := textarena.New()
	ov, err := overlay.New[int](arena, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}
	return &replayer{cfg: cfg, arena: arena, ov: ov, metrics: reg}, nil
}

// run sends the commands of every tick and then ticks the overlay, calling
// each after every tick.
func (r *replayer) run(s *Script, each func(Tick, overlay.TickReport[int])) error {
	p := r.ov.Printer()
	for i, tick := range s.Ticks {
		for j, step := range tick.Commands {
			cmd, err := step.Command(r.cfg.Messages.DefaultTimeout)
			if err != nil {
				return fmt.Errorf("tick %d command %d: %w", i, j, err)
			}
			if err := p.Send(cmd); err != nil {
				return fmt.Errorf("tick %d at %gs: %w", i, tick.At, err)
			}
		}
		report := r.ov.Tick(tick.Time())
		logger.Debug("tick replayed", "index", i, "at", tick.Time(), "drained", report.Drained)
		if each != nil {
			each(tick, report)
		}
	}
	return nil
}

// slotRow describes one slot at the end of a replay.
type slotRow struct {
	Handle     registry.Handle `json:"handle"`
	Key        string          `json:"key,omitempty"`
	Pushed     bool            `json:"pushed"`
	Visible    bool            `json:"visible"`
	Row        int             `json:"row"`
	Lines      int             `json:"lines"`
	Expiration time.Duration   `json:"expiration"`
	Color      string          `json:"color"`
	Text       string          `json:"text"`
}

// slots lists every slot the registry knows, keyed ones first.
func (r *replayer) slots(s *Script) []slotRow {
	keys := make(map[registry.Handle]string)
	for _, key := range s.Keys() {
		if h, ok := r.ov.Registry().Lookup(command.Site(key)); ok {
			keys[h] = key
		}
	}

	var rows []slotRow
	for msg := range r.ov.Registry().Messages() {
		slot, _ := r.arena.Slot(msg.Handle)
		row := slotRow{
			Handle:     msg.Handle,
			Key:        keys[msg.Handle],
			Pushed:     msg.Pushed,
			Visible:    slot.Visible,
			Row:        -1,
			Lines:      textarena.Lines(slot.Content.Text),
			Expiration: msg.Expiration,
			Color:      slot.Content.Color,
			Text:       slot.Content.Text,
		}
		if off, ok := r.ov.Offset(msg.Handle); ok {
			row.Row = off
		}
		rows = append(rows, row)
	}
	return rows
}

type frameReport struct {
	At      float64  `json:"at"`
	Drained int      `json:"drained"`
	Shown   int      `json:"shown"`
	Hidden  int      `json:"hidden"`
	Visible int      `json:"visible"`
	Span    int      `json:"span"`
	Blocks  string   `json:"blocks"`
	Lines   []string `json:"lines"`
}

type replayReport struct {
	Script string        `json:"script"`
	Frames []frameReport `json:"frames"`
	Slots  []slotRow     `json:"slots"`
}

func runReplay(args []string) error {
	path := args[0]
	printVerbose("Loading script: %s\n", path)

	s, err := loadScript(path)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := newReplayer(cfg)
	if err != nil {
		return err
	}
	defer r.ov.Close()

	height := replayHeight
	if height <= 0 && !jsonOut {
		// One row is taken by the tick header.
		height = max(term.Height(os.Stdout, 0)-1, 0)
	}

	report := replayReport{Script: path}
	err = r.run(s, func(tick Tick, tr overlay.TickReport[int]) {
		frame := frameReport{
			At:      tick.At,
			Drained: tr.Drained,
			Shown:   tr.Shown,
			Hidden:  tr.Hidden,
			Visible: tr.Visible,
			Span:    tr.Span,
			Blocks:  r.ov.Line().String(),
			Lines:   r.arena.Frame(height),
		}
		if jsonOut {
			report.Frames = append(report.Frames, frame)
			return
		}
		printFrame(frame)
	})
	if err != nil {
		return err
	}

	report.Slots = r.slots(s)
	if jsonOut {
		return printJSON(report)
	}
	printInfo("\n%s\n", slotTable(report.Slots))
	return nil
}

func printFrame(f frameReport) {
	printInfo("t=%gs drained=%d shown=%d hidden=%d visible=%d span=%d\n",
		f.At, f.Drained, f.Shown, f.Hidden, f.Visible, f.Span)
	if replayBlocks {
		printInfo("  %s\n", colorBlocks(f.Blocks))
	}
	for _, line := range f.Lines {
		printInfo("  | %s\n", line)
	}
}

// colorBlocks highlights the block sequence: slots green, gaps yellow.
func colorBlocks(seq string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(seq, "["), "]")
	if inner == "" {
		return seq
	}
	full := color.New(color.FgGreen).SprintFunc()
	gap := color.New(color.FgYellow, color.Faint).SprintFunc()

	parts := strings.Split(inner, "|")
	for i, p := range parts {
		if strings.HasPrefix(p, "~") {
			parts[i] = gap(p)
		} else {
			parts[i] = full(p)
		}
	}
	return "[" + strings.Join(parts, "|") + "]"
}

func slotTable(rows []slotRow) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"Handle", "Kind", "Row", "Lines", "Expires", "Color", "Text"})

	for _, row := range rows {
		kind := "push"
		if !row.Pushed {
			kind = "refresh " + row.Key
		}
		pos := "hidden"
		if row.Visible {
			pos = fmt.Sprintf("%d", row.Row)
		}
		first, _, _ := strings.Cut(row.Text, "\n")
		tbl.AppendRow(table.Row{row.Handle, kind, pos, row.Lines, row.Expiration, row.Color, first})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d slots", len(rows))})
	return tbl.Render()
}
