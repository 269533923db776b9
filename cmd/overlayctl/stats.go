package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/overlaykit/overlay"
	"github.com/joshuapare/overlaykit/overlay/registry"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <script.yaml>",
		Short: "Replay a script and show counters",
		Long: `The stats command replays a script without printing frames and reports
command counts, slot reuse, peak layout size and the remaining lifetime of
every slot at the end of the script.

Example:
  overlayctl stats demo.yaml
  overlayctl stats demo.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

// ReplayStats summarizes a replay.
type ReplayStats struct {
	Script      string             `json:"script"`
	Ticks       int                `json:"ticks"`
	Commands    int                `json:"commands"`
	Refreshes   int                `json:"refreshes"`
	Pushes      int                `json:"pushes"`
	Registry    registry.Stats     `json:"registry"`
	PeakSpan    int                `json:"peak_span"`
	PeakVisible int                `json:"peak_visible"`
	Shown       int                `json:"shown"`
	Hidden      int                `json:"hidden"`
	End         time.Duration      `json:"end"`
	Metrics     map[string]float64 `json:"metrics"`
	Slots       []slotRow          `json:"slots"`
}

func runStats(args []string) error {
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

	stats := ReplayStats{Script: path}
	err = r.run(s, func(tick Tick, tr overlay.TickReport[int]) {
		stats.Ticks++
		stats.End = tick.Time()
		stats.Shown += tr.Shown
		stats.Hidden += tr.Hidden
		stats.PeakSpan = max(stats.PeakSpan, tr.Span)
		stats.PeakVisible = max(stats.PeakVisible, tr.Visible)
		for _, step := range tick.Commands {
			stats.Commands++
			if step.Kind == "push" {
				stats.Pushes++
			} else {
				stats.Refreshes++
			}
		}
	})
	if err != nil {
		return err
	}

	stats.Registry = r.ov.Registry().Stats()
	stats.Slots = r.slots(s)
	if stats.Metrics, err = gatherMetrics(r); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(stats)
	}
	printStats(stats)
	return nil
}

// gatherMetrics flattens counters and gauges into name{labels} -> value.
func gatherMetrics(r *replayer) (map[string]float64, error) {
	families, err := r.metrics.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	out := make(map[string]float64)
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			name := fam.GetName() + labelString(m.GetLabel())
			switch fam.GetType() {
			case dto.MetricType_COUNTER:
				out[name] = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				out[name] = m.GetGauge().GetValue()
			}
		}
	}
	return out, nil
}

func labelString(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func printStats(st ReplayStats) {
	p := message.NewPrinter(language.English)

	printInfo("\nReplay Statistics: %s\n", st.Script)
	printInfo("%s\n\n", strings.Repeat("═", 40))

	printInfo("Commands:\n")
	printInfo("  Ticks: %s\n", p.Sprintf("%d", st.Ticks))
	printInfo("  Total: %s (%s refresh, %s push)\n",
		p.Sprintf("%d", st.Commands), p.Sprintf("%d", st.Refreshes), p.Sprintf("%d", st.Pushes))
	printInfo("\n")

	printInfo("Slots:\n")
	printInfo("  Refresh keys: %s\n", p.Sprintf("%d", st.Registry.Keys))
	printInfo("  Push pool: %s\n", p.Sprintf("%d", st.Registry.Pool))
	printInfo("  Created: %s\n", p.Sprintf("%d", st.Registry.Created))
	printInfo("  Updated: %s\n", p.Sprintf("%d", st.Registry.Updated))
	printInfo("  Recycled: %s\n", p.Sprintf("%d", st.Registry.Recycled))
	printInfo("\n")

	printInfo("Layout:\n")
	printInfo("  Shown: %s, hidden: %s\n", p.Sprintf("%d", st.Shown), p.Sprintf("%d", st.Hidden))
	printInfo("  Peak span: %s rows\n", p.Sprintf("%d", st.PeakSpan))
	printInfo("  Peak visible: %s slots\n", p.Sprintf("%d", st.PeakVisible))
	printInfo("\n")

	if len(st.Slots) > 0 {
		printInfo("Expirations at t=%s:\n", st.End)
		epoch := time.Time{}
		for _, slot := range st.Slots {
			name := "push"
			if !slot.Pushed {
				name = slot.Key
			}
			printInfo("  #%d %-12s %s\n", slot.Handle, name,
				humanize.RelTime(epoch.Add(slot.Expiration), epoch.Add(st.End), "ago", "left"))
		}
		printInfo("\n")
	}

	if len(st.Metrics) > 0 {
		printInfo("Metrics:\n")
		names := make([]string, 0, len(st.Metrics))
		for name := range st.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			printInfo("  %s %s\n", name, p.Sprintf("%v", st.Metrics[name]))
		}
	}
}
