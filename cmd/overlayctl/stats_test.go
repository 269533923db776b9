package main

import (
	"testing"
)

func TestStatsCommand(t *testing.T) {
	path := testScriptPath(t, "basic.yaml")
	resetFlags(t)

	output, err := captureOutput(t, func() error {
		return runStats([]string{path})
	})
	if err != nil {
		t.Fatalf("runStats: %v", err)
	}

	assertContains(t, output, []string{
		"Replay Statistics:",
		"Ticks: 4",
		"Total: 6 (2 refresh, 4 push)",
		"Created: 4",
		"Updated: 1",
		"Recycled: 1",
		"Peak span: 5 rows",
		"Peak visible: 4 slots",
		"clock",
		"ago",
		"seconds left",
		`overlay_commands_total{kind="push"} 4`,
	})
}

func TestStatsJSON(t *testing.T) {
	path := testScriptPath(t, "basic.yaml")
	resetFlags(t)
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runStats([]string{path})
	})
	if err != nil {
		t.Fatalf("runStats: %v", err)
	}

	var st ReplayStats
	decodeJSON(t, output, &st)

	if st.Ticks != 4 || st.Commands != 6 {
		t.Errorf("ticks=%d commands=%d", st.Ticks, st.Commands)
	}
	if st.Registry.Created != 4 || st.Registry.Recycled != 1 || st.Registry.Keys != 1 || st.Registry.Pool != 3 {
		t.Errorf("unexpected registry stats %+v", st.Registry)
	}
	if st.Shown != 5 || st.Hidden != 2 {
		t.Errorf("shown=%d hidden=%d", st.Shown, st.Hidden)
	}
	if got := st.Metrics[`overlay_commands_total{kind="refresh"}`]; got != 2 {
		t.Errorf("refresh counter = %v, want 2", got)
	}
	if got := st.Metrics["overlay_push_recycled_total"]; got != 1 {
		t.Errorf("recycled counter = %v, want 1", got)
	}
	if got := st.Metrics["overlay_visible_slots"]; got != 3 {
		t.Errorf("visible gauge = %v, want 3", got)
	}
}
