package main

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/joshuapare/overlaykit/overlay"
)

func TestServeMetrics(t *testing.T) {
	reg, m, err := newRegistry()
	if err != nil {
		t.Fatalf("newRegistry: %v", err)
	}

	opts := overlay.DefaultOptions()
	opts.Metrics = m
	helper := NewTestHelper(Options{Overlay: opts})
	helper.Frame(0)

	srv, err := serveMetrics("127.0.0.1:0", reg)
	if err != nil {
		t.Fatalf("serveMetrics: %v", err)
	}
	defer srv.Close()

	resp, err := http.Get("http://" + srv.addr + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`overlay_commands_total{kind="refresh"}`,
		`overlay_commands_total{kind="push"} 1`,
		"overlay_visible_slots 8",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
