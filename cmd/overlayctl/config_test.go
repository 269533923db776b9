package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joshuapare/overlaykit/internal/config"
)

func TestConfigCommand(t *testing.T) {
	resetFlags(t)

	output, err := captureOutput(t, runConfig)
	if err != nil {
		t.Fatalf("runConfig: %v", err)
	}
	assertContains(t, output, []string{
		"capacity: 4096",
		"default_timeout: 7s",
		"#FFFF00",
	})
}

func TestConfigCommandFromFile(t *testing.T) {
	resetFlags(t)
	configPath = filepath.Join(t.TempDir(), "overlay.yaml")
	if err := os.WriteFile(configPath, []byte("queue:\n  capacity: 8\nmessages:\n  default_timeout: 2s\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	jsonOut = true

	output, err := captureOutput(t, runConfig)
	if err != nil {
		t.Fatalf("runConfig: %v", err)
	}

	var cfg config.Config
	decodeJSON(t, output, &cfg)
	if cfg.Queue.Capacity != 8 {
		t.Errorf("capacity = %d, want 8", cfg.Queue.Capacity)
	}
	if cfg.Messages.DefaultTimeout != 2*time.Second {
		t.Errorf("timeout = %v, want 2s", cfg.Messages.DefaultTimeout)
	}
}
