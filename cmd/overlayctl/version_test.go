package main

import (
	"runtime"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	resetFlags(t)

	output, err := captureOutput(t, func() error {
		return versionCmd.RunE(versionCmd, nil)
	})
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	assertContains(t, output, []string{"overlayctl ", runtime.Version(), "commit:", "built:"})
}

func TestVersionJSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return versionCmd.RunE(versionCmd, nil)
	})
	if err != nil {
		t.Fatalf("version: %v", err)
	}

	var b buildInfo
	decodeJSON(t, output, &b)
	if b.GoVersion != runtime.Version() {
		t.Errorf("go = %q, want %q", b.GoVersion, runtime.Version())
	}
	if b.Version == "" || b.Commit == "" || b.Built == "" {
		t.Errorf("incomplete build info: %+v", b)
	}
}
