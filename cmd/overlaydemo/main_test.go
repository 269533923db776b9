package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"version", []string{"--version"}, 0, "overlaydemo dev", ""},
		{"help", []string{"--help"}, 0, "--metrics-addr", ""},
		{"unknown flag", []string{"--bogus"}, 2, "", "unknown flag"},
		{"missing config", []string{"--config", filepath.Join("nope", "overlay.yaml")}, 1, "", "Error:"},
		{"bad metrics address", []string{"--metrics-addr", "not-an-address"}, 1, "", "Error:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("HOME", t.TempDir())

			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q\nGot: %s", tt.wantStdout, stdout.String())
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q\nGot: %s", tt.wantStderr, stderr.String())
			}
		})
	}
}
