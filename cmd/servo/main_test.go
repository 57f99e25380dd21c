package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eugenenazirov/servo-opts/internal/application"
	"github.com/eugenenazirov/servo-opts/internal/config"
)

func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv(logLevelEnv, "")
}

func TestRunHelp(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--help"}, &stdout, &stderr); code != application.ExitSuccess {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "usage: servo") {
		t.Fatalf("expected usage on stdout, got %q", stdout.String())
	}
}

func TestRunVersion(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-v"}, &stdout, &stderr); code != application.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if stdout.String() != "servo "+version+"\n" {
		t.Fatalf("unexpected version output %q", stdout.String())
	}
}

func TestRunBadFlag(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-Z", "nonsense"}, &stdout, &stderr); code != application.ExitFailure {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "unrecognized debug option: nonsense") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunPublishesToSharedStore(t *testing.T) {
	isolate(t)
	t.Setenv(logLevelEnv, "error")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-s", "256", "-z"}, &stdout, &stderr); code != application.ExitSuccess {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}

	opts := config.Shared().Get()
	if opts.TileSize != 256 || !opts.Headless {
		t.Fatalf("shared store not updated: tile=%d headless=%v", opts.TileSize, opts.Headless)
	}
}

func TestRunInvalidLogLevel(t *testing.T) {
	isolate(t)
	t.Setenv(logLevelEnv, "loud")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--help"}, &stdout, &stderr); code != application.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stderr.String(), "ignoring SERVO_LOG") {
		t.Fatalf("expected level warning, got %q", stderr.String())
	}
}
