package application

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eugenenazirov/servo-opts/internal/config"
	"github.com/eugenenazirov/servo-opts/internal/prefs"
)

func newTestApp(t *testing.T, logger *zap.Logger) *App {
	t.Helper()

	if logger == nil {
		logger = zaptest.NewLogger(t)
	}
	settings := Settings{
		Name:       "servo",
		Version:    "1.2.3",
		WorkingDir: t.TempDir(),
		ConfigDir:  t.TempDir(),
	}
	app, err := New(settings, logger, config.NewStore(), prefs.Defaults())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return app
}

func run(app *App, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := app.Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestNewRequiresStore(t *testing.T) {
	if _, err := New(Settings{}, zaptest.NewLogger(t), nil, prefs.Defaults()); err == nil {
		t.Fatalf("expected error without store")
	}
}

func TestRunHelp(t *testing.T) {
	code, stdout, stderr := run(newTestApp(t, nil), "-z", "--help")
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "usage: servo") || stderr != "" {
		t.Fatalf("unexpected output: stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestRunDebugHelp(t *testing.T) {
	code, stdout, _ := run(newTestApp(t, nil), "-Z", "help")
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "dump-display-list-json") {
		t.Fatalf("expected debug listing, got %q", stdout)
	}
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := run(newTestApp(t, nil), "--version")
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if stdout != "servo 1.2.3\n" {
		t.Fatalf("unexpected version output %q", stdout)
	}
}

func TestRunFailures(t *testing.T) {
	cases := []struct {
		args     []string
		want     string
		wantHint bool
	}{
		{[]string{"-s", "big"}, "servo: error: error parsing option: -s (invalid syntax)", false},
		{[]string{"-Z", "wat"}, "servo: error: unrecognized debug option: wat", false},
		{[]string{"--pref", "nope=1"}, "servo: error: error setting preference nope=1", false},
		{[]string{"--user-stylesheet", "gone.css"}, "servo: error: couldn't open gone.css", false},
		{[]string{"--bogus"}, "servo: error: unknown long flag '--bogus'", true},
		{[]string{"--help-man"}, "servo: error: unknown long flag '--help-man'", true},
	}

	for _, tc := range cases {
		code, stdout, stderr := run(newTestApp(t, nil), tc.args...)
		if code != ExitFailure {
			t.Fatalf("%q: expected exit 1, got %d", tc.args, code)
		}
		if stdout != "" {
			t.Fatalf("%q: expected nothing on stdout, got %q", tc.args, stdout)
		}
		if !strings.HasPrefix(stderr, tc.want) {
			t.Fatalf("%q: expected %q, got %q", tc.args, tc.want, stderr)
		}
		if hint := strings.Contains(stderr, "--help' for more information"); hint != tc.wantHint {
			t.Fatalf("%q: help hint present=%v, want %v", tc.args, hint, tc.wantHint)
		}
	}
}

func TestRunContentProcess(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := newTestApp(t, zap.New(core))

	code, _, _ := run(app, "--content-process", "chan-7")
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !app.Store().Multiprocess() {
		t.Fatalf("expected multiprocess to be set")
	}
	entries := logs.FilterMessage("starting content process").All()
	if len(entries) != 1 || entries[0].ContextMap()["channel"] != "chan-7" {
		t.Fatalf("expected content process log entry, got %v", entries)
	}
}

func TestRunPublishesSnapshot(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := newTestApp(t, zap.New(core))

	code, _, stderr := run(app, "-s", "128", "--resolution", "800x600", "https://servo.org/")
	if code != ExitSuccess {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr)
	}

	opts := app.Store().Get()
	if opts.TileSize != 128 || opts.InitialWindowSize != (config.Size{Width: 800, Height: 600}) {
		t.Fatalf("snapshot not published: %+v", opts)
	}
	entries := logs.FilterMessage("configuration resolved").All()
	if len(entries) != 1 {
		t.Fatalf("expected one summary entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["url"] != "https://servo.org/" {
		t.Fatalf("expected URL in summary, got %v", entries[0].ContextMap())
	}
}
