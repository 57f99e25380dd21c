package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New(zapcore.InfoLevel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatalf("expected logger instance")
	}
	_ = logger.Sync()
}

func TestBuildRespectsLevel(t *testing.T) {
	for _, console := range []bool{false, true} {
		logger, err := build(zapcore.WarnLevel, console)
		if err != nil {
			t.Fatalf("console=%v: unexpected error: %v", console, err)
		}
		if logger.Core().Enabled(zapcore.InfoLevel) {
			t.Fatalf("console=%v: info should be disabled at warn level", console)
		}
		if !logger.Core().Enabled(zapcore.WarnLevel) {
			t.Fatalf("console=%v: warn should be enabled", console)
		}
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	if err != nil || level != zapcore.DebugLevel {
		t.Fatalf("expected debug level, got %v (%v)", level, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
