package prefs

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
)

func TestRegisterValidatesNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pref    string
		wantErr bool
	}{
		{"simple", "threads", false},
		{"dotted", "layout.threads", false},
		{"dashes", "network.http-cache.disabled", false},
		{"underscore", "shell.native_titlebar.enabled", false},
		{"empty", "", true},
		{"double dot", "layout..threads", true},
		{"trailing dot", "layout.", true},
		{"leading digit", "layout.3d", true},
		{"bang", "layout.threads!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMap()
			err := m.Register(tt.pref, IntValue(1))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidName) {
					t.Fatalf("expected ErrInvalidName, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register returned error: %v", err)
			}
			if v, ok := m.Get(tt.pref); !ok || v != IntValue(1) {
				t.Fatalf("expected registered default, got %v (%v)", v, ok)
			}
		})
	}
}

func TestSetRejectsUnknownName(t *testing.T) {
	t.Parallel()

	m := Defaults()
	err := m.Set("layout.no_such_pref", BoolValue(true))
	if !errors.Is(err, ErrUnknownPreference) {
		t.Fatalf("expected ErrUnknownPreference, got %v", err)
	}
	if !strings.Contains(err.Error(), "layout.no_such_pref") {
		t.Fatalf("expected name in error, got %q", err)
	}
	if _, ok := m.Get("layout.no_such_pref"); ok {
		t.Fatalf("a failed write must not create the key")
	}
}

func TestSetAllIsAllOrNothing(t *testing.T) {
	t.Parallel()

	m := Defaults()
	err := m.SetAll(map[string]Value{
		LayoutThreads: IntValue(8),
		"bogus.name":  BoolValue(true),
	})
	if !errors.Is(err, ErrUnknownPreference) {
		t.Fatalf("expected ErrUnknownPreference, got %v", err)
	}
	if threads, err := m.Int(LayoutThreads); err != nil || threads != 3 {
		t.Fatalf("expected layout.threads to stay 3, got %d (%v)", threads, err)
	}
}

func TestResetRestoresDefault(t *testing.T) {
	t.Parallel()

	m := Defaults()
	if err := m.Set(BluetoothEnabled, BoolValue(true)); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := m.Reset(BluetoothEnabled); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if enabled, err := m.Bool(BluetoothEnabled); err != nil || enabled {
		t.Fatalf("expected default false, got %v (%v)", enabled, err)
	}
	if err := m.Reset("missing"); !errors.Is(err, ErrUnknownPreference) {
		t.Fatalf("expected ErrUnknownPreference, got %v", err)
	}
}

func TestTypedGetters(t *testing.T) {
	t.Parallel()

	m := Defaults()
	if _, err := m.Bool(LayoutThreads); err == nil {
		t.Fatalf("expected kind mismatch for Bool")
	}
	if _, err := m.Int(NativeTitlebarEnabled); err == nil {
		t.Fatalf("expected kind mismatch for Int")
	}
	if _, err := m.Bool("nope"); !errors.Is(err, ErrUnknownPreference) {
		t.Fatalf("expected ErrUnknownPreference, got %v", err)
	}
}

func TestParseCommandLine(t *testing.T) {
	t.Parallel()

	m := Defaults()
	for _, pref := range []string{
		"dom.bluetooth.enabled",
		"layout.threads=6",
		"shell.homepage=https://example.org/?a=b",
		"layout.animations.tick_period_ms=8.5",
		"dom.webgl.enabled=false",
	} {
		if err := m.ParseCommandLine(pref); err != nil {
			t.Fatalf("%s: unexpected error: %v", pref, err)
		}
	}

	snap := m.Snapshot()
	want := map[string]Value{
		BluetoothEnabled:          BoolValue(true),
		LayoutThreads:             IntValue(6),
		HomepageURL:               StringValue("https://example.org/?a=b"),
		CSSAnimationsTickPeriodMS: FloatValue(8.5),
		WebGLEnabled:              BoolValue(false),
	}
	for name, v := range want {
		if snap[name] != v {
			t.Fatalf("%s: expected %v, got %v", name, v, snap[name])
		}
	}

	err := m.ParseCommandLine("dom.unknown=1")
	if !errors.Is(err, ErrUnknownPreference) || !strings.Contains(err.Error(), "dom.unknown=1") {
		t.Fatalf("expected unknown preference error naming the input, got %v", err)
	}
}

func TestScanDecodesTaggedStruct(t *testing.T) {
	t.Parallel()

	m := Defaults()
	if err := m.Set(LayoutThreads, IntValue(5)); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	var target struct {
		Threads        int     `pref:"layout.threads"`
		NativeTitlebar bool    `pref:"shell.native_titlebar.enabled"`
		Homepage       string  `pref:"shell.homepage"`
		TickPeriod     float64 `pref:"layout.animations.tick_period_ms"`
		Ratio          float64 `pref:"session-history.max-length"`
	}
	if err := m.Scan(&target); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if target.Threads != 5 || !target.NativeTitlebar || target.Homepage != "https://servo.org" {
		t.Fatalf("unexpected scan result: %+v", target)
	}
	if target.TickPeriod < 16.6-1e-9 || target.TickPeriod > 16.6+1e-9 {
		t.Fatalf("expected tick period 16.6, got %v", target.TickPeriod)
	}
	if target.Ratio != 20 {
		t.Fatalf("expected int to widen to float, got %v", target.Ratio)
	}
}

func TestScanRejectsNonPointer(t *testing.T) {
	t.Parallel()

	var target struct{}
	if err := Defaults().Scan(target); err == nil {
		t.Fatalf("expected error for non-pointer target")
	}
}

func TestNamesSorted(t *testing.T) {
	t.Parallel()

	m := NewMap()
	for _, name := range []string{"b.two", "a.one"} {
		if err := m.Register(name, IntValue(1)); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
	}
	if got := m.Names(); !slices.Equal(got, []string{"a.one", "b.two"}) {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	m := Defaults()
	errs := make(chan error, 64)
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			errs <- m.ParseCommandLine(fmt.Sprintf("layout.threads=%d", n))
		}(i)
		go func() {
			defer wg.Done()
			_, err := m.Int(LayoutThreads)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}
