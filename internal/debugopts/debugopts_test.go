package debugopts

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestExtendKnownTokens(t *testing.T) {
	t.Parallel()

	var o Options
	if err := o.Extend("trace-layout,,dump-flow-tree,"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !o.TraceLayout || !o.DumpFlowTree {
		t.Fatalf("expected trace-layout and dump-flow-tree to be set, got %+v", o)
	}

	want := Options{TraceLayout: true, DumpFlowTree: true}
	if o != want {
		t.Fatalf("expected only the named switches to be set, got %+v", o)
	}
}

func TestExtendEveryTokenSetsExactlyOneField(t *testing.T) {
	t.Parallel()

	seen := make(map[Options]string)
	for _, tok := range Tokens() {
		var o Options
		if err := o.Extend(tok.Name); err != nil {
			t.Fatalf("token %q: unexpected error: %v", tok.Name, err)
		}
		if o == (Options{}) {
			t.Fatalf("token %q did not set anything", tok.Name)
		}
		if other, dup := seen[o]; dup {
			t.Fatalf("tokens %q and %q set the same field", tok.Name, other)
		}
		seen[o] = tok.Name
	}
}

func TestExtendOnlyCommas(t *testing.T) {
	t.Parallel()

	var o Options
	for _, s := range []string{"", ",", ",,,"} {
		if err := o.Extend(s); err != nil {
			t.Fatalf("Extend(%q) returned error: %v", s, err)
		}
	}
	if o != (Options{}) {
		t.Fatalf("expected no switches, got %+v", o)
	}
}

func TestExtendUnknownToken(t *testing.T) {
	t.Parallel()

	var o Options
	err := o.Extend("msaa,bogus,gc-profile")

	var unknown *UnknownOptionError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownOptionError, got %v", err)
	}
	if unknown.Token != "bogus" {
		t.Fatalf("expected token bogus, got %q", unknown.Token)
	}
	if !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected error to match ErrUnknownOption")
	}
	if !o.UseMSAA {
		t.Fatalf("expected tokens before the bad one to stay applied")
	}
	if o.GCProfile {
		t.Fatalf("expected tokens after the bad one to be skipped")
	}
}

func TestExtendIsCaseSensitive(t *testing.T) {
	t.Parallel()

	var o Options
	if err := o.Extend("MSAA"); err == nil {
		t.Fatalf("expected MSAA to be rejected")
	}
}

func TestDecodeConcatenatesOccurrences(t *testing.T) {
	t.Parallel()

	o, err := Decode([]string{"wr-stats", "disable-vsync,help"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !o.WebrenderStats || !o.DisableVsync || !o.Help {
		t.Fatalf("unexpected options: %+v", o)
	}

	o, err = Decode([]string{"signpost", "nope", "msaa"})
	if err == nil {
		t.Fatalf("expected error for unknown token")
	}
	if !o.Signpost || o.UseMSAA {
		t.Fatalf("expected earlier occurrences applied and later ones skipped, got %+v", o)
	}
}

func TestWriteUsageListsEveryToken(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteUsage(&buf, "servo"); err != nil {
		t.Fatalf("WriteUsage returned error: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "Usage: servo debug option,[options,...]") {
		t.Fatalf("unexpected header: %q", out)
	}
	for _, tok := range Tokens() {
		line := "\t" + tok.Name + strings.Repeat(" ", nameColumn-len(tok.Name)) + " " + tok.Description + "\n"
		if !strings.Contains(out, line) {
			t.Fatalf("missing aligned line for %q", tok.Name)
		}
	}
	if strings.Contains(out, "\thelp ") {
		t.Fatalf("help token should not be listed")
	}
}
