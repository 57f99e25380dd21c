// Package debugopts decodes the comma-separated -Z debug string into a set
// of boolean switches.
package debugopts

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOption is matched by every UnknownOptionError.
var ErrUnknownOption = errors.New("unrecognized debug option")

// UnknownOptionError reports a token outside the debug vocabulary.
type UnknownOptionError struct {
	Token string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownOption, e.Token)
}

func (e *UnknownOptionError) Is(target error) bool {
	return target == ErrUnknownOption
}

// Options is the transient record filled while decoding -Z strings. It is
// folded into the resolved configuration and then discarded.
type Options struct {
	Help bool

	BubbleWidths              bool
	DisableTextAA             bool
	DisableSubpixelAA         bool
	DisableCanvasAA           bool
	DumpStyleTree             bool
	DumpRuleTree              bool
	DumpFlowTree              bool
	DumpDisplayList           bool
	DumpDisplayListJSON       bool
	RelayoutEvent             bool
	ProfileScriptEvents       bool
	ProfileHeartbeats         bool
	ShowFragmentBorders       bool
	ShowParallelLayout        bool
	TraceLayout               bool
	DisableShareStyleCache    bool
	StyleSharingStats         bool
	ConvertMouseToTouch       bool
	ReplaceSurrogates         bool
	GCProfile                 bool
	LoadWebfontsSynchronously bool
	DisableVsync              bool
	WebrenderStats            bool
	WebrenderRecord           bool
	WebrenderDisableBatch     bool
	UseMSAA                   bool
	FullBacktraces            bool
	PrecacheShaders           bool
	Signpost                  bool
}

// Token is one entry of the debug vocabulary.
type Token struct {
	Name        string
	Description string
	field       func(*Options) *bool
}

// HelpToken requests the token listing instead of normal startup.
const HelpToken = "help"

var tokens = []Token{
	{"bubble-widths", "Bubble intrinsic widths separately like other engines.", func(o *Options) *bool { return &o.BubbleWidths }},
	{"disable-text-aa", "Disable antialiasing of rendered text.", func(o *Options) *bool { return &o.DisableTextAA }},
	{"disable-subpixel-aa", "Disable subpixel antialiasing of rendered text.", func(o *Options) *bool { return &o.DisableSubpixelAA }},
	{"disable-canvas-aa", "Disable antialiasing on the HTML canvas element.", func(o *Options) *bool { return &o.DisableCanvasAA }},
	{"dump-style-tree", "Print the DOM with computed styles after each restyle.", func(o *Options) *bool { return &o.DumpStyleTree }},
	{"dump-rule-tree", "Print the rule tree after each restyle.", func(o *Options) *bool { return &o.DumpRuleTree }},
	{"dump-flow-tree", "Print the flow tree after each layout.", func(o *Options) *bool { return &o.DumpFlowTree }},
	{"dump-display-list", "Print the display list after each layout.", func(o *Options) *bool { return &o.DumpDisplayList }},
	{"dump-display-list-json", "Print the display list in JSON form.", func(o *Options) *bool { return &o.DumpDisplayListJSON }},
	{"relayout-event", "Print notifications when there is a relayout.", func(o *Options) *bool { return &o.RelayoutEvent }},
	{"profile-script-events", "Enable profiling of script-related events.", func(o *Options) *bool { return &o.ProfileScriptEvents }},
	{"profile-heartbeats", "Enable heartbeats for all thread categories.", func(o *Options) *bool { return &o.ProfileHeartbeats }},
	{"show-fragment-borders", "Paint borders along fragment boundaries.", func(o *Options) *bool { return &o.ShowFragmentBorders }},
	{"show-parallel-layout", "Mark which thread laid each flow out with colors.", func(o *Options) *bool { return &o.ShowParallelLayout }},
	{"trace-layout", "Write layout trace to an external file for debugging.", func(o *Options) *bool { return &o.TraceLayout }},
	{"disable-share-style-cache", "Disable the style sharing cache.", func(o *Options) *bool { return &o.DisableShareStyleCache }},
	{"style-sharing-stats", "Print style sharing cache stats after each restyle.", func(o *Options) *bool { return &o.StyleSharingStats }},
	{"convert-mouse-to-touch", "Send touch events instead of mouse events.", func(o *Options) *bool { return &o.ConvertMouseToTouch }},
	{"replace-surrogates", "Replace unpaired surrogates in DOM strings with U+FFFD.", func(o *Options) *bool { return &o.ReplaceSurrogates }},
	{"gc-profile", "Log GC passes and their durations.", func(o *Options) *bool { return &o.GCProfile }},
	{"load-webfonts-synchronously", "Load web fonts synchronously to avoid non-deterministic network-driven reflows.", func(o *Options) *bool { return &o.LoadWebfontsSynchronously }},
	{"disable-vsync", "Disable vsync mode in the compositor to allow profiling at more than monitor refresh rate.", func(o *Options) *bool { return &o.DisableVsync }},
	{"wr-stats", "Show WebRender profiler on screen.", func(o *Options) *bool { return &o.WebrenderStats }},
	{"wr-record", "Enable WebRender recording.", func(o *Options) *bool { return &o.WebrenderRecord }},
	{"wr-no-batch", "Disable WebRender instanced batching.", func(o *Options) *bool { return &o.WebrenderDisableBatch }},
	{"msaa", "Use multisample antialiasing in WebRender.", func(o *Options) *bool { return &o.UseMSAA }},
	{"full-backtraces", "Print full backtraces for all errors.", func(o *Options) *bool { return &o.FullBacktraces }},
	{"precache-shaders", "Compile all shaders during init.", func(o *Options) *bool { return &o.PrecacheShaders }},
	{"signpost", "Emit native OS signposts for profile events (currently macOS only).", func(o *Options) *bool { return &o.Signpost }},
}

var byName = func() map[string]Token {
	m := make(map[string]Token, len(tokens)+1)
	for _, t := range tokens {
		m[t.Name] = t
	}
	m[HelpToken] = Token{Name: HelpToken, field: func(o *Options) *bool { return &o.Help }}
	return m
}()

// Tokens returns the debug vocabulary in listing order, without the help token.
func Tokens() []Token {
	out := make([]Token, len(tokens))
	copy(out, tokens)
	return out
}

// Extend applies every token of a comma-separated debug string. Empty
// tokens are skipped. Decoding stops at the first unknown token; tokens
// before it in the same string stay applied.
func (o *Options) Extend(debugString string) error {
	for _, name := range strings.Split(debugString, ",") {
		if name == "" {
			continue
		}
		tok, ok := byName[name]
		if !ok {
			return &UnknownOptionError{Token: name}
		}
		*tok.field(o) = true
	}
	return nil
}

// Decode builds an Options record from every -Z occurrence in order.
func Decode(debugStrings []string) (Options, error) {
	var o Options
	for _, s := range debugStrings {
		if err := o.Extend(s); err != nil {
			return o, err
		}
	}
	return o, nil
}
