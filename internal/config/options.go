package config

import (
	"net/url"
	"runtime"
)

// Size is a window size in device-independent pixels.
type Size struct {
	Width  uint32
	Height uint32
}

// UserStylesheet is a stylesheet read at startup together with the URL it
// was loaded from.
type UserStylesheet struct {
	Contents []byte
	URL      *url.URL
}

// Options is the resolved configuration snapshot. Once published to a
// Store it is never modified; a new resolution publishes a new value.
//
// Pointer fields are nil when the corresponding setting was not requested.
// Path fields are empty when unset.
type Options struct {
	IsRunningProblemTest bool

	// URL is the initial page to load.
	URL *url.URL

	TileSize          int
	DevicePixelsPerPx *float64

	// TimeProfiling is nil when the time profiler is disabled.
	TimeProfiling         OutputOptions
	TimeProfilerTracePath string
	MemProfilerPeriod     *float64

	NonincrementalLayout bool

	// Userscripts is the directory to load userscripts from. An empty
	// string selects the bundled scripts; nil disables them.
	Userscripts     *string
	UserStylesheets []UserStylesheet
	OutputFile      string

	ReplaceSurrogates           bool
	GCProfile                   bool
	LoadWebfontsSynchronously   bool
	Headless                    bool
	Angle                       bool
	HardFail                    bool
	BubbleInlineSizesSeparately bool
	ShowDebugFragmentBorders    bool
	ShowDebugParallelLayout     bool

	EnableTextAntialiasing         bool
	EnableSubpixelTextAntialiasing bool
	EnableCanvasAntialiasing       bool

	TraceLayout         bool
	ProfileScriptEvents bool
	ProfileHeartbeats   bool

	DebuggerPort  *uint16
	DevtoolsPort  *uint16
	WebdriverPort *uint16

	InitialWindowSize Size
	UserAgent         string

	Multiprocess bool
	Sandbox      bool

	RandomPipelineClosureProbability *float64
	RandomPipelineClosureSeed        *uint64

	DumpStyleTree          bool
	DumpRuleTree           bool
	DumpFlowTree           bool
	DumpDisplayList        bool
	DumpDisplayListJSON    bool
	RelayoutEvent          bool
	DisableShareStyleCache bool
	StyleSharingStats      bool
	ConvertMouseToTouch    bool
	ExitAfterLoad          bool
	NoNativeTitlebar       bool
	EnableVsync            bool

	WebrenderStats  bool
	WebrenderRecord bool
	WebrenderBatch  bool
	ShadersDir      string
	PrecacheShaders bool
	UseMSAA         bool

	ConfigDir         string
	ResourcesPath     string
	CertificatePath   string
	FullBacktraces    bool
	Signpost          bool
	IsPrintingVersion bool
	UnminifyJS        bool
	PrintPWM          bool
	CleanShutdown     bool
}

const (
	defaultTileSize     = 512
	defaultWindowWidth  = 1024
	defaultWindowHeight = 740
)

// Default returns the snapshot produced by resolving an empty argument
// list against the built-in preferences.
func Default() Options {
	return Options{
		TileSize:                       defaultTileSize,
		EnableTextAntialiasing:         true,
		EnableSubpixelTextAntialiasing: true,
		EnableCanvasAntialiasing:       true,
		InitialWindowSize:              Size{Width: defaultWindowWidth, Height: defaultWindowHeight},
		UserAgent:                      DefaultUserAgent(),
		EnableVsync:                    true,
		WebrenderBatch:                 true,
	}
}

// ShouldUseOSMesa reports whether rendering should go through the
// software GL implementation.
func (o *Options) ShouldUseOSMesa() bool {
	return o.Headless
}

// Clone returns a deep copy that shares no memory with o.
func (o Options) Clone() Options {
	out := o
	out.URL = cloneURL(o.URL)
	out.DevicePixelsPerPx = clonePtr(o.DevicePixelsPerPx)
	if o.TimeProfiling != nil {
		out.TimeProfiling = o.TimeProfiling.cloneOutput()
	}
	out.MemProfilerPeriod = clonePtr(o.MemProfilerPeriod)
	out.Userscripts = clonePtr(o.Userscripts)
	if o.UserStylesheets != nil {
		out.UserStylesheets = make([]UserStylesheet, len(o.UserStylesheets))
		for i, sheet := range o.UserStylesheets {
			out.UserStylesheets[i] = UserStylesheet{
				Contents: append([]byte(nil), sheet.Contents...),
				URL:      cloneURL(sheet.URL),
			}
		}
	}
	out.DebuggerPort = clonePtr(o.DebuggerPort)
	out.DevtoolsPort = clonePtr(o.DevtoolsPort)
	out.WebdriverPort = clonePtr(o.WebdriverPort)
	out.RandomPipelineClosureProbability = clonePtr(o.RandomPipelineClosureProbability)
	out.RandomPipelineClosureSeed = clonePtr(o.RandomPipelineClosureSeed)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	out := *u
	if u.User != nil {
		user := *u.User
		out.User = &user
	}
	return &out
}

// User agent aliases accepted by --user-agent.
const (
	UserAgentDesktop = "desktop"
	UserAgentAndroid = "android"
	UserAgentIOS     = "ios"
)

const (
	androidUserAgent = "Mozilla/5.0 (Android; Mobile; rv:63.0) Servo/1.0 Firefox/63.0"
	iosUserAgent     = "Mozilla/5.0 (iPhone; CPU iPhone OS 8_3 like Mac OS X; rv:63.0) Servo/1.0 Firefox/63.0"
)

// DefaultUserAgent returns the built-in user agent for the running platform.
func DefaultUserAgent() string {
	return platformUserAgent(runtime.GOOS, runtime.GOARCH)
}

func platformUserAgent(goos, goarch string) string {
	switch goos {
	case "android":
		return androidUserAgent
	case "ios":
		return iosUserAgent
	default:
		return desktopUserAgent(goos, goarch)
	}
}

func desktopUserAgent(goos, goarch string) string {
	switch {
	case goos == "linux" && goarch == "amd64":
		return "Mozilla/5.0 (X11; Linux x86_64; rv:63.0) Servo/1.0 Firefox/63.0"
	case goos == "linux":
		return "Mozilla/5.0 (X11; Linux i686; rv:63.0) Servo/1.0 Firefox/63.0"
	case goos == "windows" && goarch == "amd64":
		return "Mozilla/5.0 (Windows NT 6.1; Win64; x64; rv:63.0) Servo/1.0 Firefox/63.0"
	case goos == "windows":
		return "Mozilla/5.0 (Windows NT 6.1; rv:63.0) Servo/1.0 Firefox/63.0"
	default:
		return "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.10; rv:63.0) Servo/1.0 Firefox/63.0"
	}
}

// resolveUserAgent expands the reserved aliases and passes anything else
// through unchanged.
func resolveUserAgent(raw string) string {
	switch raw {
	case UserAgentDesktop:
		return desktopUserAgent(runtime.GOOS, runtime.GOARCH)
	case UserAgentAndroid:
		return androidUserAgent
	case UserAgentIOS:
		return iosUserAgent
	default:
		return raw
	}
}
