package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/servo-opts/internal/debugopts"
	"github.com/eugenenazirov/servo-opts/internal/flags"
	"github.com/eugenenazirov/servo-opts/internal/prefs"
)

// Kind tells the caller what to do after a resolution.
type Kind int

const (
	// ChromeProcess means the snapshot was published and startup continues.
	ChromeProcess Kind = iota
	// ContentProcess means configuration arrives over ChannelID instead.
	ContentProcess
	// Help means usage was requested; Usage holds the text.
	Help
	// DebugHelp means the debug option listing was requested.
	DebugHelp
)

func (k Kind) String() string {
	switch k {
	case ChromeProcess:
		return "chrome-process"
	case ContentProcess:
		return "content-process"
	case Help:
		return "help"
	case DebugHelp:
		return "debug-help"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is the outcome of a successful resolution.
type Result struct {
	Kind      Kind
	ChannelID string
	Usage     string
}

// Resolver turns argument vectors into published snapshots.
type Resolver struct {
	store  *Store
	prefs  *prefs.Map
	logger *zap.Logger
	parser *flags.Parser

	appName          string
	workDir          string
	defaultConfigDir string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithAppName sets the program name used in usage output.
func WithAppName(name string) ResolverOption {
	return func(r *Resolver) {
		r.appName = name
	}
}

// WithWorkingDir sets the directory relative paths are resolved against.
// The process working directory is used otherwise.
func WithWorkingDir(dir string) ResolverOption {
	return func(r *Resolver) {
		r.workDir = dir
	}
}

// WithDefaultConfigDir sets the directory searched for bulk preference
// files when --config-dir is not given.
func WithDefaultConfigDir(dir string) ResolverOption {
	return func(r *Resolver) {
		r.defaultConfigDir = dir
	}
}

// NewResolver builds a resolver that publishes into store and writes
// preference overrides into prefMap.
func NewResolver(store *Store, prefMap *prefs.Map, logger *zap.Logger, opts ...ResolverOption) (*Resolver, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if prefMap == nil {
		return nil, errors.New("preference map is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Resolver{
		store:   store,
		prefs:   prefMap,
		logger:  logger,
		appName: "servo",
	}
	for _, opt := range opts {
		opt(r)
	}

	parser, err := flags.NewParser(r.appName, "A web browser engine.", Schema(),
		flags.WithPositional("url", "URL or file path to load."),
	)
	if err != nil {
		return nil, err
	}
	r.parser = parser
	return r, nil
}

// Usage returns the command-line usage text.
func (r *Resolver) Usage() string {
	return r.parser.Usage()
}

// Resolve parses args, which exclude the program name. On a ChromeProcess
// result the snapshot has been published and preference overrides applied.
// Any error means startup must not continue.
func (r *Resolver) Resolve(args []string) (Result, error) {
	m, err := r.parser.Parse(args)
	if err != nil {
		return Result{}, err
	}
	if m.HelpRequested() {
		return Result{Kind: Help, Usage: m.Usage()}, nil
	}

	if channel, ok := m.Str(flagContentProcess); ok {
		r.store.SetMultiprocess(true)
		return Result{Kind: ContentProcess, ChannelID: channel}, nil
	}

	debug, err := debugopts.Decode(m.Strs(flagDebug))
	if err != nil {
		return Result{}, err
	}
	if debug.Help {
		var b strings.Builder
		if err := debugopts.WriteUsage(&b, r.appName); err != nil {
			return Result{}, fmt.Errorf("render debug usage: %w", err)
		}
		return Result{Kind: DebugHelp, Usage: b.String()}, nil
	}

	cwd, err := r.workingDir()
	if err != nil {
		return Result{}, err
	}

	opts, layoutThreads, err := r.assemble(m, debug, cwd)
	if err != nil {
		return Result{}, err
	}
	r.store.Set(opts)

	if err := r.applyPreferences(m, opts.ConfigDir, layoutThreads); err != nil {
		return Result{}, err
	}
	return Result{Kind: ChromeProcess}, nil
}

func (r *Resolver) workingDir() (string, error) {
	if r.workDir != "" {
		return r.workDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}
	return cwd, nil
}

// prefGates are the preferences consulted while building the snapshot.
type prefGates struct {
	NativeTitlebar bool `pref:"shell.native_titlebar.enabled"`
	SubpixelTextAA bool `pref:"gfx.subpixel_text_antialiasing.enabled"`
}

// assemble builds the snapshot. It also returns the layout thread count to
// write into preferences, or nil when none was requested.
func (r *Resolver) assemble(m *flags.Matches, debug debugopts.Options, cwd string) (Options, *int64, error) {
	opts := Default()

	free := m.Free()
	if len(free) > 0 {
		raw := free[0]
		opts.IsRunningProblemTest = isProblemTest(raw)
		u, err := parseURLOrFilename(cwd, raw)
		if err != nil {
			r.logger.Warn("URL parsing failed", zap.String("url", raw), zap.Error(err))
		} else {
			opts.URL = u
		}
		if len(free) > 1 {
			r.logger.Warn("ignoring extra positional arguments", zap.Strings("args", free[1:]))
		}
	}

	if raw, ok := m.Str(flagSize); ok {
		size, err := strconv.ParseUint(raw, 10, strconv.IntSize-1)
		if err != nil {
			return Options{}, nil, argError("-s", raw, err)
		}
		opts.TileSize = int(size)
	}

	if raw, ok := m.Str(flagDevicePixelRatio); ok {
		ratio, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Options{}, nil, argError("--"+flagDevicePixelRatio, raw, err)
		}
		opts.DevicePixelsPerPx = &ratio
	}

	if raw, ok := m.Default(flagProfile, ""); ok {
		if raw == "" {
			opts.TimeProfiling = Stdout{Interval: DefaultProfilerInterval}
		} else {
			opts.TimeProfiling = ParseOutput(raw, Credentials{
				Name: optStr(m, flagProfilerDBName),
				User: optStr(m, flagProfilerDBUser),
				Pass: optStr(m, flagProfilerDBPass),
			})
		}
	}

	if path, ok := m.Str(flagTracePath); ok {
		opts.TimeProfilerTracePath = path
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			r.logger.Error("couldn't create profiler trace directory", zap.String("path", path), zap.Error(err))
		}
	}

	if raw, ok := m.Default(flagMemoryProfile, defaultMemProfilerPeriod); ok {
		period, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Options{}, nil, argError("-m", raw, err)
		}
		opts.MemProfilerPeriod = &period
	}

	var layoutThreads *int64
	if raw, ok := m.Str(flagLayoutThreads); ok {
		n, err := strconv.ParseUint(raw, 10, 63)
		if err != nil {
			return Options{}, nil, argError("-y", raw, err)
		}
		threads := int64(n)
		layoutThreads = &threads
	}

	opts.NonincrementalLayout = m.Present(flagNonincremental)

	if raw, ok := m.Str(flagClosureProb); ok {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Options{}, nil, argError("--"+flagClosureProb, raw, err)
		}
		opts.RandomPipelineClosureProbability = &p
	}

	if raw, ok := m.Str(flagClosureSeed); ok {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Options{}, nil, argError("--"+flagClosureSeed, raw, err)
		}
		opts.RandomPipelineClosureSeed = &seed
	}

	opts.BubbleInlineSizesSeparately = debug.BubbleWidths
	if debug.TraceLayout {
		one := int64(1)
		layoutThreads = &one
		opts.BubbleInlineSizesSeparately = true
	}

	ports := []struct {
		flag string
		def  string
		dst  **uint16
	}{
		{flagDebuggerPort, defaultDebuggerPort, &opts.DebuggerPort},
		{flagDevtools, defaultDevtoolsPort, &opts.DevtoolsPort},
		{flagWebdriver, defaultWebdriverPort, &opts.WebdriverPort},
	}
	for _, p := range ports {
		raw, ok := m.Default(p.flag, p.def)
		if !ok {
			continue
		}
		port, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return Options{}, nil, argError("--"+p.flag, raw, err)
		}
		v := uint16(port)
		*p.dst = &v
	}

	if raw, ok := m.Str(flagResolution); ok {
		size, err := parseResolution(raw)
		if err != nil {
			return Options{}, nil, argError("--"+flagResolution, raw, err)
		}
		opts.InitialWindowSize = size
	}

	if m.Present(flagMultiprocess) {
		r.store.SetMultiprocess(true)
	}

	if ua, ok := m.Str(flagUserAgent); ok {
		opts.UserAgent = resolveUserAgent(ua)
	}

	sheets, err := readStylesheets(cwd, m.Strs(flagUserStylesheet))
	if err != nil {
		return Options{}, nil, err
	}
	opts.UserStylesheets = sheets

	gates := prefGates{NativeTitlebar: true, SubpixelTextAA: true}
	if err := r.prefs.Scan(&gates); err != nil {
		return Options{}, nil, fmt.Errorf("read preferences: %w", err)
	}

	if raw, ok := m.Default(flagUserscripts, ""); ok {
		opts.Userscripts = &raw
	}
	opts.OutputFile, _ = m.Str(flagOutput)
	opts.ShadersDir, _ = m.Str(flagShaders)
	opts.ConfigDir, _ = m.Str(flagConfigDir)
	opts.ResourcesPath, _ = m.Str(flagResourcesPath)
	opts.CertificatePath, _ = m.Str(flagCertificatePath)

	opts.Headless = m.Present(flagHeadless)
	opts.Angle = m.Present(flagAngle)
	opts.HardFail = m.Present(flagHardFail) && !m.Present(flagSoftFail)
	opts.Multiprocess = m.Present(flagMultiprocess)
	opts.Sandbox = m.Present(flagSandbox)
	opts.ExitAfterLoad = m.Present(flagExit)
	opts.NoNativeTitlebar = m.Present(flagNoNativeTitlebar) || !gates.NativeTitlebar
	opts.IsPrintingVersion = m.Present(flagVersion)
	opts.UnminifyJS = m.Present(flagUnminifyJS)
	opts.PrintPWM = m.Present(flagPrintPWM)
	opts.CleanShutdown = m.Present(flagCleanShutdown)

	applyDebug(&opts, debug)
	opts.EnableSubpixelTextAntialiasing = !debug.DisableSubpixelAA && gates.SubpixelTextAA

	return opts, layoutThreads, nil
}

// applyDebug copies debug switches into the snapshot.
func applyDebug(opts *Options, debug debugopts.Options) {
	opts.ReplaceSurrogates = debug.ReplaceSurrogates
	opts.GCProfile = debug.GCProfile
	opts.LoadWebfontsSynchronously = debug.LoadWebfontsSynchronously
	opts.ProfileScriptEvents = debug.ProfileScriptEvents
	opts.ProfileHeartbeats = debug.ProfileHeartbeats
	opts.TraceLayout = debug.TraceLayout
	opts.ShowDebugFragmentBorders = debug.ShowFragmentBorders
	opts.ShowDebugParallelLayout = debug.ShowParallelLayout
	opts.EnableTextAntialiasing = !debug.DisableTextAA
	opts.EnableCanvasAntialiasing = !debug.DisableCanvasAA
	opts.DumpStyleTree = debug.DumpStyleTree
	opts.DumpRuleTree = debug.DumpRuleTree
	opts.DumpFlowTree = debug.DumpFlowTree
	opts.DumpDisplayList = debug.DumpDisplayList
	opts.DumpDisplayListJSON = debug.DumpDisplayListJSON
	opts.RelayoutEvent = debug.RelayoutEvent
	opts.DisableShareStyleCache = debug.DisableShareStyleCache
	opts.StyleSharingStats = debug.StyleSharingStats
	opts.ConvertMouseToTouch = debug.ConvertMouseToTouch
	opts.EnableVsync = !debug.DisableVsync
	opts.WebrenderStats = debug.WebrenderStats
	opts.WebrenderRecord = debug.WebrenderRecord
	opts.WebrenderBatch = !debug.WebrenderDisableBatch
	opts.UseMSAA = debug.UseMSAA
	opts.FullBacktraces = debug.FullBacktraces
	opts.PrecacheShaders = debug.PrecacheShaders
	opts.Signpost = debug.Signpost
}

// applyPreferences runs after publish: bulk preference files first, then
// each --pref in order, then the layout thread count.
func (r *Resolver) applyPreferences(m *flags.Matches, configDir string, layoutThreads *int64) error {
	dir := configDir
	if dir == "" {
		dir = r.defaultConfigDir
	}
	loaded, err := r.prefs.AddUserPrefs(dir)
	if err != nil {
		return fmt.Errorf("load user preferences: %w", err)
	}
	if loaded != "" {
		r.logger.Info("loaded user preferences", zap.String("path", loaded))
	}

	for _, pref := range m.Strs(flagPref) {
		if err := r.prefs.ParseCommandLine(pref); err != nil {
			return err
		}
	}

	if layoutThreads != nil {
		if err := r.prefs.Set(prefs.LayoutThreads, prefs.IntValue(*layoutThreads)); err != nil {
			return fmt.Errorf("error setting preference %s: %w", prefs.LayoutThreads, err)
		}
	}
	return nil
}

func argError(option, raw string, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	return &ArgError{Option: option, Value: raw, Err: err}
}

var errResolutionFormat = errors.New("expected WIDTHxHEIGHT")

func parseResolution(raw string) (Size, error) {
	parts := strings.Split(raw, "x")
	if len(parts) != 2 {
		return Size{}, errResolutionFormat
	}
	var dims [2]uint32
	for i, part := range parts {
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return Size{}, err
		}
		dims[i] = uint32(v)
	}
	return Size{Width: dims[0], Height: dims[1]}, nil
}

func readStylesheets(cwd string, names []string) ([]UserStylesheet, error) {
	if len(names) == 0 {
		return nil, nil
	}
	sheets := make([]UserStylesheet, 0, len(names))
	for _, name := range names {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		contents, err := readStylesheet(name, path)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, UserStylesheet{Contents: contents, URL: fileURL(path)})
	}
	return sheets, nil
}

func readStylesheet(name, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &StylesheetError{Path: name, Op: "open", Err: err}
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		return nil, &StylesheetError{Path: name, Op: "read", Err: err}
	}
	return contents, nil
}

func optStr(m *flags.Matches, name string) *string {
	v, ok := m.Str(name)
	if !ok {
		return nil
	}
	return &v
}
