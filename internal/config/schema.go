package config

import "github.com/eugenenazirov/servo-opts/internal/flags"

// Flag names consulted by the resolver.
const (
	flagOutput           = "output"
	flagSize             = "size"
	flagDevicePixelRatio = "device-pixel-ratio"
	flagProfile          = "profile"
	flagTracePath        = "profiler-trace-path"
	flagMemoryProfile    = "memory-profile"
	flagExit             = "exit"
	flagLayoutThreads    = "layout-threads"
	flagNonincremental   = "nonincremental-layout"
	flagUserscripts      = "userscripts"
	flagUserStylesheet   = "user-stylesheet"
	flagShaders          = "shaders"
	flagHeadless         = "headless"
	flagAngle            = "angle"
	flagHardFail         = "hard-fail"
	flagSoftFail         = "soft-fail"
	flagDebuggerPort     = "remote-debugging-port"
	flagDevtools         = "devtools"
	flagWebdriver        = "webdriver"
	flagResolution       = "resolution"
	flagUserAgent        = "user-agent"
	flagMultiprocess     = "multiprocess"
	flagSandbox          = "sandbox"
	flagClosureProb      = "random-pipeline-closure-probability"
	flagClosureSeed      = "random-pipeline-closure-seed"
	flagDebug            = "debug"
	flagResourcesPath    = "resources-path"
	flagCertificatePath  = "certificate-path"
	flagContentProcess   = "content-process"
	flagPref             = "pref"
	flagNoNativeTitlebar = "no-native-titlebar"
	flagConfigDir        = "config-dir"
	flagCleanShutdown    = "clean-shutdown"
	flagVersion          = "version"
	flagUnminifyJS       = "unminify-js"
	flagProfilerDBUser   = "profiler-db-user"
	flagProfilerDBPass   = "profiler-db-pass"
	flagProfilerDBName   = "profiler-db-name"
	flagPrintPWM         = "print-pwm"
)

// Default values for flags that may be given without a value.
const (
	defaultMemProfilerPeriod = "5"
	defaultDebuggerPort      = "2794"
	defaultDevtoolsPort      = "6000"
	defaultWebdriverPort     = "7000"
)

// Schema returns the command-line flag declarations. The cpu, gpu,
// webrender and graphics flags are accepted for compatibility and have no
// effect.
func Schema() flags.Schema {
	return flags.Schema{
		{Short: 'c', Long: "cpu", Arity: flags.Flag, Help: "CPU painting"},
		{Short: 'g', Long: "gpu", Arity: flags.Flag, Help: "GPU painting"},
		{Short: 'o', Long: flagOutput, Arity: flags.Opt, Help: "Output file", Hint: "output.png"},
		{Short: 's', Long: flagSize, Arity: flags.Opt, Help: "Size of tiles", Hint: "512"},
		{Long: flagDevicePixelRatio, Arity: flags.Opt, Help: "Device pixels per px", Hint: "RATIO"},
		{Short: 'p', Long: flagProfile, Arity: flags.FlagOpt, Help: "Time profiler flag and either a TSV output filename OR an interval for output to Stdout (blank for Stdout with interval of 5s)", Hint: "10 OR time.tsv"},
		{Long: flagTracePath, Arity: flags.FlagOpt, Help: "Path to dump a self-contained HTML timeline of profiler traces", Hint: "PATH"},
		{Short: 'm', Long: flagMemoryProfile, Arity: flags.FlagOpt, Help: "Memory profiler flag and output interval", Hint: "10"},
		{Short: 'x', Long: flagExit, Arity: flags.Flag, Help: "Exit after load flag"},
		{Short: 'y', Long: flagLayoutThreads, Arity: flags.Opt, Help: "Number of threads to use for layout", Hint: "1"},
		{Short: 'i', Long: flagNonincremental, Arity: flags.Flag, Help: "Enable to turn off incremental layout."},
		{Long: flagUserscripts, Arity: flags.FlagOpt, Help: "Uses userscripts in resources/user-agent-js, or a specified full path", Hint: "PATH"},
		{Long: flagUserStylesheet, Arity: flags.Multi, Help: "A user stylesheet to be added to every document", Hint: "file.css"},
		{Long: flagShaders, Arity: flags.Opt, Help: "Shaders will be loaded from the specified directory instead of using the builtin ones.", Hint: "DIR"},
		{Short: 'z', Long: flagHeadless, Arity: flags.Flag, Help: "Headless mode"},
		{Long: flagAngle, Arity: flags.Flag, Help: "Use ANGLE to create a GL context (Windows-only)"},
		{Short: 'f', Long: flagHardFail, Arity: flags.Flag, Help: "Exit on thread failure instead of displaying about:failure"},
		{Short: 'F', Long: flagSoftFail, Arity: flags.Flag, Help: "Display about:failure on thread failure instead of exiting"},
		{Long: flagDebuggerPort, Arity: flags.FlagOpt, Help: "Start remote debugger server on port", Hint: defaultDebuggerPort},
		{Long: flagDevtools, Arity: flags.FlagOpt, Help: "Start remote devtools server on port", Hint: defaultDevtoolsPort},
		{Long: flagWebdriver, Arity: flags.FlagOpt, Help: "Start remote WebDriver server on port", Hint: defaultWebdriverPort},
		{Long: flagResolution, Arity: flags.Opt, Help: "Set window resolution.", Hint: "1024x740"},
		{Short: 'u', Long: flagUserAgent, Arity: flags.Opt, Help: "Set custom user agent string (or ios / android / desktop for platform default)", Hint: "NCSA Mosaic/1.0 (X11;SunOS 4.1.4 sun4m)"},
		{Short: 'M', Long: flagMultiprocess, Arity: flags.Flag, Help: "Run in multiprocess mode"},
		{Short: 'S', Long: flagSandbox, Arity: flags.Flag, Help: "Run in a sandbox if multiprocess"},
		{Long: flagClosureProb, Arity: flags.Opt, Help: "Probability of randomly closing a pipeline (for testing constellation hardening).", Hint: "0.0"},
		{Long: flagClosureSeed, Arity: flags.Opt, Help: "A fixed seed for repeatbility of random pipeline closure.", Hint: "SEED"},
		{Short: 'Z', Long: flagDebug, Arity: flags.Multi, Help: "A comma-separated string of debug options. Pass help to show available options.", Hint: "OPTIONS"},
		{Short: 'h', Long: flags.HelpName, Arity: flags.Flag, Help: "Print this message"},
		{Long: flagResourcesPath, Arity: flags.Opt, Help: "Path to find static resources", Hint: "/home/servo/resources"},
		{Long: flagCertificatePath, Arity: flags.Opt, Help: "Path to find SSL certificates", Hint: "/home/servo/resources/certs"},
		{Long: flagContentProcess, Arity: flags.Opt, Help: "Run as a content process and connect to the given pipe", Hint: "servo-ipc-channel.abcdefg"},
		{Long: flagPref, Arity: flags.Multi, Help: "A preference to set to enable", Hint: "dom.bluetooth.enabled"},
		{Short: 'b', Long: flagNoNativeTitlebar, Arity: flags.Flag, Help: "Do not use native titlebar"},
		{Short: 'w', Long: "webrender", Arity: flags.Flag, Help: "Use webrender backend"},
		{Short: 'G', Long: "graphics", Arity: flags.Opt, Help: "Select graphics backend (gl or es2)", Hint: "gl"},
		{Long: flagConfigDir, Arity: flags.Opt, Help: "config directory following xdg spec on linux platform", Hint: "DIR"},
		{Long: flagCleanShutdown, Arity: flags.Flag, Help: "Do not shutdown until all threads have finished (macos only)"},
		{Short: 'v', Long: flagVersion, Arity: flags.Flag, Help: "Display servo version information"},
		{Long: flagUnminifyJS, Arity: flags.Flag, Help: "Unminify Javascript"},
		{Long: flagProfilerDBUser, Arity: flags.Opt, Help: "Profiler database user", Hint: "USER"},
		{Long: flagProfilerDBPass, Arity: flags.Opt, Help: "Profiler database password", Hint: "PASS"},
		{Long: flagProfilerDBName, Arity: flags.Opt, Help: "Profiler database name", Hint: "NAME"},
		{Long: flagPrintPWM, Arity: flags.Flag, Help: "Print Progressive Web Metrics"},
	}
}
