package prefs

// Well-known preference names read or written during startup.
const (
	LayoutThreads             = "layout.threads"
	NativeTitlebarEnabled     = "shell.native_titlebar.enabled"
	SubpixelTextAAEnabled     = "gfx.subpixel_text_antialiasing.enabled"
	HomepageURL               = "shell.homepage"
	DevicePixelRatioOverride  = "layout.device_pixel_ratio"
	BluetoothEnabled          = "dom.bluetooth.enabled"
	WebGLEnabled              = "dom.webgl.enabled"
	WebGL2Enabled             = "dom.webgl2.enabled"
	ServiceWorkerTimeout      = "dom.serviceworker.timeout_seconds"
	TestBindingEnabled        = "dom.testbinding.enabled"
	MediaGlvideoEnabled       = "media.glvideo.enabled"
	NetworkHTTPCacheDisabled  = "network.http-cache.disabled"
	NetworkMimeSniff          = "network.mime.sniff"
	JSBaselineEnabled         = "js.baseline.enabled"
	JSIonEnabled              = "js.ion.enabled"
	JSMemMaxMB                = "js.mem.max"
	LayoutColumnsEnabled      = "layout.columns.enabled"
	LayoutWritingModeEnabled  = "layout.writing-mode.enabled"
	LayoutAnimationsTestOnly  = "layout.animations.test.enabled"
	UserAgentOverride         = "user-agent"
	SessionHistoryMaxLength   = "session-history.max-length"
	WebrenderBlobRasterizer   = "gfx.webrender.blob-recording"
	ShellKeepScreenOnEnabled  = "shell.keep_screen_on.enabled"
	ShellSearchURL            = "shell.searchpage"
	CSSAnimationsTickPeriodMS = "layout.animations.tick_period_ms"
)

// Defaults returns a map with the built-in preference schema registered.
func Defaults() *Map {
	m := NewMap()
	for name, v := range builtin() {
		if err := m.Register(name, v); err != nil {
			panic(err)
		}
	}
	return m
}

func builtin() map[string]Value {
	return map[string]Value{
		LayoutThreads:             IntValue(3),
		NativeTitlebarEnabled:     BoolValue(true),
		SubpixelTextAAEnabled:     BoolValue(true),
		HomepageURL:               StringValue("https://servo.org"),
		DevicePixelRatioOverride:  FloatValue(0),
		BluetoothEnabled:          BoolValue(false),
		WebGLEnabled:              BoolValue(true),
		WebGL2Enabled:             BoolValue(false),
		ServiceWorkerTimeout:      IntValue(60),
		TestBindingEnabled:        BoolValue(false),
		MediaGlvideoEnabled:       BoolValue(false),
		NetworkHTTPCacheDisabled:  BoolValue(false),
		NetworkMimeSniff:          BoolValue(false),
		JSBaselineEnabled:         BoolValue(true),
		JSIonEnabled:              BoolValue(true),
		JSMemMaxMB:                IntValue(-1),
		LayoutColumnsEnabled:      BoolValue(false),
		LayoutWritingModeEnabled:  BoolValue(false),
		LayoutAnimationsTestOnly:  BoolValue(false),
		UserAgentOverride:         StringValue(""),
		SessionHistoryMaxLength:   IntValue(20),
		WebrenderBlobRasterizer:   BoolValue(false),
		ShellKeepScreenOnEnabled:  BoolValue(false),
		ShellSearchURL:            StringValue("https://duckduckgo.com/html/?q=%s"),
		CSSAnimationsTickPeriodMS: FloatValue(16.6),
	}
}
