package application

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/eugenenazirov/servo-opts/internal/config"
	"github.com/eugenenazirov/servo-opts/internal/flags"
	"github.com/eugenenazirov/servo-opts/internal/prefs"
)

// Exit codes returned by Run.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Settings describe the process the application runs in.
type Settings struct {
	Name       string
	Version    string
	WorkingDir string
	ConfigDir  string
}

// App encapsulates the startup dependencies.
type App struct {
	settings Settings
	logger   *zap.Logger
	store    *config.Store
	resolver *config.Resolver
}

// New initializes the application. The store is usually config.Shared();
// tests pass their own.
func New(settings Settings, logger *zap.Logger, store *config.Store, prefMap *prefs.Map) (*App, error) {
	if settings.Name == "" {
		settings.Name = "servo"
	}

	opts := []config.ResolverOption{
		config.WithAppName(settings.Name),
		config.WithDefaultConfigDir(settings.ConfigDir),
	}
	if settings.WorkingDir != "" {
		opts = append(opts, config.WithWorkingDir(settings.WorkingDir))
	}

	resolver, err := config.NewResolver(store, prefMap, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}

	return &App{
		settings: settings,
		logger:   logger,
		store:    store,
		resolver: resolver,
	}, nil
}

// Store returns the configuration store the application publishes into.
func (a *App) Store() *config.Store {
	return a.store
}

// Run resolves args, which exclude the program name, and returns the exit
// code. Usage and version text go to stdout, errors to stderr.
func (a *App) Run(args []string, stdout, stderr io.Writer) int {
	res, err := a.resolver.Resolve(args)
	if err != nil {
		fmt.Fprintf(stderr, "%s: error: %v\n", a.settings.Name, err)
		var parseErr *flags.ParseError
		if errors.As(err, &parseErr) {
			fmt.Fprintf(stderr, "Try '%s --help' for more information.\n", a.settings.Name)
		}
		return ExitFailure
	}

	switch res.Kind {
	case config.Help, config.DebugHelp:
		fmt.Fprint(stdout, res.Usage)
		return ExitSuccess
	case config.ContentProcess:
		a.logger.Info("starting content process",
			zap.String("channel", res.ChannelID),
			zap.Bool("multiprocess", a.store.Multiprocess()),
		)
		return ExitSuccess
	}

	opts := a.store.Get()
	if opts.IsPrintingVersion {
		fmt.Fprintf(stdout, "%s %s\n", a.settings.Name, a.settings.Version)
		return ExitSuccess
	}

	a.logger.Info("configuration resolved", summary(opts)...)
	return ExitSuccess
}

func summary(opts config.Options) []zap.Field {
	fields := []zap.Field{
		zap.Int("tile_size", opts.TileSize),
		zap.Uint32("window_width", opts.InitialWindowSize.Width),
		zap.Uint32("window_height", opts.InitialWindowSize.Height),
		zap.String("user_agent", opts.UserAgent),
		zap.Bool("multiprocess", opts.Multiprocess),
		zap.Bool("headless", opts.Headless),
		zap.Int("user_stylesheets", len(opts.UserStylesheets)),
	}
	if opts.URL != nil {
		fields = append(fields, zap.Stringer("url", opts.URL))
	}
	if opts.TimeProfiling != nil {
		fields = append(fields, zap.String("time_profiling", fmt.Sprintf("%+v", opts.TimeProfiling)))
	}
	return fields
}
