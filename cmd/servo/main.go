package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eugenenazirov/servo-opts/internal/application"
	"github.com/eugenenazirov/servo-opts/internal/config"
	"github.com/eugenenazirov/servo-opts/internal/logging"
	"github.com/eugenenazirov/servo-opts/internal/prefs"
)

const appName = "servo"

// logLevelEnv selects the startup log level; warnings only by default.
const logLevelEnv = "SERVO_LOG"

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	level := zapcore.WarnLevel
	if raw := os.Getenv(logLevelEnv); raw != "" {
		parsed, err := logging.ParseLevel(raw)
		if err != nil {
			fmt.Fprintf(stderr, "%s: ignoring %s: %v\n", appName, logLevelEnv, err)
		} else {
			level = parsed
		}
	}

	logger, err := logging.New(level)
	if err != nil {
		fmt.Fprintf(stderr, "%s: failed to initialize logger: %v\n", appName, err)
		return application.ExitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	settings := application.Settings{
		Name:    appName,
		Version: version,
	}
	if dir, err := os.UserConfigDir(); err == nil {
		settings.ConfigDir = filepath.Join(dir, appName)
	} else {
		logger.Debug("no user config directory", zap.Error(err))
	}

	app, err := application.New(settings, logger, config.Shared(), prefs.Defaults())
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return application.ExitFailure
	}

	return app.Run(args, stdout, stderr)
}
