// Package logging builds the zap logger shared by the CLI and the bridge.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a level name to a zap level. Unknown names yield warn, so a
// misconfigured level never floods stderr during normal use.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "OFF", "NONE":
		return zapcore.FatalLevel
	default:
		return zapcore.WarnLevel
	}
}

// ConsoleEncoderConfig is the human-readable encoding used on stderr.
func ConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.CallerKey = ""
	return cfg
}

// New returns a logger writing console-encoded entries to stderr at level.
// When file is non-empty, entries are also appended to it as JSON.
// Stdout is never written to; the bridge owns it for responses.
//
// The returned cleanup flushes the logger and closes the log file. It is
// safe to call when no file was opened.
func New(level, file string) (*zap.Logger, func(), error) {
	lvl := zap.NewAtomicLevelAt(ParseLevel(level))

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(ConsoleEncoderConfig()), zapcore.Lock(os.Stderr), lvl),
	}

	var f *os.File
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, nil, errors.Wrap(err, "creating log directory")
		}
		var err error
		f, err = os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening log file")
		}
		jsonCfg := zap.NewProductionEncoderConfig()
		jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), zapcore.Lock(f), lvl))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	cleanup := func() {
		_ = logger.Sync()
		if f != nil {
			_ = f.Close()
		}
	}
	return logger, cleanup, nil
}
