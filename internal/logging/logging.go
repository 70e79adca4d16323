// Package logging builds the zap logger used by the CLI.
package logging

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity values accepted by the --verbosity flag.
const (
	VerbosityQuiet = "quiet"
	VerbosityInfo  = "info"
	VerbosityDebug = "debug"
)

// ParseLevel maps a verbosity name to the minimum enabled level. Quiet still
// shows errors; warnings about unresolved identifiers need info or debug.
func ParseLevel(verbosity string) (zapcore.Level, error) {
	switch verbosity {
	case VerbosityQuiet:
		return zapcore.ErrorLevel, nil
	case VerbosityInfo, "":
		return zapcore.InfoLevel, nil
	case VerbosityDebug:
		return zapcore.DebugLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown verbosity %q: want %s, %s or %s",
			verbosity, VerbosityQuiet, VerbosityInfo, VerbosityDebug)
	}
}

// New returns a console logger writing to w. Level names are colored when
// color is true.
func New(w zapcore.WriteSyncer, level zapcore.Level, color bool) *zap.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), w, level)
	return zap.New(core)
}

// NewStderr returns a logger on standard error at the given verbosity,
// colored when standard error is a terminal.
func NewStderr(verbosity string) (*zap.Logger, error) {
	level, err := ParseLevel(verbosity)
	if err != nil {
		return nil, err
	}
	fd := os.Stderr.Fd()
	color := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return New(zapcore.Lock(os.Stderr), level, color), nil
}
