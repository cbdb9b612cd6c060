// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger. It is a no-op until Initialize is called so
// packages can log unconditionally, including from tests.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize installs a logger writing to w (stderr when nil).
// Verbose enables debug output; jsonOutput selects the JSON encoder.
func Initialize(verbose, jsonOutput bool, w io.Writer) {
	Logger = New(verbose, jsonOutput, w).Sugar()
}

// New builds a logger without installing it.
func New(verbose, jsonOutput bool, w io.Writer) *zap.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level)))
}

// Reset restores the no-op logger.
func Reset() {
	Logger = zap.NewNop().Sugar()
}
