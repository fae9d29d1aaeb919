// Package logging builds the zap loggers used by the CLI, TUI and server.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/javiermolinar/deckhand/internal/config"
)

// New returns a JSON logger at the configured level writing to the
// configured file, or stderr when no file is set.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Sampling = nil
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		zcfg.OutputPaths = []string{cfg.File}
		zcfg.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// DebugLogFile is where the TUI writes debug logs when no log file is
// configured.
const DebugLogFile = "deckhand-debug.log"

// ForTUI returns a logger that never writes to the terminal. Without debug
// it is a no-op; with debug it logs everything to the configured file, or
// DebugLogFile in the working directory.
func ForTUI(cfg config.LogConfig, debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	if cfg.File == "" {
		cfg.File = DebugLogFile
	}
	cfg.Level = zapcore.DebugLevel.String()
	return New(cfg)
}
