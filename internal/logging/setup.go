// Package logging configures zerolog and carries loggers through contexts.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls logger output.
type Config struct {
	Level  string
	Format string
	File   FileConfig
}

// FileConfig enables a rotated log file next to console output.
type FileConfig struct {
	Enabled    bool
	Path       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// Logger wraps zerolog.Logger with error helpers.
type Logger struct {
	zerolog.Logger
}

// New builds a console or JSON logger writing to stderr.
func New(cfg Config) Logger {
	return Logger{Logger: zerolog.New(consoleOrJSON(cfg.Format, os.Stderr)).
		Level(parseLevel(cfg.Level)).
		With().Timestamp().Logger()}
}

// NewWithFile builds a logger that also writes to a rotated file.
// The returned cleanup closes the file writer.
func NewWithFile(cfg Config) (Logger, func(), error) {
	if !cfg.File.Enabled {
		return New(cfg), func() {}, nil
	}

	// Create logs directory with secure permissions (0700 - owner only)
	if err := os.MkdirAll(filepath.Dir(cfg.File.Path), 0700); err != nil {
		return Default(), nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.File.Path,
		MaxSize:    cfg.File.MaxSize,
		MaxBackups: cfg.File.MaxBackups,
		MaxAge:     cfg.File.MaxAge,
		Compress:   cfg.File.Compress,
	}

	out := io.MultiWriter(consoleOrJSON(cfg.Format, os.Stderr), fileWriter)
	log := Logger{Logger: zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().Timestamp().Logger()}

	cleanup := func() {
		_ = fileWriter.Close()
	}

	return log, cleanup, nil
}

// Default returns an info level console logger.
func Default() Logger {
	return New(Config{Level: "info", Format: "console"})
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return Logger{Logger: zerolog.Nop()}
}

// WrapErr logs err at error level and returns it wrapped with msg.
func (l Logger) WrapErr(err error, msg string) error {
	l.Error().Err(err).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

func consoleOrJSON(format string, w io.Writer) io.Writer {
	if strings.EqualFold(format, "json") {
		return w
	}
	return zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
}

func parseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return parsed
}
