package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/thenoetrevino/trtodo/internal/config"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Init initializes the logging system from cfg. Logs go to cfg.File, or
// ~/.config/trtodo/logs/trtodo.log when no file is configured, rotated by size.
// Uses text format for human readability.
// The returned closer flushes and closes the log file.
func Init(cfg config.LogConfig) (io.Closer, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	logPath := cfg.File
	if logPath == "" {
		logPath, err = defaultLogPath()
		if err != nil {
			return nil, err
		}
	}
	if logPath, err = config.ExpandPath(logPath); err != nil {
		return nil, err
	}

	writer, err := NewRotatingWriter(RotationConfig{
		File:      logPath,
		MaxSizeMB: cfg.MaxSizeMB,
		MaxFiles:  cfg.MaxBackups,
	})
	if err != nil {
		return nil, err
	}

	// Create text handler (human readable)
	Logger = New(writer, level)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same file
	log.SetOutput(writer)
	log.SetFlags(log.LstdFlags)

	return writer, nil
}

// New builds a text logger on w
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything (tests, --quiet)
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type RotationConfig struct {
	File      string
	MaxSizeMB int
	MaxFiles  int
}

// NewRotatingWriter returns a size-rotated log file writer
func NewRotatingWriter(cfg RotationConfig) (*lumberjack.Logger, error) {
	if cfg.File == "" {
		return nil, fmt.Errorf("rotation file path must not be empty")
	}

	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = 3
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxFiles,
	}, nil
}

func defaultLogPath() (string, error) {
	cfgPath, err := config.Path()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cfgPath), "logs", "trtodo.log"), nil
}
