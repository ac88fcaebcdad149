package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"learnobs/internal/platform/config"
)

// New builds the process logger. The returned closer releases the log file
// and must be called on shutdown.
func New(cfg config.Config) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	invalidLevel := err != nil
	if invalidLevel {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	switch cfg.Environment {
	case "production", "staging":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: !cfg.LogToStderr})
	}

	var closer io.Closer = nopCloser{}
	if cfg.LogToStderr {
		log.SetOutput(os.Stderr)
	} else {
		if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create state dir: %w", err)
		}
		f, err := os.OpenFile(filepath.Clean(cfg.LogPath()), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		closer = f
	}

	if invalidLevel {
		log.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
	}
	return log, closer, nil
}

// Discard is a logger for callers that do not care about output.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
