package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/d21d3q/godmm/internal/config"
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "GODMM_LOG_LEVEL"

// New builds a logrus logger writing to console and, when a filename is
// configured, to a rotating file as well. A nil console means stderr.
func New(cfg config.LoggingConfig, console io.Writer) (*logrus.Logger, error) {
	if console == nil {
		console = os.Stderr
	}
	raw := cfg.Level
	if env := strings.TrimSpace(os.Getenv(EnvLogLevel)); env != "" {
		raw = env
	}
	level, err := parseLevel(raw)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}

	out := console
	if cfg.File.Filename != "" {
		out = io.MultiWriter(console, &lumberjack.Logger{
			Filename:   cfg.File.Filename,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		})
	}
	logger.SetOutput(out)
	return logger, nil
}

func parseLevel(raw string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return logrus.InfoLevel, nil
	case "diagnostics":
		return logrus.TraceLevel, nil
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}
