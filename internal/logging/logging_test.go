package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/d21d3q/godmm/internal/config"
)

func TestNewLevelAndFormat(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v", logger.GetLevel())
	}
	logger.WithField("digits", "EB0AAD8F").Debug("display value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("json output: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "display value" || entry["digits"] != "EB0AAD8F" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestNewEnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "trace")
	logger, err := New(config.LoggingConfig{Level: "error"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if logger.GetLevel() != logrus.TraceLevel {
		t.Fatalf("level = %v", logger.GetLevel())
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	if _, err := New(config.LoggingConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected level error")
	}
	if _, err := New(config.LoggingConfig{Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected format error")
	}
}

func TestNewRotatingFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := filepath.Join(t.TempDir(), "godmm.log")
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{
		Level:  "info",
		Format: "text",
		File:   config.LumberjackConfig{Filename: path, MaxSizeMB: 1},
	}, &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("frame rejected")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "frame rejected") {
		t.Fatalf("file = %q", data)
	}
	if !strings.Contains(buf.String(), "frame rejected") {
		t.Fatalf("console = %q", buf.String())
	}
}
