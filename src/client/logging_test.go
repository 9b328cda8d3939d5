package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// Tests for GetLogConfig

func TestGetLogConfig(t *testing.T) {
	viper.Reset()
	viper.Set("logging.level", "debug")
	viper.Set("logging.file", "/tmp/test.log")
	viper.Set("logging.max_size", 20)
	viper.Set("logging.max_files", 3)
	defer viper.Reset()

	cfg := GetLogConfig()
	if cfg.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Level)
	}
	if cfg.File != "/tmp/test.log" {
		t.Errorf("File = %q", cfg.File)
	}
	if cfg.MaxSize != 20 {
		t.Errorf("MaxSize = %d, want 20", cfg.MaxSize)
	}
	if cfg.MaxFiles != 3 {
		t.Errorf("MaxFiles = %d, want 3", cfg.MaxFiles)
	}
}

func TestGetLogConfigDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg := GetLogConfig()
	if cfg.Level != "" {
		t.Errorf("Level = %q, want empty (warn applied at init)", cfg.Level)
	}
	if cfg.MaxSize != 0 {
		t.Errorf("MaxSize = %d, want 0 (default applied at init)", cfg.MaxSize)
	}
}

// Tests for InitLogging

func TestInitLogging(t *testing.T) {
	viper.Reset()
	logPath := filepath.Join(t.TempDir(), "logs", "cli.log")
	viper.Set("logging.file", logPath)
	viper.Set("logging.level", "info")
	defer viper.Reset()

	if err := InitLogging(); err != nil {
		t.Fatalf("InitLogging() error = %v", err)
	}

	log := Logger()
	if log == nil {
		t.Fatal("Logger() returned nil after init")
	}

	log.Error("test entry", "key", "value")

	// loggerOnce means a second call is a no-op, not an error
	if err := InitLogging(); err != nil {
		t.Errorf("repeat InitLogging() error = %v", err)
	}

	// lumberjack creates the file on first write; only check when this
	// process was the one that initialized the logger
	if data, err := os.ReadFile(logPath); err == nil {
		if !strings.Contains(string(data), "test entry") {
			t.Errorf("log file should contain the entry, got %q", data)
		}
	}
}

// Tests for Logger

func TestLoggerNeverNil(t *testing.T) {
	if Logger() == nil {
		t.Error("Logger() should always return a usable logger")
	}
}
