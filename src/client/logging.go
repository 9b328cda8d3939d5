// Package main provides CLI logging configuration
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/agentcomparer/comparer-cli/src/client/paths"
)

var (
	logger     *slog.Logger
	loggerOnce sync.Once
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level    string // debug, info, warn, error (default: warn)
	File     string // Log file path (empty = {log_dir}/cli.log)
	MaxSize  int    // Max log file size in MB (default: 10)
	MaxFiles int    // Max log files to keep (default: 5)
}

// GetLogConfig returns logging configuration from viper
func GetLogConfig() LogConfig {
	return LogConfig{
		Level:    viper.GetString("logging.level"),
		File:     viper.GetString("logging.file"),
		MaxSize:  viper.GetInt("logging.max_size"),
		MaxFiles: viper.GetInt("logging.max_files"),
	}
}

// InitLogging initializes the CLI logger with rotation
func InitLogging() error {
	var initErr error
	loggerOnce.Do(func() {
		cfg := GetLogConfig()

		logPath := cfg.File
		if logPath == "" {
			logPath = paths.LogFile()
		}

		// Expand ~ to home directory
		if len(logPath) > 0 && logPath[0] == '~' {
			home, _ := os.UserHomeDir()
			logPath = filepath.Join(home, logPath[1:])
		}

		if err := paths.EnsureFile(logPath, 0600); err != nil {
			initErr = fmt.Errorf("create log dir: %w", err)
			return
		}

		maxSize := cfg.MaxSize
		if maxSize == 0 {
			maxSize = 10 // MB
		}
		maxFiles := cfg.MaxFiles
		if maxFiles == 0 {
			maxFiles = 5
		}

		rotatingWriter := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    maxSize, // MB
			MaxBackups: maxFiles,
			MaxAge:     30, // days
			Compress:   true,
		}

		var level slog.Level
		switch cfg.Level {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn", "":
			level = slog.LevelWarn // Default
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelWarn
		}

		handler := slog.NewJSONHandler(rotatingWriter, &slog.HandlerOptions{
			Level: level,
		})

		logger = slog.New(handler)
		slog.SetDefault(logger)
	})
	return initErr
}

// Logger returns the CLI logger
func Logger() *slog.Logger {
	if logger == nil {
		// Fallback to stderr if not initialized
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return logger
}
