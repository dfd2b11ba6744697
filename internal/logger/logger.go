package logger

// Package logger builds the application logger: JSON file output with
// rotation plus a console core for interactive runs.

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation limits
const (
	MaxSizeMB  = 10
	MaxBackups = 3
	MaxAgeDays = 14
)

// LogFileName is created inside the application folder.
const LogFileName = "keycl.log"

// Config controls logger construction.
type Config struct {
	Level zapcore.Level
	Dir   string // directory for the rotated log file; empty disables file output
}

// New builds the application logger. The returned logger is passed to
// components explicitly; there is no package-level global.
func New(cfg Config) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			cfg.Level,
		),
	}

	if cfg.Dir != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, LogFileName),
			MaxSize:    MaxSizeMB,
			MaxBackups: MaxBackups,
			MaxAge:     MaxAgeDays,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(fileWriter),
			cfg.Level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
