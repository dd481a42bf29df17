// Package log is the structured logging layer of scistat.
//
// The library logs through the Logger interface; the default backend is
// zerolog (zerolog.go), and SetupLogger wires the same attribute keys into
// log/slog for programs. Keys and values shared by stats, linear and
// preprocessing live in attributes.go.
//
//	logger := log.GetLoggerWithName("linear").With(log.ModelNameKey, "LinearRegression")
//	logger.Debug("fit completed",
//	    log.OperationKey, log.OperationFitMultiple,
//	    log.SamplesKey, 1000,
//	    log.RankKey, 6,
//	)
package log

import (
	"context"
	"log/slog"
)

// Logger takes a message followed by alternating key/value pairs, as slog does.
// A leading error value in fields becomes the record's error.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled は expensive な属性（行列の要約など）を組み立てる前の判定に使う
	Enabled(ctx context.Context, level Level) bool
}

// Level is slog's level type, so SetupLogger and the zerolog backend
// share one scale.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// LoggerProvider hands out loggers that share one destination and level.
type LoggerProvider interface {
	GetLogger() Logger
	// GetLoggerWithName tags the logger with ComponentKey=name.
	GetLoggerWithName(name string) Logger
	SetLevel(level Level)
}
