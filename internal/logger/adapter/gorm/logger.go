// Package gorm routes gorm's statement and driver logs into zerolog.
package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SlowThreshold marks statements slower than this as warnings.
const SlowThreshold = 200 * time.Millisecond

// Logger implements gorm's logger.Interface on top of a zerolog.Logger.
type Logger struct {
	log      zerolog.Logger
	level    gormlogger.LogLevel
	traceAll bool
}

// New creates the adapter. With traceAll every statement is logged at trace level,
// otherwise only failing and slow ones are.
func New(l zerolog.Logger, traceAll bool) *Logger {
	return &Logger{log: l, level: gormlogger.Warn, traceAll: traceAll}
}

// LogMode implements logger.Interface.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level

	return &cp
}

// Info implements logger.Interface.
func (l *Logger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.log.Info().Msg(fmt.Sprintf(msg, args...))
	}
}

// Warn implements logger.Interface.
func (l *Logger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Warn().Msg(fmt.Sprintf(msg, args...))
	}
}

// Error implements logger.Interface.
func (l *Logger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.log.Error().Msg(fmt.Sprintf(msg, args...))
	}
}

// Trace implements logger.Interface.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var event *zerolog.Event

	switch {
	// a missing row is an expected outcome, the store maps it to a not found error
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		event = l.log.Error().Err(err)
	case elapsed > SlowThreshold && l.level >= gormlogger.Warn:
		event = l.log.Warn().Bool("slow", true)
	case l.traceAll:
		event = l.log.Trace()
	default:
		return
	}

	sql, rows := fc()

	event.
		Str("sql", sql).
		Int64("rows", rows).
		Dur("elapsed", elapsed).
		Msg("gorm")
}
