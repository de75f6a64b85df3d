package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// GormLogger writes GORM statements and messages to zap.
// Statement logs carry the request and trace IDs found in the context.
type GormLogger struct {
	logger   *zap.Logger
	level    gormlogger.LogLevel
	slowOver time.Duration
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement is logged as slow.
// Zero or negative disables slow statement warnings.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) {
		l.slowOver = threshold
	}
}

// NewGormLogger creates a GORM logger backed by zap
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	l := &GormLogger{
		logger:   zapLogger.Named("gorm"),
		level:    level,
		slowOver: defaultSlowQuery,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LogMode returns a copy logging at level
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.logger.Info(fmt.Sprintf(msg, data...), requestFields(ctx)...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.Warn(fmt.Sprintf(msg, data...), requestFields(ctx)...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.logger.Error(fmt.Sprintf(msg, data...), requestFields(ctx)...)
	}
}

// Trace logs one executed statement. Not-found lookups are expected by the
// repositories and never logged; duplicate keys surface to clients as conflicts
// and are only logged at debug.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	statement := func() []zap.Field {
		sql, rows := fc()
		return append(requestFields(ctx),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed))
	}

	switch {
	case err != nil && l.level >= gormlogger.Error:
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case errors.Is(err, gorm.ErrDuplicatedKey):
			l.logger.Debug("SQL conflict", append(statement(), zap.Error(err))...)
		default:
			l.logger.Error("SQL error", append(statement(), zap.Error(err))...)
		}

	case l.slowOver > 0 && elapsed > l.slowOver && l.level >= gormlogger.Warn:
		l.logger.Warn("Slow SQL", append(statement(), zap.Duration("threshold", l.slowOver))...)

	case l.level >= gormlogger.Info:
		l.logger.Debug("SQL", statement()...)
	}
}

func requestFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 5)
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}
	return fields
}

// MapGormLogLevel maps the application log level to a GORM log level.
// Only debug logging shows every statement.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
