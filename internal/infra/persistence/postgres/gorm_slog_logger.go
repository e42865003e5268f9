package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"waitline/config"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Queue reads run on every guest poll; anything slower than this is worth a
// warning.
const slowQueryThreshold = 200 * time.Millisecond

// queryLogger routes GORM's logging through the service slog logger so query
// logs share handler, level, and request attributes with everything else.
type queryLogger struct {
	logger *slog.Logger
	level  logger.LogLevel
}

func newQueryLogger(baseLogger *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &queryLogger{logger: baseLogger, level: level}
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &queryLogger{logger: l.logger, level: level}
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, logger.Info, msg, args...)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, logger.Warn, msg, args...)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, logger.Error, msg, args...)
}

func (l *queryLogger) log(ctx context.Context, slogLevel slog.Level, min logger.LogLevel, msg string, args ...any) {
	if l.logger == nil || l.level < min {
		return
	}

	l.logger.Log(ctx, slogLevel, "gorm", slog.String("message", fmt.Sprintf(msg, args...)))
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.logger == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		// Not-found is an expected answer for token and slug lookups, the
		// repositories translate it to sentinel errors themselves.
		l.trace(ctx, slog.LevelError, "query failed", sqlAndRowsFn, elapsed, slog.String("error", err.Error()))
	case elapsed > slowQueryThreshold && l.level >= logger.Warn:
		l.trace(ctx, slog.LevelWarn, "slow query", sqlAndRowsFn, elapsed, slog.Duration("threshold", slowQueryThreshold))
	case l.level >= logger.Info:
		l.trace(ctx, slog.LevelInfo, "query", sqlAndRowsFn, elapsed)
	}
}

func (l *queryLogger) trace(ctx context.Context, level slog.Level, msg string, sqlAndRowsFn func() (string, int64), elapsed time.Duration, extra ...slog.Attr) {
	sql, rows := sqlAndRowsFn()
	attrs := append([]slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}, extra...)

	l.logger.LogAttrs(ctx, level, msg, attrs...)
}
