package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slogLogger 只输出错误日志 sql详情已经在trace中集成
type slogLogger struct {
	level logger.LogLevel
}

func newLogger() logger.Interface {
	return &slogLogger{level: logger.Error}
}

func (l *slogLogger) LogMode(lvl logger.LogLevel) logger.Interface {
	return &slogLogger{level: lvl}
}

func (l *slogLogger) Info(ctx context.Context, s string, v ...interface{}) {
	if l.level >= logger.Info {
		slog.InfoContext(ctx, fmt.Sprintf(s, v...), slog.String("type", "gorm"))
	}
}

func (l *slogLogger) Warn(ctx context.Context, s string, v ...interface{}) {
	if l.level >= logger.Warn {
		slog.WarnContext(ctx, fmt.Sprintf(s, v...), slog.String("type", "gorm"))
	}
}

func (l *slogLogger) Error(ctx context.Context, s string, v ...interface{}) {
	if l.level >= logger.Error {
		slog.ErrorContext(ctx, fmt.Sprintf(s, v...), slog.String("type", "gorm"))
	}
}

func (l *slogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if err == nil || l.level < logger.Error || errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	sql, rows := fc()
	slog.DebugContext(ctx, "gorm.query failed",
		slog.String("type", "gorm"),
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("latency", time.Since(begin)),
		slog.String("err", err.Error()),
	)
}
