package log

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZlLogger hiện thực Logger bằng zerolog với console writer
type ZlLogger struct {
	zl zerolog.Logger
}

func NewZlLogger(service string) (*ZlLogger, error) {
	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zl := zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Str("service", service).Logger()
	return &ZlLogger{zl: zl}, nil
}

func (l *ZlLogger) Info(ctx context.Context, format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

func (l *ZlLogger) Warn(ctx context.Context, format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *ZlLogger) Error(ctx context.Context, format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

func (l *ZlLogger) Debug(ctx context.Context, format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *ZlLogger) Critical(ctx context.Context, format string, args ...interface{}) {
	l.zl.WithLevel(zerolog.FatalLevel).Msgf(format, args...)
}
