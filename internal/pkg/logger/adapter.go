package logger

import (
	"log/slog"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"

	"hub_balance/internal/app/port"
)

// slogAdapter implements port.Logger on top of a slog logger.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter wraps l. A nil logger falls back to slog.Default().
func NewSlogAdapter(l *slog.Logger) port.Logger {
	if l == nil {
		l = slog.Default()
	}
	return &slogAdapter{l: l}
}

// Nop returns a logger that discards everything.
func Nop() port.Logger {
	return NewSlogAdapter(slog.New(slogzap.Option{Logger: zap.NewNop()}.NewZapHandler()))
}

func (a *slogAdapter) Info(msg string, args ...any) {
	a.l.Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	a.l.Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	a.l.Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	a.l.Error(msg, args...)
}

func (a *slogAdapter) With(args ...any) port.Logger {
	return &slogAdapter{l: a.l.With(args...)}
}
