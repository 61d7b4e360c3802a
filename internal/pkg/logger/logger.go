package logger

import (
	"fmt"
	"log/slog"
	"strings"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hub_balance/internal/app/port"
)

// Factory hands out named loggers. Each name may carry its own level;
// unnamed loggers use the default level.
type Factory struct {
	base *zap.Logger
}

// NewFactory builds a production (JSON) or development (console) zap logger.
// overrides maps logger names to level strings.
func NewFactory(level string, overrides map[string]string, development bool) (*Factory, error) {
	defaultLevel, levels, minLevel, err := parseLevels(level, overrides)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	// core stays open for the most verbose named logger
	cfg.Level = zap.NewAtomicLevelAt(minLevel)

	base, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}

	return newFactory(base.Core(), defaultLevel, levels, cfg.Development), nil
}

// NewFactoryWithCore builds a factory over an existing core. The core must be
// enabled for the lowest level used.
func NewFactoryWithCore(core zapcore.Core, level string, overrides map[string]string) (*Factory, error) {
	defaultLevel, levels, _, err := parseLevels(level, overrides)
	if err != nil {
		return nil, err
	}
	return newFactory(core, defaultLevel, levels, false), nil
}

// Named returns a zap logger for name. Levels are resolved per entry from the
// full logger name, so loggers derived with further Named calls keep their overrides.
func (f *Factory) Named(name string) *zap.Logger {
	if name == "" {
		return f.base
	}
	return f.base.Named(name)
}

// Slog returns a log/slog logger writing through the named zap logger.
func (f *Factory) Slog(name string) *slog.Logger {
	handler := slogzap.Option{
		Level:  slog.LevelDebug, // zap filters
		Logger: f.Named(name),
	}.NewZapHandler()
	return slog.New(handler)
}

// Port returns a port.Logger for name.
func (f *Factory) Port(name string) port.Logger {
	return NewSlogAdapter(f.Slog(name))
}

// Sync flushes buffered entries.
func (f *Factory) Sync() {
	_ = f.base.Sync()
}

func newFactory(core zapcore.Core, level zapcore.Level, levels map[string]zapcore.Level, development bool) *Factory {
	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}
	lc := &levelCore{Core: core, levels: levels, level: level}
	return &Factory{base: zap.New(lc, opts...)}
}

// levelCore filters entries by the level configured for their logger name.
// "Connector.Dial" falls back to "Connector", then to the default level.
type levelCore struct {
	zapcore.Core
	levels map[string]zapcore.Level
	level  zapcore.Level
}

func (c *levelCore) levelFor(name string) zapcore.Level {
	for name != "" {
		if lvl, ok := c.levels[name]; ok {
			return lvl
		}
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return c.level
}

func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), levels: c.levels, level: c.level}
}

func (c *levelCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if ent.Level < c.levelFor(ent.LoggerName) {
		return ce
	}
	return c.Core.Check(ent, ce)
}

// ParseLevel maps a level string to a zap level. Unknown strings are an error.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

func parseLevels(level string, overrides map[string]string) (zapcore.Level, map[string]zapcore.Level, zapcore.Level, error) {
	defaultLevel, err := ParseLevel(level)
	if err != nil {
		return 0, nil, 0, err
	}

	minLevel := defaultLevel
	levels := make(map[string]zapcore.Level, len(overrides))
	for name, s := range overrides {
		lvl, err := ParseLevel(s)
		if err != nil {
			return 0, nil, 0, fmt.Errorf("logger %s: %w", name, err)
		}
		levels[name] = lvl
		if lvl < minLevel {
			minLevel = lvl
		}
	}
	return defaultLevel, levels, minLevel, nil
}
