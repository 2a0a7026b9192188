// Package logger is the application wide slog logger.
//
// nolint: sloglint
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// DefaultLevel is the level of the global logger before Init is called.
const DefaultLevel = slog.LevelDebug

var (
	lvl = new(slog.LevelVar)

	// destination of every handler created by Init
	output io.Writer = os.Stdout

	errUnsupportedOutput = errors.New("unsupported logger output")

	logger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level:       lvl,
		ReplaceAttr: levelAttrReplacer,
	}))
)

func init() {
	lvl.Set(DefaultLevel)
	slog.SetDefault(logger)
	// records written through the standard log package are debug output
	slog.SetLogLoggerLevel(slog.LevelDebug)
}

// With returns the global logger with args added to every record.
func With(args ...any) *slog.Logger {
	return logger.With(args...)
}

func Debug(msg string, args ...any) {
	log(context.Background(), logger, slog.LevelDebug, msg, args...)
}

func Info(msg string, args ...any) {
	log(context.Background(), logger, slog.LevelInfo, msg, args...)
}

func Warn(msg string, args ...any) {
	log(context.Background(), logger, slog.LevelWarn, msg, args...)
}

func Error(msg string, args ...any) {
	log(context.Background(), logger, slog.LevelError, msg, args...)
}

// Panic logs at [LevelPanic], then panics with msg.
func Panic(msg string, args ...any) {
	log(context.Background(), logger, LevelPanic, msg, args...)
	panic(msg)
}

// Log logs at any level, including the ones above error.
func Log(level slog.Level, msg string, args ...any) {
	log(context.Background(), logger, level, msg, args...)
}

// LogAttrs logs attrs with the logger carried by ctx.
func LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	logAttrs(ctx, FromContext(ctx), level, msg, attrs...)
}

// Config is the logger configuration.
type Config struct {
	// Output is the logger output format: text (default) or json.
	Output string `mapstructure:"output"`

	// Debug lowers the level to debug and adds sources and error stack traces.
	Debug bool `mapstructure:"debug"`

	// Level overrides the minimum reporting level: debug, info, warn or error.
	// Empty keeps the level implied by Debug.
	Level string `mapstructure:"level"`
}

var defaultAttrReplacers = []func([]string, slog.Attr) slog.Attr{
	levelAttrReplacer,
	errorAttrReplacer,
}

// SetOutput changes where loggers created by the next Init call write to.
func SetOutput(w io.Writer) {
	output = w
}

// Init initializes global logger and slog logger with given configuration.
func Init(cfg Config) error {
	var (
		handler slog.Handler
		options = &slog.HandlerOptions{
			AddSource:   false,
			Level:       lvl,
			ReplaceAttr: attrReplacerChain(defaultAttrReplacers...),
		}
		middlewares []middleware
	)

	lvl.Set(slog.LevelInfo)
	if cfg.Debug {
		lvl.Set(slog.LevelDebug)
		options.AddSource = true
		middlewares = append(middlewares, middlewareErrorStackTrace())
	}

	if cfg.Level != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return errors.Wrapf(err, "invalid logger level %q", cfg.Level)
		}
		lvl.Set(level)
	}

	switch strings.ToLower(cfg.Output) {
	case "json":
		options.ReplaceAttr = attrReplacerChain(append(defaultAttrReplacers, durationToMsAttrReplacer)...)
		handler = slog.NewJSONHandler(output, options)
	case "text", "":
		handler = slog.NewTextHandler(output, options)
	default:
		return errors.Wrapf(errUnsupportedOutput, "%q", cfg.Output)
	}

	logger = slog.New(newMiddlewareHandler(handler, middlewares...))
	slog.SetDefault(logger)
	return nil
}

// attrReplacerChain returns a function that applies a chain of replacers to an attribute.
func attrReplacerChain(replacers ...func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, attr slog.Attr) slog.Attr {
		for _, replacer := range replacers {
			attr = replacer(groups, attr)
		}
		return attr
	}
}

// log and logAttrs must be called directly by an exported function:
// the caller pc is taken at a fixed depth.
func log(ctx context.Context, l *slog.Logger, level slog.Level, msg string, args ...any) {
	if r, ok := newRecord(ctx, l, level, msg); ok {
		r.Add(args...)
		_ = l.Handler().Handle(ctx, r)
	}
}

func logAttrs(ctx context.Context, l *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) {
	if r, ok := newRecord(ctx, l, level, msg); ok {
		r.AddAttrs(attrs...)
		_ = l.Handler().Handle(ctx, r)
	}
}

func newRecord(ctx context.Context, l *slog.Logger, level slog.Level, msg string) (slog.Record, bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.Enabled(ctx, level) {
		return slog.Record{}, false
	}
	var pcs [1]uintptr
	// skip [runtime.Callers, newRecord, log, exported caller]
	runtime.Callers(4, pcs[:])
	return slog.NewRecord(time.Now(), level, msg, pcs[0]), true
}
