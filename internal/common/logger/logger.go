package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	service string
	sl      *slog.Logger
}

var level = new(slog.LevelVar)

// SetLevel accepts debug|info|warn|error; anything else means info.
func SetLevel(s string) {
	switch strings.ToLower(s) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

func New(service string) *Logger { return NewWithWriter(service, os.Stdout) }

func NewWithWriter(service string, w io.Writer) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				a.Key = "timestamp"
			case slog.MessageKey:
				a.Key = "message"
			}
			return a
		},
	})
	sl := slog.New(h).With("service", service, "hostname", hostname())
	return &Logger{service: service, sl: sl}
}

func (l *Logger) log(ctx context.Context, lvl slog.Level, action string, fields map[string]any, err error) {
	args := append([]any{"action", action, "request_id", RequestID(ctx)}, attrs(fields)...)
	if err != nil {
		args = append(args, slog.Group("error", "msg", err.Error(), "stack", fmt.Sprintf("%T", err)))
	}
	l.sl.Log(ctx, lvl, action, args...)
}

func (l *Logger) Info(action string, fields map[string]any)  { l.log(context.Background(), slog.LevelInfo, action, fields, nil) }
func (l *Logger) Debug(action string, fields map[string]any) { l.log(context.Background(), slog.LevelDebug, action, fields, nil) }
func (l *Logger) Warn(action string, fields map[string]any)  { l.log(context.Background(), slog.LevelWarn, action, fields, nil) }
func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log(context.Background(), slog.LevelError, action, fields, err)
}

// InfoCtx and ErrorCtx pick up the request id stored by the HTTP middleware.
func (l *Logger) InfoCtx(ctx context.Context, action string, fields map[string]any) {
	l.log(ctx, slog.LevelInfo, action, fields, nil)
}
func (l *Logger) ErrorCtx(ctx context.Context, action string, err error, fields map[string]any) {
	l.log(ctx, slog.LevelError, action, fields, err)
}

type ctxKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func attrs(fields map[string]any) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}

func hostname() string { h, _ := os.Hostname(); return h }
