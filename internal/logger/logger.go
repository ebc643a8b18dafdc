package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
	Component     string
}

// Logger wraps zerolog to provide key/value logging with correlation ids.
// A nil *Logger is valid and discards everything.
type Logger struct {
	base zerolog.Logger
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	return &Logger{base: ctx.Logger()}, nil
}

// Nop returns a logger that discards all output.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// With returns a derived logger that always writes the supplied key/value pairs.
func (l *Logger) With(fields ...any) *Logger {
	if l == nil {
		return nil
	}
	builder := l.base.With()
	for i := 0; i+1 < len(fields); i += 2 {
		builder = builder.Interface(fmt.Sprint(fields[i]), fields[i+1])
	}
	return &Logger{base: builder.Logger()}
}

// Debug writes a debug-level entry if enabled.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...any) {
	l.write(ctx, zerolog.DebugLevel, msg, fields)
}

// Info writes an informational entry.
func (l *Logger) Info(ctx context.Context, msg string, fields ...any) {
	l.write(ctx, zerolog.InfoLevel, msg, fields)
}

// Warn writes a warning entry.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...any) {
	l.write(ctx, zerolog.WarnLevel, msg, fields)
}

// Error writes an error entry. An "error" field holding an error value is
// rendered through zerolog's error marshaller.
func (l *Logger) Error(ctx context.Context, msg string, fields ...any) {
	l.write(ctx, zerolog.ErrorLevel, msg, fields)
}

func (l *Logger) write(ctx context.Context, level zerolog.Level, msg string, fields []any) {
	if l == nil {
		return
	}
	event := l.base.WithLevel(level)
	if event == nil {
		return
	}
	if id := CorrelationID(ctx); id != "" {
		event = event.Str("correlation_id", id)
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		if err, ok := fields[i+1].(error); ok {
			event = event.AnErr(key, err)
			continue
		}
		event = event.Interface(key, fields[i+1])
	}
	if len(fields)%2 == 1 {
		event = event.Interface("extra", fields[len(fields)-1])
	}
	event.Msg(msg)
}

type correlationIDKey struct{}

// WithCorrelationID attaches the provided correlation ID to the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID extracts a correlation ID from context, or "" when absent.
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// NewCorrelationID produces a new UUIDv4 string. CLI entry points and HTTP
// handlers call it once per command or request.
func NewCorrelationID() string {
	return uuid.NewString()
}
