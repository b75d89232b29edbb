// Package observability defines the logging and tracing hooks used by the
// merge driver, and the zap-backed implementation the CLI wires in.
package observability

import (
	"context"
	"time"
)

// Logger is the structured logger the merge driver writes to. NewZapLogger
// adapts a *zap.Logger; NopLogger discards everything.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type fieldKind uint8

const (
	kindString fieldKind = iota
	kindInt
	kindDuration
	kindError
)

// Field is one key/value pair attached to a log entry.
type Field struct {
	Key  string
	kind fieldKind
	str  string
	num  int64
	err  error
}

func String(key, value string) Field      { return Field{Key: key, kind: kindString, str: value} }
func Int(key string, value int) Field     { return Field{Key: key, kind: kindInt, num: int64(value)} }
func Int64(key string, value int64) Field { return Field{Key: key, kind: kindInt, num: value} }
func Error(key string, err error) Field   { return Field{Key: key, kind: kindError, err: err} }

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, kind: kindDuration, num: int64(value)}
}

// Value returns the field's payload as its natural Go type.
func (f Field) Value() any {
	switch f.kind {
	case kindInt:
		return f.num
	case kindDuration:
		return time.Duration(f.num)
	case kindError:
		return f.err
	default:
		return f.str
	}
}

// NopLogger discards all entries.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// Tracer opens a span around each merge stage (merge, append, write).
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}

// Span is finished exactly once; SetError records why the stage failed.
type Span interface {
	SetTag(key string, value any)
	SetError(err error)
	Finish()
}

// NopTracer returns a tracer whose spans record nothing and whose
// StartSpan hands back the caller's context unchanged.
func NopTracer() Tracer { return nopTracer{} }

type nopTracer struct{}

func (nopTracer) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) SetTag(string, any) {}
func (nopSpan) SetError(error)     {}
func (nopSpan) Finish()            {}

// Metric names, also used as structured log keys.
const (
	MetricMergeTime   = "pdf.merge.duration"
	MetricAppendTime  = "pdf.append.duration"
	MetricWriteTime   = "pdf.write.duration"
	MetricPageCount   = "pdf.pages.count"
	MetricInputCount  = "pdf.inputs.count"
	MetricOutputBytes = "pdf.output.bytes"
)

// Common field keys.
const (
	FieldPath   = "path"
	FieldOutput = "output"
	FieldEngine = "engine"
	FieldIndex  = "index"
	FieldAction = "action"
	FieldError  = "error"
)
