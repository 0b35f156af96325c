package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across xmldoc.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldStrategy  = "strategy"

	// Sources
	FieldFile  = "file"
	FieldLine  = "line"
	FieldRoot  = "root"
	FieldCount = "count"

	// Declarations
	FieldKind        = "kind"
	FieldDeclaration = "declaration"
	FieldBaseTypes   = "base_types"
	FieldLines       = "lines"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Configuration
	FieldConfig = "config"
	FieldPolicy = "policy"
)

type contextKey string

const (
	fileKey      contextKey = "file"
	componentKey contextKey = "component"
)

// WithFile adds the source file being documented to the context
func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, fileKey, path)
}

// WithComponent adds a component name to the context
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts structured logging fields from context
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if path, ok := ctx.Value(fileKey).(string); ok && path != "" {
		fields = append(fields, FieldFile, path)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// FromContext returns base enriched with the fields carried by ctx.
// A nil base falls back to the global logger.
func FromContext(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if base == nil {
		base = Logger
	}
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
