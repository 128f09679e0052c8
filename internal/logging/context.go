package logging

import (
	"context"
)

// Standard field names shared by every layer.
const (
	FieldLayer     = "layer"
	FieldUseCase   = "usecase"
	FieldAdapter   = "adapter"
	FieldAction    = "action"
	FieldComponent = "component"
	FieldEntityID  = "entity_id"
	FieldImage     = "image"
	FieldRef       = "ref"
	FieldGoal      = "goal"
	FieldCount     = "count"
	FieldDuration  = "duration"
	FieldEvent     = "event"
	FieldHandler   = "handler"
)

type ctxKey struct{}

// WithCtx stores log in ctx.
func WithCtx(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromCtx returns the logger stored in ctx, or a no-op logger.
func FromCtx(ctx context.Context) Logger {
	if ctx == nil {
		return Nop()
	}
	if log, ok := ctx.Value(ctxKey{}).(Logger); ok {
		return log
	}
	return Nop()
}

// CtxWithFields returns a context whose logger carries fields.
func CtxWithFields(ctx context.Context, fields map[string]any) context.Context {
	log := FromCtx(ctx)
	return WithCtx(ctx, Logger{Logger: log.With().Fields(fields).Logger()})
}

// CtxWithField is CtxWithFields for a single field.
func CtxWithField(ctx context.Context, key string, value any) context.Context {
	return CtxWithFields(ctx, map[string]any{key: value})
}
