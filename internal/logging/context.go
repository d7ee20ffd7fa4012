package logging

import (
	"context"
	"log/slog"

	"catalogage/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldActionID is the standardized key for the identifier of one operator action.
	FieldActionID = "action_id"
	// FieldEAN is the standardized key for the book code an action targets.
	FieldEAN = "ean"
	// FieldField is the standardized key for the edited book field.
	FieldField = "field"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint carries the next step an operator can take.
	FieldErrorHint = "error_hint"
	// FieldErrorKind carries the classification of a wrapped error.
	FieldErrorKind = "error_kind"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.ActionIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldActionID, id))
	}
	if ean, ok := services.EANFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldEAN, ean))
	}
	if field, ok := services.FieldFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldField, field))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
