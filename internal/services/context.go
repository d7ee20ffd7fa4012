package services

import "context"

type contextKey string

const (
	actionIDKey contextKey = "action_id"
	eanKey      contextKey = "ean"
	fieldKey    contextKey = "field"
)

// WithActionID annotates context with the identifier of the user action being
// processed.
func WithActionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, actionIDKey, id)
}

// ActionIDFromContext extracts the action identifier if present.
func ActionIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(actionIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithEAN annotates context with the book EAN an action targets.
func WithEAN(ctx context.Context, ean string) context.Context {
	if ean == "" {
		return ctx
	}
	return context.WithValue(ctx, eanKey, ean)
}

// EANFromContext returns the EAN if present.
func EANFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(eanKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithField annotates context with the edited field name.
func WithField(ctx context.Context, field string) context.Context {
	if field == "" {
		return ctx
	}
	return context.WithValue(ctx, fieldKey, field)
}

// FieldFromContext returns the edited field name if present.
func FieldFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(fieldKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
