package batch

import (
	"context"
	"fmt"
	"log/slog"

	"catalogage/internal/catalog"
	"catalogage/internal/logging"
	"catalogage/internal/services"
)

const component = "batch"

// Store is the subset of the record store used by bulk operations.
type Store interface {
	Update(ctx context.Context, ean string, patches ...catalog.Patch) (bool, error)
	Delete(ctx context.Context, ean string) (bool, error)
}

// Failure records one EAN whose write failed.
type Failure struct {
	EAN string `json:"ean"`
	Err error  `json:"-"`
}

// Result summarizes a bulk operation. Missing lists EANs that no longer had a
// record; they count as processed. Skipped lists EANs left untouched because
// an earlier write failed.
type Result struct {
	Requested int       `json:"requested"`
	Succeeded []string  `json:"succeeded"`
	Missing   []string  `json:"missing,omitempty"`
	Failures  []Failure `json:"failures,omitempty"`
	Skipped   []string  `json:"skipped,omitempty"`
}

// Failed returns the EANs of failed writes.
func (r Result) Failed() []string {
	out := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		out = append(out, f.EAN)
	}
	return out
}

// PartialBatchError reports a bulk operation where some writes failed.
type PartialBatchError struct {
	Operation string
	Result    Result
}

func (e *PartialBatchError) Error() string {
	first := ""
	if len(e.Result.Failures) > 0 && e.Result.Failures[0].Err != nil {
		first = ": " + e.Result.Failures[0].Err.Error()
	}
	return fmt.Sprintf("%s: %s: %d succeeded, %d failed, %d not attempted%s",
		services.ErrPartialBatch, e.Operation,
		len(e.Result.Succeeded)+len(e.Result.Missing), len(e.Result.Failures), len(e.Result.Skipped), first)
}

func (e *PartialBatchError) Unwrap() error {
	return services.ErrPartialBatch
}

// Engine applies bulk operations to the records in a Selection.
type Engine struct {
	store     Store
	selection Selection
	logger    *slog.Logger
}

// New constructs an Engine over store and selection.
func New(store Store, selection Selection, logger *slog.Logger) *Engine {
	return &Engine{
		store:     store,
		selection: selection,
		logger:    logging.NewComponentLogger(logger, component),
	}
}

// Selection exposes the engine's selection.
func (e *Engine) Selection() Selection {
	return e.selection
}

// ApplyBulk sets field to raw on every selected record. The raw value is in
// edit form; it is converted once and rejected before any write when it is
// not valid for field.
func (e *Engine) ApplyBulk(ctx context.Context, field catalog.Field, raw string) (Result, error) {
	patch, err := catalog.NewPatch(field, raw)
	if err != nil {
		return Result{}, err
	}
	ctx = services.WithField(ctx, field.String())
	return e.run(ctx, "apply bulk", func(ctx context.Context, ean string) (bool, error) {
		return e.store.Update(ctx, ean, patch)
	})
}

// DeleteSelected removes every selected record.
func (e *Engine) DeleteSelected(ctx context.Context) (Result, error) {
	return e.run(ctx, "delete selected", func(ctx context.Context, ean string) (bool, error) {
		return e.store.Delete(ctx, ean)
	})
}

func (e *Engine) run(ctx context.Context, operation string, write func(context.Context, string) (bool, error)) (Result, error) {
	eans := e.selection.EANs()
	result := Result{Requested: len(eans)}
	logger := logging.WithContext(ctx, e.logger)
	if len(eans) == 0 {
		logger.Debug("empty selection; nothing to do", logging.String("operation", operation))
		return result, nil
	}

	for idx, ean := range eans {
		err := ctx.Err()
		found := false
		if err == nil {
			found, err = write(services.WithEAN(ctx, ean), ean)
		}
		if err != nil {
			result.Failures = append(result.Failures, Failure{EAN: ean, Err: err})
			result.Skipped = append(result.Skipped, eans[idx+1:]...)
			logging.WarnWithContext(logger, "bulk operation stopped", "batch_item_failed",
				logging.String(logging.FieldEAN, ean),
				logging.String("operation", operation),
				logging.Int("not_attempted", len(result.Skipped)),
				logging.Error(err),
			)
			break
		}
		if found {
			result.Succeeded = append(result.Succeeded, ean)
		} else {
			result.Missing = append(result.Missing, ean)
		}
	}

	logger.Info("bulk operation finished",
		logging.String("operation", operation),
		logging.Int("requested", result.Requested),
		logging.Int("succeeded", len(result.Succeeded)),
		logging.Int("missing", len(result.Missing)),
		logging.Int("failed", len(result.Failures)),
		logging.Int("skipped", len(result.Skipped)),
	)

	if len(result.Failures) == 0 {
		e.selection.Clear()
		return result, nil
	}
	e.selection.Retain(append(result.Failed(), result.Skipped...))
	return result, &PartialBatchError{Operation: operation, Result: result}
}
