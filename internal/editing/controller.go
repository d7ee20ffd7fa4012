package editing

import (
	"context"
	"errors"
	"log/slog"

	"catalogage/internal/catalog"
	"catalogage/internal/logging"
	"catalogage/internal/services"
)

const component = "editing"

// State is the controller mode.
type State int

const (
	StateViewing State = iota
	StateEditing
)

func (s State) String() string {
	if s == StateEditing {
		return "editing"
	}
	return "viewing"
}

// SwitchPolicy decides the fate of a pending edit when another cell opens.
type SwitchPolicy int

const (
	// SwitchCommit commits the pending edit before opening the new cell.
	SwitchCommit SwitchPolicy = iota
	// SwitchCancel discards the pending edit.
	SwitchCancel
)

// ErrNotEditing is returned by Stage when no cell is open.
var ErrNotEditing = errors.New("no cell is being edited")

// Source resolves the current record for an EAN.
type Source interface {
	Book(ean string) (catalog.Book, bool)
}

// Writer applies partial updates.
type Writer interface {
	Update(ctx context.Context, ean string, patches ...catalog.Patch) (bool, error)
}

// Cursor identifies the open cell and its staged value.
type Cursor struct {
	EAN    string        `json:"ean"`
	Field  catalog.Field `json:"-"`
	Staged string        `json:"staged"`
}

// Controller owns the edit cursor. It is not safe for concurrent use; the
// workspace serializes access.
type Controller struct {
	source Source
	writer Writer
	policy SwitchPolicy
	logger *slog.Logger
	state  State
	cursor Cursor
}

// Option configures a Controller.
type Option func(*Controller)

// WithSwitchPolicy sets the policy applied when Begin targets another cell.
func WithSwitchPolicy(policy SwitchPolicy) Option {
	return func(c *Controller) {
		c.policy = policy
	}
}

// New constructs a Controller in the Viewing state.
func New(source Source, writer Writer, logger *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		source: source,
		writer: writer,
		policy: SwitchCommit,
		logger: logging.NewComponentLogger(logger, component),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current mode.
func (c *Controller) State() State {
	return c.state
}

// Cursor returns the open cell, if any.
func (c *Controller) Cursor() (Cursor, bool) {
	if c.state != StateEditing {
		return Cursor{}, false
	}
	return c.cursor, true
}

// Begin opens the cell (ean, field). When another cell is open the switch
// policy runs first; wrote reports whether that committed a change. If the
// pending commit fails, the previous cell stays open and the error is
// returned.
func (c *Controller) Begin(ctx context.Context, ean string, field catalog.Field) (wrote bool, err error) {
	if !isEditable(field) {
		return false, services.Wrap(services.ErrValidation, component, "begin", "field "+field.String()+" is not editable", nil)
	}
	book, ok := c.source.Book(ean)
	if !ok {
		return false, services.Wrap(services.ErrNotFound, component, "begin", ean, nil)
	}

	if c.state == StateEditing {
		if c.cursor.EAN == ean && c.cursor.Field == field {
			return false, nil
		}
		switch c.policy {
		case SwitchCancel:
			c.logger.Debug("pending edit discarded on switch",
				logging.String(logging.FieldEAN, c.cursor.EAN),
				logging.String(logging.FieldField, c.cursor.Field.String()),
			)
			c.Cancel()
		default:
			wrote, err = c.Commit(ctx)
			if err != nil {
				return false, err
			}
		}
	}

	c.state = StateEditing
	c.cursor = Cursor{EAN: ean, Field: field, Staged: book.EditValue(field)}
	return wrote, nil
}

// Stage replaces the edit buffer.
func (c *Controller) Stage(value string) error {
	if c.state != StateEditing {
		return services.Wrap(services.ErrValidation, component, "stage", "", ErrNotEditing)
	}
	c.cursor.Staged = value
	return nil
}

// Commit writes the staged value when it differs from the stored one and
// returns to Viewing. It reports whether a write happened. A staged genre or
// statut that is not a known value is a validation error and the cell stays
// open, as it does when the store write fails.
func (c *Controller) Commit(ctx context.Context) (bool, error) {
	if c.state != StateEditing {
		return false, nil
	}
	cursor := c.cursor
	ctx = services.WithField(services.WithEAN(ctx, cursor.EAN), cursor.Field.String())
	logger := logging.WithContext(ctx, c.logger)

	patch, err := catalog.NewPatch(cursor.Field, cursor.Staged)
	if err != nil {
		logger.Info("staged value rejected", logging.String("value", cursor.Staged), logging.Error(err))
		return false, err
	}

	current, ok := c.source.Book(cursor.EAN)
	if !ok {
		logger.Info("edited record no longer exists; edit dropped")
		c.reset()
		return false, nil
	}
	if current.Value(cursor.Field) == patch.Value() {
		c.reset()
		return false, nil
	}

	updated, err := c.writer.Update(ctx, cursor.EAN, patch)
	if err != nil {
		logging.WarnWithContext(logger, "edit commit failed", "edit_commit_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "retry the commit or cancel the edit"),
		)
		return false, err
	}
	c.reset()
	if !updated {
		logger.Info("edited record vanished before commit")
		return false, nil
	}
	logger.Info("field updated", logging.String("value", patch.Value()))
	return true, nil
}

// Cancel discards the staged value and returns to Viewing.
func (c *Controller) Cancel() {
	c.reset()
}

// Forget closes the cursor if it points at ean. Used after deletions.
func (c *Controller) Forget(ean string) {
	if c.state == StateEditing && c.cursor.EAN == ean {
		c.reset()
	}
}

func (c *Controller) reset() {
	c.state = StateViewing
	c.cursor = Cursor{}
}

func isEditable(field catalog.Field) bool {
	for _, f := range catalog.EditableFields() {
		if f == field {
			return true
		}
	}
	return false
}
