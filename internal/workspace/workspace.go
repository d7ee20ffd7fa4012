package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"catalogage/internal/batch"
	"catalogage/internal/catalog"
	"catalogage/internal/config"
	"catalogage/internal/editing"
	"catalogage/internal/enrichment"
	"catalogage/internal/importer"
	"catalogage/internal/logging"
	"catalogage/internal/services"
	"catalogage/internal/services/googlebooks"
	"catalogage/internal/store"
	"catalogage/internal/view"
)

const component = "workspace"

// ErrLocked is returned by Open when another process holds the workspace.
var ErrLocked = errors.New("catalog is open in another process")

// Store is the record store surface the workspace drives.
type Store interface {
	GetAll(ctx context.Context) ([]catalog.Book, error)
	Put(ctx context.Context, book catalog.Book) error
	Update(ctx context.Context, ean string, patches ...catalog.Patch) (bool, error)
	Delete(ctx context.Context, ean string) (bool, error)
}

// Lookup resolves a code into a candidate record.
type Lookup interface {
	Lookup(ctx context.Context, code string) (catalog.Book, error)
}

// Workspace serializes operator intents against one catalog.
type Workspace struct {
	mu sync.Mutex

	store     Store
	lookup    Lookup
	importer  *importer.Importer
	view      *view.Engine
	editor    *editing.Controller
	batch     *batch.Engine
	selection batch.Selection
	filters   view.Filters
	logger    *slog.Logger

	closers []func() error
}

type options struct {
	strictImport bool
	switchPolicy editing.SwitchPolicy
	selection    batch.Selection
}

// Option configures a Workspace.
type Option func(*options)

// WithStrictImport rejects import rows with unknown statut, genre or date.
func WithStrictImport(strict bool) Option {
	return func(o *options) {
		o.strictImport = strict
	}
}

// WithSwitchPolicy sets the edit cursor switch policy.
func WithSwitchPolicy(policy editing.SwitchPolicy) Option {
	return func(o *options) {
		o.switchPolicy = policy
	}
}

// WithSelection replaces the default shared selection.
func WithSelection(selection batch.Selection) Option {
	return func(o *options) {
		if selection != nil {
			o.selection = selection
		}
	}
}

// New wires a Workspace over explicit dependencies. The working set starts
// empty; call Reload to populate it.
func New(st Store, lookup Lookup, logger *slog.Logger, opts ...Option) *Workspace {
	o := options{switchPolicy: editing.SwitchCommit}
	for _, opt := range opts {
		opt(&o)
	}
	if o.selection == nil {
		o.selection = batch.NewSharedSelection()
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	engine := view.New(st, logger)
	return &Workspace{
		store:     st,
		lookup:    lookup,
		importer:  importer.New(st, logger, importer.WithStrict(o.strictImport)),
		view:      engine,
		editor:    editing.New(engine, st, logger, editing.WithSwitchPolicy(o.switchPolicy)),
		batch:     batch.New(st, o.selection, logger),
		selection: o.selection,
		logger:    logging.NewComponentLogger(logger, component),
	}
}

// Open acquires the workspace lock, opens the store described by cfg, wires
// the metadata client when lookups are enabled and loads the working set.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Workspace, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire workspace lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, cfg.LockPath())
	}

	st, err := store.Open(cfg)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	var searcher googlebooks.Searcher
	if cfg.Lookup.Enabled {
		client, err := googlebooks.New(cfg.Lookup.BaseURL,
			googlebooks.WithAPIKey(cfg.Lookup.APIKey),
			googlebooks.WithTimeout(cfg.LookupTimeout()),
			googlebooks.WithRateLimit(cfg.Lookup.RequestsPerSecond),
		)
		if err != nil {
			_ = st.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("build lookup client: %w", err)
		}
		searcher = client
	}

	policy := editing.SwitchCancel
	if cfg.CommitOnSwitch() {
		policy = editing.SwitchCommit
	}
	ws := New(st, enrichment.New(searcher, logger), logger,
		WithStrictImport(cfg.Import.Strict),
		WithSwitchPolicy(policy),
	)
	ws.closers = append(ws.closers, st.Close, lock.Unlock)

	if err := ws.Reload(ctx); err != nil {
		_ = ws.Close()
		return nil, err
	}
	ws.logger.Debug("workspace opened",
		logging.String("db_path", st.Path()),
		logging.Bool("lookup_enabled", cfg.Lookup.Enabled),
	)
	return ws, nil
}

// Close releases the store and the workspace lock.
func (w *Workspace) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for _, closer := range w.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	w.closers = nil
	return errors.Join(errs...)
}

// Reload repopulates the working set from the store.
func (w *Workspace) Reload(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloadLocked(w.beginAction(ctx, "reload"))
}

// reloadLocked refreshes the working set and drops selected EANs that are no
// longer visible.
func (w *Workspace) reloadLocked(ctx context.Context) error {
	if err := w.view.Reload(ctx); err != nil {
		return err
	}
	w.pruneSelectionLocked()
	return nil
}

func (w *Workspace) pruneSelectionLocked() {
	derived := w.view.Derive(w.filters)
	visible := append(view.EANs(derived.Pending), view.EANs(derived.Completed)...)
	w.selection.Retain(visible)
}

func (w *Workspace) beginAction(ctx context.Context, intent string) context.Context {
	ctx = services.WithActionID(ctx, uuid.NewString())
	logging.WithContext(ctx, w.logger).Debug("action started", logging.String("intent", intent))
	return ctx
}
