package preflight

import (
	"context"
	"fmt"

	"github.com/gofrs/flock"

	"catalogage/internal/config"
)

// CheckLookupFromConfig evaluates the metadata service from config and connectivity.
func CheckLookupFromConfig(ctx context.Context, cfg *config.Config) Result {
	const name = "Google Books"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if !cfg.Lookup.Enabled {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	pinger, err := newLookupPinger(cfg.Lookup.BaseURL)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return CheckLookup(ctx, pinger)
}

// CheckLockFromConfig reports whether another process holds the workspace
// lock. The probe releases the lock immediately when it acquires it.
func CheckLockFromConfig(cfg *config.Config) Result {
	const name = "Workspace lock"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.LockPath(), err)}
	}
	if !locked {
		return Result{Name: name, Detail: fmt.Sprintf("%s (held by another process)", cfg.LockPath())}
	}
	_ = lock.Unlock()
	return Result{Name: name, Passed: true, Detail: "Free"}
}
