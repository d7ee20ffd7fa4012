// Package workspace is the rendering boundary of the catalog engine.
//
// A Workspace owns the store handle, the working set, the edit cursor and the
// selection. It accepts operator intents one at a time: every intent runs
// under a single mutex, issues its store writes sequentially and reloads the
// working set once at the end, so a reader never observes a half-applied
// action. Open also takes an advisory lock on the data directory so a second
// process fails fast instead of interleaving writes.
package workspace
