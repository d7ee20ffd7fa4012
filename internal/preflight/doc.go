// Package preflight provides readiness checks for the filesystem paths and
// the metadata service that catalogage depends on.
//
// The CLI "catalogage status" command runs RunAll and renders each Result.
// Checks for disabled features report "Disabled" and pass.
package preflight
