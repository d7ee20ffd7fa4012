// Package main hosts the catalogage CLI entrypoint and command graph.
//
// Every command that touches the catalog opens a workspace, runs one or more
// intents against it and renders the resulting view. Configuration loading,
// .env handling and logger setup live in the command context so subcommands
// only deal with flags and output.
package main
