// Package app wires application dependencies for the CLI.
//
// It loads Config from YAML and PUBIDENT_* environment variables, builds the
// concrete stores, metrics and services from it, and exposes them via the
// Wire struct and the narrower App for commands to use. Config is passed
// by value; nothing here is process-wide state.
package app
