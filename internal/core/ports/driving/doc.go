// Package driving provides interfaces for external actors
// (primary/inbound ports): the CLI and TUI drive the core through these.
package driving
