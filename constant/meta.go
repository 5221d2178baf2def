// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// Vidkeys is the canonical application identifier used for filesystem paths and CLI branding.
	Vidkeys = "vidkeys"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// ScriptMessageTarget is the first argument of every script-message vidkeys registers inside mpv.
	ScriptMessageTarget = Vidkeys
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
