//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
)

// Version is the semantic version of the cling module embedded at build
// time. It is printed by the CLI when users invoke the version flag.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical command and module identifier used across
	// the project. For example, it appears in diagnostics and the demo
	// binary's own grammar.
	Name = "cling"
	// Description is a short, human-readable summary of the project.
	Description = "Command-line grammar parsing and completion engine"
)
