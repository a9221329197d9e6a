// Package cli implements the cling command-line interface. The binary
// is a thin inspector over the grammar engine it ships: it declares its
// own surface with the library, loads a target grammar document, and
// exposes parsing, completion, and an interactive explorer.
package cli
