// Package task holds the shared task value types used by the list engine,
// the store, the harness, and the CLI.
package task

import (
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/betwixt/internal/rank"
)

// Task is one entry in an ordered list: an externally assigned opaque ID,
// a display title, and the rank key holding its position. A task has
// exactly one current rank; a move assigns a fresh rank and discards the
// old one.
type Task struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Rank  rank.Key `json:"rank"`
}

// NormalizeTitle returns the NFC normalization of a title.
//
// Titles cross the persistence boundary in NFC so that reloads compare
// byte-identical regardless of which codepoint form the input method
// produced. Applied where titles enter the system (the CLI and the
// scenario harness), so the engine and the store always see NFC bytes.
func NormalizeTitle(s string) string {
	return norm.NFC.String(s)
}
