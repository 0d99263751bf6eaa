package parser

import (
	"strings"

	"github.com/dgallion1/mdchunk/internal/doctree"
)

// Analyze extracts tables from text and falls back to heading-aware chunking
// when the document has none.
func Analyze(text string) doctree.Result {
	if tables := ParseTables(text); len(tables) > 0 {
		return doctree.Result{Type: doctree.ModeTables, Tables: tables}
	}
	chunks := ParseChunks(text)
	return doctree.Result{Type: doctree.ModeChunks, Chunks: &chunks}
}

// LineCount returns the number of lines SplitLines would produce.
func LineCount(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
