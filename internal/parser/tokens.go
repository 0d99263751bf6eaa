package parser

import (
	"strings"

	"github.com/dgallion1/mdchunk/internal/doctree"
)

// EstimateTokens gives a rough model token count for text, about 1.33 tokens
// per whitespace-separated word. Non-empty text is at least one token.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// ChunkTokens estimates the tokens in a chunk's content, heading path included.
func ChunkTokens(c doctree.Chunk) int {
	return EstimateTokens(strings.Join(c.Content, "\n"))
}
