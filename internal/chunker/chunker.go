// Package chunker splits oversized documents into pieces that fit the
// backend's context window. Two distinct estimators live here on purpose:
// NeedsChunking gates on a whole-document output heuristic, while Split
// sizes individual chunks against a fixed token budget. They must not be
// unified; conflating them changes observable chunk boundaries.
package chunker

import (
	"fmt"
	"strings"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/tokens"
)

// NeedsChunking reports whether text is too large for a single backend call.
// The expected output is estimated as floor(0.8 * input tokens); the call is
// oversized when input plus expected output exceeds the context window.
func NeedsChunking(counter tokens.Counter, text string, contextWindow int) (bool, error) {
	tokenCount, err := counter.CountTokens(text)
	if err != nil {
		return false, fmt.Errorf("count document tokens: %w", err)
	}

	expectedOutput := tokenCount * 4 / 5

	return tokenCount+expectedOutput > contextWindow, nil
}

// Split breaks text into whitespace-aligned chunks of at most maxTokens
// tokens each. Words are accumulated greedily and the candidate is re-counted
// after every word; the word that pushes the candidate over the budget is
// unwound and becomes the start of the next chunk. A single word that alone
// exceeds maxTokens still occupies its own chunk, over budget, rather than
// being split mid-word.
//
// Joining the returned chunks with single spaces reproduces the
// whitespace-normalized input exactly.
func Split(counter tokens.Counter, text string, maxTokens int) ([]string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	var chunks []string
	var candidate []string

	for _, word := range words {
		candidate = append(candidate, word)

		count, err := counter.CountTokens(strings.Join(candidate, " "))
		if err != nil {
			return nil, fmt.Errorf("count chunk tokens: %w", err)
		}

		if count > maxTokens && len(candidate) > 1 {
			chunks = append(chunks, strings.Join(candidate[:len(candidate)-1], " "))
			candidate = []string{word}
		}
	}

	chunks = append(chunks, strings.Join(candidate, " "))

	return chunks, nil
}
