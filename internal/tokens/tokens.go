// Package tokens provides the token-counting capability the chunker and the
// context-window gate are parameterized over. Any backend-specific tokenizer
// is a Counter implementation; callers never assume a particular vocabulary.
package tokens

import "strings"

// Counter reports how many tokens a piece of text costs for the backend
// model family. Implementations must be deterministic and side-effect-free.
type Counter interface {
	CountTokens(text string) (int, error)
}

// WordCounter approximates token cost as the number of whitespace-separated
// words. It is the offline stand-in when no tokenizer endpoint is reachable.
type WordCounter struct{}

func (WordCounter) CountTokens(text string) (int, error) {
	return len(strings.Fields(text)), nil
}
