// Package cleaner implements the document-clean pipeline: gate oversized
// documents, split them into token-bounded chunks, clean each chunk through
// the backend in order, and reassemble the results.
package cleaner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/chunker"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/core"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/provider"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/tokens"
)

const cleanPrompt = "Can you please clean this text and reply only with the clean one?: \"%s\""

// Service cleans documents through the backend, chunking when the document
// would not fit a single call.
type Service struct {
	gateway       provider.Gateway
	counter       tokens.Counter
	model         string
	contextWindow int
	maxTokens     int
}

// NewService creates a cleaner. contextWindow feeds the whole-document gate;
// maxTokens is the fixed-reserve per-chunk budget. The two are different
// estimators and are configured independently on purpose.
func NewService(gateway provider.Gateway, counter tokens.Counter, model string, contextWindow, maxTokens int) *Service {
	return &Service{
		gateway:       gateway,
		counter:       counter,
		model:         model,
		contextWindow: contextWindow,
		maxTokens:     maxTokens,
	}
}

// CleanDocument cleans text in one backend call when it fits, otherwise chunk
// by chunk, strictly in order. Chunk replies are joined with single spaces; a
// failed chunk aborts the whole operation without producing a partial join.
func (s *Service) CleanDocument(ctx context.Context, text string) (string, error) {
	needsChunking, err := chunker.NeedsChunking(s.counter, text, s.contextWindow)
	if err != nil {
		return "", err
	}

	if !needsChunking {
		return s.cleanChunk(ctx, text)
	}

	chunks, err := chunker.Split(s.counter, text, s.maxTokens)
	if err != nil {
		return "", err
	}

	slog.Info("document exceeds context window, cleaning in chunks", "chunks", len(chunks))

	cleaned := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		reply, err := s.cleanChunk(ctx, chunk)
		if err != nil {
			return "", fmt.Errorf("clean chunk %d of %d: %w", i+1, len(chunks), err)
		}

		cleaned = append(cleaned, reply)
	}

	return strings.Join(cleaned, " "), nil
}

func (s *Service) cleanChunk(ctx context.Context, text string) (string, error) {
	turns := []core.Turn{{
		Role:    core.RoleUser,
		Content: fmt.Sprintf(cleanPrompt, text),
	}}

	return s.gateway.GenerateChat(ctx, turns, s.model)
}
