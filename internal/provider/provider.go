// Package provider implements the gateway to the inference backend: one
// request/response round trip per call, bounded by a fixed timeout, no
// retries. Failures are categorized so callers can tell transport problems
// from malformed backend replies.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/core"
)

// Gateway executes a single chat completion against the backend. The turns
// are sent in order, exactly as given; the returned string is the assistant
// reply content.
type Gateway interface {
	GenerateChat(ctx context.Context, turns []core.Turn, model string) (string, error)
}

// ErrMalformedReply marks a backend response that decoded but is missing the
// expected reply content. Fatal for the call, no partial recovery.
var ErrMalformedReply = errors.New("malformed backend reply")

// TransportError wraps connection failures, timeouts, and non-2xx statuses.
type TransportError struct {
	RequestID core.RequestID
	Status    string
	Err       error
}

func (e *TransportError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("backend transport error (request_id=%s): %s", e.RequestID, e.Status)
	}

	return fmt.Sprintf("backend transport error (request_id=%s): %v", e.RequestID, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
