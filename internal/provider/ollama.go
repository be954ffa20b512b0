package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/config"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/core"
)

// OllamaConfig holds connection settings for an Ollama-compatible chat API.
type OllamaConfig struct {
	Endpoint    string
	HTTPTimeout time.Duration
}

// OllamaProvider implements Gateway against an Ollama-compatible HTTP API.
type OllamaProvider struct {
	endpoint      string
	client        *http.Client
	requestLogger *RequestLogger
}

// NewOllamaProvider creates an OllamaProvider with the given endpoint config and optional debug logging.
func NewOllamaProvider(cfg OllamaConfig, debugCfg config.DebugConfig) *OllamaProvider {
	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	provider := &OllamaProvider{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}

	if debugCfg.LogRequests || debugCfg.LogResponses {
		provider.requestLogger = NewRequestLogger(
			debugCfg.LogDirectory,
			debugCfg.LogRequests,
			debugCfg.LogResponses,
			slog.Default(),
		)
	}

	return provider
}

// GenerateChat sends the ordered turn list to the backend chat endpoint and
// returns the assistant reply content.
func (p *OllamaProvider) GenerateChat(ctx context.Context, turns []core.Turn, model string) (string, error) {
	requestID := core.NewRequestID()
	endpointURL := p.endpoint + "/api/chat"

	msgJSON := make([]map[string]any, 0, len(turns))
	for _, turn := range turns {
		msgJSON = append(msgJSON, map[string]any{"role": string(turn.Role), "content": turn.Content})
	}

	payload := map[string]any{
		"model":    model,
		"messages": msgJSON,
		"stream":   false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	if p.requestLogger != nil {
		p.requestLogger.LogRequest(requestID, turns, payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build backend request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	httpResp, err := p.client.Do(httpReq)
	duration := time.Since(startTime)

	if err != nil {
		if p.requestLogger != nil {
			p.requestLogger.LogError(requestID, 0, []byte(err.Error()), turns)
		}
		return "", &TransportError{RequestID: requestID, Err: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(httpResp.Body)

		if p.requestLogger != nil {
			p.requestLogger.LogError(requestID, httpResp.StatusCode, bodyBytes, turns)
		}

		status := httpResp.Status
		if len(bodyBytes) > 0 {
			status = status + ": " + strings.TrimSpace(string(bodyBytes))
		}

		return "", &TransportError{RequestID: requestID, Status: status}
	}

	var responsePayload map[string]any
	if err := json.NewDecoder(httpResp.Body).Decode(&responsePayload); err != nil {
		return "", fmt.Errorf("decode response (request_id=%s): %w", requestID, ErrMalformedReply)
	}

	reply, err := parseReply(responsePayload)
	if err != nil {
		return "", fmt.Errorf("request_id=%s: %w", requestID, err)
	}

	if p.requestLogger != nil {
		p.requestLogger.LogResponse(requestID, reply, duration)
	}

	return reply, nil
}

func parseReply(payload map[string]any) (string, error) {
	message, ok := payload["message"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("missing message field: %w", ErrMalformedReply)
	}

	content, ok := message["content"].(string)
	if !ok {
		return "", fmt.Errorf("missing message content: %w", ErrMalformedReply)
	}

	return content, nil
}
