package tokens

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"
)

// EndpointCounter asks the inference server's tokenize endpoint for exact
// counts, falling back to character-based estimation when the endpoint is
// unreachable or returns an unexpected shape.
type EndpointCounter struct {
	endpoint string
	client   *http.Client
}

// NewEndpointCounter creates a counter against the given backend base URL.
func NewEndpointCounter(endpoint string, timeout time.Duration) *EndpointCounter {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &EndpointCounter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *EndpointCounter) CountTokens(text string) (int, error) {
	endpointURL := c.endpoint + "/tokenize"
	requestBody, _ := json.Marshal(map[string]any{"content": text})

	httpResp, err := c.client.Post(endpointURL, "application/json", bytes.NewReader(requestBody))
	if err != nil {
		return estimateTokens(text), nil
	}
	defer httpResp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(httpResp.Body).Decode(&payload); err != nil {
		return estimateTokens(text), nil
	}

	if tokens, ok := payload["tokens"].([]any); ok {
		return len(tokens), nil
	}

	if count, ok := payload["count"].(float64); ok {
		return int(count), nil
	}

	return estimateTokens(text), nil
}

func estimateTokens(text string) int {
	return len(text) / 4
}
