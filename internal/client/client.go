// Package client is the thin HTTP client the CLI uses against a running
// relay. One request/response round trip per call, fixed timeout, no retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/core"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Chat sends one chat turn. An empty sessionID starts a new session; the
// response carries the id to continue with.
func (c *Client) Chat(ctx context.Context, message, sessionID string) (core.ChatResponse, error) {
	var resp core.ChatResponse
	err := c.post(ctx, "/chat", core.ChatRequest{Message: message, SessionID: sessionID}, &resp)

	return resp, err
}

// Clean submits a document for cleaning and returns the cleaned text.
func (c *Client) Clean(ctx context.Context, text string) (string, error) {
	var resp core.CleanResponse
	if err := c.post(ctx, "/clean", core.CleanRequest{Message: text}, &resp); err != nil {
		return "", err
	}

	return resp.Reply, nil
}

// Status queries the relay's status endpoint.
func (c *Client) Status(ctx context.Context) (core.StatusResponse, error) {
	var resp core.StatusResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return resp, err
	}

	httpResp, err := c.client.Do(req)
	if err != nil {
		return resp, fmt.Errorf("relay unreachable: %w", err)
	}
	defer httpResp.Body.Close()

	if err := decodeBody(httpResp, &resp); err != nil {
		return resp, err
	}

	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay unreachable: %w", err)
	}
	defer httpResp.Body.Close()

	return decodeBody(httpResp, out)
}

func decodeBody(httpResp *http.Response, out any) error {
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(httpResp.Body)

		var errPayload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(bodyBytes, &errPayload) == nil && errPayload.Error != "" {
			return fmt.Errorf("relay: %s", errPayload.Error)
		}

		return fmt.Errorf("relay: %s", httpResp.Status)
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode relay response: %w", err)
	}

	return nil
}
