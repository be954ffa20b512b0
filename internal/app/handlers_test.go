package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/cleaner"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/config"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/core"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/provider"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/session"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/tokens"
)

type stubGateway struct {
	reply string
	err   error
	calls int
}

func (g *stubGateway) GenerateChat(context.Context, []core.Turn, string) (string, error) {
	g.calls++

	if g.err != nil {
		return "", g.err
	}

	return g.reply, nil
}

func newTestServer(gateway provider.Gateway) *Server {
	store := session.NewStore()

	return &Server{
		cfg:      config.Default(),
		sessions: store,
		manager:  session.NewManager(store, gateway, "test-model", "SYS"),
		cleaner:  cleaner.NewService(gateway, tokens.WordCounter{}, "test-model", 8, 2),
		started:  time.Now(),
	}
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestHandleChat_CreatesAndContinuesSession(t *testing.T) {
	server := newTestServer(&stubGateway{reply: "why would I need that?"})
	handler := server.Handler()

	rec := postJSON(t, handler, "/chat", `{"message": "buy my pen"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}

	var resp core.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Reply != "why would I need that?" {
		t.Errorf("unexpected reply: %q", resp.Reply)
	}

	if resp.SessionID == "" {
		t.Fatal("expected a session id")
	}

	// A second turn with the returned id continues the same session.
	rec = postJSON(t, handler, "/chat", `{"message": "it writes upside down", "session_id": "`+resp.SessionID+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var second core.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if second.SessionID != resp.SessionID {
		t.Errorf("session id changed: %q -> %q", resp.SessionID, second.SessionID)
	}

	if server.sessions.Len() != 1 {
		t.Errorf("expected 1 session, got %d", server.sessions.Len())
	}
}

func TestHandleChat_UnknownSessionIDStartsNew(t *testing.T) {
	server := newTestServer(&stubGateway{reply: "hm"})

	rec := postJSON(t, server.Handler(), "/chat", `{"message": "hi", "session_id": "sess_forgotten"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown session id must not be an error, got %d", rec.Code)
	}

	var resp core.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.SessionID == "sess_forgotten" {
		t.Error("expected a fresh session id")
	}
}

func TestHandleChat_InvalidBody(t *testing.T) {
	server := newTestServer(&stubGateway{reply: "hm"})

	rec := postJSON(t, server.Handler(), "/chat", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleChat_TransportFailure(t *testing.T) {
	server := newTestServer(&stubGateway{err: &provider.TransportError{Status: "502 Bad Gateway"}})

	rec := postJSON(t, server.Handler(), "/chat", `{"message": "hi"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), "transport") {
		t.Errorf("error category missing from body: %s", rec.Body.String())
	}
}

func TestHandleClean_ChunkedDocument(t *testing.T) {
	gateway := &stubGateway{reply: "clean"}
	server := newTestServer(gateway)

	// Five words trip the gate (5 + 4 > 8) and split into three chunks.
	rec := postJSON(t, server.Handler(), "/clean", `{"message": "a b c d e"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}

	var resp core.CleanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Reply != "clean clean clean" {
		t.Errorf("unexpected joined reply: %q", resp.Reply)
	}

	if gateway.calls != 3 {
		t.Errorf("expected 3 backend calls, got %d", gateway.calls)
	}
}

func TestHandleStatus_ReportsSessions(t *testing.T) {
	server := newTestServer(&stubGateway{reply: "hm"})
	handler := server.Handler()

	postJSON(t, handler, "/chat", `{"message": "one"}`)
	postJSON(t, handler, "/chat", `{"message": "two"}`)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var resp core.StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Sessions != 2 {
		t.Errorf("expected 2 sessions, got %d", resp.Sessions)
	}
}
