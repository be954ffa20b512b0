package app

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iccaka/LLM-Assistant-Toolkit/internal/core"
	"github.com/iccaka/LLM-Assistant-Toolkit/internal/provider"
)

// Handler returns the relay's HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /clean", s.handleClean)
	mux.HandleFunc("GET /status", s.handleStatus)

	return mux
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req core.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// An unknown or absent session id silently starts a new session.
	sessionID := s.manager.BeginOrContinue(core.SessionID(req.SessionID))

	reply, err := s.manager.Submit(r.Context(), sessionID, req.Message)
	if err != nil {
		slog.Error("chat turn failed", "session_id", sessionID, "error", err)
		status, category := errorCategory(err)
		writeError(w, status, category)
		return
	}

	writeJSON(w, core.ChatResponse{Reply: reply, SessionID: string(sessionID)})
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	var req core.CleanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	slog.Debug("clean request", "bytes", len(req.Message))

	cleaned, err := s.cleaner.CleanDocument(r.Context(), req.Message)
	if err != nil {
		slog.Error("document clean failed", "error", err)
		status, category := errorCategory(err)
		writeError(w, status, category)
		return
	}

	writeJSON(w, core.CleanResponse{Reply: cleaned})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, core.StatusResponse{
		Bind:      s.cfg.Bind,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		StartedAt: s.started.Format(time.RFC3339),
		Endpoint:  s.cfg.Endpoint,
		Sessions:  s.sessions.Len(),
	})
}

func errorCategory(err error) (int, string) {
	var transportErr *provider.TransportError

	switch {
	case errors.As(err, &transportErr):
		return http.StatusBadGateway, "backend transport failure"
	case errors.Is(err, provider.ErrMalformedReply):
		return http.StatusBadGateway, "malformed backend reply"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
