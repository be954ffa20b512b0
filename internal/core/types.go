package core

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a conversation. Content is never mutated
// after the turn has been appended to a session history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload the relay accepts on /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse carries the assistant reply and the session to continue with.
type ChatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
}

// CleanRequest is the payload the relay accepts on /clean.
type CleanRequest struct {
	Message string `json:"message"`
}

// CleanResponse carries the cleaned document text.
type CleanResponse struct {
	Reply string `json:"reply"`
}

// StatusResponse describes a running relay.
type StatusResponse struct {
	Bind      string `json:"bind"`
	Uptime    string `json:"uptime"`
	StartedAt string `json:"started_at"`
	Endpoint  string `json:"endpoint"`
	Sessions  int    `json:"sessions"`
}
