// Package web serves the browser chat interface: an embedded single-page UI
// plus a small JSON API that forwards questions to the agent.
package web

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shravya-mutyala/agent-test/internal/agent"
	"github.com/shravya-mutyala/agent-test/internal/config"
	"github.com/sirupsen/logrus"
)

//go:embed index.html
var indexHTML []byte

const (
	sessionCookie = "strands_session"

	// maxHistoryPerSession caps stored exchanges to prevent session bloat.
	maxHistoryPerSession = 20
)

// Exchange is one question/answer pair in a session's history.
type Exchange struct {
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Server hosts the chat UI. The agent may be nil when credentials are not
// configured; the UI still loads and /ask reports the problem.
type Server struct {
	agent  *agent.Agent
	cfg    *config.Config
	logger *logrus.Logger

	mu       sync.Mutex
	sessions map[string][]Exchange
}

// NewServer creates a Server around an agent and its configuration.
func NewServer(a *agent.Agent, cfg *config.Config, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{
		agent:    a,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string][]Exchange),
	}
}

// Handler returns the HTTP handler for all UI routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ask", s.handleAsk)
	mux.HandleFunc("/clear", s.handleClear)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

// ListenAndServe starts the UI on the given address and blocks.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.WithField("addr", addr).Info("Starting web UI")
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return server.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.ensureSession(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, map[string]any{
			"success": false,
			"error":   "Please enter a question.",
		})
		return
	}

	if s.agent == nil {
		writeJSON(w, map[string]any{
			"success": false,
			"error":   "Agent not available. Please check API configuration.",
		})
		return
	}

	// Hand the raw value over untyped: the agent words its own response for
	// missing or non-string questions.
	question := payload["question"]
	response := s.agent.Ask(r.Context(), question)

	if text, ok := question.(string); ok {
		s.recordExchange(s.ensureSession(w, r), text, response)
	}

	writeJSON(w, map[string]any{
		"success":   true,
		"response":  response,
		"timestamp": time.Now().Format("15:04"),
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := s.ensureSession(w, r)
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	writeJSON(w, map[string]any{"success": true})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	missing := []string{}
	configured := s.cfg != nil && s.cfg.IsConfigured()
	if s.cfg != nil && !configured {
		missing = s.cfg.MissingConfig()
	}

	writeJSON(w, map[string]any{
		"agent_available": s.agent != nil,
		"api_configured":  configured,
		"missing_config":  missing,
	})
}

// ensureSession returns the request's session id, creating the cookie when
// absent.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) recordExchange(sessionID, question, response string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID], Exchange{
		Question:  question,
		Response:  response,
		Timestamp: time.Now(),
	})
	if len(history) > maxHistoryPerSession {
		history = history[len(history)-maxHistoryPerSession:]
	}
	s.sessions[sessionID] = history
}

// History returns a copy of a session's stored exchanges.
func (s *Server) History(sessionID string) []Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sessions[sessionID]
	out := make([]Exchange, len(history))
	copy(out, history)
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("encoding error: %v", err), http.StatusInternalServerError)
	}
}
