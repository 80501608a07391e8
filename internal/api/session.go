package api

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/politask/politask/internal/domain"
)

// Session owns the bearer credential lifecycle: empty at startup, set on
// successful login/register, read by authenticated calls, cleared on
// logout. It is an explicit object passed to the client, never ambient
// package state, so tests can run isolated sessions side by side.
//
// Alongside the token it remembers who logged in, so mutations that need
// the caller's identity (project ownership) work across restarts.
type Session struct {
	mu    sync.RWMutex
	state sessionState
	path  string // empty disables persistence (tests)
}

type sessionState struct {
	Token  string    `json:"token"`
	UserID domain.ID `json:"user_id,omitempty"`
	Name   string    `json:"name,omitempty"`
	Email  string    `json:"email,omitempty"`
}

// NewSession creates a session persisted at path. Credentials from a
// previous run are loaded when the file exists.
func NewSession(path string) *Session {
	s := &Session{path: path}
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = json.Unmarshal(data, &s.state)
		}
	}
	return s
}

// NewMemorySession creates a session without durable storage.
func NewMemorySession() *Session { return &Session{} }

// Token returns the current bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool { return s.Token() != "" }

// User returns the identity captured at login, zero when logged out.
func (s *Session) User() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.User{ID: s.state.UserID, Name: s.state.Name, Email: s.state.Email}
}

// SetAuth stores the credentials from a login/register response and
// persists them when a path is configured.
func (s *Session) SetAuth(res AuthResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = sessionState{Token: res.Token, UserID: res.ID, Name: res.Name, Email: res.Email}
	return s.persist()
}

// SetToken stores a bare token without identity, for tests and scripted use.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	return s.persist()
}

// Clear wipes the credentials in memory and on disk.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = sessionState{}
	if s.path == "" {
		return nil
	}
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Session) persist() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
