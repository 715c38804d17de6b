package controller

import (
	"sync"

	"github.com/diogo/docchat/internal/models"
)

// StatusBoard holds the single upload status line
type StatusBoard struct {
	mu       sync.RWMutex
	status   models.Status
	onChange func()
}

// NewStatusBoard creates an idle status board
func NewStatusBoard() *StatusBoard {
	return &StatusBoard{status: models.Status{State: models.StatusIdle}}
}

// SetOnChange registers fn to run after every update
func (s *StatusBoard) SetOnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Set replaces the status
func (s *StatusBoard) Set(state models.StatusState, message string) {
	s.mu.Lock()
	s.status = models.Status{State: state, Message: message}
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Get returns the current status
func (s *StatusBoard) Get() models.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// InputGate is the enablement flag shared by the chat input and its send
// button. It starts closed; a successful upload opens it.
type InputGate struct {
	mu       sync.RWMutex
	enabled  bool
	onChange func()
}

// NewInputGate creates a closed gate
func NewInputGate() *InputGate {
	return &InputGate{}
}

// SetOnChange registers fn to run after every toggle
func (g *InputGate) SetOnChange(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onChange = fn
}

// Enable opens the gate
func (g *InputGate) Enable() {
	g.set(true)
}

// Disable closes the gate
func (g *InputGate) Disable() {
	g.set(false)
}

func (g *InputGate) set(enabled bool) {
	g.mu.Lock()
	changed := g.enabled != enabled
	g.enabled = enabled
	fn := g.onChange
	g.mu.Unlock()

	if changed && fn != nil {
		fn()
	}
}

// Enabled reports whether the chat input accepts messages
func (g *InputGate) Enabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled
}
