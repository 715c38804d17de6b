// Package controller holds the upload and chat controllers and the state
// they share: the transcript, the upload status line and the chat input gate.
package controller

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diogo/docchat/internal/models"
)

// Transcript is the ordered list of chat entries.
// Entries are addressed by ID so a placeholder captured at send time can be
// resolved after later entries were appended.
type Transcript struct {
	mu       sync.RWMutex
	entries  []*models.Entry
	byID     map[string]*models.Entry
	onChange func()
	now      func() time.Time
}

// NewTranscript creates an empty transcript
func NewTranscript() *Transcript {
	return &Transcript{
		byID: make(map[string]*models.Entry),
		now:  time.Now,
	}
}

// SetOnChange registers fn to run after every mutation.
// fn runs outside the transcript lock.
func (t *Transcript) SetOnChange(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

func (t *Transcript) notify(fn func()) {
	if fn != nil {
		fn()
	}
}

// Append adds an entry and returns a copy of it
func (t *Transcript) Append(role models.Role, text string, pending bool) models.Entry {
	t.mu.Lock()
	entry := &models.Entry{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Pending:   pending,
		CreatedAt: t.now(),
	}
	t.entries = append(t.entries, entry)
	t.byID[entry.ID] = entry
	out, fn := *entry, t.onChange
	t.mu.Unlock()

	t.notify(fn)
	return out
}

// Resolve replaces the text of the entry with id and clears its pending flag
func (t *Transcript) Resolve(id, text string) (models.Entry, error) {
	t.mu.Lock()
	entry, ok := t.byID[id]
	if !ok {
		t.mu.Unlock()
		return models.Entry{}, fmt.Errorf("transcript entry %s not found", id)
	}
	entry.Text = text
	entry.Pending = false
	out, fn := *entry, t.onChange
	t.mu.Unlock()

	t.notify(fn)
	return out, nil
}

// Get returns a copy of the entry with id
func (t *Transcript) Get(id string) (models.Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entry, ok := t.byID[id]
	if !ok {
		return models.Entry{}, false
	}
	return *entry, true
}

// Entries returns a snapshot of the transcript in display order
func (t *Transcript) Entries() []models.Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]models.Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = *e
	}
	return out
}

// Len returns the number of entries
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// PendingCount returns how many placeholders are still waiting
func (t *Transcript) PendingCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, e := range t.entries {
		if e.Pending {
			n++
		}
	}
	return n
}

// LastBotReply returns the most recent resolved bot entry
func (t *Transcript) LastBotReply() (models.Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		if e.Role == models.RoleBot && !e.Pending {
			return *e, true
		}
	}
	return models.Entry{}, false
}
