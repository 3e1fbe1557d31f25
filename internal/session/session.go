// Package session provides per-login editing contexts that own a document
// history and the selected style.
package session

import (
	"sync"
	"time"

	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/jonathan/resume-editor/internal/history"
	"github.com/jonathan/resume-editor/internal/types"
)

// State is a read-only view of a session for clients.
type State struct {
	Document types.ResumeDocument `json:"document"`
	CanUndo  bool                 `json:"can_undo"`
	CanRedo  bool                 `json:"can_redo"`
	Style    types.StyleOptions   `json:"style"`
}

// Session is the editing context of one logged-in user. All methods are safe
// for concurrent use; mutations are serialized so each one sees the latest
// present.
type Session struct {
	ID        string
	User      types.User
	CreatedAt time.Time

	mu       sync.Mutex
	history  *history.History[types.ResumeDocument]
	style    types.StyleOptions
	lastSeen time.Time
}

func newSession(id string, user types.User, doc types.ResumeDocument, style types.StyleOptions, historyLimit int, now time.Time) *Session {
	return &Session{
		ID:        id,
		User:      user,
		CreatedAt: now,
		history: history.New(doc, types.ResumeDocument.Equal,
			history.WithLimit[types.ResumeDocument](historyLimit)),
		style:    style,
		lastSeen: now,
	}
}

// Apply runs m against the current document. It reports whether a new history
// entry was recorded. A mutation error leaves the history untouched.
func (s *Session) Apply(m editing.Mutation) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := m(s.history.Present())
	if err != nil {
		return false, err
	}
	return s.history.Set(next), nil
}

// Undo steps back one entry. It reports false at the boundary.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Undo()
}

// Redo steps forward one entry. It reports false at the boundary.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Redo()
}

// Document returns a copy of the current document.
func (s *Session) Document() types.ResumeDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Present().Clone()
}

// Style returns the selected template and palette.
func (s *Session) Style() types.StyleOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

// SetStyle changes the template and palette. Style is not part of the undo history.
func (s *Session) SetStyle(style types.StyleOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = style
}

// State returns the document with undo/redo availability and style.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Document: s.history.Present().Clone(),
		CanUndo:  s.history.CanUndo(),
		CanRedo:  s.history.CanRedo(),
		Style:    s.style,
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
