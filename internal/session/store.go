package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-editor/internal/types"
)

// ErrNotFound is returned for unknown, ended or expired sessions.
var ErrNotFound = errors.New("session not found")

// Options configures a Store.
type Options struct {
	// TTL ends sessions idle for longer than this. Zero disables expiry.
	TTL time.Duration
	// HistoryLimit caps undo depth per session. Zero means unlimited.
	HistoryLimit int
	// Style is the selection new sessions start with.
	Style types.StyleOptions
	// NewDocument builds the starting document. Defaults to types.DefaultDocument.
	NewDocument func() types.ResumeDocument
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Store owns the live sessions of a process. Sessions are created at login and
// torn down at logout or on expiry; nothing outlives the process.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     Options
}

// NewStore creates an empty Store.
func NewStore(opts Options) *Store {
	if opts.NewDocument == nil {
		opts.NewDocument = types.DefaultDocument
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if !opts.Style.Template.Valid() || !opts.Style.ColorPalette.Valid() {
		opts.Style = types.DefaultStyle()
	}
	return &Store{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// Create starts a session for user from the starting document.
func (st *Store) Create(user types.User) *Session {
	s := newSession(uuid.NewString(), user, st.opts.NewDocument(), st.opts.Style, st.opts.HistoryLimit, st.opts.Now())

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns a live session and refreshes its idle timer. Expired sessions
// are removed on access.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	now := st.opts.Now()
	if st.opts.TTL > 0 && s.idleSince(now) > st.opts.TTL {
		st.End(id)
		return nil, ErrNotFound
	}
	s.touch(now)
	return s, nil
}

// End tears the session down. Ending an unknown session is a no-op.
func (st *Store) End(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes every expired session and returns how many were removed.
func (st *Store) Sweep() int {
	if st.opts.TTL <= 0 {
		return 0
	}
	now := st.opts.Now()

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince(now) > st.opts.TTL {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
