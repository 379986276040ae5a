package interview

import (
	"sync"

	"github.com/ayushkanha/VoxHire/internal/llm"
)

// defaultDomain governs sessions that never received a domain hint.
const defaultDomain = "general"

// Session holds the in-memory state of one interview: the topical domain
// and the ordered conversation history. History alternates user/assistant
// turns and is only ever appended to. State lives for the process lifetime;
// a restart loses every session.
type Session struct {
	ID string

	mu      sync.Mutex
	domain  string
	history []llm.Message
}

// SetDomainIfAbsent fixes the session's domain on first use. First
// non-empty value wins; later calls are no-ops whatever they pass, so the
// constraint that governed the opening question governs the whole
// interview.
func (s *Session) SetDomainIfAbsent(domain string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.domain == "" && domain != "" {
		s.domain = domain
	}
}

func (s *Session) Domain() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.domain == "" {
		return defaultDomain
	}
	return s.domain
}

// History returns a copy of the conversation so far.
func (s *Session) History() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]llm.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Registry is the process-wide map of session ID to session state,
// constructed once at startup and injected wherever session state is
// needed.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session for id, creating it on first reference.
// Concurrent first references observe a single winner.
func (r *Registry) GetOrCreate(id string) *Session {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return sess
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[id]; ok {
		return sess
	}

	sess = &Session{ID: id}
	r.sessions[id] = sess
	return sess
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
