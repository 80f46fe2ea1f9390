package memory

import (
	"sync"
	"time"

	"github.com/steveyiyo/virtualeyes-backend/pkg/types"
)

// historyLimit bounds the spoken history kept per session.
const historyLimit = 20

type Session struct {
	ID        string
	CreatedAt time.Time
	LastSeen  time.Time
	Mode      string
	Locale    string
	Device    map[string]string
	History   []types.SpokenEntry
	Frames    int64
	Latencies []int64
}

type SessionRepo struct {
	mu sync.RWMutex
	m  map[string]*Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{m: map[string]*Session{}}
}

func (r *SessionRepo) Save(s *Session) {
	r.mu.Lock()
	r.m[s.ID] = s
	r.mu.Unlock()
}

// Get returns a copy so callers can read it without holding the lock.
func (r *SessionRepo) Get(id string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.m[id]
	if !ok {
		return Session{}, false
	}
	cp := *s
	cp.History = append([]types.SpokenEntry(nil), s.History...)
	cp.Latencies = append([]int64(nil), s.Latencies...)
	return cp, true
}

// RecordFrame counts one analyzed frame and appends its spoken text.
func (r *SessionRepo) RecordFrame(id string, e types.SpokenEntry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.m[id]
	if !ok {
		return false
	}
	s.Frames++
	s.LastSeen = time.UnixMilli(e.T)
	s.History = append(s.History, e)
	if len(s.History) > historyLimit {
		s.History = s.History[len(s.History)-historyLimit:]
	}
	s.Latencies = append(s.Latencies, e.LatencyMs)
	if len(s.Latencies) > historyLimit {
		s.Latencies = s.Latencies[len(s.Latencies)-historyLimit:]
	}
	return true
}

// Touch marks the session as active at t.
func (r *SessionRepo) Touch(id string, t time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.m[id]
	if ok {
		s.LastSeen = t
	}
	return ok
}

// Idle lists sessions whose last activity is before cutoff.
func (r *SessionRepo) Idle(cutoff time.Time) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, s := range r.m {
		if s.LastSeen.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *SessionRepo) Delete(id string) {
	r.mu.Lock()
	delete(r.m, id)
	r.mu.Unlock()
}
