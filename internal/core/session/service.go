package session

import (
	"sort"
	"time"

	"github.com/steveyiyo/virtualeyes-backend/internal/repo/memory"
	"github.com/steveyiyo/virtualeyes-backend/pkg/types"

	"github.com/google/uuid"
)

// DefaultIdleTTL is how long a session survives without frames.
const DefaultIdleTTL = 30 * time.Minute

// Service tracks live-mode sessions opened by the mobile app. Sessions idle
// for longer than IdleTTL are dropped on the next Create.
type Service struct {
	Repo    *memory.SessionRepo
	IdleTTL time.Duration

	now func() time.Time
}

func NewService(repo *memory.SessionRepo, idleTTL time.Duration) *Service {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Service{Repo: repo, IdleTTL: idleTTL, now: time.Now}
}

func (s *Service) Create(mode, locale string, device map[string]string) *memory.Session {
	if mode == "" {
		mode = "live"
	}
	if locale == "" {
		locale = "es"
	}
	s.Sweep()
	now := s.now()
	sess := &memory.Session{
		ID:        "sess_" + uuid.NewString(),
		CreatedAt: now,
		LastSeen:  now,
		Mode:      mode,
		Locale:    locale,
		Device:    device,
		History:   []types.SpokenEntry{},
	}
	s.Repo.Save(sess)
	return sess
}

func (s *Service) Exists(id string) bool {
	_, ok := s.Repo.Get(id)
	return ok
}

// Touch keeps a connected session from being swept.
func (s *Service) Touch(id string) bool {
	return s.Repo.Touch(id, s.now())
}

// Sweep deletes idle sessions and returns how many were removed.
func (s *Service) Sweep() int {
	ids := s.Repo.Idle(s.now().Add(-s.IdleTTL))
	for _, id := range ids {
		s.Repo.Delete(id)
	}
	return len(ids)
}

// Record stores the outcome of one analyzed frame.
func (s *Service) Record(id, text string, objects int, latency time.Duration) bool {
	return s.Repo.RecordFrame(id, types.SpokenEntry{
		T:         s.now().UnixMilli(),
		Text:      text,
		Objects:   objects,
		LatencyMs: latency.Milliseconds(),
	})
}

func (s *Service) Summary(id string) (types.SummaryResp, bool) {
	sess, ok := s.Repo.Get(id)
	if !ok {
		return types.SummaryResp{}, false
	}
	return types.SummaryResp{
		SessionID:      sess.ID,
		Mode:           sess.Mode,
		LatencyP50Ms:   p50(sess.Latencies),
		FramesAnalyzed: sess.Frames,
		History:        sess.History,
	}, true
}

func p50(v []int64) int64 {
	if len(v) == 0 {
		return 0
	}
	s := append([]int64(nil), v...)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return s[len(s)/2]
}
