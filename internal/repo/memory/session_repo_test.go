package memory

import (
	"fmt"
	"testing"
	"time"

	"github.com/steveyiyo/virtualeyes-backend/pkg/types"
)

func TestRecordFrame(t *testing.T) {
	r := NewSessionRepo()
	r.Save(&Session{ID: "s1"})

	if r.RecordFrame("missing", types.SpokenEntry{}) {
		t.Fatal("unknown session should not record")
	}
	for i := 0; i < historyLimit+5; i++ {
		r.RecordFrame("s1", types.SpokenEntry{Text: fmt.Sprint(i), LatencyMs: int64(i)})
	}
	s, ok := r.Get("s1")
	if !ok {
		t.Fatal("session not found")
	}
	if s.Frames != historyLimit+5 {
		t.Fatalf("frames = %d", s.Frames)
	}
	if len(s.History) != historyLimit || s.History[0].Text != "5" {
		t.Fatalf("history = %d first=%q", len(s.History), s.History[0].Text)
	}
	if len(s.Latencies) != historyLimit {
		t.Fatalf("latencies = %d", len(s.Latencies))
	}
}

func TestGetReturnsCopy(t *testing.T) {
	r := NewSessionRepo()
	r.Save(&Session{ID: "s1"})
	r.RecordFrame("s1", types.SpokenEntry{Text: "a"})

	s, _ := r.Get("s1")
	s.History[0].Text = "mutated"
	again, _ := r.Get("s1")
	if again.History[0].Text != "a" {
		t.Fatal("Get leaked internal slice")
	}

	r.Delete("s1")
	if _, ok := r.Get("s1"); ok {
		t.Fatal("session should be gone")
	}
}

func TestIdleAndTouch(t *testing.T) {
	base := time.Unix(1700000000, 0)
	r := NewSessionRepo()
	r.Save(&Session{ID: "old", LastSeen: base})
	r.Save(&Session{ID: "new", LastSeen: base.Add(time.Hour)})

	ids := r.Idle(base.Add(time.Minute))
	if len(ids) != 1 || ids[0] != "old" {
		t.Fatalf("idle = %v", ids)
	}

	if !r.Touch("old", base.Add(2*time.Hour)) || r.Touch("missing", base) {
		t.Fatal("touch mismatch")
	}
	if ids := r.Idle(base.Add(time.Minute)); len(ids) != 0 {
		t.Fatalf("idle after touch = %v", ids)
	}

	r.RecordFrame("new", types.SpokenEntry{T: base.Add(3 * time.Hour).UnixMilli()})
	s, _ := r.Get("new")
	if !s.LastSeen.Equal(base.Add(3 * time.Hour)) {
		t.Fatalf("last seen = %v", s.LastSeen)
	}
}
