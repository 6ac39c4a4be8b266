package dispatch

import (
	"testing"
	"time"
)

func TestSessionManagerLifecycle(t *testing.T) {
	m := NewSessionManager(time.Hour)

	sess := newTestSession(RequirementLine{ProductName: "Camera X", RequiredQty: 1})
	m.Put(sess)

	got, ok := m.Get(sess.ID)
	if !ok || got != sess {
		t.Fatalf("Get(%s) = %v, %v", sess.ID, got, ok)
	}
	if _, ok := m.Get("DS-UNKNOWN"); ok {
		t.Error("Get returned a session for unknown ID")
	}

	m.Delete(sess.ID)
	if _, ok := m.Get(sess.ID); ok {
		t.Error("session still present after Delete")
	}
}

func TestSessionManagerPruneIdle(t *testing.T) {
	m := NewSessionManager(time.Minute)

	stale := newTestSession(RequirementLine{ProductName: "Camera X", RequiredQty: 1})
	fresh := newTestSession(RequirementLine{ProductName: "Camera X", RequiredQty: 1})
	fresh.ID = "DS-FRESH001"
	m.Put(stale)
	m.Put(fresh)

	// Đẩy lùi thời gian hoạt động của phiên cũ thay vì sleep.
	m.mu.Lock()
	m.sessions[stale.ID].lastActive = time.Now().Add(-2 * time.Minute)
	m.mu.Unlock()

	if pruned := m.PruneIdle(); pruned != 1 {
		t.Fatalf("PruneIdle() = %d, want 1", pruned)
	}
	if _, ok := m.Get(stale.ID); ok {
		t.Error("stale session survived PruneIdle")
	}
	if _, ok := m.Get(fresh.ID); !ok {
		t.Error("fresh session was pruned")
	}
}

func TestSessionManagerGetRefreshesActivity(t *testing.T) {
	m := NewSessionManager(time.Minute)

	sess := newTestSession(RequirementLine{ProductName: "Camera X", RequiredQty: 1})
	m.Put(sess)

	m.mu.Lock()
	m.sessions[sess.ID].lastActive = time.Now().Add(-2 * time.Minute)
	m.mu.Unlock()

	// Get làm mới lastActive nên janitor không được dọn phiên này nữa.
	if _, ok := m.Get(sess.ID); !ok {
		t.Fatal("Get failed for existing session")
	}
	if pruned := m.PruneIdle(); pruned != 0 {
		t.Errorf("PruneIdle() = %d after Get, want 0", pruned)
	}
}
