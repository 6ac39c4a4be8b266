// server/internal/dispatch/manager.go
package dispatch

import (
	"log"
	"sync"
	"time"
)

// SessionManager giữ các phiên quét đang mở, key là session ID.
// Phiên không được persist; phiên bỏ quên sẽ bị dọn sau idleTTL.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*managedSession
	idleTTL  time.Duration
}

type managedSession struct {
	session    *Session
	lastActive time.Time
}

func NewSessionManager(idleTTL time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*managedSession),
		idleTTL:  idleTTL,
	}
}

// Put đăng ký một phiên mới.
func (m *SessionManager) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &managedSession{session: s, lastActive: time.Now()}
}

// Get trả về phiên theo ID và làm mới thời gian hoạt động.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastActive = time.Now()
	return entry.session, true
}

// Delete hủy một phiên (xác nhận xong hoặc hủy bỏ).
func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// PruneIdle xóa các phiên không hoạt động quá idleTTL, trả về số phiên đã xóa.
func (m *SessionManager) PruneIdle() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-m.idleTTL)
	pruned := 0
	for id, entry := range m.sessions {
		if entry.lastActive.Before(cutoff) {
			delete(m.sessions, id)
			pruned++
		}
	}
	return pruned
}

// RunJanitor dọn phiên định kỳ; chạy trong một goroutine riêng từ main.
func (m *SessionManager) RunJanitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if n := m.PruneIdle(); n > 0 {
			log.Printf("Pruned %d idle dispatch session(s)", n)
		}
	}
}
