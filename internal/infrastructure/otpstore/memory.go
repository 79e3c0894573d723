package otpstore

import (
	"context"
	"sync"
	"time"

	"github.com/notes-api-nosql/internal/domain"
)

// Memory is the in-process Store. A single mutex guards the map; contention
// is low because entries are touched a handful of times per login.
type Memory struct {
	mu    sync.Mutex
	ttl   time.Duration
	codes map[string]domain.PendingOTP
}

// NewMemory creates an in-memory store whose entries live for ttl.
// A background sweep evicts expired entries that were never verified.
func NewMemory(ttl time.Duration) *Memory {
	m := &Memory{
		ttl:   ttl,
		codes: make(map[string]domain.PendingOTP),
	}
	go m.sweep()
	return m
}

func (m *Memory) Store(_ context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email] = domain.PendingOTP{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

func (m *Memory) Verify(_ context.Context, email, candidate string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.codes[email]
	if !ok {
		return false, nil
	}
	if p.Expired(time.Now()) {
		delete(m.codes, email)
		return false, nil
	}
	return p.Code == candidate, nil
}

func (m *Memory) Clear(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, email)
	return nil
}

// sweep removes expired entries once a minute so abandoned requests
// don't accumulate. Correctness doesn't depend on it; Verify already
// evicts lazily.
func (m *Memory) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		m.mu.Lock()
		for email, p := range m.codes {
			if p.Expired(now) {
				delete(m.codes, email)
			}
		}
		m.mu.Unlock()
	}
}
