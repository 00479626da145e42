package sessions

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"

	"pgmaint/internal/models"
)

// MemoryStore keeps sessions in process memory. Expired records are invisible to
// Get immediately and are reclaimed by Sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*models.Session
	clock   clockwork.Clock
}

func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		records: make(map[string]*models.Session),
		clock:   clock,
	}
}

func (m *MemoryStore) Save(_ context.Context, s *models.Session) error {
	if err := checkSaveable(s); err != nil {
		return err
	}
	m.mu.Lock()
	m.records[Digest(s.Token)] = s.Clone()
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (*models.Session, error) {
	m.mu.RLock()
	rec, ok := m.records[Digest(token)]
	m.mu.RUnlock()

	if !ok || rec.ExpiredAt(m.clock.Now()) {
		return nil, ErrSessionNotFound
	}
	return rec.Clone(), nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.records, Digest(token))
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Len(_ context.Context) (int, error) {
	now := m.clock.Now()
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, rec := range m.records {
		if !rec.ExpiredAt(now) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Sweep removes expired records and reports how many were dropped.
func (m *MemoryStore) Sweep(_ context.Context) (int, error) {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, rec := range m.records {
		if rec.ExpiredAt(now) {
			delete(m.records, key)
			removed++
		}
	}
	return removed, nil
}
