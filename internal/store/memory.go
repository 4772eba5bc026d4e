package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"trendmindAPI/internal/types/post"
)

// MemoryStore keeps slots in process memory. Used for local development
// and tests.
type MemoryStore struct {
	mu     sync.Mutex
	slots  map[string][]byte
	logger *zap.Logger
}

func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		slots:  make(map[string][]byte),
		logger: logger.Named("memory_store"),
	}
}

func (s *MemoryStore) Load(ctx context.Context, owner string) ([]*post.ScheduledPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.slots[slotKey(owner)]
	if !ok {
		s.slots[slotKey(owner)] = []byte("[]")
		return []*post.ScheduledPost{}, nil
	}
	return decodeSlot(data, s.logger, owner)
}

func (s *MemoryStore) Append(ctx context.Context, owner string, p *post.ScheduledPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := appendToSlot(s.slots[slotKey(owner)], p)
	if err != nil {
		return err
	}
	s.slots[slotKey(owner)] = next
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, slotKey(owner))
	return nil
}

// Raw returns the stored bytes of a slot.
func (s *MemoryStore) Raw(owner string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.slots[slotKey(owner)]
	return data, ok
}

// Put overwrites a slot with raw bytes.
func (s *MemoryStore) Put(owner string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[slotKey(owner)] = data
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
