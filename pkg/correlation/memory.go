package correlation

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is a process-local Store for tests and single-node runs
// without Redis. Same key scoping and TTL behavior, no durability.
type MemoryStore struct {
	mu      sync.Mutex
	values  *gocache.Cache
	history map[string][]string
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		values:  gocache.New(ttl, 10*time.Minute),
		history: make(map[string][]string),
	}
}

func (s *MemoryStore) GetJSON(_ context.Context, sessionID, transactionID, key string, out any) (bool, error) {
	raw, found := s.values.Get(valueKey(sessionID, transactionID, key))
	if !found {
		return false, nil
	}
	return true, json.Unmarshal(raw.([]byte), out)
}

func (s *MemoryStore) SetJSON(_ context.Context, sessionID, transactionID, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values.Set(valueKey(sessionID, transactionID, key), raw, gocache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) AppendTransactionID(_ context.Context, sessionID, flowID, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := historyKey(sessionID, flowID)
	for _, id := range s.history[k] {
		if id == transactionID {
			return nil
		}
	}
	s.history[k] = append(s.history[k], transactionID)
	return nil
}

func (s *MemoryStore) TransactionIDs(_ context.Context, sessionID, flowID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := historyKey(sessionID, flowID)
	out := make([]string, len(s.history[k]))
	copy(out, s.history[k])
	return out, nil
}

// Reset clears all state. Test helper.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values.Flush()
	s.history = make(map[string][]string)
}
