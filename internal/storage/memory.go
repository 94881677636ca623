package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps encoded documents in memory. Data is lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func memoryKey(learnerID string, kind Kind) string {
	return learnerID + "/" + string(kind)
}

func (s *MemoryStore) Load(ctx context.Context, learnerID string, kind Kind, dst any) (bool, error) {
	if err := ValidateLearnerID(learnerID); err != nil {
		return false, err
	}

	s.mu.RLock()
	data, ok := s.docs[memoryKey(learnerID, kind)]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	return decodeDocument(data, learnerID, kind, dst), nil
}

func (s *MemoryStore) Save(ctx context.Context, learnerID string, kind Kind, v any) error {
	if err := ValidateLearnerID(learnerID); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", kind, err)
	}

	s.mu.Lock()
	s.docs[memoryKey(learnerID, kind)] = data
	s.mu.Unlock()
	return nil
}

// SaveRaw stores bytes verbatim, bypassing encoding.
func (s *MemoryStore) SaveRaw(learnerID string, kind Kind, data []byte) {
	s.mu.Lock()
	s.docs[memoryKey(learnerID, kind)] = data
	s.mu.Unlock()
}

func (s *MemoryStore) Close() error {
	return nil
}
