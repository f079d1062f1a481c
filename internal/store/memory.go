package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store for tests and credential-less dev runs.
// Documents are kept as encoded JSON so callers never share memory with the
// store. A single mutex serializes transactions, which gives the same
// per-key atomicity the Firestore implementation provides.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte // collection -> key -> encoded doc
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, collection, key string, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(collection, key, out)
}

func (s *MemoryStore) Set(ctx context.Context, collection, key string, doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(collection, key, raw)
	return nil
}

func (s *MemoryStore) RunTransaction(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}

	// Commit: apply staged writes. Creates over existing documents fail the
	// whole transaction without applying anything.
	for _, w := range tx.writes {
		if _, err := s.lookupLocked(w.collection, w.key); err == nil {
			return fmt.Errorf("create %s/%s: document already exists", w.collection, w.key)
		}
	}
	for _, w := range tx.writes {
		s.setLocked(w.collection, w.key, w.raw)
	}
	return nil
}

// Len reports the number of documents in a collection.
func (s *MemoryStore) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs[collection])
}

func (s *MemoryStore) lookupLocked(collection, key string) ([]byte, error) {
	col, ok := s.docs[collection]
	if !ok {
		return nil, ErrNotFound
	}
	raw, ok := col[key]
	if !ok {
		return nil, ErrNotFound
	}
	return raw, nil
}

func (s *MemoryStore) getLocked(collection, key string, out interface{}) error {
	raw, err := s.lookupLocked(collection, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *MemoryStore) setLocked(collection, key string, raw []byte) {
	col, ok := s.docs[collection]
	if !ok {
		col = make(map[string][]byte)
		s.docs[collection] = col
	}
	col[key] = raw
}

type memoryWrite struct {
	collection string
	key        string
	raw        []byte
}

type memoryTx struct {
	store  *MemoryStore
	writes []memoryWrite
}

func (tx *memoryTx) Get(collection, key string, out interface{}) error {
	return tx.store.getLocked(collection, key, out)
}

func (tx *memoryTx) Create(collection, key string, doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	tx.writes = append(tx.writes, memoryWrite{collection: collection, key: key, raw: raw})
	return nil
}
