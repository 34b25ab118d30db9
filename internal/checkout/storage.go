package checkout

import (
	"fmt"
	"sync"
)

// Storage keys. One authoritative key per concern; the login flow owns "user".
const (
	KeyCart              = "cart"
	KeyPendingSnapshot   = "checkoutData"
	KeyProcessedSessions = "processedSessions"
	KeyUser              = "user"
)

// Storage is a durable string key-value store. The checkout flow persists its
// state through this interface so it can survive the external payment redirect
// and be unit-tested without a real storage backend.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// MalformedStateError reports a stored value that failed to parse into its
// expected shape. Callers must treat this as a hard failure, not default the
// value away.
type MalformedStateError struct {
	Key string
	Err error
}

func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("malformed state for key %q: %v", e.Key, e.Err)
}

func (e *MalformedStateError) Unwrap() error {
	return e.Err
}

// MemoryStorage is an in-memory Storage implementation, safe for concurrent use.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		data: make(map[string]string),
	}
}

// Get returns the value for key and whether it was present.
func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	return value, ok
}

// Set stores value under key.
func (s *MemoryStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
}

// Delete removes key.
func (s *MemoryStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
}

// StorageProvider hands out one Storage per user, so each customer's cart and
// checkout state are isolated. Concurrent mutation of a single user's storage
// from multiple sessions is a known hazard and is not locked against here.
type StorageProvider struct {
	mu     sync.Mutex
	stores map[string]*MemoryStorage
}

// NewStorageProvider creates an empty StorageProvider.
func NewStorageProvider() *StorageProvider {
	return &StorageProvider{
		stores: make(map[string]*MemoryStorage),
	}
}

// ForUser returns the Storage for the given user, creating it on first use.
// The user record key is seeded so the confirmation flow can tell an
// authenticated session from an anonymous one.
func (p *StorageProvider) ForUser(userID string) Storage {
	p.mu.Lock()
	defer p.mu.Unlock()

	store, ok := p.stores[userID]
	if !ok {
		store = NewMemoryStorage()
		store.Set(KeyUser, userID)
		p.stores[userID] = store
	}
	return store
}
