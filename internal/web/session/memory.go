package session

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// cleanupInterval of expired in-memory sessions.
const cleanupInterval = time.Minute

// MemoryStorage keeps sessions in process memory. Sessions are lost on restart.
type MemoryStorage struct {
	cache *cache.Cache
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{cache: cache.New(cache.NoExpiration, cleanupInterval)}
}

// Get implements Storage.
func (s *MemoryStorage) Get(key string) ([]byte, error) {
	v, found := s.cache.Get(key)
	if !found {
		return nil, nil
	}

	b, _ := v.([]byte)

	return b, nil
}

// Set implements Storage.
func (s *MemoryStorage) Set(key string, val []byte, exp time.Duration) error {
	if exp <= 0 {
		exp = cache.NoExpiration
	}

	buf := make([]byte, len(val))
	copy(buf, val)

	s.cache.Set(key, buf, exp)

	return nil
}

// Delete implements Storage.
func (s *MemoryStorage) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}
