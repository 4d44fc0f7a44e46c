// Package mem keeps short-lived per-visitor state in process memory.
package mem

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Store is a typed wrapper around go-cache. Entries expire after the idle TTL;
// every Get refreshes the entry so screens in use are never dropped.
type Store[T any] struct {
	c   *cache.Cache
	ttl time.Duration
}

func NewStore[T any](idleTTL, cleanupInterval time.Duration) *Store[T] {
	return &Store[T]{
		c:   cache.New(idleTTL, cleanupInterval),
		ttl: idleTTL,
	}
}

func (s *Store[T]) Set(key string, value T) {
	s.c.Set(key, value, s.ttl)
}

// Get returns the value and slides its expiry forward.
func (s *Store[T]) Get(key string) (T, bool) {
	var zero T
	v, ok := s.c.Get(key)
	if !ok {
		return zero, false
	}
	value, ok := v.(T)
	if !ok {
		return zero, false
	}
	s.c.Set(key, value, s.ttl)
	return value, true
}

// GetOrSet returns the stored value, or stores and returns the one built by create.
func (s *Store[T]) GetOrSet(key string, create func() T) T {
	if v, ok := s.Get(key); ok {
		return v
	}
	value := create()
	if err := s.c.Add(key, value, s.ttl); err != nil {
		// lost a race with another Add; use the winner
		if v, ok := s.Get(key); ok {
			return v
		}
		s.Set(key, value)
	}
	return value
}

func (s *Store[T]) Delete(key string) {
	s.c.Delete(key)
}

func (s *Store[T]) Len() int {
	return s.c.ItemCount()
}
