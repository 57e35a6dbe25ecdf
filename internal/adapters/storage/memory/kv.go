package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"ranch-roster/internal/domain/roster"
)

var ErrNotFound = errors.New("not found")

// kvStore implementa roster.Store sobre un map. Es el backend de tests y del
// modo sin DATA_PATH.
type kvStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewKV() roster.Store {
	return &kvStore{
		data: make(map[string]string),
	}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

func (s *kvStore) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0)
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}

	// orden ascendente estable, igual que el backend sqlite
	sort.Strings(out)
	return out, nil
}
