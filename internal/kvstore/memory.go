package kvstore

import (
	"context"
	"encoding/json"
	"os"
	"sync"
)

// Memory — хранилище в памяти процесса.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Read(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Write(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
	return nil
}

func (s *Memory) Ping(context.Context) error { return nil }

// SeedFromFile загружает JSON-объект вида {"students": [...], ...}:
// каждое значение верхнего уровня сохраняется под своим ключом как есть.
func (s *Memory) SeedFromFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range top {
		s.m[k] = string(v)
	}
	return nil
}
