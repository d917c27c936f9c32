package repository

import (
	"bytes"
	"context"
	"sync"
)

// MemoryStorage serve para testes e para rodar sem disco.
type MemoryStorage struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryStorage(initial []byte) *MemoryStorage {
	s := &MemoryStorage{}
	if initial != nil {
		s.data = bytes.Clone(initial)
	}
	return s
}

func (s *MemoryStorage) Name() string { return "memory" }

func (s *MemoryStorage) Read(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, ErrNoDataset
	}
	return bytes.Clone(s.data), nil
}

func (s *MemoryStorage) Write(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = bytes.Clone(data)
	if s.data == nil {
		s.data = []byte{}
	}
	return nil
}
