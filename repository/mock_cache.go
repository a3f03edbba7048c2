package repository

import (
	"context"
	"errors"
	"sync"
)

var ErrMockCacheFailure = errors.New("mock cache failure")

type MockCache struct {
	mu        sync.Mutex
	Data      map[string]string
	Gets      int
	Sets      int
	FailOnSet bool
}

func NewMockCache() *MockCache {
	return &MockCache{
		Data: make(map[string]string),
	}
}

func (m *MockCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	if m.FailOnSet {
		return ErrMockCacheFailure
	}
	m.Data[key] = value
	return nil
}
