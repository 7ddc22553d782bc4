package repositories

import (
	"context"
	"sync"
)

func NewMemoryStorageRepository() *MemoryStorageRepository {
	return &MemoryStorageRepository{data: make(map[string]string)}
}

// MemoryStorageRepository is the in-process backend, used as the dev default
// and as the persistence double in tests. FailNext lets tests simulate an
// unavailable store.
type MemoryStorageRepository struct {
	mu       sync.RWMutex
	data     map[string]string
	failNext error
}

// FailNext makes the next operation return err once.
func (m *MemoryStorageRepository) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

func (m *MemoryStorageRepository) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *MemoryStorageRepository) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return "", false, err
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *MemoryStorageRepository) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStorageRepository) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryStorageRepository) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.data = make(map[string]string)
	return nil
}
