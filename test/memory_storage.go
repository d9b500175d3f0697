package test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beautifulplanet/safetyserv/storage"
)

var SimulatedError = errors.New("simulated error")

// ErrorVideoId - Analyses with this video id always error out of storage.
const ErrorVideoId = "ERROR"

type MemoryStorage struct {
	t        *testing.T
	mu       sync.Mutex
	analyses map[string]*storage.StoredAnalysis
	quota    map[string]int
}

func NewMemoryStorage(t *testing.T) *MemoryStorage {
	return &MemoryStorage{
		t:        t,
		analyses: make(map[string]*storage.StoredAnalysis),
		quota:    make(map[string]int),
	}
}

func (m *MemoryStorage) Close() error {
	// no-op
	return nil
}

func (m *MemoryStorage) GetAnalysis(ctx context.Context, videoId string) (*storage.StoredAnalysis, error) {
	assert.NotNil(m.t, ctx, "context is required")

	if videoId == ErrorVideoId {
		return nil, SimulatedError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.analyses[videoId], nil
}

func (m *MemoryStorage) UpsertAnalysis(ctx context.Context, record *storage.StoredAnalysis) error {
	assert.NotNil(m.t, ctx, "context is required")

	if record.VideoId == ErrorVideoId {
		return SimulatedError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses[record.VideoId] = record
	return nil
}

func (m *MemoryStorage) DeleteAnalysis(ctx context.Context, videoId string) error {
	assert.NotNil(m.t, ctx, "context is required")

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.analyses, videoId)
	return nil
}

func (m *MemoryStorage) AddQuotaUsage(ctx context.Context, day string, units int) (int, error) {
	assert.NotNil(m.t, ctx, "context is required")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.quota[day] += units
	return m.quota[day], nil
}

func (m *MemoryStorage) GetQuotaUsage(ctx context.Context, day string) (int, error) {
	assert.NotNil(m.t, ctx, "context is required")

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quota[day], nil
}
