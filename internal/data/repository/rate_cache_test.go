package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRateRepo struct {
	mock.Mock
}

func (m *MockRateRepo) FindByRoomType(ctx context.Context, roomType string) ([]*entity.Rate, error) {
	args := m.Called(ctx, roomType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Rate), args.Error(1)
}

// mapCache stores JSON like the redis cache so round trips are realistic.
type mapCache struct {
	data   map[string][]byte
	getErr error
	setErr error
	ttls   map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string, target any) error {
	if c.getErr != nil {
		return c.getErr
	}
	raw, ok := c.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, target)
}

func (c *mapCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	c.ttls[key] = ttl
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.data, key)
	}
	return nil
}

func sampleRates() []*entity.Rate {
	return []*entity.Rate{{
		ID:        uuid.New(),
		RoomType:  "STANDARD",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Price:     10000,
		CreatedAt: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
	}}
}

func TestCachedRateRepository_ReadsThrough(t *testing.T) {
	inner := new(MockRateRepo)
	c := newMapCache()
	rates := sampleRates()
	inner.On("FindByRoomType", mock.Anything, "STANDARD").Return(rates, nil).Once()

	repo := NewCachedRateRepository(inner, c, 10*time.Minute, zap.NewNop())

	first, err := repo.FindByRoomType(context.Background(), "STANDARD")
	require.NoError(t, err)
	second, err := repo.FindByRoomType(context.Background(), "STANDARD")
	require.NoError(t, err)

	assert.Equal(t, rates, first)
	require.Len(t, second, 1)
	assert.Equal(t, rates[0].Price, second[0].Price)
	assert.True(t, rates[0].StartDate.Equal(second[0].StartDate))
	assert.Equal(t, 10*time.Minute, c.ttls["rates:STANDARD"])
	inner.AssertExpectations(t)
}

func TestCachedRateRepository_CacheFailureFallsBack(t *testing.T) {
	inner := new(MockRateRepo)
	c := newMapCache()
	c.getErr = errors.New("redis: connection refused")
	c.setErr = errors.New("redis: connection refused")
	rates := sampleRates()
	inner.On("FindByRoomType", mock.Anything, "STANDARD").Return(rates, nil).Twice()

	repo := NewCachedRateRepository(inner, c, time.Minute, zap.NewNop())

	for i := 0; i < 2; i++ {
		got, err := repo.FindByRoomType(context.Background(), "STANDARD")
		require.NoError(t, err)
		assert.Equal(t, rates, got)
	}
	inner.AssertExpectations(t)
}

func TestCachedRateRepository_InnerErrorIsNotCached(t *testing.T) {
	inner := new(MockRateRepo)
	c := newMapCache()
	inner.On("FindByRoomType", mock.Anything, "SUITE").Return(nil, errors.New("db down")).Once()

	repo := NewCachedRateRepository(inner, c, time.Minute, zap.NewNop())

	_, err := repo.FindByRoomType(context.Background(), "SUITE")

	assert.Error(t, err)
	assert.Empty(t, c.data)
}
