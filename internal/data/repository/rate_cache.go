package repository

import (
	"context"
	"errors"
	"time"

	"hotel-reservation/internal/data/entity"
	"hotel-reservation/pkg/cache"

	"go.uber.org/zap"
)

const rateCachePrefix = "rates:"

type cachedRateRepository struct {
	inner RateRepository
	cache cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewCachedRateRepository reads through the cache. Cache failures are logged
// and fall back to inner, they never fail a lookup.
func NewCachedRateRepository(inner RateRepository, c cache.Cache, ttl time.Duration, log *zap.Logger) RateRepository {
	return &cachedRateRepository{
		inner: inner,
		cache: c,
		ttl:   ttl,
		log:   log.With(zap.String("repository", "rate_cache")),
	}
}

func (r *cachedRateRepository) FindByRoomType(ctx context.Context, roomType string) ([]*entity.Rate, error) {
	key := rateCachePrefix + roomType

	var rates []*entity.Rate
	err := r.cache.Get(ctx, key, &rates)
	if err == nil {
		return rates, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		r.log.Warn("Rate cache read failed", zap.Error(err), zap.String("room_type", roomType))
	}

	rates, err = r.inner.FindByRoomType(ctx, roomType)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, rates, r.ttl); err != nil {
		r.log.Warn("Rate cache write failed", zap.Error(err), zap.String("room_type", roomType))
	}

	return rates, nil
}
