package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"rto-workers/internal/common/logger"
	"rto-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

// CachedSource keeps a JSON snapshot of another source in Redis so that a
// fleet of workers does not hit the origin on every start. Redis failures
// degrade to reading the origin directly.
type CachedSource struct {
	next   Source
	client redis.Cmdable
	key    string
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(next Source, client redis.Cmdable, key string, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{
		next:   next,
		client: client,
		key:    key,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"cacheKey": key, "origin": next.Name()}),
	}
}

func (s *CachedSource) Name() string { return s.next.Name() }

func (s *CachedSource) Load(ctx context.Context) ([]models.Provider, error) {
	if providers, ok := s.fromCache(ctx); ok {
		return providers, nil
	}

	providers, err := s.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Only snapshots that build a valid catalog are cached.
	if _, err := New(s.Name(), providers); err != nil {
		s.logger.Warn("catalog snapshot not cached", map[string]interface{}{"error": err.Error()})
		return providers, nil
	}

	s.store(ctx, providers)
	return providers, nil
}

// Invalidate drops the snapshot so the next Load reads the origin.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

func (s *CachedSource) fromCache(ctx context.Context) ([]models.Provider, bool) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.logger.Debug("catalog cache miss", nil)
		return nil, false
	}
	if err != nil {
		s.logger.Warn("catalog cache read failed", map[string]interface{}{"error": err.Error()})
		return nil, false
	}

	var providers []models.Provider
	if err := json.Unmarshal(raw, &providers); err != nil {
		s.logger.Warn("catalog cache entry corrupt", map[string]interface{}{"error": err.Error()})
		return nil, false
	}

	if _, err := New(s.Name(), providers); err != nil {
		s.logger.Warn("catalog cache entry invalid, dropping it", map[string]interface{}{"error": err.Error()})
		if err := s.Invalidate(ctx); err != nil {
			s.logger.Warn("catalog cache invalidate failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, false
	}

	s.logger.Debug("catalog cache hit", map[string]interface{}{"providers": len(providers)})
	return providers, true
}

func (s *CachedSource) store(ctx context.Context, providers []models.Provider) {
	raw, err := json.Marshal(providers)
	if err != nil {
		s.logger.Warn("catalog cache encode failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.client.Set(ctx, s.key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("catalog cache write failed", map[string]interface{}{"error": err.Error()})
	}
}
