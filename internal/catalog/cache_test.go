package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"rto-workers/internal/common/config"
	apperrors "rto-workers/internal/common/errors"
	"rto-workers/internal/common/logger"
	"rto-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCacheKey = "catalog:snapshot:v1"

func TestCachedSource_MissThenHit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	origin := &stubSource{providers: SeedProviders()}
	src := NewCachedSource(origin, client, testCacheKey, 5*time.Minute, logger.NewTestLogger(t))

	first, err := Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, origin.calls)
	assert.True(t, mr.Exists(testCacheKey))
	assert.Equal(t, 5*time.Minute, mr.TTL(testCacheKey))

	second, err := Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, origin.calls, "second load should be served from redis")
	assert.Equal(t, first.Providers(), second.Providers())
	assert.Equal(t, "stub", second.Source())

	require.NoError(t, src.Invalidate(context.Background()))
	assert.False(t, mr.Exists(testCacheKey))

	_, err = Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, origin.calls)
}

func TestCachedSource_CorruptEntryFallsBack(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set(testCacheKey, "not json"))
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	origin := &stubSource{providers: SeedProviders()}
	src := NewCachedSource(origin, client, testCacheKey, time.Minute, logger.NewTestLogger(t))

	providers, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, providers, 10)
	assert.Equal(t, 1, origin.calls)

	cached, err := mr.Get(testCacheKey)
	require.NoError(t, err)
	assert.NotEqual(t, "not json", cached, "origin result should overwrite the corrupt entry")
}

func TestCachedSource_RedisDown(t *testing.T) {
	client, mock := redismock.NewClientMock()

	providers := SeedProviders()
	raw, err := json.Marshal(providers)
	require.NoError(t, err)

	mock.ExpectGet(testCacheKey).SetErr(errors.New("dial tcp: connection refused"))
	mock.ExpectSet(testCacheKey, raw, time.Minute).SetErr(errors.New("dial tcp: connection refused"))

	origin := &stubSource{providers: providers}
	src := NewCachedSource(origin, client, testCacheKey, time.Minute, logger.NewNoOpLogger())

	got, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, providers, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedSource_OriginErrorIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	src := NewCachedSource(&stubSource{err: errors.New("boom")}, client, testCacheKey, time.Minute, logger.NewNoOpLogger())
	_, err := src.Load(context.Background())
	assert.Error(t, err)
	assert.False(t, mr.Exists(testCacheKey))
}

func TestCachedSource_InvalidOriginIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	origin := &stubSource{providers: []models.Provider{}}
	src := NewCachedSource(origin, client, testCacheKey, 5*time.Minute, logger.NewTestLogger(t))

	_, err := Load(context.Background(), src)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogEmpty))
	assert.False(t, mr.Exists(testCacheKey))

	origin.providers = SeedProviders()
	cat, err := Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 10, cat.Len())
	assert.Equal(t, 2, origin.calls)
	assert.True(t, mr.Exists(testCacheKey))
}

func TestCachedSource_InvalidEntryIsDropped(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set(testCacheKey, "[]"))
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	origin := &stubSource{providers: SeedProviders()}
	src := NewCachedSource(origin, client, testCacheKey, time.Minute, logger.NewTestLogger(t))

	cat, err := Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 10, cat.Len())
	assert.Equal(t, 1, origin.calls)

	cached, err := mr.Get(testCacheKey)
	require.NoError(t, err)
	assert.NotEqual(t, "[]", cached)
}

func TestNewSource(t *testing.T) {
	log := logger.NewNoOpLogger()

	src, err := NewSource(config.CatalogConfig{Source: config.CatalogSourceSeed}, Deps{}, log)
	require.NoError(t, err)
	assert.IsType(t, SeedSource{}, src)

	src, err = NewSource(config.CatalogConfig{Source: config.CatalogSourceFile, FilePath: "x.json"}, Deps{}, log)
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, src)

	_, err = NewSource(config.CatalogConfig{Source: config.CatalogSourcePostgres, Table: "training_providers"}, Deps{}, log)
	assert.Error(t, err)

	_, err = NewSource(config.CatalogConfig{Source: config.CatalogSourceSeed, CacheTTL: 60}, Deps{}, log)
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	src, err = NewSource(config.CatalogConfig{Source: config.CatalogSourceSeed, CacheTTL: 60, CacheKey: testCacheKey}, Deps{Redis: client}, log)
	require.NoError(t, err)
	assert.IsType(t, &CachedSource{}, src)

	_, err = NewSource(config.CatalogConfig{Source: "s3"}, Deps{}, log)
	assert.Error(t, err)
}
