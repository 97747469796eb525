package catalog

import (
	"database/sql"
	"fmt"

	"rto-workers/internal/common/config"
	"rto-workers/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// Deps carries the connections a configured source may need. Nil entries are
// fine when the configuration does not use them.
type Deps struct {
	Postgres *sql.DB
	Redis    redis.Cmdable
}

// NewSource builds the source selected by cfg, wrapped in the Redis snapshot
// cache when a TTL is configured.
func NewSource(cfg config.CatalogConfig, deps Deps, log logger.Logger) (Source, error) {
	var src Source

	switch cfg.Source {
	case config.CatalogSourceSeed, "":
		src = SeedSource{}
	case config.CatalogSourceFile:
		src = NewFileSource(cfg.FilePath)
	case config.CatalogSourcePostgres:
		if deps.Postgres == nil {
			return nil, fmt.Errorf("catalog source %q needs a postgres connection", cfg.Source)
		}
		pg, err := NewPostgresSource(deps.Postgres, cfg.Table)
		if err != nil {
			return nil, err
		}
		src = pg
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}

	if cfg.CacheTTL > 0 {
		if deps.Redis == nil {
			return nil, fmt.Errorf("catalog cache needs a redis connection")
		}
		src = NewCachedSource(src, deps.Redis, cfg.CacheKey, cfg.CacheDuration(), log)
	}

	return src, nil
}
