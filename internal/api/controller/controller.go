package controller

import (
	"context"
	"net/http"
	"time"

	"rto-workers/internal/models"

	"github.com/labstack/echo/v4"
)

// ProviderCatalog is satisfied by *catalog.Catalog.
type ProviderCatalog interface {
	Providers() []models.Provider
	Get(id string) (models.Provider, bool)
	Len() int
	Source() string
	LoadedAt() time.Time
	CoveredRegions() []string
}

// MatchObserver is implemented by *observability.Observability.
type MatchObserver interface {
	RecordMatch(ctx context.Context, channel string, noMatch bool)
}

type Controller struct {
	catalog   ProviderCatalog
	observer  MatchObserver
	runnersUp int
}

// NewController builds the handlers. observer may be nil.
func NewController(catalog ProviderCatalog, observer MatchObserver, runnersUp int) *Controller {
	return &Controller{catalog: catalog, observer: observer, runnersUp: runnersUp}
}

func (c *Controller) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"providers": c.catalog.Len(),
		"source":    c.catalog.Source(),
		"loadedAt":  c.catalog.LoadedAt().UTC().Format(time.RFC3339),
	})
}
