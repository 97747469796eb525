// Package catalog holds the read-only provider catalog and the sources it can
// be loaded from.
package catalog

import (
	"context"
	"fmt"
	"time"

	apperrors "rto-workers/internal/common/errors"
	"rto-workers/internal/models"
)

// Source produces the raw provider list. Implementations do not need to
// validate; Load does that for every source.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Provider, error)
}

// Catalog is an immutable snapshot of providers, seeded once per process.
type Catalog struct {
	providers []models.Provider
	byID      map[string]int
	source    string
	loadedAt  time.Time
}

// Load reads src, normalises and validates the entries, and freezes them.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	providers, err := src.Load(ctx)
	if err != nil {
		if apperrors.AsStandardError(err).Code != apperrors.ErrCodeInternal {
			return nil, err
		}
		return nil, apperrors.NewCatalogLoadFailedError(src.Name(), err)
	}
	return New(src.Name(), providers)
}

// New builds a catalog from an in-memory list.
func New(source string, providers []models.Provider) (*Catalog, error) {
	if len(providers) == 0 {
		return nil, apperrors.NewCatalogEmptyError(source)
	}

	normalized := make([]models.Provider, len(providers))
	for i, p := range providers {
		normalized[i] = Normalize(p)
	}

	if err := Validate(normalized); err != nil {
		return nil, apperrors.NewCatalogInvalidError(fmt.Sprintf("%s: %v", source, err))
	}

	byID := make(map[string]int, len(normalized))
	for i, p := range normalized {
		byID[p.ID] = i
	}

	return &Catalog{
		providers: normalized,
		byID:      byID,
		source:    source,
		loadedAt:  time.Now().UTC(),
	}, nil
}

// Providers returns a deep copy of the catalog in its canonical order.
func (c *Catalog) Providers() []models.Provider {
	out := make([]models.Provider, len(c.providers))
	for i, p := range c.providers {
		out[i] = p.Clone()
	}
	return out
}

// Get looks a provider up by id.
func (c *Catalog) Get(id string) (models.Provider, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Provider{}, false
	}
	return c.providers[i].Clone(), true
}

func (c *Catalog) Len() int {
	return len(c.providers)
}

func (c *Catalog) Source() string {
	return c.source
}

func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// CoveredRegions lists the quiz regions at least one provider serves.
func (c *Catalog) CoveredRegions() []string {
	var out []string
	for _, region := range models.Regions {
		for _, p := range c.providers {
			if p.IsNational() || p.HasRegion(region) {
				out = append(out, region)
				break
			}
		}
	}
	return out
}
