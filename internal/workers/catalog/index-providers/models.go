package indexproviders

import "rto-workers/internal/models"

type Input struct {
	IndexName string `json:"indexName,omitempty"`
}

type Output struct {
	IndexName string   `json:"indexName"`
	Indexed   int      `json:"indexed"`
	Failed    int      `json:"failed"`
	TookMs    int64    `json:"tookMs"`
	Errors    []string `json:"errors,omitempty"`
}

// ProviderCatalog is satisfied by *catalog.Catalog.
type ProviderCatalog interface {
	Providers() []models.Provider
}

// providerDocument is the search-side shape of a provider. Region and mode
// flags are denormalised so site search can filter without scripts.
type providerDocument struct {
	models.Provider
	National  bool `json:"national"`
	Sponsored bool `json:"sponsored"`
	Blended   bool `json:"blended"`
	HasPrice  bool `json:"hasPrice"`
}

type bulkResponse struct {
	Took   int64 `json:"took"`
	Errors bool  `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}
