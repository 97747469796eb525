package matchproviders

import "rto-workers/internal/models"

type Input struct {
	DeliveryPreference string `json:"deliveryPreference"`
	Region             string `json:"region"`
}

type Output struct {
	RankedProviders models.Ranking   `json:"rankedProviders"`
	TopMatch        *models.Provider `json:"topMatch"`
	RunnersUp       models.Ranking   `json:"runnersUp"`
	TotalMatches    int              `json:"totalMatches"`
	NoMatch         bool             `json:"noMatch"`
}

// ProviderCatalog is satisfied by *catalog.Catalog.
type ProviderCatalog interface {
	Providers() []models.Provider
}
