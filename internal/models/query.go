// internal/models/query.go
package models

// Query is one learner's quiz answers. It lives for a single match call.
type Query struct {
	DeliveryPreference string `json:"deliveryPreference"`
	Region             string `json:"region"`
}

// Ranking is the ordered output of a match. An empty Ranking is the normal
// no-match outcome.
type Ranking []Provider

// IDs lists provider ids in ranked order.
func (r Ranking) IDs() []string {
	ids := make([]string, 0, len(r))
	for _, p := range r {
		ids = append(ids, p.ID)
	}
	return ids
}

// MatchResult is the display shape shared by the match worker and the quiz
// API: the top match highlighted, runners-up beneath it.
type MatchResult struct {
	Query           Query     `json:"query"`
	RankedProviders Ranking   `json:"rankedProviders"`
	TopMatch        *Provider `json:"topMatch"`
	RunnersUp       Ranking   `json:"runnersUp"`
	TotalMatches    int       `json:"totalMatches"`
	NoMatch         bool      `json:"noMatch"`
}
