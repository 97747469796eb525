// Package matcher ranks training providers against a learner's quiz answers.
//
// Match is pure: it reads the catalog, never modifies it, and returns a fresh
// ranking. It is safe for concurrent use with a shared catalog.
package matcher

import (
	"math"
	"sort"
	"strings"

	"rto-workers/internal/models"
)

// DefaultRunnersUp is how many providers the quiz lists under the top match.
const DefaultRunnersUp = 2

// Match filters catalog to the providers compatible with q and orders them
// sponsored first, then by rating descending, then by price ascending. A query
// nothing satisfies yields an empty, non-nil ranking.
func Match(catalog []models.Provider, q models.Query) models.Ranking {
	mode := models.DeliveryMode(strings.ToLower(strings.TrimSpace(q.DeliveryPreference)))
	region := models.NormalizeRegion(q.Region)

	ranked := make(models.Ranking, 0, len(catalog))
	for _, p := range catalog {
		if SupportsDelivery(p, mode) && ServesRegion(p, region) {
			ranked = append(ranked, p.Clone())
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return Less(ranked[i], ranked[j])
	})

	return ranked
}

// IsUniversallyCompatible reports whether p offers blended delivery. Blended
// providers can accommodate online and in-person learners alike.
func IsUniversallyCompatible(p models.Provider) bool {
	return p.HasDeliveryMode(models.DeliveryBlended)
}

// SupportsDelivery reports whether p can serve a learner asking for mode.
func SupportsDelivery(p models.Provider, mode models.DeliveryMode) bool {
	return p.HasDeliveryMode(mode) || IsUniversallyCompatible(p)
}

// ServesRegion reports whether p operates in region or nationally. Both sides
// are compared in normalised form.
func ServesRegion(p models.Provider, region string) bool {
	region = models.NormalizeRegion(region)
	for _, r := range p.Regions {
		r = models.NormalizeRegion(r)
		if r == models.RegionAll || (region != "" && r == region) {
			return true
		}
	}
	return false
}

// Less is the ranking comparator: sponsorship pin, rating descending, then
// price ascending with a missing price ranked last.
func Less(a, b models.Provider) bool {
	if a.IsSponsored() != b.IsSponsored() {
		return a.IsSponsored()
	}
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	return effectivePrice(a) < effectivePrice(b)
}

func effectivePrice(p models.Provider) float64 {
	if p.Price == nil {
		return math.Inf(1)
	}
	return *p.Price
}

// Split returns the top match and up to runnersUp providers after it. top is
// nil for an empty ranking.
func Split(ranking models.Ranking, runnersUp int) (top *models.Provider, rest models.Ranking) {
	rest = models.Ranking{}
	if len(ranking) == 0 {
		return nil, rest
	}

	first := ranking[0]
	top = &first

	end := 1 + runnersUp
	if runnersUp < 0 {
		end = 1
	}
	if end > len(ranking) {
		end = len(ranking)
	}
	rest = append(rest, ranking[1:end]...)
	return top, rest
}

// Summarize runs Match and packages the result for display.
func Summarize(catalog []models.Provider, q models.Query, runnersUp int) models.MatchResult {
	ranking := Match(catalog, q)
	top, rest := Split(ranking, runnersUp)
	return models.MatchResult{
		Query:           q,
		RankedProviders: ranking,
		TopMatch:        top,
		RunnersUp:       rest,
		TotalMatches:    len(ranking),
		NoMatch:         len(ranking) == 0,
	}
}
