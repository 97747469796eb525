// internal/models/provider.go
package models

import "strings"

// DeliveryMode is how a provider offers coursework.
type DeliveryMode string

const (
	DeliveryOnline   DeliveryMode = "online"
	DeliveryInPerson DeliveryMode = "in-person"
	DeliveryBlended  DeliveryMode = "blended"
)

// DeliveryModes is the closed set of modes a catalog entry may list.
var DeliveryModes = []DeliveryMode{DeliveryOnline, DeliveryInPerson, DeliveryBlended}

// SelectableDeliveryModes are the modes a learner can ask for. Blended is a
// catalog-side mode only.
var SelectableDeliveryModes = []DeliveryMode{DeliveryOnline, DeliveryInPerson}

// ParseDeliveryMode normalises case and surrounding space. ok is false for
// anything outside DeliveryModes.
func ParseDeliveryMode(s string) (DeliveryMode, bool) {
	m := DeliveryMode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range DeliveryModes {
		if m == known {
			return m, true
		}
	}
	return m, false
}

// RegionAll is the catalog sentinel for a provider that serves every region.
const RegionAll = "All"

// Australian states and territories, in the order the quiz lists them.
var Regions = []string{"NSW", "VIC", "QLD", "SA", "WA", "TAS", "NT", "ACT"}

// NormalizeRegion upper-cases a region code. The sentinel keeps its canonical
// spelling whatever case it arrives in.
func NormalizeRegion(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, RegionAll) {
		return RegionAll
	}
	return strings.ToUpper(s)
}

// IsKnownRegion reports whether code is one of Regions after normalisation.
func IsKnownRegion(code string) bool {
	code = NormalizeRegion(code)
	for _, r := range Regions {
		if r == code {
			return true
		}
	}
	return false
}

// SponsorshipTier marks paid placement. It is deliberately independent of the
// display name.
type SponsorshipTier string

const (
	SponsorshipNone      SponsorshipTier = "none"
	SponsorshipSponsored SponsorshipTier = "sponsored"
)

// LegacySponsoredMarker is the name suffix older catalog exports used to flag
// sponsorship. Loaders convert it into SponsorshipSponsored.
const LegacySponsoredMarker = "(Sponsored)"

// Provider is one Registered Training Organisation in the catalog.
type Provider struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Rating        float64         `json:"rating"`
	DeliveryModes []DeliveryMode  `json:"deliveryModes"`
	Regions       []string        `json:"regions"`
	Features      []string        `json:"features"`
	DetailURL     string          `json:"detailUrl"`
	Price         *float64        `json:"price,omitempty"`
	Duration      string          `json:"duration,omitempty"`
	Sponsorship   SponsorshipTier `json:"sponsorshipTier,omitempty"`
}

// IsSponsored reports whether the provider is pinned ahead of unsponsored ones.
func (p Provider) IsSponsored() bool {
	return p.Sponsorship == SponsorshipSponsored
}

// HasDeliveryMode reports whether p lists mode.
func (p Provider) HasDeliveryMode(mode DeliveryMode) bool {
	for _, m := range p.DeliveryModes {
		if m == mode {
			return true
		}
	}
	return false
}

// HasRegion reports whether p lists the region code verbatim.
func (p Provider) HasRegion(code string) bool {
	for _, r := range p.Regions {
		if r == code {
			return true
		}
	}
	return false
}

// IsNational reports whether p serves every region.
func (p Provider) IsNational() bool {
	return p.HasRegion(RegionAll)
}

// Clone returns a deep copy so callers cannot mutate catalog slices.
func (p Provider) Clone() Provider {
	c := p
	c.DeliveryModes = append([]DeliveryMode(nil), p.DeliveryModes...)
	c.Regions = append([]string(nil), p.Regions...)
	c.Features = append([]string(nil), p.Features...)
	if p.Price != nil {
		price := *p.Price
		c.Price = &price
	}
	return c
}

// PriceOf returns a pointer to v, for literal catalog entries.
func PriceOf(v float64) *float64 {
	return &v
}
