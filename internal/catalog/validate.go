package catalog

import (
	"errors"
	"fmt"
	"strings"

	"rto-workers/internal/common/validation"
	"rto-workers/internal/models"
)

// Normalize canonicalises one entry: region codes upper-cased, delivery modes
// lower-cased, and the legacy name marker turned into a sponsorship tier.
func Normalize(p models.Provider) models.Provider {
	p = p.Clone()
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)

	for i, r := range p.Regions {
		p.Regions[i] = models.NormalizeRegion(r)
	}
	for i, m := range p.DeliveryModes {
		p.DeliveryModes[i], _ = models.ParseDeliveryMode(string(m))
	}

	if strings.Contains(p.Name, models.LegacySponsoredMarker) {
		p.Name = strings.TrimSpace(strings.ReplaceAll(p.Name, models.LegacySponsoredMarker, ""))
		p.Sponsorship = models.SponsorshipSponsored
	}
	if p.Sponsorship == "" {
		p.Sponsorship = models.SponsorshipNone
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return p
}

// Validate checks every entry against the catalog invariants and reports all
// violations at once.
func Validate(providers []models.Provider) error {
	var errs []error
	seen := make(map[string]struct{}, len(providers))

	for i, p := range providers {
		at := fmt.Sprintf("providers[%d]", i)
		if p.ID != "" {
			at = fmt.Sprintf("provider %q", p.ID)
		}

		if p.ID == "" {
			errs = append(errs, fmt.Errorf("%s: id is required", at))
		} else if _, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate id", at))
		} else {
			seen[p.ID] = struct{}{}
		}

		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", at))
		}
		if p.Rating < 0 || p.Rating > 10 {
			errs = append(errs, fmt.Errorf("%s: rating %.1f outside 0-10", at, p.Rating))
		}

		if len(p.DeliveryModes) == 0 {
			errs = append(errs, fmt.Errorf("%s: at least one delivery mode is required", at))
		}
		for _, m := range p.DeliveryModes {
			if _, ok := models.ParseDeliveryMode(string(m)); !ok {
				errs = append(errs, fmt.Errorf("%s: unknown delivery mode %q", at, m))
			}
		}

		if len(p.Regions) == 0 {
			errs = append(errs, fmt.Errorf("%s: at least one region is required", at))
		}
		for _, r := range p.Regions {
			switch {
			case r == "":
				errs = append(errs, fmt.Errorf("%s: empty region code", at))
			case models.NormalizeRegion(r) != models.RegionAll && !models.IsKnownRegion(r):
				errs = append(errs, fmt.Errorf("%s: unknown region %q", at, r))
			}
		}

		if p.DetailURL != "" && !validation.ValidateURL(p.DetailURL) {
			errs = append(errs, fmt.Errorf("%s: detailUrl %q is not an http(s) URL", at, p.DetailURL))
		}

		if p.Price != nil && *p.Price < 0 {
			errs = append(errs, fmt.Errorf("%s: price must not be negative", at))
		}

		switch p.Sponsorship {
		case "", models.SponsorshipNone, models.SponsorshipSponsored:
		default:
			errs = append(errs, fmt.Errorf("%s: unknown sponsorship tier %q", at, p.Sponsorship))
		}
	}

	return errors.Join(errs...)
}
