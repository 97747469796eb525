package catalog

import (
	"context"

	"rto-workers/internal/models"
)

// SeedSource serves the compiled-in catalog. It is the default source and the
// fallback for local development.
type SeedSource struct{}

func (SeedSource) Name() string { return "seed" }

func (SeedSource) Load(_ context.Context) ([]models.Provider, error) {
	return SeedProviders(), nil
}

// SeedProviders returns a fresh copy of the compiled-in providers.
func SeedProviders() []models.Provider {
	out := make([]models.Provider, len(seedProviders))
	for i, p := range seedProviders {
		out[i] = p.Clone()
	}
	return out
}

const guideBase = "https://cpp41419.com/providers/"

var seedProviders = []models.Provider{
	{
		ID:            "1",
		Name:          "National Real Estate College",
		Description:   "National online real estate training with flexible study options and full learner support.",
		Rating:        9.5,
		DeliveryModes: []models.DeliveryMode{models.DeliveryOnline, models.DeliveryBlended},
		Regions:       []string{models.RegionAll},
		Features:      []string{"24/7 Online Access", "Dedicated Tutors", "Industry Connections", "Payment Plans Available"},
		DetailURL:     guideBase + "national-real-estate-college",
		Price:         models.PriceOf(1895),
		Duration:      "4-6 months",
		Sponsorship:   models.SponsorshipNone,
	},
	{
		ID:            "2",
		Name:          "NSW Property Academy",
		Description:   "NSW licensing specialists running in-person workshops backed by local market knowledge.",
		Rating:        9.2,
		DeliveryModes: []models.DeliveryMode{models.DeliveryInPerson, models.DeliveryBlended},
		Regions:       []string{"NSW"},
		Features:      []string{"Face-to-Face Workshops", "NSW Specific Content", "Job Placement Assistance", "Small Class Sizes"},
		DetailURL:     guideBase + "nsw-property-academy",
		Price:         models.PriceOf(2200),
		Duration:      "6 months",
		Sponsorship:   models.SponsorshipNone,
	},
	{
		ID:            "3",
		Name:          "VIC Real Estate Institute",
		Description:   "Industry body training for Victoria, kept current with compliance requirements.",
		Rating:        9.0,
		DeliveryModes: []models.DeliveryMode{models.DeliveryBlended, models.DeliveryInPerson},
		Regions:       []string{"VIC"},
		Features:      []string{"Industry Body Endorsed", "VIC Licensing Experts", "Networking Events", "CPD Pathways"},
		DetailURL:     guideBase + "vic-real-estate-institute",
		Price:         models.PriceOf(2450),
		Duration:      "5-7 months",
		Sponsorship:   models.SponsorshipNone,
	},
	{
		ID:            "4",
		Name:          "QLD Online Training Pros",
		Description:   "Low-cost online CPP41419 for Queensland learners who want to get licensed quickly.",
		Rating:        8.8,
		DeliveryModes: []models.DeliveryMode{models.DeliveryOnline},
		Regions:       []string{"QLD"},
		Features:      []string{"Fast Track Option", "Lowest Price Guarantee", "QLD Specific Modules", "Easy Online Platform"},
		DetailURL:     guideBase + "qld-online-training-pros",
		Price:         models.PriceOf(1495),
		Duration:      "3-5 months",
		Sponsorship:   models.SponsorshipNone,
	},
	{
		ID:            "5",
		Name:          "WA Property Experts",
		Description:   "Real estate qualifications for Western Australia with local mentors.",
		Rating:        8.9,
		DeliveryModes: []models.DeliveryMode{models.DeliveryBlended, models.DeliveryOnline},
		Regions:       []string{"WA"},
		Features:      []string{"WA Market Focus", "Local Mentors", "Flexible Online Portal", "Triennial Certificate Support"},
		DetailURL:     guideBase + "wa-property-experts",
		Price:         models.PriceOf(1999),
		Duration:      "4-6 months",
		Sponsorship:   models.SponsorshipNone,
	},
	{
		ID:            "6",
		Name:          "SA Real Estate Hub",
		Description:   "Entry to advanced training for South Australian real estate professionals.",
		Rating:        9.1,
		DeliveryModes: []models.DeliveryMode{models.DeliveryOnline, models.DeliveryBlended},
		Regions:       []string{"SA"},
		Features:      []string{"SA Licensing Pathway Expertise", "Industry Networking", "Small Group Workshops", "Career Support"},
		DetailURL:     guideBase + "sa-real-estate-hub",
		Price:         models.PriceOf(2100),
		Duration:      "5-7 months",
		Sponsorship:   models.SponsorshipNone,
	},
	{
		ID:            "7",
		Name:          "Tasmanian Training Co.",
		Description:   "Training focused on the Tasmanian property market with personal support.",
		Rating:        8.7,
		DeliveryModes: []models.DeliveryMode{models.DeliveryBlended, models.DeliveryInPerson},
		Regions:       []string{"TAS"},
		Features:      []string{"Local TAS Knowledge", "Government Funding Links", "Supportive Learning Environment", "Job Assistance"},
		DetailURL:     guideBase + "tasmanian-training-co",
		Price:         models.PriceOf(1950),
		Duration:      "6-8 months",
		Sponsorship:   models.SponsorshipNone,
	},
	{
		ID:            "8",
		Name:          "ACT & Capital Region College",
		Description:   "ACT real estate courses covering the territory's leasehold system.",
		Rating:        8.9,
		DeliveryModes: []models.DeliveryMode{models.DeliveryOnline, models.DeliveryBlended},
		Regions:       []string{"ACT"},
		Features:      []string{"ACT Leasehold Expertise", "Government Sector Links", "Flexible Study Options", "Modern Curriculum"},
		DetailURL:     guideBase + "act-capital-region-college",
		Price:         models.PriceOf(2150),
		Duration:      "4-6 months",
		Sponsorship:   models.SponsorshipNone,
	},
	{
		ID:            "9",
		Name:          "NT Property Training Solutions",
		Description:   "Northern Territory real estate training, including support for remote learners.",
		Rating:        8.6,
		DeliveryModes: []models.DeliveryMode{models.DeliveryOnline, models.DeliveryBlended},
		Regions:       []string{"NT"},
		Features:      []string{"NT Specific Content", "Remote Learning Support", "Cultural Awareness Training", "Experienced Local Trainers"},
		DetailURL:     guideBase + "nt-property-training-solutions",
		Price:         models.PriceOf(2300),
		Duration:      "5-7 months",
		Sponsorship:   models.SponsorshipNone,
	},
	{
		ID:            "10",
		Name:          "Universal Property College",
		Description:   "Australia-wide premium RTO offering online and blended learning with industry partnerships.",
		Rating:        9.8,
		DeliveryModes: []models.DeliveryMode{models.DeliveryOnline, models.DeliveryBlended},
		Regions:       []string{models.RegionAll},
		Features:      []string{"Fast-Track Options", "Guaranteed Work Experience Interviews", "Advanced Digital Marketing Modules", "Lifetime Career Support", "AI-Powered Learning Tools"},
		DetailURL:     "https://realestatesuccess.edu.au/",
		Price:         models.PriceOf(2750),
		Duration:      "3-6 months (flexible)",
		Sponsorship:   models.SponsorshipSponsored,
	},
}
