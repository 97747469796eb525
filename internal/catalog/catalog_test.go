package catalog

import (
	"context"
	"errors"
	"testing"

	apperrors "rto-workers/internal/common/errors"
	"rto-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	providers []models.Provider
	err       error
	calls     int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(_ context.Context) ([]models.Provider, error) {
	s.calls++
	return s.providers, s.err
}

func validProvider(id string) models.Provider {
	return models.Provider{
		ID:            id,
		Name:          "Provider " + id,
		Rating:        8.5,
		DeliveryModes: []models.DeliveryMode{models.DeliveryOnline},
		Regions:       []string{"NSW"},
	}
}

func TestLoad_Seed(t *testing.T) {
	cat, err := Load(context.Background(), SeedSource{})
	require.NoError(t, err)

	assert.Equal(t, 10, cat.Len())
	assert.Equal(t, "seed", cat.Source())
	assert.False(t, cat.LoadedAt().IsZero())

	sponsored, ok := cat.Get("10")
	require.True(t, ok)
	assert.True(t, sponsored.IsSponsored())
	assert.NotContains(t, sponsored.Name, models.LegacySponsoredMarker)

	assert.Equal(t, models.Regions, cat.CoveredRegions())
}

func TestLoad_WrapsPlainSourceErrors(t *testing.T) {
	_, err := Load(context.Background(), &stubSource{err: errors.New("boom")})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogLoadFailed))
}

func TestLoad_KeepsCodedSourceErrors(t *testing.T) {
	src := &stubSource{err: apperrors.NewQueryExecutionFailedError("load_catalog", errors.New("syntax"))}
	_, err := Load(context.Background(), src)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeQueryExecutionFailed))
}

func TestNew_Empty(t *testing.T) {
	_, err := New("stub", nil)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogEmpty))
}

func TestNew_RejectsInvalidEntries(t *testing.T) {
	negative := validProvider("neg")
	negative.Price = models.PriceOf(-1)

	noModes := validProvider("modes")
	noModes.DeliveryModes = nil

	badMode := validProvider("bad-mode")
	badMode.DeliveryModes = []models.DeliveryMode{"carrier-pigeon"}

	noRegions := validProvider("regions")
	noRegions.Regions = nil

	rating := validProvider("rating")
	rating.Rating = 10.5

	abroad := validProvider("abroad")
	abroad.Regions = []string{"NZ"}

	badURL := validProvider("url")
	badURL.DetailURL = "cpp41419.com/providers/url"

	tests := []struct {
		name    string
		in      []models.Provider
		wantMsg string
	}{
		{"duplicate id", []models.Provider{validProvider("1"), validProvider("1")}, "duplicate id"},
		{"missing id", []models.Provider{validProvider("")}, "id is required"},
		{"negative price", []models.Provider{negative}, "price must not be negative"},
		{"no delivery modes", []models.Provider{noModes}, "delivery mode is required"},
		{"unknown delivery mode", []models.Provider{badMode}, "unknown delivery mode"},
		{"no regions", []models.Provider{noRegions}, "region is required"},
		{"rating out of range", []models.Provider{rating}, "outside 0-10"},
		{"unknown region", []models.Provider{abroad}, "unknown region"},
		{"relative detail url", []models.Provider{badURL}, "not an http(s) URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("stub", tt.in)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogInvalid))
			assert.Contains(t, apperrors.AsStandardError(err).Details, tt.wantMsg)
		})
	}
}

func TestNormalize(t *testing.T) {
	p := validProvider(" 7 ")
	p.Name = "Acme College (Sponsored)"
	p.Regions = []string{"vic", " all "}
	p.DeliveryModes = []models.DeliveryMode{"Blended"}

	n := Normalize(p)

	assert.Equal(t, "7", n.ID)
	assert.Equal(t, "Acme College", n.Name)
	assert.Equal(t, models.SponsorshipSponsored, n.Sponsorship)
	assert.Equal(t, []string{"VIC", models.RegionAll}, n.Regions)
	assert.Equal(t, []models.DeliveryMode{models.DeliveryBlended}, n.DeliveryModes)
	assert.NotNil(t, n.Features)

	assert.Equal(t, []string{"vic", " all "}, p.Regions, "input must not be modified")
	assert.Equal(t, models.SponsorshipNone, Normalize(validProvider("x")).Sponsorship)
}

func TestCatalog_ProvidersIsACopy(t *testing.T) {
	cat, err := New("stub", []models.Provider{validProvider("1")})
	require.NoError(t, err)

	ps := cat.Providers()
	ps[0].Regions[0] = "WA"
	ps[0].Name = "mutated"

	fresh, _ := cat.Get("1")
	assert.Equal(t, "NSW", fresh.Regions[0])
	assert.Equal(t, "Provider 1", fresh.Name)

	_, ok := cat.Get("missing")
	assert.False(t, ok)
}

func TestCatalog_CoveredRegions(t *testing.T) {
	a := validProvider("a")
	b := validProvider("b")
	b.Regions = []string{"TAS", "SA"}

	cat, err := New("stub", []models.Provider{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{"NSW", "SA", "TAS"}, cat.CoveredRegions())
}
