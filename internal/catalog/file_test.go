package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	apperrors "rto-workers/internal/common/errors"
	"rto-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "providers.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFileSource_Load(t *testing.T) {
	path := writeFile(t, `[
  {
    "id": "42",
    "name": "Harbour City Training (Sponsored)",
    "rating": 8.4,
    "deliveryModes": ["online"],
    "regions": ["nsw"],
    "price": null
  },
  {
    "id": "43",
    "name": "Outback Property School",
    "rating": 7.9,
    "deliveryModes": ["blended"],
    "regions": ["All"],
    "price": 1200,
    "duration": "6 months"
  }
]`)

	cat, err := Load(context.Background(), NewFileSource(path))
	require.NoError(t, err)
	assert.Equal(t, "file", cat.Source())

	p, ok := cat.Get("42")
	require.True(t, ok)
	assert.Equal(t, "Harbour City Training", p.Name)
	assert.True(t, p.IsSponsored())
	assert.Equal(t, []string{"NSW"}, p.Regions)
	assert.Nil(t, p.Price)

	q, _ := cat.Get("43")
	require.NotNil(t, q.Price)
	assert.Equal(t, 1200.0, *q.Price)
	assert.True(t, q.IsNational())
}

func TestFileSource_SchemaViolation(t *testing.T) {
	path := writeFile(t, `[{"id": "1", "name": "x", "rating": 11, "deliveryModes": ["teleport"], "regions": []}]`)

	_, err := Load(context.Background(), NewFileSource(path))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogInvalid))

	details := apperrors.AsStandardError(err).Details
	assert.Contains(t, details, "rating")
	assert.Contains(t, details, "deliveryModes")
	assert.Contains(t, details, "regions")
}

func TestFileSource_MalformedJSON(t *testing.T) {
	_, err := Load(context.Background(), NewFileSource(writeFile(t, `[{`)))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogInvalid))
}

func TestFileSource_Missing(t *testing.T) {
	_, err := Load(context.Background(), NewFileSource(filepath.Join(t.TempDir(), "nope.json")))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogLoadFailed))
}

func TestEncodeDecode_Seed(t *testing.T) {
	data, err := Encode(SeedProviders())
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, SeedProviders(), decoded)

	for _, p := range decoded {
		assert.NotContains(t, p.Name, models.LegacySponsoredMarker)
	}
}
