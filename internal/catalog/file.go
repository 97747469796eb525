package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	apperrors "rto-workers/internal/common/errors"
	"rto-workers/internal/common/validation"
	"rto-workers/internal/models"
)

var catalogSchema = validation.MustCompile(validation.CatalogSchema)

// FileSource reads a JSON array of providers from disk.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Load(_ context.Context) ([]models.Provider, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(s.Name(), err)
	}
	return Decode(data)
}

// Decode schema-checks and unmarshals a catalog document.
func Decode(data []byte) ([]models.Provider, error) {
	result, err := catalogSchema.ValidateBytes(data)
	if err != nil {
		return nil, apperrors.NewCatalogInvalidError(err.Error())
	}
	if !result.Valid {
		return nil, apperrors.NewCatalogInvalidError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var providers []models.Provider
	if err := json.Unmarshal(data, &providers); err != nil {
		return nil, apperrors.NewCatalogInvalidError(fmt.Sprintf("decode catalog: %v", err))
	}
	return providers, nil
}

// Encode writes providers in the format Decode reads.
func Encode(providers []models.Provider) ([]byte, error) {
	return json.MarshalIndent(providers, "", "  ")
}
