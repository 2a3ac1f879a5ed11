// Package json reads the project build manifest (package.json).
package json

import (
	"context"
	"fmt"
	"os"

	"github.com/ochairo/installer-uploader/internal/domain/entities"
	"github.com/tidwall/gjson"
)

// productNamePath is the dotted path to the display name inside package.json
const productNamePath = "build.productName"

// ManifestRepository implements repositories.ManifestRepository over package.json files
type ManifestRepository struct{}

// NewManifestRepository creates a new JSON manifest repository
func NewManifestRepository() *ManifestRepository {
	return &ManifestRepository{}
}

// GetManifest reads path and extracts build.productName
func (r *ManifestRepository) GetManifest(_ context.Context, path string) (*entities.Manifest, error) {
	//nolint:gosec // G304: manifest path is provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return r.Parse(path, data)
}

// Parse extracts the manifest fields from raw JSON
func (r *ManifestRepository) Parse(path string, data []byte) (*entities.Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse manifest %s: invalid JSON", path)
	}

	name := gjson.GetBytes(data, productNamePath)
	if !name.Exists() || name.Type != gjson.String || name.Str == "" {
		return nil, fmt.Errorf("%s: %w", path, entities.ErrProductNameMissing)
	}

	return &entities.Manifest{
		Path:        path,
		ProductName: name.Str,
	}, nil
}
