// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/installer-uploader/internal/domain/entities"
)

// ManifestRepository defines the interface for reading the build manifest
type ManifestRepository interface {
	// GetManifest reads and parses the manifest at path
	GetManifest(ctx context.Context, path string) (*entities.Manifest, error)
}

// ConfigRepository defines the interface for loading uploader configuration
type ConfigRepository interface {
	// LoadConfig overlays the file at path onto base and returns the result
	LoadConfig(ctx context.Context, path string, base entities.UploaderConfig) (entities.UploaderConfig, error)
}
