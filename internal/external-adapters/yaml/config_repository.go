// Package yaml provides YAML-based uploader configuration loading.
package yaml

import (
	"context"
	"fmt"
	"os"

	"github.com/ochairo/installer-uploader/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw YAML structure. Pointers distinguish
// "not set" from zero values so the file only overrides what it names.
type yamlConfig struct {
	Bucket        *string `yaml:"bucket"`
	Region        *string `yaml:"region"`
	Endpoint      *string `yaml:"endpoint"`
	BuildDir      *string `yaml:"build_dir"`
	Manifest      *string `yaml:"manifest"`
	Concurrency   *int    `yaml:"concurrency"`
	ACL           *string `yaml:"acl"`
	PublicBaseURL *string `yaml:"public_base_url"`
	VerifyKey     *string `yaml:"verify_key"`
	StrictOS      *bool   `yaml:"strict_os"`
	OS            *string `yaml:"os"`
}

// ConfigRepository implements repositories.ConfigRepository using YAML files
type ConfigRepository struct{}

// NewConfigRepository creates a new YAML-based config repository
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{}
}

// LoadConfig reads path and overlays the fields it sets onto base
func (r *ConfigRepository) LoadConfig(_ context.Context, path string, base entities.UploaderConfig) (entities.UploaderConfig, error) {
	//nolint:gosec // G304: config path is provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return r.Parse(data, base)
}

// Parse overlays YAML bytes onto base
func (r *ConfigRepository) Parse(data []byte, base entities.UploaderConfig) (entities.UploaderConfig, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return base, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := base
	setString(&cfg.Bucket, raw.Bucket)
	setString(&cfg.Region, raw.Region)
	setString(&cfg.Endpoint, raw.Endpoint)
	setString(&cfg.BuildDir, raw.BuildDir)
	setString(&cfg.ManifestPath, raw.Manifest)
	setString(&cfg.ACL, raw.ACL)
	setString(&cfg.PublicBaseURL, raw.PublicBaseURL)
	setString(&cfg.VerifyKey, raw.VerifyKey)
	setString(&cfg.OSOverride, raw.OS)
	if raw.Concurrency != nil {
		cfg.Concurrency = *raw.Concurrency
	}
	if raw.StrictOS != nil {
		cfg.StrictOS = *raw.StrictOS
	}

	if cfg.Bucket == "" {
		return base, fmt.Errorf("config must name a bucket")
	}
	if cfg.Concurrency < 1 {
		return base, fmt.Errorf("concurrency must be at least 1, got %d", cfg.Concurrency)
	}

	return cfg, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
