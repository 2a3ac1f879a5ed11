// Package services contains the uploader's pure domain logic.
package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ochairo/installer-uploader/internal/domain/entities"
)

// artifactVariant is one installer flavour produced for a platform
type artifactVariant struct {
	suffix string // appended to the product name
	arch   string
	kind   string
}

// variantsByOS lists installer names in upload order
var variantsByOS = map[entities.OSCategory][]artifactVariant{
	entities.OSMac: {
		{suffix: ".dmg", kind: "dmg"},
	},
	entities.OSWindows: {
		{suffix: ".exe", kind: "exe"},
	},
	entities.OSLinux: {
		{suffix: "-amd64.deb", arch: "amd64", kind: "deb"},
		{suffix: "-arm64.deb", arch: "arm64", kind: "deb"},
		{suffix: "-x86_64.rpm", arch: "x86_64", kind: "rpm"},
		{suffix: "-aarch64.rpm", arch: "aarch64", kind: "rpm"},
	},
}

// ArtifactService resolves which installers a host is responsible for
type ArtifactService struct{}

// NewArtifactService creates a new artifact service
func NewArtifactService() *ArtifactService {
	return &ArtifactService{}
}

// ResolveArtifacts returns the installers expected in buildDir for the given OS,
// in upload order. Files are not checked for existence.
func (s *ArtifactService) ResolveArtifacts(productName, buildDir string, osCategory entities.OSCategory) ([]entities.Artifact, error) {
	if productName == "" {
		return nil, entities.ErrProductNameMissing
	}

	variants, ok := variantsByOS[osCategory]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrUnsupportedOS, osCategory)
	}

	artifacts := make([]entities.Artifact, 0, len(variants))
	for _, v := range variants {
		path := s.artifactPath(buildDir, productName+v.suffix)
		artifacts = append(artifacts, entities.Artifact{
			Path:      path,
			ObjectKey: SanitizeObjectName(filepath.Base(path)),
			Platform:  osCategory,
			Arch:      v.arch,
			Type:      v.kind,
		})
	}

	return artifacts, nil
}

// artifactPath joins without cleaning so "./release/build" stays "./release/build/<name>"
func (s *ArtifactService) artifactPath(buildDir, filename string) string {
	if buildDir == "" {
		return filename
	}
	return strings.TrimRight(buildDir, `/\`) + "/" + filename
}

// SanitizeObjectName collapses whitespace runs into single spaces and then
// strips every space, e.g. "My App   Name" -> "MyAppName"
func SanitizeObjectName(name string) string {
	collapsed := strings.Join(strings.Fields(name), " ")
	return strings.ReplaceAll(collapsed, " ", "")
}
