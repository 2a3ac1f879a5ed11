package json

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ochairo/installer-uploader/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestManifestRepository_GetManifest_Success(t *testing.T) {
	path := writeManifest(t, `{
  "name": "awesome-app",
  "version": "1.2.3",
  "build": {
    "productName": "Awesome App",
    "appId": "com.example.awesome"
  }
}`)

	manifest, err := NewManifestRepository().GetManifest(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Awesome App", manifest.ProductName)
	assert.Equal(t, path, manifest.Path)
}

func TestManifestRepository_GetManifest_NotFound(t *testing.T) {
	_, err := NewManifestRepository().GetManifest(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest")
}

func TestManifestRepository_Parse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
	}{
		{name: "invalid json", content: `{"build": `},
		{name: "no build section", content: `{"name": "x"}`, missing: true},
		{name: "no product name", content: `{"build": {"appId": "x"}}`, missing: true},
		{name: "product name not a string", content: `{"build": {"productName": 42}}`, missing: true},
		{name: "empty product name", content: `{"build": {"productName": ""}}`, missing: true},
	}

	repo := NewManifestRepository()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Parse("package.json", []byte(tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.missing, errors.Is(err, entities.ErrProductNameMissing))
		})
	}
}
