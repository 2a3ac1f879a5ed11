package gateways

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// defaultContentType is used when neither sniffing nor the extension table match
const defaultContentType = "application/octet-stream"

// installerContentTypes covers formats filetype does not sniff reliably
var installerContentTypes = map[string]string{
	".dmg": "application/x-apple-diskimage",
	".exe": "application/vnd.microsoft.portable-executable",
	".deb": "application/vnd.debian.binary-package",
	".rpm": "application/x-rpm",
}

// ContentTypeDetector sniffs installer MIME types from their magic bytes
type ContentTypeDetector struct{}

// NewContentTypeDetector creates a new content type detector
func NewContentTypeDetector() *ContentTypeDetector {
	return &ContentTypeDetector{}
}

// DetectContentType matches the file header first and falls back to the extension
func (d *ContentTypeDetector) DetectContentType(filePath string) (string, error) {
	kind, err := filetype.MatchFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file header: %w", err)
	}

	if kind != filetype.Unknown && kind.MIME.Value != "" {
		return kind.MIME.Value, nil
	}

	if ct, ok := installerContentTypes[strings.ToLower(filepath.Ext(filePath))]; ok {
		return ct, nil
	}

	return defaultContentType, nil
}
