package gateways

import (
	"errors"
	"fmt"
	"os"

	"github.com/ochairo/installer-uploader/internal/domain/entities"
	"github.com/ochairo/installer-uploader/internal/external-adapters/gpg"
)

// signatureSuffixes are tried in order next to each artifact
var signatureSuffixes = []string{".asc", ".sig"}

// gpgVerifier wraps the external GPG adapter to implement the domain gateway interface
type gpgVerifier struct {
	verifier *gpg.Verifier
}

// NewGPGVerifier creates a verifier trusting the public key(s) in keyPath
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewGPGVerifier(keyPath string) (*gpgVerifier, error) {
	v := gpg.NewVerifier()
	if err := v.ImportKeyFromFile(keyPath); err != nil {
		return nil, fmt.Errorf("failed to import GPG key from file: %w", err)
	}
	return &gpgVerifier{verifier: v}, nil
}

// VerifyArtifact verifies the first detached signature found next to filePath
func (g *gpgVerifier) VerifyArtifact(filePath string) error {
	for _, suffix := range signatureSuffixes {
		sigPath := filePath + suffix
		if _, err := os.Stat(sigPath); errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err := g.verifier.VerifySignatureFromFile(filePath, sigPath); err != nil {
			return fmt.Errorf("GPG signature verification failed for %s: %w", filePath, err)
		}
		return nil
	}

	return fmt.Errorf("%w: %s(.asc|.sig)", entities.ErrSignatureMissing, filePath)
}

// GetKeyringSize returns the number of keys loaded
func (g *gpgVerifier) GetKeyringSize() int {
	return g.verifier.GetKeyringSize()
}
