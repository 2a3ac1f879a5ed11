// Package gpg provides detached OpenPGP signature verification for local files.
package gpg

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// armorHeader is the prefix of an ASCII-armored signature
const armorHeader = "-----BEGIN PGP SIGNATURE---"

// maxSignatureSize bounds how much of a signature file is read (signatures are typically < 1KB)
const maxSignatureSize = 64 * 1024

// Verifier checks detached signatures against an in-memory keyring
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a new verifier with an empty keyring
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
	}
}

// ImportKeyFromFile imports public keys from an armored or binary key file
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is operator-provided
	f, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	entities, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		// Try reading as binary
		if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
			return fmt.Errorf("failed to reset file: %w", seekErr)
		}
		entities, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found in file")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// VerifySignatureFromFile verifies a detached signature stored in sigPath
func (v *Verifier) VerifySignatureFromFile(filePath, sigPath string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported, call ImportKeyFromFile first")
	}

	//nolint:gosec // G304: sigPath sits next to a build artifact
	sigData, err := readLimited(sigPath, maxSignatureSize)
	if err != nil {
		return fmt.Errorf("failed to read signature file: %w", err)
	}

	//nolint:gosec // G304: filePath is a build artifact
	dataFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer dataFile.Close()

	var verifyErr error
	if bytes.HasPrefix(sigData, []byte(armorHeader)) {
		_, verifyErr = openpgp.CheckArmoredDetachedSignature(v.keyring, dataFile, bytes.NewReader(sigData), nil)
	} else {
		_, verifyErr = openpgp.CheckDetachedSignature(v.keyring, dataFile, bytes.NewReader(sigData), nil)
	}

	if verifyErr != nil {
		return fmt.Errorf("signature verification failed: %w", verifyErr)
	}

	return nil
}

// GetKeyringSize returns the number of keys in the keyring
func (v *Verifier) GetKeyringSize() int {
	return len(v.keyring)
}

// ClearKeyring clears all imported keys
func (v *Verifier) ClearKeyring() {
	v.keyring = make(openpgp.EntityList, 0)
}

func readLimited(path string, limit int64) ([]byte, error) {
	//nolint:gosec // G304: caller validates path origin
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return nil, err
	}
	if len(data) < 10 {
		return nil, fmt.Errorf("signature file too small to be valid GPG signature")
	}
	return data, nil
}
