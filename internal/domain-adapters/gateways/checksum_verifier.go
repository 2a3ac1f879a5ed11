package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// checksumVerifier implements the integrity gateway using pure Go
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// CalculateChecksum calculates the SHA256 checksum of a file
func (v *checksumVerifier) CalculateChecksum(ctx context.Context, filePath string) (string, error) {
	//nolint:gosec // G304: File path is a resolved build artifact
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, &contextReader{ctx: ctx, r: f}); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// ExpectedChecksum reads <filePath>.sha256 in sha256sum format ("<hex>  <name>")
// or as a bare hex digest. found is false when no sidecar exists.
func (v *checksumVerifier) ExpectedChecksum(filePath string) (string, bool, error) {
	//nolint:gosec // G304: sidecar path is derived from a build artifact
	data, err := os.ReadFile(filePath + ".sha256")
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read checksum file: %w", err)
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", false, fmt.Errorf("checksum file %s.sha256 is empty", filePath)
	}

	sum := strings.ToLower(fields[0])
	if _, err := hex.DecodeString(sum); err != nil || len(sum) != sha256.Size*2 {
		return "", false, fmt.Errorf("checksum file %s.sha256 does not contain a SHA256 digest", filePath)
	}

	return sum, true, nil
}

// contextReader stops hashing large installers once the run is cancelled
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
