package gateways

import (
	"context"
)

// IntegrityGateway defines the checksum work done on an artifact before it is uploaded
type IntegrityGateway interface {
	// CalculateChecksum returns the hex SHA256 of a file
	CalculateChecksum(ctx context.Context, filePath string) (string, error)

	// ExpectedChecksum reads a <path>.sha256 sidecar if one exists
	ExpectedChecksum(filePath string) (sum string, found bool, err error)
}

// SignatureVerifier checks detached OpenPGP signatures that sit next to an artifact
type SignatureVerifier interface {
	// VerifyArtifact looks for <path>.asc or <path>.sig and verifies it
	VerifyArtifact(filePath string) error
}

// ContentTypeDetector picks the Content-Type an object is stored with
type ContentTypeDetector interface {
	DetectContentType(filePath string) (string, error)
}
