package entities

import "errors"

// Sentinel errors shared across layers
var (
	ErrUnsupportedOS      = errors.New("unsupported operating system")
	ErrProductNameMissing = errors.New("manifest has no build.productName")
	ErrMissingCredentials = errors.New("AWS credentials not set")
	ErrSignatureMissing   = errors.New("detached signature not found")
)
