// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"
)

// ObjectUpload describes one file to put into the bucket
type ObjectUpload struct {
	LocalPath   string
	Key         string
	ContentType string
	Metadata    map[string]string
}

// StoredObject is what the store reports back after a successful upload
type StoredObject struct {
	Key  string
	URL  string
	Size int64
}

// ObjectStore defines operations against the distribution bucket
type ObjectStore interface {
	// Upload puts a local file under the given key and returns its shareable URL
	Upload(ctx context.Context, upload *ObjectUpload) (*StoredObject, error)

	// Bucket returns the bucket name uploads go to
	Bucket() string
}

// ObjectStoreFactory opens an ObjectStore once credentials are actually needed
type ObjectStoreFactory interface {
	Open(ctx context.Context) (ObjectStore, error)
}
