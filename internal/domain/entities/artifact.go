// Package entities defines core domain models and data structures.
package entities

// Artifact represents a built installer waiting to be uploaded
type Artifact struct {
	Path      string     // Local path, left exactly as resolved
	ObjectKey string     // Destination name inside the bucket
	Platform  OSCategory // Host category the installer was built for
	Arch      string     // "amd64", "arm64", "x86_64", "aarch64" or "" for single-file platforms
	Type      string     // "dmg", "exe", "deb", "rpm"
}

// UploadResult describes a single successful upload
type UploadResult struct {
	Artifact    Artifact
	URL         string
	Size        int64
	SHA256      string
	ContentType string
}
