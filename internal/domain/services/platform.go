package services

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/ochairo/installer-uploader/internal/domain/entities"
)

// DetectOS classifies the running host
func DetectOS() entities.OSCategory {
	return ClassifyGOOS(runtime.GOOS)
}

// ClassifyGOOS maps a Go GOOS value to an OS category
func ClassifyGOOS(goos string) entities.OSCategory {
	switch goos {
	case "darwin":
		return entities.OSMac
	case "windows":
		return entities.OSWindows
	case "linux":
		return entities.OSLinux
	default:
		return entities.OSUnknown
	}
}

// ParseOSCategory accepts both category names and GOOS spellings
// (e.g. "mac", "macos", "darwin", "win", "windows", "linux")
func ParseOSCategory(name string) (entities.OSCategory, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mac", "macos", "osx", "darwin":
		return entities.OSMac, nil
	case "win", "windows":
		return entities.OSWindows, nil
	case "linux":
		return entities.OSLinux, nil
	default:
		return entities.OSUnknown, fmt.Errorf("%w: %q", entities.ErrUnsupportedOS, name)
	}
}
