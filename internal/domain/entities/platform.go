package entities

// OSCategory is the coarse host classification used to pick installers
type OSCategory string

// Recognized host categories
const (
	OSMac     OSCategory = "mac"
	OSWindows OSCategory = "windows"
	OSLinux   OSCategory = "linux"
	OSUnknown OSCategory = "unknown"
)

// IsKnown reports whether installers exist for the category
func (c OSCategory) IsKnown() bool {
	switch c {
	case OSMac, OSWindows, OSLinux:
		return true
	default:
		return false
	}
}

func (c OSCategory) String() string {
	return string(c)
}
