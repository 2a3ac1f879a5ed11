package entities

// Manifest is the subset of the project build descriptor the uploader consumes
type Manifest struct {
	Path        string
	ProductName string
}
