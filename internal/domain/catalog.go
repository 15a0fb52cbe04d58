package domain

import "fmt"

// SchemaDescriptor identifies one introspection document published for an API version.
// A descriptor is unique on (API, Version).
type SchemaDescriptor struct {
	API     string `json:"api"`
	ID      string `json:"id"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

// String renders the descriptor as "api (version)", the form used when listing
// supported schemas back to callers.
func (d SchemaDescriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.API, d.Version)
}

// APIInfo describes one API listed in the remote catalog.
type APIInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog is the flattened view of the remote schema catalog.
type Catalog struct {
	Schemas       []SchemaDescriptor `json:"schemas"`
	APIs          []APIInfo          `json:"apis"`
	Versions      []string           `json:"versions"`
	LatestVersion string             `json:"latestVersion,omitempty"`
}

// EmptyCatalog is returned whenever the remote catalog cannot be loaded.
func EmptyCatalog() Catalog {
	return Catalog{
		Schemas:  []SchemaDescriptor{},
		APIs:     []APIInfo{},
		Versions: []string{},
	}
}
