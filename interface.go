package tilegen

import (
	"image"
)

// ConfigSource hands out terrain configurations by terrain label
type ConfigSource interface {
	// Terrain returns the config for the given label
	Terrain(label string) (TerrainConfig, error)
}

// Sink is somewhere tiles can be written to.
// GenerateSet clears a label's old tiles (List + Delete) before writing new ones,
// so a sink must support all three.
type Sink interface {
	// List returns the names of stored tiles belonging to the tile set of `label`
	// (see IsSetArtifact)
	List(label string) ([]string, error)

	// Delete a stored tile by name
	Delete(name string) error

	// Write an image under the given name, returning where it was written
	Write(name string, img image.Image) (string, error)
}
