package tilegen

// SetConfig includes settings for GenerateSet
type SetConfig struct {
	// in pixels, tiles are square
	Size int

	// number of plain variations (as well as the single pattern tile)
	Variations int

	// Seed for the set. If nil a random seed is drawn, meaning the set
	// can't be reproduced unless the seed from the SetResult is kept.
	Seed *int64

	// how many tiles to render at once
	Workers int
}

// DefaultSetConfig returns a set config with default settings.
func DefaultSetConfig() *SetConfig {
	return &SetConfig{
		Size:       32,
		Variations: 3,
		Workers:    1,
	}
}

// Seed returns a pointer to `s` for use in SetConfig
func Seed(s int64) *int64 {
	return &s
}
