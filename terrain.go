package tilegen

import (
	"fmt"
)

// Feature is a multi pixel decoration drawn at a single seed pixel
type Feature string

const (
	FeatureFlowers     Feature = "flowers"
	FeatureCracks      Feature = "cracks"
	FeatureCrystals    Feature = "crystals"
	FeatureHieroglyphs Feature = "hieroglyphs"
	FeatureBubbles     Feature = "bubbles"
)

// Noise field kinds used to pick base colours
const (
	NoiseUniform = "uniform"
	NoisePerlin  = "perlin"
)

const (
	// BaseColorCount is the number of base colours every terrain carries
	BaseColorCount = 3

	// MinDetailChance & MaxDetailChance bound the per pixel detail probability
	MinDetailChance = 0.01
	MaxDetailChance = 0.10

	// maxDetailColors is the most detail colours a terrain may have
	maxDetailColors = 3
)

// TerrainConfig describes the look of one terrain.
// It's built once per request & handed by value to every render; nothing in
// this package modifies it.
type TerrainConfig struct {
	// BaseColors are picked per pixel by the noise field
	BaseColors []RGB `yaml:"base_colors" json:"base_colors"`

	// DetailColors are used for single detail pixels & features
	DetailColors []RGB `yaml:"detail_colors" json:"detail_colors"`

	// DetailChance is the probability a given pixel gets a detail
	DetailChance float64 `yaml:"detail_chance" json:"detail_chance"`

	// SpecialFeatures that may be drawn instead of a single detail pixel
	SpecialFeatures []Feature `yaml:"special_features" json:"special_features"`

	// Pattern used for the stylised pattern tile (default: dots)
	Pattern string `yaml:"pattern" json:"pattern"`

	// Noise selects the base colour field; uniform (default) or perlin
	Noise string `yaml:"noise,omitempty" json:"noise,omitempty"`

	// Description is informational only
	Description string `yaml:"description" json:"description"`
}

// Validate checks the config is something we can render.
func (t TerrainConfig) Validate() error {
	if len(t.BaseColors) != BaseColorCount {
		return configErr("base_colors", "need exactly %d colours, got %d", BaseColorCount, len(t.BaseColors))
	}
	if len(t.DetailColors) == 0 || len(t.DetailColors) > maxDetailColors {
		return configErr("detail_colors", "need 1-%d colours, got %d", maxDetailColors, len(t.DetailColors))
	}
	if t.DetailChance < MinDetailChance || t.DetailChance > MaxDetailChance {
		return configErr("detail_chance", "%v outside [%v, %v]", t.DetailChance, MinDetailChance, MaxDetailChance)
	}

	seen := map[Feature]bool{}
	for _, f := range t.SpecialFeatures {
		if _, ok := featureTable[f]; !ok {
			return configErr("special_features", "unknown feature %q", f)
		}
		if seen[f] {
			return configErr("special_features", "feature %q listed twice", f)
		}
		seen[f] = true
	}

	switch t.Noise {
	case "", NoiseUniform, NoisePerlin:
	default:
		return configErr("noise", "unknown noise %q", t.Noise)
	}

	return nil
}

// PatternName returns the configured pattern, or dots if none is set.
// Unknown names are left alone; the pattern renderer has its own fallback.
func (t TerrainConfig) PatternName() string {
	if t.Pattern == "" {
		return PatternDots
	}
	return t.Pattern
}

// HasFeature returns if `f` is one of the terrain's special features
func (t TerrainConfig) HasFeature(f Feature) bool {
	for _, have := range t.SpecialFeatures {
		if have == f {
			return true
		}
	}
	return false
}

// Palette returns every colour a plain tile of this terrain can contain.
func (t TerrainConfig) Palette() map[RGB]bool {
	p := map[RGB]bool{}
	for _, c := range t.BaseColors {
		p[c] = true
	}
	for _, c := range t.DetailColors {
		p[c] = true
	}
	if t.HasFeature(FeatureFlowers) {
		p[FlowerCenter] = true
	}
	return p
}

func (t TerrainConfig) String() string {
	return fmt.Sprintf(
		"base=%v detail=%v chance=%v features=%v pattern=%s",
		t.BaseColors, t.DetailColors, t.DetailChance, t.SpecialFeatures, t.PatternName(),
	)
}
