package tilegen

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/go-yaml/yaml"
)

// Table is a static set of terrain configs keyed by terrain name
type Table map[string]TerrainConfig

// Terrain returns the config for `label`. Lookups ignore case & treat spaces
// and underscores alike ("Ice Cave" finds "ice cave").
func (t Table) Terrain(label string) (TerrainConfig, error) {
	want := Label(label)
	for name, cfg := range t {
		if Label(name) == want {
			return cfg, nil
		}
	}
	return TerrainConfig{}, fmt.Errorf("%w: %q", ErrUnknownTerrain, label)
}

// LoadTable reads a YAML terrain table, eg.
//
//   lava:
//     base_colors: [[255, 0, 0], [255, 69, 0], [255, 140, 0]]
//     detail_colors: [[255, 215, 0], [255, 255, 0]]
//     detail_chance: 0.06
//     special_features: [bubbles]
//     pattern: waves
//
// Every entry is validated.
func LoadTable(r io.Reader) (Table, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	t := Table{}
	err = yaml.Unmarshal(data, &t)
	if err != nil {
		return nil, err
	}

	for name, cfg := range t {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("terrain %q: %w", name, err)
		}
	}

	return t, nil
}

// OpenTable reads a YAML terrain table from disk
func OpenTable(fname string) (Table, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadTable(f)
}

// DefaultTable returns the built in terrains
func DefaultTable() Table {
	return Table{
		"grass": {
			BaseColors:      []RGB{{34, 139, 34}, {50, 205, 50}, {60, 179, 113}},
			DetailColors:    []RGB{{255, 255, 0}, {255, 192, 203}, {255, 255, 255}},
			DetailChance:    0.05,
			SpecialFeatures: []Feature{FeatureFlowers},
			Pattern:         PatternSmallLeaves,
			Description:     "Lush green grass with the odd yellow, pink or white flower.",
		},
		"dungeon": {
			BaseColors:      []RGB{{47, 47, 47}, {65, 65, 65}, {80, 80, 80}},
			DetailColors:    []RGB{{30, 30, 30}, {100, 100, 100}, {20, 20, 40}},
			DetailChance:    0.08,
			SpecialFeatures: []Feature{FeatureCracks},
			Pattern:         PatternCobblestone,
			Description:     "A dark stone dungeon floor with cracks and subtle variations in the stone color.",
		},
		"crystal cavern": {
			BaseColors:      []RGB{{70, 90, 110}, {90, 120, 150}, {110, 140, 170}},
			DetailColors:    []RGB{{200, 220, 255}, {150, 200, 220}, {180, 180, 220}},
			DetailChance:    0.07,
			SpecialFeatures: []Feature{FeatureCrystals},
			Pattern:         PatternHexagons,
			Description:     "A mysterious crystal cavern with blue-gray stone and glowing crystal formations.",
		},
		"lava": {
			BaseColors:      []RGB{{255, 0, 0}, {255, 69, 0}, {255, 140, 0}},
			DetailColors:    []RGB{{255, 215, 0}, {255, 255, 0}},
			DetailChance:    0.06,
			SpecialFeatures: []Feature{FeatureBubbles},
			Pattern:         PatternWaves,
			Description:     "Hot molten lava with bright orange and red tones, occasional yellow bubbles and sparks.",
		},
		"ice cave": {
			BaseColors:      []RGB{{200, 230, 255}, {180, 210, 240}, {160, 190, 230}},
			DetailColors:    []RGB{{255, 255, 255}, {130, 170, 220}},
			DetailChance:    0.05,
			SpecialFeatures: []Feature{FeatureCrystals},
			Pattern:         PatternScales,
			Description:     "A shimmering ice cave floor with pale blue tones and occasional white ice crystals.",
		},
		"ancient temple": {
			BaseColors:      []RGB{{180, 160, 120}, {160, 140, 100}, {140, 120, 80}},
			DetailColors:    []RGB{{200, 180, 140}, {120, 100, 60}, {90, 70, 40}},
			DetailChance:    0.07,
			SpecialFeatures: []Feature{FeatureHieroglyphs},
			Pattern:         PatternBricks,
			Description:     "Ancient temple floor with worn sandstone tiles, occasional hieroglyphs and carvings.",
		},
		"water": {
			BaseColors:   []RGB{{30, 100, 200}, {40, 120, 220}, {50, 140, 230}},
			DetailColors: []RGB{{180, 220, 255}, {20, 80, 170}},
			DetailChance: 0.04,
			Pattern:      PatternWaves,
			Noise:        NoisePerlin,
			Description:  "Blue water with small ripples.",
		},
		"sand": {
			BaseColors:   []RGB{{237, 201, 175}, {225, 190, 160}, {210, 180, 140}},
			DetailColors: []RGB{{190, 160, 120}, {250, 230, 200}},
			DetailChance: 0.06,
			Pattern:      PatternDots,
			Description:  "Fine grained beige sand.",
		},
	}
}

// DefaultTerrain is the generic gray terrain used when nothing better is known
func DefaultTerrain(label string) TerrainConfig {
	return TerrainConfig{
		BaseColors:   []RGB{{100, 100, 100}, {120, 120, 120}, {140, 140, 140}},
		DetailColors: []RGB{{80, 80, 80}, {160, 160, 160}},
		DetailChance: 0.05,
		Pattern:      PatternDots,
		Description:  fmt.Sprintf("Generated terrain based on '%s' with gray tones and subtle variations.", label),
	}
}

// Advisory turns anything that answers a terrain label with text (eg. a
// language model behind some client) into a ConfigSource.
// The reply must contain a JSON object in the TerrainConfig schema.
type Advisory struct {
	Ask func(label string) (string, error)
}

// Terrain asks the advisor & parses its answer
func (a *Advisory) Terrain(label string) (TerrainConfig, error) {
	text, err := a.Ask(label)
	if err != nil {
		return TerrainConfig{}, err
	}
	return ParseAdvisory(text)
}

// ParseAdvisory pulls a terrain config out of free text: everything from the
// first '{' to the last '}' is decoded as JSON & validated.
// A missing pattern is set to dots.
func ParseAdvisory(text string) (TerrainConfig, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return TerrainConfig{}, fmt.Errorf("no JSON object in advisory reply")
	}

	cfg := TerrainConfig{}
	err := json.Unmarshal([]byte(text[start:end+1]), &cfg)
	if err != nil {
		return TerrainConfig{}, fmt.Errorf("decoding advisory reply: %w", err)
	}

	if cfg.Pattern == "" {
		cfg.Pattern = PatternDots
	}

	return cfg, cfg.Validate()
}

// Fallback wraps a ConfigSource so that it never fails.
// If the source errors, panics or returns a config that doesn't validate we
// report a FallbackUsed via Warn & return the Defaults entry for the label, or
// DefaultTerrain if there isn't one.
type Fallback struct {
	Source   ConfigSource
	Defaults Table
	Warn     func(*FallbackUsed)
}

// WithFallback wraps `src` with the built in terrains as defaults, logging
// fallbacks with the standard logger.
func WithFallback(src ConfigSource) *Fallback {
	return &Fallback{
		Source:   src,
		Defaults: DefaultTable(),
		Warn: func(w *FallbackUsed) {
			log.Printf("warning: %v", w)
		},
	}
}

// Terrain returns the source's config for `label` or a default. The error is
// always nil.
func (f *Fallback) Terrain(label string) (TerrainConfig, error) {
	cfg, err := f.ask(label)
	if err == nil {
		err = cfg.Validate()
	}
	if err == nil {
		return cfg, nil
	}

	if f.Warn != nil {
		f.Warn(&FallbackUsed{Label: label, Err: err})
	}

	if f.Defaults != nil {
		if def, derr := f.Defaults.Terrain(label); derr == nil {
			return def, nil
		}
	}
	return DefaultTerrain(label), nil
}

// ask calls the wrapped source, turning a panic into an error
func (f *Fallback) ask(label string) (cfg TerrainConfig, err error) {
	if f.Source == nil {
		return cfg, fmt.Errorf("no terrain source configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("terrain source panicked: %v", r)
		}
	}()
	return f.Source.Terrain(label)
}
