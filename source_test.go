package tilegen

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-yaml/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tableYAML = `
swamp:
  base_colors: [[60, 80, 40], [70, 90, 50], [50, 70, 30]]
  detail_colors: [[120, 140, 60], [30, 40, 20]]
  detail_chance: 0.07
  special_features: [bubbles]
  pattern: waves
  noise: perlin
  description: Murky swamp
Ice Cave:
  base_colors: [[200, 230, 255], [180, 210, 240], [160, 190, 230]]
  detail_colors: [[255, 255, 255]]
  detail_chance: 0.05
`

func TestLoadTable(t *testing.T) {
	table, err := LoadTable(strings.NewReader(tableYAML))
	require.Nil(t, err)
	assert.Equal(t, 2, len(table))

	swamp, err := table.Terrain("SWAMP")
	require.Nil(t, err)
	assert.Equal(t, RGB{70, 90, 50}, swamp.BaseColors[1])
	assert.Equal(t, []Feature{FeatureBubbles}, swamp.SpecialFeatures)
	assert.Equal(t, NoisePerlin, swamp.Noise)
	assert.Equal(t, PatternWaves, swamp.PatternName())

	ice, err := table.Terrain("ice_cave")
	require.Nil(t, err)
	assert.Equal(t, PatternDots, ice.PatternName())

	_, err = table.Terrain("desert")
	assert.ErrorIs(t, err, ErrUnknownTerrain)
}

func TestLoadTableInvalid(t *testing.T) {
	cases := map[string]string{
		"two base colours": `x: {base_colors: [[1,2,3],[1,2,3]], detail_colors: [[1,1,1]], detail_chance: 0.05}`,
		"colour range":     `x: {base_colors: [[1,2,300],[1,2,3],[1,2,3]], detail_colors: [[1,1,1]], detail_chance: 0.05}`,
		"short colour":     `x: {base_colors: [[1,2],[1,2,3],[1,2,3]], detail_colors: [[1,1,1]], detail_chance: 0.05}`,
		"bad feature":      `x: {base_colors: [[1,2,3],[1,2,3],[1,2,3]], detail_colors: [[1,1,1]], detail_chance: 0.05, special_features: [goats]}`,
		"not yaml":         `{{{`,
	}

	for name, doc := range cases {
		_, err := LoadTable(strings.NewReader(doc))
		assert.NotNil(t, err, name)
	}
}

func TestDefaultTableValid(t *testing.T) {
	for name, cfg := range DefaultTable() {
		assert.Nil(t, cfg.Validate(), name)
	}
	assert.Nil(t, DefaultTerrain("mystery").Validate())
	assert.Empty(t, DefaultTerrain("mystery").SpecialFeatures)
	assert.Equal(t, PatternDots, DefaultTerrain("mystery").Pattern)
}

func TestRGBEncoding(t *testing.T) {
	var c RGB
	assert.Nil(t, yaml.Unmarshal([]byte(`[1, 2, 3]`), &c))
	assert.Equal(t, RGB{1, 2, 3}, c)

	assert.Nil(t, json.Unmarshal([]byte(`[4,5,6]`), &c))
	assert.Equal(t, RGB{4, 5, 6}, c)

	out, err := json.Marshal(RGB{7, 8, 9})
	assert.Nil(t, err)
	assert.Equal(t, `[7,8,9]`, string(out))

	assert.NotNil(t, json.Unmarshal([]byte(`[1,2,-1]`), &c))
}

func TestParseAdvisory(t *testing.T) {
	reply := `Sure! Here is your terrain:
{
  "base_colors": [[70, 90, 110], [90, 120, 150], [110, 140, 170]],
  "detail_colors": [[200, 220, 255], [150, 200, 220]],
  "detail_chance": 0.07,
  "special_features": ["crystals"],
  "description": "crystal cavern"
}
Enjoy.`

	cfg, err := ParseAdvisory(reply)
	require.Nil(t, err)
	assert.Equal(t, RGB{90, 120, 150}, cfg.BaseColors[1])
	assert.Equal(t, []Feature{FeatureCrystals}, cfg.SpecialFeatures)
	assert.Equal(t, PatternDots, cfg.Pattern)

	_, err = ParseAdvisory("I can't help with that")
	assert.NotNil(t, err)

	_, err = ParseAdvisory(`{"base_colors": [[1,2,3]]}`)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestAdvisory(t *testing.T) {
	asked := ""
	src := &Advisory{Ask: func(label string) (string, error) {
		asked = label
		return `{"base_colors": [[1,1,1],[2,2,2],[3,3,3]], "detail_colors": [[9,9,9]], "detail_chance": 0.02, "pattern": "bricks"}`, nil
	}}

	cfg, err := src.Terrain("tomb")
	require.Nil(t, err)
	assert.Equal(t, "tomb", asked)
	assert.Equal(t, PatternBricks, cfg.Pattern)
}

type panicSource struct{}

func (panicSource) Terrain(string) (TerrainConfig, error) {
	panic("boom")
}

func TestFallback(t *testing.T) {
	down := &Advisory{Ask: func(string) (string, error) {
		return "", errors.New("service unavailable")
	}}
	garbage := &Advisory{Ask: func(string) (string, error) {
		return `{"base_colors": []}`, nil
	}}

	cases := []struct {
		Name   string
		Source ConfigSource
		Label  string
		Expect TerrainConfig
	}{
		{"down, known", down, "lava", DefaultTable()["lava"]},
		{"down, unknown", down, "marsh", DefaultTerrain("marsh")},
		{"garbage", garbage, "Ice Cave", DefaultTable()["ice cave"]},
		{"panic", panicSource{}, "marsh", DefaultTerrain("marsh")},
		{"no source", nil, "marsh", DefaultTerrain("marsh")},
	}

	for _, tt := range cases {
		warnings := []*FallbackUsed{}
		f := WithFallback(tt.Source)
		f.Warn = func(w *FallbackUsed) { warnings = append(warnings, w) }

		cfg, err := f.Terrain(tt.Label)
		assert.Nil(t, err, tt.Name)
		assert.Equal(t, tt.Expect, cfg, tt.Name)
		if assert.Equal(t, 1, len(warnings), tt.Name) {
			assert.Equal(t, tt.Label, warnings[0].Label, tt.Name)
			assert.NotNil(t, warnings[0].Err, tt.Name)
		}
	}
}

func TestFallbackPassThrough(t *testing.T) {
	warned := false
	f := &Fallback{
		Source: Table{"mud": DefaultTable()["dungeon"]},
		Warn:   func(*FallbackUsed) { warned = true },
	}

	cfg, err := f.Terrain("mud")
	assert.Nil(t, err)
	assert.Equal(t, DefaultTable()["dungeon"], cfg)
	assert.False(t, warned)

	// no Defaults table, no Warn hook: still never fails
	f = &Fallback{Source: Table{}}
	cfg, err = f.Terrain("lava")
	assert.Nil(t, err)
	assert.Equal(t, DefaultTerrain("lava"), cfg)
}
