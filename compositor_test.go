package tilegen

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grassConfig() TerrainConfig {
	return TerrainConfig{
		BaseColors:      []RGB{{34, 139, 34}, {50, 205, 50}, {60, 179, 113}},
		DetailColors:    []RGB{{255, 255, 0}},
		DetailChance:    0.05,
		SpecialFeatures: []Feature{FeatureFlowers},
		Pattern:         PatternDots,
	}
}

func waterConfig() TerrainConfig {
	return TerrainConfig{
		BaseColors:   []RGB{{30, 100, 200}, {40, 120, 220}, {50, 140, 230}},
		DetailColors: []RGB{{180, 220, 255}, {20, 80, 170}},
		DetailChance: 0.04,
		Pattern:      PatternWaves,
	}
}

// colours returns the set of colours in an image
func colours(img *image.RGBA) map[RGB]int {
	out := map[RGB]int{}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out[rgbAt(img, x, y)]++
		}
	}
	return out
}

func TestRenderPlainScenario(t *testing.T) {
	cfg := grassConfig()

	img, err := RenderPlain(cfg, 32, 42)
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())

	allowed := map[RGB]bool{FlowerCenter: true}
	for _, c := range cfg.BaseColors {
		allowed[c] = true
	}
	for _, c := range cfg.DetailColors {
		allowed[c] = true
	}
	for c := range colours(img) {
		assert.True(t, allowed[c], "unexpected colour %v", c)
	}

	again, err := RenderPlain(cfg, 32, 42)
	require.Nil(t, err)
	assert.Equal(t, img.Pix, again.Pix)
}

func TestRenderPlainDeterministic(t *testing.T) {
	cases := map[string]TerrainConfig{
		"grass":   grassConfig(),
		"water":   waterConfig(),
		"dungeon": DefaultTable()["dungeon"],
		"lava":    DefaultTable()["lava"],
		"temple":  DefaultTable()["ancient temple"],
	}

	for name, cfg := range cases {
		for _, seed := range []int64{0, 1, 42, -7, 1 << 40} {
			a, err := RenderPlain(cfg, 32, seed)
			require.Nil(t, err, name)
			b, err := RenderPlain(cfg, 32, seed)
			require.Nil(t, err, name)
			assert.Equal(t, a.Pix, b.Pix, "%s seed %d", name, seed)
		}

		a, _ := RenderPlain(cfg, 32, 1)
		b, _ := RenderPlain(cfg, 32, 2)
		assert.NotEqual(t, a.Pix, b.Pix, name)
	}
}

func TestBaseLayerClosure(t *testing.T) {
	for _, noise := range []string{NoiseUniform, NoisePerlin} {
		cfg := grassConfig()
		cfg.Noise = noise

		img := baseLayer(cfg, 64, 3)
		found := colours(img)

		for c := range found {
			assert.Contains(t, cfg.BaseColors, c, noise)
		}
	}
}

func TestBaseLayerSplitsEvenly(t *testing.T) {
	cfg := grassConfig()
	size := 128

	found := colours(baseLayer(cfg, size, 11))

	assert.Equal(t, 3, len(found))
	for _, c := range cfg.BaseColors {
		frac := float64(found[c]) / float64(size*size)
		assert.InDelta(t, 1.0/3.0, frac, 0.03, "colour %v", c)
	}
}

func TestDetailFraction(t *testing.T) {
	cfg := TerrainConfig{
		BaseColors:   []RGB{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}},
		DetailColors: []RGB{{200, 0, 0}, {0, 200, 0}},
		DetailChance: 0.05,
	}
	size := 256
	seed := int64(9)

	img, err := RenderPlain(cfg, size, seed)
	require.Nil(t, err)
	base := baseLayer(cfg, size, seed)

	changed := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if rgbAt(img, x, y) != rgbAt(base, x, y) {
				changed++
			}
		}
	}

	assert.InDelta(t, cfg.DetailChance, float64(changed)/float64(size*size), 0.01)
}

func TestFeaturesDrawn(t *testing.T) {
	cfg := TerrainConfig{
		BaseColors:      []RGB{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}},
		DetailColors:    []RGB{{200, 0, 0}},
		DetailChance:    0.10,
		SpecialFeatures: []Feature{FeatureFlowers},
	}

	img, err := RenderPlain(cfg, 64, 5)
	require.Nil(t, err)

	// only flowers put yellow down
	assert.True(t, colours(img)[FlowerCenter] > 0)
}

func TestRenderPlainErrors(t *testing.T) {
	_, err := RenderPlain(grassConfig(), 0, 1)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = RenderPlain(grassConfig(), -4, 1)
	assert.ErrorIs(t, err, ErrInvalidSize)

	cfg := grassConfig()
	cfg.BaseColors = cfg.BaseColors[:2]
	_, err = RenderPlain(cfg, 32, 1)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		Name   string
		Mutate func(*TerrainConfig)
		Field  string
	}{
		{"ok", func(c *TerrainConfig) {}, ""},
		{"no base", func(c *TerrainConfig) { c.BaseColors = nil }, "base_colors"},
		{"four base", func(c *TerrainConfig) { c.BaseColors = append(c.BaseColors, RGB{}) }, "base_colors"},
		{"no detail", func(c *TerrainConfig) { c.DetailColors = nil }, "detail_colors"},
		{"chance low", func(c *TerrainConfig) { c.DetailChance = 0.001 }, "detail_chance"},
		{"chance high", func(c *TerrainConfig) { c.DetailChance = 0.5 }, "detail_chance"},
		{"bad feature", func(c *TerrainConfig) { c.SpecialFeatures = []Feature{"goats"} }, "special_features"},
		{"dupe feature", func(c *TerrainConfig) {
			c.SpecialFeatures = []Feature{FeatureCracks, FeatureCracks}
		}, "special_features"},
		{"bad noise", func(c *TerrainConfig) { c.Noise = "pink" }, "noise"},
		{"unknown pattern is fine", func(c *TerrainConfig) { c.Pattern = "plaid" }, ""},
	}

	for _, tt := range cases {
		cfg := grassConfig()
		tt.Mutate(&cfg)

		err := cfg.Validate()
		if tt.Field == "" {
			assert.Nil(t, err, tt.Name)
			continue
		}

		cerr, ok := err.(*ConfigurationError)
		if assert.True(t, ok, tt.Name) {
			assert.Equal(t, tt.Field, cerr.Field, tt.Name)
		}
	}
}
