package tilegen

import (
	"image"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

const (
	// featureChance is the probability a detail event draws a feature rather
	// than a single pixel (if the terrain has any features)
	featureChance = 0.3

	// perlin parameters; alpha=2, beta=2, n=3 gives soft terrain like blobs
	perlinAlpha     = 2
	perlinBeta      = 2
	perlinN         = 3
	perlinFrequency = 0.15
	perlinGain      = 2.0
)

// RenderPlain draws a single terrain tile: a noise selected base layer with
// details & features scattered over it.
// The same (cfg, size, seed) always returns the same pixels.
func RenderPlain(cfg TerrainConfig, size int, seed int64) (*image.RGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	img := baseLayer(cfg, size, seed)
	addDetails(img, cfg, newRand(seed, detailStream))
	return img, nil
}

// baseLayer fills a tile with the terrain's base colours, one per pixel picked
// by the noise field. The base colours roughly split the tile in equal parts.
func baseLayer(cfg TerrainConfig, size int, seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	field := noiseField(cfg.Noise, size, seed)

	n := len(cfg.BaseColors)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := int(field[y*size+x] * float64(n))
			if i >= n {
				i = n - 1
			}
			img.SetRGBA(x, y, cfg.BaseColors[i].RGBA())
		}
	}

	return img
}

// noiseField returns size*size values in [0,1), row major
func noiseField(kind string, size int, seed int64) []float64 {
	field := make([]float64, size*size)

	if kind == NoisePerlin {
		p := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				v := (p.Noise2D(float64(x)*perlinFrequency, float64(y)*perlinFrequency)*perlinGain + 1) / 2
				if v < 0 {
					v = 0
				} else if v >= 1 {
					v = 0.999999
				}
				field[y*size+x] = v
			}
		}
		return field
	}

	rng := newRand(seed, noiseStream)
	for i := range field {
		field[i] = rng.Float64()
	}
	return field
}

// addDetails walks every pixel & with cfg.DetailChance paints a detail pixel or
// (sometimes) one of the terrain's features there.
func addDetails(img *image.RGBA, cfg TerrainConfig, rng *rand.Rand) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if rng.Float64() >= cfg.DetailChance {
				continue
			}

			c := cfg.DetailColors[rng.Intn(len(cfg.DetailColors))]
			if rng.Float64() < featureChance && len(cfg.SpecialFeatures) > 0 {
				f := cfg.SpecialFeatures[rng.Intn(len(cfg.SpecialFeatures))]
				DrawFeature(img, f, x, y, c, rng)
				continue
			}
			setPixel(img, x, y, c)
		}
	}
}
