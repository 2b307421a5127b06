package tilegen

import (
	"image"
	"math/rand"
)

// FlowerCenter is the colour of every flower's middle pixel, whatever the petals are
var FlowerCenter = RGB{255, 255, 0}

// featureFunc draws a feature centred on (x,y).
// It may assume (x,y) is at least the feature's margin away from every edge.
type featureFunc func(img *image.RGBA, x, y int, c RGB, rng *rand.Rand)

type featureSpec struct {
	margin int
	draw   featureFunc
}

// featureTable maps each feature to its renderer & the distance it must keep
// from the tile edges so it doesn't get cut in half where tiles meet.
var featureTable = map[Feature]featureSpec{
	FeatureFlowers:     {margin: 2, draw: drawFlower},
	FeatureCracks:      {margin: 2, draw: drawCrack},
	FeatureCrystals:    {margin: 2, draw: drawCrystal},
	FeatureHieroglyphs: {margin: 3, draw: drawHieroglyph},
	FeatureBubbles:     {margin: 2, draw: drawBubble},
}

// DrawFeature draws feature `f` centred on (x,y) in colour `c`.
// Nothing is drawn (& no randomness consumed) if (x,y) is within the feature's
// margin of an edge or `f` isn't a known feature.
func DrawFeature(img *image.RGBA, f Feature, x, y int, c RGB, rng *rand.Rand) {
	entry, ok := featureTable[f]
	if !ok {
		return
	}

	b := img.Bounds()
	if x < b.Min.X+entry.margin || y < b.Min.Y+entry.margin || x >= b.Max.X-entry.margin || y >= b.Max.Y-entry.margin {
		return
	}

	entry.draw(img, x, y, c, rng)
}

// drawFlower draws a yellow centre with four petals
func drawFlower(img *image.RGBA, x, y int, c RGB, rng *rand.Rand) {
	setPixel(img, x, y, FlowerCenter)
	for _, d := range orthogonal {
		setPixel(img, x+d.X, y+d.Y, c)
	}
}

var (
	orthogonal = []image.Point{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

	crackDirections = []image.Point{{1, 0}, {0, 1}, {1, 1}, {-1, 1}}
)

// drawCrack draws a short line (2-5px) in one of four directions with the
// occasional perpendicular branch
func drawCrack(img *image.RGBA, x, y int, c RGB, rng *rand.Rand) {
	length := randRange(rng, 2, 5)
	d := crackDirections[rng.Intn(len(crackDirections))]

	for i := 0; i < length; i++ {
		nx, ny := x+i*d.X, y+i*d.Y
		setPixel(img, nx, ny, c)
		if rng.Float64() < 0.3 {
			setPixel(img, nx-d.Y, ny+d.X, c)
		}
	}
}

// drawCrystal draws a filled diamond of radius 1
func drawCrystal(img *image.RGBA, x, y int, c RGB, rng *rand.Rand) {
	setPixel(img, x, y, c)
	for _, d := range orthogonal {
		setPixel(img, x+d.X, y+d.Y, c)
	}
}

// drawHieroglyph draws one of: a dash, a hollow square, a small ring or a cross
func drawHieroglyph(img *image.RGBA, x, y int, c RGB, rng *rand.Rand) {
	switch rng.Intn(4) {
	case 0:
		for dx := -1; dx <= 1; dx++ {
			setPixel(img, x+dx, y, c)
		}
	case 1:
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx != 0 || dy != 0 {
					setPixel(img, x+dx, y+dy, c)
				}
			}
		}
	case 2:
		for _, d := range orthogonal {
			setPixel(img, x+d.X, y+d.Y, c)
		}
	default:
		setPixel(img, x, y, c)
		for _, d := range orthogonal {
			setPixel(img, x+d.X, y+d.Y, c)
		}
	}
}

// drawBubble draws a filled disc of radius 1 or 2
func drawBubble(img *image.RGBA, x, y int, c RGB, rng *rand.Rand) {
	r := randRange(rng, 1, 2)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setPixel(img, x+dx, y+dy, c)
			}
		}
	}
}
