package tilegen

import (
	"image"
	"math"
	"math/rand"
	"sort"

	"github.com/fogleman/gg"
)

// Pattern names understood by RenderPattern
const (
	PatternDots        = "dots"
	PatternStripes     = "stripes"
	PatternWaves       = "waves"
	PatternLeaves      = "leaves"
	PatternSmallLeaves = "small_leaves"
	PatternLargeLeaves = "large_leaves"
	PatternBricks      = "bricks"
	PatternCobblestone = "cobblestone"
	PatternScales      = "scales"
	PatternHexagons    = "hexagons"
	PatternCircles     = "circles"
)

// patternFunc draws a pattern in the context's current colour over a size x size tile
type patternFunc func(dc *gg.Context, size int, rng *rand.Rand)

var patternTable = map[string]patternFunc{
	PatternDots:        drawDots,
	PatternStripes:     drawStripes,
	PatternWaves:       drawWaves,
	PatternLeaves:      drawSmallLeaves,
	PatternSmallLeaves: drawSmallLeaves,
	PatternLargeLeaves: drawLargeLeaves,
	PatternBricks:      drawBricks,
	PatternCobblestone: drawCobblestone,
	PatternScales:      drawScales,
	PatternHexagons:    drawHexagons,
	PatternCircles:     drawCircles,
}

// Patterns returns the known pattern names, sorted
func Patterns() []string {
	names := make([]string, 0, len(patternTable))
	for name := range patternTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RenderPattern returns a tile flooded with `base` & overlaid with the named
// pattern in `detail`. Unknown pattern names get a sparse scatter of pixels.
//
// Drawing is clipped to the tile. Patterns are not guaranteed to line up with
// themselves across tile edges.
func RenderPattern(pattern string, base, detail RGB, size int, seed int64) (*image.RGBA, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	img := newTile(size, base)

	draw, ok := patternTable[pattern]
	if !ok {
		draw = drawSparse
	}

	dc := gg.NewContextForRGBA(img)
	dc.SetColor(detail.RGBA())
	dc.SetLineWidth(1)
	draw(dc, size, newRand(seed, patternStream))

	return img, nil
}

// px returns the centre of pixel `i` in gg's coordinate space
func px(i int) float64 {
	return float64(i) + 0.5
}

func drawDots(dc *gg.Context, size int, rng *rand.Rand) {
	for i := 0; i < size*size/5; i++ {
		x := rng.Intn(size)
		y := rng.Intn(size)
		r := randRange(rng, 1, 2)
		dc.DrawCircle(px(x), px(y), float64(r))
	}
	dc.Fill()
}

// drawStripes draws horizontal bands 2-4px wide with equal gaps
func drawStripes(dc *gg.Context, size int, rng *rand.Rand) {
	w := randRange(rng, 2, 4)
	for y := 0; y < size; y += w * 2 {
		dc.DrawRectangle(0, float64(y), float64(size), float64(w))
	}
	dc.Fill()
}

// drawWaves draws a sine wave every 8 rows, 3px thick
func drawWaves(dc *gg.Context, size int, rng *rand.Rand) {
	amplitude := float64(randRange(rng, 2, 4))
	frequency := float64(randRange(rng, 1, 3)) / 10.0

	for x := 0; x < size; x++ {
		for row := 0; row < size; row += 8 {
			y := row + int(amplitude*math.Sin(frequency*float64(x)))
			for dy := 0; dy <= 2; dy++ {
				if y+dy >= 0 && y+dy < size {
					dc.SetPixel(x, y+dy)
				}
			}
		}
	}
}

func drawSmallLeaves(dc *gg.Context, size int, rng *rand.Rand) {
	drawLeaves(dc, size, rng, 15, 2)
}

func drawLargeLeaves(dc *gg.Context, size int, rng *rand.Rand) {
	drawLeaves(dc, size, rng, 5, 4)
}

// drawLeaves scatters `count` filled diamonds of radius `r`, kept r px off the edges
func drawLeaves(dc *gg.Context, size int, rng *rand.Rand, count, r int) {
	for i := 0; i < count; i++ {
		x := px(randRange(rng, r, size-r-1))
		y := px(randRange(rng, r, size-r-1))
		fr := float64(r)
		dc.NewSubPath()
		dc.MoveTo(x, y-fr)
		dc.LineTo(x+fr, y)
		dc.LineTo(x, y+fr)
		dc.LineTo(x-fr, y)
		dc.ClosePath()
	}
	dc.Fill()
}

// drawBricks outlines 8x4 bricks with every other row offset by half a brick
func drawBricks(dc *gg.Context, size int, rng *rand.Rand) {
	const bw, bh = 8, 4
	for y := 0; y < size; y += bh {
		offset := (y / bh) % 2 * (bw / 2)
		for x := -bw + offset; x < size; x += bw {
			dc.DrawRectangle(px(x+1), px(y+1), bw-2, bh-2)
		}
	}
	dc.Stroke()
}

// drawCobblestone outlines 15 randomly sized (3-6px) ellipses
func drawCobblestone(dc *gg.Context, size int, rng *rand.Rand) {
	for i := 0; i < 15; i++ {
		x := randRange(rng, 2, size-5)
		y := randRange(rng, 2, size-5)
		w := float64(randRange(rng, 3, 6))
		h := float64(randRange(rng, 3, 6))
		dc.DrawEllipse(float64(x)+w/2, float64(y)+h/2, w/2, h/2)
	}
	dc.Stroke()
}

// drawScales draws rows of half circles (6px) offset like roof tiles
func drawScales(dc *gg.Context, size int, rng *rand.Rand) {
	const s = 6
	for row := 0; row < size+s; row += s {
		offset := (row / s) % 2 * (s / 2)
		for col := -s + offset; col < size; col += s {
			dc.NewSubPath()
			dc.DrawArc(float64(col)+s/2, float64(row)+s/2, s/2, 0, math.Pi)
		}
	}
	dc.Stroke()
}

// drawHexagons outlines a staggered column grid of 6px hexagons
func drawHexagons(dc *gg.Context, size int, rng *rand.Rand) {
	const h = 6
	for row := 0; row < size; row += h * 2 {
		for col := 0; col < size; col += h {
			y := row
			if (col/h)%2 == 0 {
				y += h
			}
			if y >= size {
				continue
			}
			pts := []image.Point{
				{col, y},
				{col + h/2, y - h/2},
				{col + h, y},
				{col + h, y + h},
				{col + h/2, y + h*3/2},
				{col, y + h},
			}
			dc.NewSubPath()
			for i, p := range pts {
				if i == 0 {
					dc.MoveTo(px(p.X), px(p.Y))
				} else {
					dc.LineTo(px(p.X), px(p.Y))
				}
			}
			dc.ClosePath()
		}
	}
	dc.Stroke()
}

// drawCircles draws three sets of concentric rings near the middle of the tile
func drawCircles(dc *gg.Context, size int, rng *rand.Rand) {
	for i := 0; i < 3; i++ {
		x := randRange(rng, size/4, size*3/4)
		y := randRange(rng, size/4, size*3/4)
		for r := 2; r < 12; r += 3 {
			dc.DrawCircle(px(x), px(y), float64(r))
		}
	}
	dc.Stroke()
}

// drawSparse is the fallback for unknown patterns: single pixels on ~10% of the tile
func drawSparse(dc *gg.Context, size int, rng *rand.Rand) {
	for i := 0; i < size*size/10; i++ {
		dc.SetPixel(rng.Intn(size), rng.Intn(size))
	}
}
