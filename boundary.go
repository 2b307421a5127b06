/* file holds the two-terrain tiles: transitions (a dithered blend along one
axis) & corners (one terrain in a square quadrant with a hard border).
*/
package tilegen

import (
	"fmt"
	"image"
)

// Direction of a transition tile, naming where terrain A starts & B ends
type Direction string

const (
	LeftToRight Direction = "left_to_right"
	RightToLeft Direction = "right_to_left"
	TopToBottom Direction = "top_to_bottom"
	BottomToTop Direction = "bottom_to_top"
)

// Corner names the quadrant a corner tile's secondary terrain occupies
type Corner string

const (
	TopLeft     Corner = "top_left"
	TopRight    Corner = "top_right"
	BottomLeft  Corner = "bottom_left"
	BottomRight Corner = "bottom_right"
)

const (
	// the blend band of a transition covers this part of the axis; before it is
	// all terrain A, after it all terrain B
	blendStart = 0.25
	blendEnd   = 0.75

	// BorderWidth of the line between a corner tile's two terrains, in pixels
	BorderWidth = 2

	// minCornerSize is the smallest tile that still has room for a border
	minCornerSize = 4
)

// ParseDirection validates a direction keyword
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	switch d {
	case LeftToRight, RightToLeft, TopToBottom, BottomToTop:
		return d, nil
	}
	return "", configErr("direction", "unsupported direction %q", s)
}

// ParseCorner validates a corner keyword
func ParseCorner(s string) (Corner, error) {
	c := Corner(s)
	switch c {
	case TopLeft, TopRight, BottomLeft, BottomRight:
		return c, nil
	}
	return "", configErr("corner", "unsupported corner %q", s)
}

// position returns how far (x,y) is from terrain A's side towards B's, in (0,1)
func (d Direction) position(x, y, size int) float64 {
	switch d {
	case RightToLeft:
		return 1 - (float64(x)+0.5)/float64(size)
	case TopToBottom:
		return (float64(y) + 0.5) / float64(size)
	case BottomToTop:
		return 1 - (float64(y)+0.5)/float64(size)
	default:
		return (float64(x) + 0.5) / float64(size)
	}
}

// blendWeight is the probability of picking terrain B at axis position t
func blendWeight(t float64) float64 {
	switch {
	case t <= blendStart:
		return 0
	case t >= blendEnd:
		return 1
	}
	return (t - blendStart) / (blendEnd - blendStart)
}

// RenderTransition draws terrain `a` blending into terrain `b` along `dir`.
// Each side is composed exactly like a plain tile; in the band between them
// the chance of a pixel coming from b rises linearly, so the edge is dithered
// rather than a hard line.
func RenderTransition(a, b TerrainConfig, dir Direction, size int, seed int64) (*image.RGBA, error) {
	if _, err := ParseDirection(string(dir)); err != nil {
		return nil, err
	}

	ta, err := RenderPlain(a, size, seed)
	if err != nil {
		return nil, fmt.Errorf("terrain a: %w", err)
	}
	tb, err := RenderPlain(b, size, seed+secondaryOffset)
	if err != nil {
		return nil, fmt.Errorf("terrain b: %w", err)
	}

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	rng := newRand(seed, pickStream)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			src := ta
			if rng.Float64() < blendWeight(dir.position(x, y, size)) {
				src = tb
			}
			out.SetRGBA(x, y, src.RGBAAt(x, y))
		}
	}

	return out, nil
}

// Regions returns the three rectangles of a corner tile:
//  - quad: the quadrant the secondary terrain owns
//  - outer: quad grown by one border pixel on its inner (non tile edge) sides
//  - inner: quad shrunk by one border pixel on its inner sides
// Pixels in inner are secondary terrain, pixels in outer but not inner are
// border & everything else is main terrain.
func (c Corner) Regions(size int) (outer, quad, inner image.Rectangle) {
	h := size / 2
	w := BorderWidth / 2

	switch c {
	case TopRight:
		quad = image.Rect(size-h, 0, size, h)
		outer = image.Rect(quad.Min.X-w, 0, size, quad.Max.Y+w)
		inner = image.Rect(quad.Min.X+w, 0, size, quad.Max.Y-w)
	case BottomLeft:
		quad = image.Rect(0, size-h, h, size)
		outer = image.Rect(0, quad.Min.Y-w, quad.Max.X+w, size)
		inner = image.Rect(0, quad.Min.Y+w, quad.Max.X-w, size)
	case BottomRight:
		quad = image.Rect(size-h, size-h, size, size)
		outer = image.Rect(quad.Min.X-w, quad.Min.Y-w, size, size)
		inner = image.Rect(quad.Min.X+w, quad.Min.Y+w, size, size)
	default:
		quad = image.Rect(0, 0, h, h)
		outer = image.Rect(0, 0, quad.Max.X+w, quad.Max.Y+w)
		inner = image.Rect(0, 0, quad.Max.X-w, quad.Max.Y-w)
	}

	return outer, quad, inner
}

// RenderCorner draws the main terrain with the secondary terrain filling the
// quadrant named by `corner`. A BorderWidth line in BorderColor runs along the
// quadrant's two inner edges. The boundary is always a right angle; no
// diagonals or blending.
func RenderCorner(main, secondary TerrainConfig, corner Corner, size int, seed int64) (*image.RGBA, error) {
	if len(secondary.BaseColors) == 0 {
		return nil, configErr("secondary", "corner tiles need a secondary terrain")
	}
	if _, err := ParseCorner(string(corner)); err != nil {
		return nil, err
	}
	if size < minCornerSize {
		return nil, fmt.Errorf("%w: corner tiles need size >= %d, got %d", ErrInvalidSize, minCornerSize, size)
	}

	tm, err := RenderPlain(main, size, seed)
	if err != nil {
		return nil, fmt.Errorf("main terrain: %w", err)
	}
	ts, err := RenderPlain(secondary, size, seed+secondaryOffset)
	if err != nil {
		return nil, fmt.Errorf("secondary terrain: %w", err)
	}

	border := BorderColor(main, secondary).RGBA()
	outer, _, inner := corner.Regions(size)

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := image.Pt(x, y)
			switch {
			case p.In(inner):
				out.SetRGBA(x, y, ts.RGBAAt(x, y))
			case p.In(outer):
				out.SetRGBA(x, y, border)
			default:
				out.SetRGBA(x, y, tm.RGBAAt(x, y))
			}
		}
	}

	return out, nil
}

// BorderColor returns the line colour drawn between two terrains of a corner:
// half the brightness of the mean of their first base colours, nudged until it
// clashes with no colour either terrain can draw.
func BorderColor(main, secondary TerrainConfig) RGB {
	var a, b RGB
	if len(main.BaseColors) > 0 {
		a = main.BaseColors[0]
	}
	if len(secondary.BaseColors) > 0 {
		b = secondary.BaseColors[0]
	}

	c := RGB{}
	for i := range c {
		c[i] = uint8((int(a[i]) + int(b[i])) / 4)
	}

	used := main.Palette()
	for k := range secondary.Palette() {
		used[k] = true
	}
	for used[c] {
		c[2]++
	}

	return c
}
