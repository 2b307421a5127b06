package tilegen

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
)

// RGB is a single opaque colour as it appears in terrain tables: [r, g, b]
type RGB [3]uint8

// RGBA returns the colour as an opaque color.RGBA
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c[0], c[1], c[2])
}

// UnmarshalYAML reads a colour from a [r, g, b] sequence
func (c *RGB) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw []int
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := rgbFromInts(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnmarshalJSON reads a colour from a [r, g, b] array
func (c *RGB) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := rgbFromInts(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON writes the colour as [r, g, b] (rather than a base64 byte string)
func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal([]int{int(c[0]), int(c[1]), int(c[2])})
}

func rgbFromInts(in []int) (RGB, error) {
	if len(in) != 3 {
		return RGB{}, fmt.Errorf("colour needs 3 components, got %d", len(in))
	}
	out := RGB{}
	for i, v := range in {
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("colour component %d out of range: %d", i, v)
		}
		out[i] = uint8(v)
	}
	return out, nil
}

// rgbAt reads back the pixel at (x,y) ignoring alpha
func rgbAt(img *image.RGBA, x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{c.R, c.G, c.B}
}

// setPixel paints (x,y) if it falls inside the image, silently dropping it otherwise
func setPixel(img *image.RGBA, x, y int, c RGB) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return
	}
	img.SetRGBA(x, y, c.RGBA())
}

// newTile returns a size x size opaque tile flooded with `fill`
func newTile(size int, fill RGB) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := fill.RGBA()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
