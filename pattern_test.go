package tilegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPattern(t *testing.T) {
	base := RGB{47, 47, 47}
	detail := RGB{200, 220, 255}

	for _, name := range append(Patterns(), "plaid", "") {
		img, err := RenderPattern(name, base, detail, 32, 42)
		require.Nil(t, err, name)
		assert.Equal(t, 32, img.Bounds().Dx(), name)

		found := colours(img)
		assert.True(t, found[base] > 0, "%s: no base left", name)
		assert.True(t, len(found) > 1, "%s: nothing drawn", name)

		again, err := RenderPattern(name, base, detail, 32, 42)
		require.Nil(t, err, name)
		assert.Equal(t, img.Pix, again.Pix, name)
	}
}

func TestPatternUnknownFallsBack(t *testing.T) {
	base := RGB{10, 10, 10}
	detail := RGB{250, 0, 0}

	img, err := RenderPattern("plaid", base, detail, 32, 1)
	require.Nil(t, err)

	found := colours(img)
	assert.Equal(t, 2, len(found))
	assert.True(t, found[detail] > 0)
	assert.True(t, found[detail] <= 32*32/10)
}

func TestPatternWavesParams(t *testing.T) {
	base := RGB{10, 10, 10}
	detail := RGB{250, 0, 0}

	img, err := RenderPattern(PatternWaves, base, detail, 32, 3)
	require.Nil(t, err)

	// every column crosses 4 waves of 3px each, bar clipping at the edges
	for x := 0; x < 32; x++ {
		n := 0
		for y := 0; y < 32; y++ {
			if rgbAt(img, x, y) == detail {
				n++
			}
		}
		assert.True(t, n >= 6 && n <= 12, "column %d has %d wave pixels", x, n)
	}
}

func TestPatternStripes(t *testing.T) {
	base := RGB{10, 10, 10}
	detail := RGB{250, 0, 0}

	img, err := RenderPattern(PatternStripes, base, detail, 32, 8)
	require.Nil(t, err)

	// rows are uniform
	for y := 0; y < 32; y++ {
		first := rgbAt(img, 0, y)
		for x := 1; x < 32; x++ {
			assert.Equal(t, first, rgbAt(img, x, y), "row %d", y)
		}
	}
	assert.Equal(t, detail, rgbAt(img, 16, 0))
}

func TestRenderPatternSize(t *testing.T) {
	_, err := RenderPattern(PatternDots, RGB{}, RGB{}, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidSize)

	img, err := RenderPattern(PatternHexagons, RGB{}, RGB{255, 255, 255}, 64, 1)
	assert.Nil(t, err)
	assert.Equal(t, 64, img.Bounds().Dy())
}
