package tilegen

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSink(t *testing.T) {
	sink, err := OpenSQLiteSink(filepath.Join(t.TempDir(), "tiles.sqlite"))
	require.Nil(t, err)
	defer sink.Close()

	tile, err := RenderPlain(grassConfig(), 32, 1)
	require.Nil(t, err)

	where, err := sink.Write("grass_1.png", tile)
	require.Nil(t, err)
	assert.Equal(t, sink.Filename()+"#grass_1.png", where)

	// writing again replaces
	_, err = sink.Write("grass_1.png", tile)
	require.Nil(t, err)
	_, err = sink.Write("grass_hill_1.png", tile)
	require.Nil(t, err)

	names, err := sink.List("grass")
	require.Nil(t, err)
	assert.Equal(t, []string{"grass_1.png"}, names)

	all, err := sink.Names()
	require.Nil(t, err)
	assert.Equal(t, []string{"grass_1.png", "grass_hill_1.png"}, all)

	img, err := sink.Image("grass_1.png")
	require.Nil(t, err)
	assert.Equal(t, tile.Pix, asRGBA(img).Pix)

	require.Nil(t, sink.Delete("grass_1.png"))
	_, err = sink.Image("grass_1.png")
	assert.NotNil(t, err)
}

func TestGenerateSetSQLite(t *testing.T) {
	sink, err := OpenSQLiteSink(filepath.Join(t.TempDir(), "tiles.sqlite"))
	require.Nil(t, err)
	defer sink.Close()

	cfg := DefaultSetConfig()
	cfg.Seed = Seed(99)
	for i := 0; i < 2; i++ {
		_, err := GenerateSet("water", testSource(), sink, cfg)
		require.Nil(t, err)
	}

	names, err := sink.Names()
	require.Nil(t, err)
	assert.Equal(t, []string{"water_1.png", "water_2.png", "water_3.png", "water_pattern.png"}, names)
}
