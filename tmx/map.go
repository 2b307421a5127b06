/* file adds helper functions to our tmx map struct.
 */
package tmx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"io/ioutil"
	"math/rand"
	"os"
)

const layerName = "ground"

// New returns an empty width x height map of square tiles.
func New(width, height, tileSize int) *Map {
	return &Map{
		Version:        "1.4",
		Orientation:    "orthogonal",
		Width:          width,
		Height:         height,
		TileWidth:      tileSize,
		TileHeight:     tileSize,
		RootProperties: []*Property{},
		Tilesets: []*Tileset{{
			FirstGID:   1,
			Name:       "tiles",
			TileWidth:  tileSize,
			TileHeight: tileSize,
			Tiles:      []*Tile{},
		}},
		TileLayers: []*TileLayer{{
			ID:     1,
			Name:   layerName,
			Width:  width,
			Height: height,
			Data:   Data{Encoding: "csv"},
			gids:   make([]uint, width*height),
		}},
	}
}

// Sample lays `sources` out at random (but reproducibly, from `seed`) over a
// width x height map, so a tile set can be checked for seams by eye.
func Sample(width, height, tileSize int, sources []string, seed int64) (*Map, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no tiles to sample")
	}

	m := New(width, height, tileSize)
	rng := rand.New(rand.NewSource(seed))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			err := m.Set(x, y, sources[rng.Intn(len(sources))])
			if err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// MapProperties returns properties set on the map itself
func (m *Map) MapProperties() *Properties {
	return newPropertiesFromList(m.RootProperties)
}

// SetMapProperties sets properties on the map
func (m *Map) SetMapProperties(in *Properties) {
	m.RootProperties = in.toList()
}

// Set the tile at (x,y) to the image `source`, adding the image to the tileset
// if needed. "" sets the nil tile.
func (m *Map) Set(x, y int, source string) error {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return fmt.Errorf("(%d,%d) is out of bounds for this map", x, y)
	}

	l := m.TileLayers[0]
	if source == "" {
		l.gids[y*m.Width+x] = 0
		return nil
	}

	ts := m.Tilesets[0]
	t := m.tile(source)
	if t == nil {
		t = m.newTile(source)
	}
	l.gids[y*m.Width+x] = ts.FirstGID + t.ID
	return nil
}

// At returns the image source of the tile at (x,y) or "" if unset
func (m *Map) At(x, y int) string {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return ""
	}

	gid := m.TileLayers[0].gids[y*m.Width+x]
	ts := m.Tilesets[0]
	if gid < ts.FirstGID {
		return "" // the nil tile
	}
	for _, t := range ts.Tiles {
		if t.ID == gid-ts.FirstGID {
			return t.Image.Source
		}
	}
	return ""
}

// Properties returns the properties of the tile using `source` (or nil).
func (m *Map) Properties(source string) *Properties {
	t := m.tile(source)
	if t == nil {
		return nil
	}
	return newPropertiesFromList(t.Properties)
}

// SetProperties sets properties on the tile using the given source, adding
// it to the tileset if needed.
func (m *Map) SetProperties(source string, in *Properties) {
	if source == "" {
		// cannot set properties on the nil tile
		return
	}

	t := m.tile(source)
	if t == nil {
		t = m.newTile(source)
	}
	t.Properties = in.toList()
}

// tile finds the tileset entry for a source image
func (m *Map) tile(source string) *Tile {
	for _, t := range m.Tilesets[0].Tiles {
		if t.Image.Source == source {
			return t
		}
	}
	return nil
}

// newTile registers a new image in the tileset
func (m *Map) newTile(source string) *Tile {
	ts := m.Tilesets[0]
	t := &Tile{
		ID:         uint(len(ts.Tiles)),
		Image:      &Image{Source: source, Width: m.TileWidth, Height: m.TileHeight},
		Properties: []*Property{},
	}
	ts.Tiles = append(ts.Tiles, t)
	ts.TileCount = len(ts.Tiles)
	return t
}

// Encode the current map as XML to a io.Writer stream
func (m *Map) Encode(w io.Writer) error {
	for _, l := range m.TileLayers {
		l.Data.RawData = encodeCSV(m.Width, m.Height, l.gids)
	}
	return xml.NewEncoder(w).Encode(m)
}

// WriteFile encodes the map to `fname`
func (m *Map) WriteFile(fname string) error {
	buff := bytes.Buffer{}
	err := m.Encode(&buff)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fname, buff.Bytes(), 0644)
}

// Decode an input TMX map written by Encode
func Decode(r io.Reader) (*Map, error) {
	m := &Map{}
	if err := xml.NewDecoder(r).Decode(m); err != nil {
		return nil, err
	}

	if len(m.Tilesets) != 1 || len(m.TileLayers) != 1 {
		return nil, fmt.Errorf("only maps with 1 tileset & 1 layer are supported")
	}

	gids, err := decodeCSV(m.TileLayers[0].Data.RawData)
	if err != nil {
		return nil, err
	}
	if len(gids) != m.Width*m.Height {
		return nil, fmt.Errorf("layer holds %d tiles, expected %d", len(gids), m.Width*m.Height)
	}
	m.TileLayers[0].gids = gids

	return m, nil
}

// Open a TMX file from disk
func Open(fname string) (*Map, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
