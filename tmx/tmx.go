/* this file is a simplified set of structs for reading & writing TMX files.

We only need enough of TMX to lay generated tiles out on a grid for a quick
look in Tiled (doc.mapeditor.org/en/stable/), so we only bother to parse /
write those things.
*/
package tmx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Map is a TMX file structure representing the map as a whole.
// - there is exactly one tileset, a collection of single images
// - there is exactly one tile layer
// - tile data is CSV encoded, no compression
// - orientation is always 'orthogonal'
type Map struct {
	XMLName        xml.Name     `xml:"map"`
	Version        string       `xml:"version,attr"`
	Orientation    string       `xml:"orientation,attr"`
	Width          int          `xml:"width,attr"`      // in tiles
	Height         int          `xml:"height,attr"`     // in tiles
	TileWidth      int          `xml:"tilewidth,attr"`  // in pixels
	TileHeight     int          `xml:"tileheight,attr"` // in pixels
	RootProperties []*Property  `xml:"properties>property"`
	Tilesets       []*Tileset   `xml:"tileset"`
	TileLayers     []*TileLayer `xml:"layer"`
}

// Tileset is a TMX file structure listing the images tiles may use
type Tileset struct {
	FirstGID   uint    `xml:"firstgid,attr"`
	Name       string  `xml:"name,attr"`
	TileWidth  int     `xml:"tilewidth,attr"`
	TileHeight int     `xml:"tileheight,attr"`
	TileCount  int     `xml:"tilecount,attr"`
	Tiles      []*Tile `xml:"tile"`
}

// Property is a TMX file structure which holds a Tiled property.
type Property struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
	Type  string `xml:"type,attr"` // string (default), int, bool + other (we don't use)
}

// Image is an image file in TMX
type Image struct {
	Source string `xml:"source,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
}

// Tile is a TMX tile (from a tileset). ID is local to the tileset.
type Tile struct {
	ID         uint        `xml:"id,attr"`
	Image      *Image      `xml:"image"`
	Properties []*Property `xml:"properties>property"`
}

// TileLayer is a TMX file structure holding the grid of tile gids
type TileLayer struct {
	ID     uint   `xml:"id,attr"`
	Name   string `xml:"name,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
	Data   Data   `xml:"data"`
	gids   []uint
}

// Data is a TMX file structure holding layer data.
type Data struct {
	Encoding string `xml:"encoding,attr"`
	RawData  []byte `xml:",innerxml"`
}

// encodeCSV turns our list of gids into csv, one map row per line
func encodeCSV(width, height int, in []uint) []byte {
	rows := make([]string, height)
	for row := 0; row < height; row++ {
		cols := make([]string, width)
		for col := 0; col < width; col++ {
			cols[col] = strconv.FormatUint(uint64(in[row*width+col]), 10)
		}
		rows[row] = strings.Join(cols, ",")
	}
	return []byte("\n" + strings.Join(rows, ",\n") + "\n")
}

// decodeCSV reads csv encoded gids, ignoring whitespace
func decodeCSV(raw []byte) ([]uint, error) {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' {
			return r
		}
		return -1
	}, string(raw))
	if clean == "" {
		return []uint{}, nil
	}

	fields := strings.Split(clean, ",")
	gids := make([]uint, len(fields))
	for i, s := range fields {
		d, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, err
		}
		gids[i] = uint(d)
	}
	return gids, nil
}
