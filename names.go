package tilegen

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// ext of every tile we write
	ext = ".png"

	patternSuffix = "pattern"
)

// Label turns a terrain name into the form used in tile names: lower case
// with spaces replaced by underscores ("Ice Cave" -> "ice_cave")
func Label(terrain string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(terrain)), " ", "_")
}

// VariationName is the name of plain variation `i` (1 based) of a terrain
func VariationName(label string, i int) string {
	return fmt.Sprintf("%s_%d%s", Label(label), i, ext)
}

// PatternName is the name of a terrain's pattern tile
func PatternName(label string) string {
	return fmt.Sprintf("%s_%s%s", Label(label), patternSuffix, ext)
}

// TransitionName is the name of the transition tile from `a` to `b`
func TransitionName(a, b string, dir Direction) string {
	return fmt.Sprintf("%s_to_%s_%s%s", Label(a), Label(b), dir, ext)
}

// CornerName is the name of the corner tile with `secondary` in `main`
func CornerName(main, secondary string, corner Corner) string {
	return fmt.Sprintf("%s_with_%s_%s%s", Label(main), Label(secondary), corner, ext)
}

// IsSetArtifact returns if `name` is one of the tiles GenerateSet writes for
// `label`; a numbered variation or the pattern tile. Tiles of other terrains
// whose label merely starts with `label` (grass vs. grass_hill) and boundary
// tiles don't match.
func IsSetArtifact(label, name string) bool {
	prefix := Label(label) + "_"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
		return false
	}

	middle := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext)
	if middle == patternSuffix {
		return true
	}

	i, err := strconv.Atoi(middle)
	return err == nil && i >= 0 && !strings.HasPrefix(middle, "+")
}
