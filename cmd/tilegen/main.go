package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/nfnt/resize"

	"github.com/voidshard/tilegen"
	"github.com/voidshard/tilegen/tmx"
)

const desc = `Generates seamless 32x32 terrain tiles procedurally (no network calls).

A terrain is described by a small config (3 base colours, detail colours, detail chance,
features & a pattern name) taken from a YAML table or the built in defaults. Unknown
terrains fall back to a generic gray config.

'set' writes N plain variations & one pattern tile for a terrain, removing the previous
set for that terrain first. 'transition' & 'corner' draw boundary tiles between two
terrains. Settings can also be given via the environment (or a .env file).`

var cli struct {
	// where terrain configs come from
	Terrains string `short:"t" env:"TILEGEN_TERRAINS" help:"YAML terrain table (defaults to built in terrains)"`

	// where tiles go
	Output string `short:"o" default:"tiles" env:"TILEGEN_OUTPUT" help:"output directory"`
	DB     string `env:"TILEGEN_DB" help:"write tiles into this sqlite database instead of the output directory"`

	Size int    `default:"32" help:"width & height of each tile in px"`
	Seed string `short:"s" help:"seed for reproducible tiles (random if not given)"`

	// also write nearest neighbour upscaled copies for looking at
	Scale int `default:"1" help:"also write copies scaled up by this factor into <output>/preview"`

	Set struct {
		Terrain    string `arg:"" help:"terrain name (eg. grass, 'ice cave')"`
		Variations int    `short:"n" default:"3" help:"number of plain variations"`
		Workers    int    `short:"w" default:"1" help:"tiles to render at once"`
		Sample     int    `help:"also write a <terrain>_sample.tmx map of this many tiles square using the set"`
	} `cmd:"" help:"generate a terrain tile set"`

	Plain struct {
		Terrain string `arg:"" help:"terrain name"`
	} `cmd:"" help:"draw a single plain tile"`

	Pattern struct {
		Terrain string `arg:"" help:"terrain name"`
	} `cmd:"" help:"draw a terrain's pattern tile"`

	Transition struct {
		From      string `arg:"" help:"terrain A"`
		To        string `arg:"" help:"terrain B"`
		Direction string `arg:"" help:"left_to_right, right_to_left, top_to_bottom or bottom_to_top"`
	} `cmd:"" help:"draw a transition tile from one terrain to another"`

	Corner struct {
		Main      string `arg:"" help:"main terrain"`
		Secondary string `arg:"" help:"terrain filling the corner quadrant"`
		Corner    string `arg:"" help:"top_left, top_right, bottom_left or bottom_right"`
	} `cmd:"" help:"draw a corner tile with one terrain in a quadrant of another"`
}

// expand resolves ~ in user supplied paths
func expand(path string) string {
	if path == "" {
		return path
	}
	out, err := homedir.Expand(path)
	if err != nil {
		panic(err)
	}
	return out
}

// parseSeed reads --seed, drawing a random seed if it's unset
func parseSeed() int64 {
	if cli.Seed == "" {
		return tilegen.RandomSeed()
	}
	seed, err := strconv.ParseInt(cli.Seed, 10, 64)
	if err != nil {
		panic(fmt.Sprintf("invalid seed %q: %v", cli.Seed, err))
	}
	return seed
}

// source returns the terrain source wrapped in a fallback so it never fails
func source() tilegen.ConfigSource {
	var src tilegen.ConfigSource = tilegen.DefaultTable()
	if cli.Terrains != "" {
		table, err := tilegen.OpenTable(expand(cli.Terrains))
		if err != nil {
			panic(err)
		}
		src = table
	}
	return tilegen.WithFallback(src)
}

// sink returns where we're writing tiles
func sink() tilegen.Sink {
	if cli.DB == "" {
		return tilegen.NewFileSink(expand(cli.Output))
	}
	s, err := tilegen.OpenSQLiteSink(expand(cli.DB))
	if err != nil {
		panic(err)
	}
	return s
}

// writePreview saves an upscaled copy of `img` if --scale > 1
func writePreview(name string, img image.Image) {
	if cli.Scale <= 1 {
		return
	}
	big := resize.Resize(
		uint(img.Bounds().Dx()*cli.Scale),
		uint(img.Bounds().Dy()*cli.Scale),
		img,
		resize.NearestNeighbor,
	)
	where, err := tilegen.NewFileSink(filepath.Join(expand(cli.Output), "preview")).Write(name, big)
	if err != nil {
		panic(err)
	}
	fmt.Println("wrote preview", where)
}

// write saves a single tile & it's preview
func write(out tilegen.Sink, name string, img image.Image) {
	where, err := out.Write(name, img)
	if err != nil {
		panic(err)
	}
	fmt.Println("wrote", where)
	writePreview(name, img)
}

func main() {
	godotenv.Load() // a missing .env is fine

	ctx := kong.Parse(
		&cli,
		kong.Name("tilegen"),
		kong.Description(desc),
	)

	src := source()
	out := sink()
	seed := parseSeed()

	switch ctx.Command() {
	case "set <terrain>":
		generateSet(src, out, seed)

	case "plain <terrain>":
		cfg, _ := src.Terrain(cli.Plain.Terrain)
		img, err := tilegen.RenderPlain(cfg, cli.Size, seed)
		if err != nil {
			panic(err)
		}
		write(out, tilegen.VariationName(cli.Plain.Terrain, 1), img)

	case "pattern <terrain>":
		cfg, _ := src.Terrain(cli.Pattern.Terrain)
		img, err := tilegen.RenderPattern(cfg.PatternName(), cfg.BaseColors[0], cfg.DetailColors[0], cli.Size, seed)
		if err != nil {
			panic(err)
		}
		write(out, tilegen.PatternName(cli.Pattern.Terrain), img)

	case "transition <from> <to> <direction>":
		dir, err := tilegen.ParseDirection(cli.Transition.Direction)
		if err != nil {
			panic(err)
		}
		a, _ := src.Terrain(cli.Transition.From)
		b, _ := src.Terrain(cli.Transition.To)
		img, err := tilegen.RenderTransition(a, b, dir, cli.Size, seed)
		if err != nil {
			panic(err)
		}
		write(out, tilegen.TransitionName(cli.Transition.From, cli.Transition.To, dir), img)

	case "corner <main> <secondary> <corner>":
		corner, err := tilegen.ParseCorner(cli.Corner.Corner)
		if err != nil {
			panic(err)
		}
		m, _ := src.Terrain(cli.Corner.Main)
		s, _ := src.Terrain(cli.Corner.Secondary)
		img, err := tilegen.RenderCorner(m, s, corner, cli.Size, seed)
		if err != nil {
			panic(err)
		}
		write(out, tilegen.CornerName(cli.Corner.Main, cli.Corner.Secondary, corner), img)

	default:
		panic(ctx.Command())
	}

	fmt.Printf("seed: %d\n", seed)
}

// generateSet runs the 'set' command
func generateSet(src tilegen.ConfigSource, out tilegen.Sink, seed int64) {
	cfg := &tilegen.SetConfig{
		Size:       cli.Size,
		Variations: cli.Set.Variations,
		Seed:       tilegen.Seed(seed),
		Workers:    cli.Set.Workers,
	}

	result, err := tilegen.GenerateSet(cli.Set.Terrain, src, out, cfg)
	if result == nil {
		panic(err)
	}

	fmt.Printf("terrain '%s': %s\n", cli.Set.Terrain, result.Terrain.Description)
	fmt.Printf("  %v\n", result.Terrain)
	for _, where := range result.Written {
		fmt.Println("wrote", where)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "some tiles failed: %v\n", err)
	}

	if cli.Scale > 1 || cli.Set.Sample > 0 {
		previewSet(result)
	}
}

// previewSet re-renders the set's plain tiles for upscaled previews and / or
// lays them out on a TMX sample map next to the output tiles.
func previewSet(result *tilegen.SetResult) {
	names := []string{}
	for i := 1; i <= cli.Set.Variations; i++ {
		img, err := tilegen.RenderPlain(result.Terrain, cli.Size, result.Seed+int64(i-1))
		if err != nil {
			continue
		}
		name := tilegen.VariationName(result.Label, i)
		writePreview(name, img)
		names = append(names, name)
	}
	if cli.Set.Sample <= 0 || cli.DB != "" {
		return
	}

	m, err := tmx.Sample(cli.Set.Sample, cli.Set.Sample, cli.Size, names, result.Seed)
	if err != nil {
		panic(err)
	}
	for i, name := range names {
		props := tmx.NewProperties()
		props.SetString("terrain", result.Label)
		props.SetInt("variation", i+1)
		m.SetProperties(name, props)
	}
	mprops := tmx.NewProperties()
	mprops.SetString("terrain", result.Label)
	mprops.SetString("description", result.Terrain.Description)
	mprops.SetInt("seed", int(result.Seed))
	m.SetMapProperties(mprops)

	fname := filepath.Join(expand(cli.Output), result.Label+"_sample.tmx")
	err = m.WriteFile(fname)
	if err != nil {
		panic(err)
	}
	fmt.Println("wrote", fname)
}
