package tilegen

import (
	"fmt"
	"image"
	"sync"
)

// SetResult describes a generated tile set
type SetResult struct {
	// Label is the normalised terrain label used in tile names
	Label string

	// Terrain is the config the set was drawn with
	Terrain TerrainConfig

	// Seed the set was drawn with (the random one, if none was given)
	Seed int64

	// Written holds the location of every tile written, in generation order
	Written []string
}

// job is one tile of a set waiting to be drawn
type job struct {
	name      string
	variation int
	render    func() (*image.RGBA, error)

	img *image.RGBA
	err error
}

// run renders the tile, turning a panic into an error
func (j *job) run() {
	defer func() {
		if r := recover(); r != nil {
			j.err = fmt.Errorf("render panicked: %v", r)
		}
	}()
	j.img, j.err = j.render()
}

// GenerateSet draws cfg.Variations plain tiles & one pattern tile for the
// terrain `label` & writes them to `sink`.
//
// Any existing set tiles for the label are removed from the sink first, so
// running this twice leaves one set, not two. Concurrent calls for the same
// label & sink must be serialised by the caller.
//
// Variation i (1 based) uses seed+i-1 so each can be redrawn on its own with
// RenderPlain. The pattern tile's base & detail colours are picked at random
// (from the seed) from the terrain's palette.
//
// Configuration problems return a nil result. Tiles that fail to render or
// write are collected in a *BatchError while the rest of the set is still
// written & listed in the result.
func GenerateSet(label string, src ConfigSource, sink Sink, cfg *SetConfig) (*SetResult, error) {
	if cfg == nil {
		cfg = DefaultSetConfig()
	}
	if cfg.Variations < 1 {
		return nil, configErr("variations", "need at least 1 variation, got %d", cfg.Variations)
	}

	terrain, err := src.Terrain(label)
	if err != nil {
		return nil, fmt.Errorf("terrain %q: %w", label, err)
	}
	if err := terrain.Validate(); err != nil {
		return nil, fmt.Errorf("terrain %q: %w", label, err)
	}

	seed := RandomSeed()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	result := &SetResult{
		Label:   Label(label),
		Terrain: terrain,
		Seed:    seed,
		Written: []string{},
	}

	// the only destructive step: remove the last run of this set
	existing, err := sink.List(result.Label)
	if err != nil {
		return nil, fmt.Errorf("listing existing tiles: %w", err)
	}
	for _, name := range existing {
		err = sink.Delete(name)
		if err != nil {
			return nil, fmt.Errorf("removing %s: %w", name, err)
		}
	}

	jobs := setJobs(result.Label, terrain, cfg.Size, seed, cfg.Variations)
	renderAll(jobs, cfg.Workers)

	failures := []*RenderError{}
	for _, j := range jobs {
		if j.err == nil {
			var where string
			where, j.err = sink.Write(j.name, j.img)
			if j.err == nil {
				result.Written = append(result.Written, where)
				continue
			}
		}
		failures = append(failures, &RenderError{Name: j.name, Variation: j.variation, Err: j.err})
	}

	if len(failures) > 0 {
		return result, &BatchError{Failures: failures}
	}
	return result, nil
}

// setJobs lists the tiles of a set in the order they're written
func setJobs(label string, terrain TerrainConfig, size int, seed int64, count int) []*job {
	jobs := []*job{}
	for i := 1; i <= count; i++ {
		variationSeed := seed + int64(i-1)
		jobs = append(jobs, &job{
			name:      VariationName(label, i),
			variation: i,
			render: func() (*image.RGBA, error) {
				return RenderPlain(terrain, size, variationSeed)
			},
		})
	}

	pick := newRand(seed, pickStream)
	base := terrain.BaseColors[pick.Intn(len(terrain.BaseColors))]
	detail := terrain.DetailColors[pick.Intn(len(terrain.DetailColors))]
	jobs = append(jobs, &job{
		name: PatternName(label),
		render: func() (*image.RGBA, error) {
			return RenderPattern(terrain.PatternName(), base, detail, size, seed)
		},
	})

	return jobs
}

// renderAll runs the jobs over `workers` goroutines. Renders share no state
// so no more coordination than the WaitGroup is needed.
func renderAll(jobs []*job, workers int) {
	if workers < 1 {
		workers = 1
	}

	work := make(chan *job)
	wg := &sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range work {
				j.run()
			}
		}()
	}

	for _, j := range jobs {
		work <- j
	}
	close(work)
	wg.Wait()
}

// GenerateTransition draws the transition tile from terrain `a` to `b` and
// writes it to `sink` as TransitionName(a, b, dir).
func GenerateTransition(a, b string, src ConfigSource, dir Direction, sink Sink, size int, seed int64) (string, error) {
	ta, tb, err := terrainPair(src, a, b)
	if err != nil {
		return "", err
	}

	img, err := RenderTransition(ta, tb, dir, size, seed)
	if err != nil {
		return "", err
	}
	return sink.Write(TransitionName(a, b, dir), img)
}

// GenerateCorner draws the corner tile with `secondary` in one quadrant of
// `main` & writes it to `sink` as CornerName(main, secondary, corner).
func GenerateCorner(main, secondary string, src ConfigSource, corner Corner, sink Sink, size int, seed int64) (string, error) {
	if secondary == "" {
		return "", configErr("secondary", "corner tiles need a secondary terrain")
	}

	tm, ts, err := terrainPair(src, main, secondary)
	if err != nil {
		return "", err
	}

	img, err := RenderCorner(tm, ts, corner, size, seed)
	if err != nil {
		return "", err
	}
	return sink.Write(CornerName(main, secondary, corner), img)
}

func terrainPair(src ConfigSource, a, b string) (TerrainConfig, TerrainConfig, error) {
	ta, err := src.Terrain(a)
	if err != nil {
		return ta, TerrainConfig{}, fmt.Errorf("terrain %q: %w", a, err)
	}
	tb, err := src.Terrain(b)
	if err != nil {
		return ta, tb, fmt.Errorf("terrain %q: %w", b, err)
	}
	return ta, tb, nil
}
