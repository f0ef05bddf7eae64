package renderer

import (
	"cmp"
	"fmt"
	"image"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/df07/go-rect-raytracer/pkg/core"
)

// minStrength is the transmittance below which farther hits are skipped
const minStrength = 0.002

// RenderConfig contains rendering configuration
type RenderConfig struct {
	TileSize   int // Size of each tile in pixels (64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Renderer owns the drawables of a scene and renders them
type Renderer struct {
	mu        sync.RWMutex // Held for reading by in-flight renders
	drawables []core.Drawable
	config    RenderConfig
	logger    core.Logger
}

// NewRenderer creates a new renderer. The order of drawables only affects
// which of two equally distant hits is accumulated first.
func NewRenderer(drawables []core.Drawable) *Renderer {
	return &Renderer{
		drawables: slices.Clone(drawables),
		config:    DefaultRenderConfig(),
		logger:    nopLogger{},
	}
}

// SetConfig updates the render configuration
func (r *Renderer) SetConfig(config RenderConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config = config
}

// SetLogger sets the logger used for render progress
func (r *Renderer) SetLogger(logger core.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if logger == nil {
		logger = nopLogger{}
	}
	r.logger = logger
}

// Add appends drawables to the scene. It waits for in-flight renders.
func (r *Renderer) Add(drawables ...core.Drawable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawables = append(r.drawables, drawables...)
}

// Remove deletes the first occurrence of a drawable and reports whether it was found.
// It waits for in-flight renders. Drawables held by an uncomparable value type
// are never found; add them by pointer to remove them later.
func (r *Renderer) Remove(drawable core.Drawable) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.drawables, func(d core.Drawable) bool {
		return sameDrawable(d, drawable)
	})
	if i < 0 {
		return false
	}
	r.drawables = slices.Delete(r.drawables, i, i+1)
	return true
}

// sameDrawable reports whether two drawables are identical. Comparing values of
// an uncomparable dynamic type panics, and such drawables never match.
func sameDrawable(a, b core.Drawable) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// Drawables returns a snapshot of the current drawables
func (r *Renderer) Drawables() []core.Drawable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.drawables)
}

// Trace returns the radiance gathered along a single ray
func (r *Renderer) Trace(env core.RenderEnv, ray core.Ray) core.Color {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t := tracer{drawables: r.drawables}
	return t.trace(env, ray)
}

// Render renders the scene seen from position with the given camera basis
func (r *Renderer) Render(env core.RenderEnv, width, height int, position, right, down core.Vec3) (*image.RGBA, error) {
	img, _, err := r.RenderWithStats(env, width, height, position, right, down)
	return img, err
}

// RenderWithStats renders like Render and also returns render statistics
func (r *Renderer) RenderWithStats(env core.RenderEnv, width, height int, position, right, down core.Vec3) (*image.RGBA, RenderStats, error) {
	camera, err := NewCamera(width, height, position, right, down)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("failed to create camera: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	tileSize := r.config.TileSize
	if tileSize <= 0 {
		tileSize = DefaultRenderConfig().TileSize
	}
	tiles := NewTileGrid(width, height, tileSize)

	workerPool := NewWorkerPool(r.drawables, r.config.NumWorkers, len(tiles))
	r.logger.Printf("Rendering %dx%d (frame %d, max light rays %d) with %d tiles on %d workers...\n",
		width, height, env.Frame, env.MaxLightRays, len(tiles), workerPool.GetNumWorkers())

	workerPool.Start()
	for i, tile := range tiles {
		workerPool.SubmitTask(TileTask{
			Tile:   tile,
			TaskID: i,
			Env:    env,
			Camera: camera,
			Image:  img,
		})
	}

	stats := RenderStats{
		TotalPixels: width * height,
		Tiles:       len(tiles),
		Workers:     workerPool.GetNumWorkers(),
	}
	for range tiles {
		result, ok := workerPool.GetResult()
		if !ok {
			workerPool.Stop()
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		stats.TotalRays += result.Rays
	}
	workerPool.Stop()

	stats.Duration = time.Since(startTime)
	r.logger.Printf("Render completed in %v (%d rays, %.2f rays/pixel)\n",
		stats.Duration, stats.TotalRays, stats.RaysPerPixel())

	return img, stats, nil
}

// tracer performs the recursive radiance accumulation over a fixed set of drawables
type tracer struct {
	drawables []core.Drawable
	rays      int // Number of rays traced, primary and secondary
}

// renderTile writes the encoded pixels of a tile straight into the shared image.
// Tiles never overlap, so no synchronization is needed on the pixel buffer.
func (t *tracer) renderTile(task TileTask) {
	bounds := task.Tile.Bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color := t.trace(task.Env, task.Camera.GetRay(x, y))
			pixel := color.RGBA8()
			offset := task.Image.PixOffset(x, y)
			copy(task.Image.Pix[offset:offset+4], pixel[:])
		}
	}
}

// trace returns the color for a given ray, recursing into reflections and
// scattering while the light ray budget lasts
func (t *tracer) trace(env core.RenderEnv, ray core.Ray) core.Color {
	t.rays++

	var hits []*core.Hit
	for _, drawable := range t.drawables {
		if hit, isHit := drawable.Intersect(ray); isHit {
			if math.IsNaN(hit.Distance) {
				panic(fmt.Sprintf("renderer: %T reported a NaN hit distance", drawable))
			}
			hits = append(hits, hit)
		}
	}
	slices.SortStableFunc(hits, compareHits)

	color := core.Transparent()
	strength := core.White()

	for _, hit := range hits {
		if strength.MaxRGB() < minStrength {
			break
		}
		light := hit.Properties.Light

		// Emitted light is attenuated by everything passed so far
		color = color.Add(light.Emittance.MultiplyColor(strength))
		strength = strength.MultiplyColor(light.Transparency)

		if env.MaxLightRays <= 0 {
			continue
		}
		hitPoint := ray.At(hit.Distance)

		if !light.Reflectiveness.IsTransparent() {
			reflected := core.NewRay(hitPoint, hit.Properties.Orientation)
			reflectEnv := env
			reflectEnv.MaxLightRays--
			color = color.Add(t.trace(reflectEnv, reflected).MultiplyColor(light.Reflectiveness))
		}

		if n := len(hit.Properties.ScatteringOrientations); n > 0 {
			perRay := light.Scattering.Divide(float64(n))
			if perRay.IsTransparent() {
				continue
			}
			// Split the budget between branches; a single branch still loses one ray
			scatterEnv := env
			scatterEnv.MaxLightRays = min(env.MaxLightRays/n, env.MaxLightRays-1)
			for _, orientation := range hit.Properties.ScatteringOrientations {
				scattered := core.NewRay(hitPoint, orientation)
				color = color.Add(t.trace(scatterEnv, scattered).MultiplyColor(perRay))
			}
		}
	}

	return color
}

// compareHits orders hits nearest first. NaN distances are rejected before sorting.
func compareHits(a, b *core.Hit) int {
	return cmp.Compare(a.Distance, b.Distance)
}
