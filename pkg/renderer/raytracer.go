package renderer

import (
	"math"
	"time"

	"github.com/df07/go-lux-pathtracer/pkg/core"
	"github.com/df07/go-lux-pathtracer/pkg/geometry"
	"github.com/df07/go-lux-pathtracer/pkg/integrator"
)

// Scene interface to avoid circular imports
type Scene interface {
	integrator.Scene
	GetCamera() *geometry.Camera
}

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of jittered rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	TileSize        int   // Tile edge length in pixels
	NumWorkers      int   // Parallel workers, 0 = runtime.NumCPU()
	Seed            int64 // Base seed, every pixel derives its own from it
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           200,
		Height:          100,
		SamplesPerPixel: 100,
		MaxDepth:        integrator.MaxDepth,
		TileSize:        32,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Raytracer turns a scene into pixels.
// It holds no mutable state and can be shared between workers.
type Raytracer struct {
	scene      Scene
	camera     *geometry.Camera
	integrator *integrator.PathTracingIntegrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if config.SamplesPerPixel <= 0 {
		config.SamplesPerPixel = 1
	}
	if logger == nil {
		logger = discardLogger{}
	}

	return &Raytracer{
		scene:      scene,
		camera:     scene.GetCamera(),
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		config:     config,
		logger:     logger,
	}
}

// Config returns the effective render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// PixelSeed returns the seed of the random stream owned by pixel (x, y).
// The pixel index is hashed so neighbouring pixels do not start from consecutive seeds.
func (rt *Raytracer) PixelSeed(x, y int) int64 {
	return mixSeed(rt.config.Seed, uint64(y*rt.config.Width+x))
}

// mixSeed derives the seed of stream index from the base seed with a splitmix64 step
func mixSeed(seed int64, index uint64) int64 {
	z := uint64(seed) + (index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

// SamplePixel averages SamplesPerPixel radiance estimates for pixel (x, y).
// Row 0 is the top of the image while t is measured from the bottom of the image plane.
func (rt *Raytracer) SamplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	width := float32(rt.config.Width)
	height := float32(rt.config.Height)

	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		xi, eta := sampler.Get2D()
		s := (float32(x) + xi) / width
		t := (float32(rt.config.Height-y) + eta) / height

		ray := rt.camera.GetRay(s, t)
		colorAccum = colorAccum.Add(rt.integrator.Trace(ray, rt.scene, sampler, 0))
	}

	return colorAccum.Divide(float32(rt.config.SamplesPerPixel))
}

// RenderPixel samples pixel (x, y) and returns its gamma-corrected 8-bit channels
func (rt *Raytracer) RenderPixel(x, y int, sampler core.Sampler) [3]uint8 {
	return ColorToRGB8(rt.SamplePixel(x, y, sampler))
}

// ColorToRGB8 applies gamma 2 and quantizes each channel to 8 bits, truncating
func ColorToRGB8(c core.Vec3) [3]uint8 {
	gamma := c.Sqrt()
	return [3]uint8{toChannel(gamma.X), toChannel(gamma.Y), toChannel(gamma.Z)}
}

// toChannel scales a gamma-corrected value by 255.99, clamps to [0,255] and truncates.
// NaN (including sqrt of a negative) maps to 0.
func toChannel(v float32) uint8 {
	scaled := float64(v) * 255.99
	if math.IsNaN(scaled) || scaled <= 0 {
		return 0
	}
	if scaled >= 255 {
		return 255
	}
	return uint8(scaled)
}

// RenderTile renders every pixel inside tile into fb. Each pixel restarts sampler from its
// own seed, so the result does not depend on tile layout or worker scheduling.
func (rt *Raytracer) RenderTile(tile *Tile, fb *Framebuffer, sampler *core.RandomSampler) RenderStats {
	stats := RenderStats{TotalTiles: 1}

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			sampler.Reseed(rt.PixelSeed(x, y))
			fb.SetRGB(x, y, rt.RenderPixel(x, y, sampler))

			stats.TotalPixels++
			stats.TotalSamples += rt.config.SamplesPerPixel
		}
	}

	return stats
}

// Render renders the full frame in parallel and returns the framebuffer with statistics
func (rt *Raytracer) Render() (*Framebuffer, RenderStats) {
	start := time.Now()
	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize)

	pool := NewWorkerPool(rt, fb, len(tiles), rt.config.NumWorkers)
	rt.logger.Printf("Rendering %dx%d, %d spp, %d tiles on %d workers\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	pool.Start()
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: tile.ID})
	}
	pool.Stop()

	var stats RenderStats
	completed := 0
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.merge(result.Stats)
		completed++
		if completed%max(1, len(tiles)/10) == 0 || completed == len(tiles) {
			rt.logger.Printf("Tiles %d/%d\n", completed, len(tiles))
		}
	}

	stats.finalize(time.Since(start))
	rt.logger.Printf("Render complete: %d pixels, %d samples in %v\n",
		stats.TotalPixels, stats.TotalSamples, stats.Elapsed)

	return fb, stats
}
