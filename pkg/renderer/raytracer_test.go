package renderer

import (
	"bytes"
	"math"
	"testing"

	"github.com/df07/go-lux-pathtracer/pkg/core"
	"github.com/df07/go-lux-pathtracer/pkg/geometry"
	"github.com/df07/go-lux-pathtracer/pkg/material"
	"github.com/df07/go-lux-pathtracer/pkg/scene"
)

// lookDownZ is a camera at the origin looking along -z
func lookDownZ(aspect float32) geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: aspect,
	}
}

func testConfig(width, height, samples int) RenderConfig {
	config := DefaultRenderConfig()
	config.Width = width
	config.Height = height
	config.SamplesPerPixel = samples
	return config
}

func TestColorToRGB8(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		name     string
		color    core.Vec3
		expected [3]uint8
	}{
		{"Black", core.NewVec3(0, 0, 0), [3]uint8{0, 0, 0}},
		{"White", core.NewVec3(1, 1, 1), [3]uint8{255, 255, 255}},
		{"Gamma", core.NewVec3(0.25, 0.5, 0.01), [3]uint8{127, 181, 25}},
		{"ClampHigh", core.NewVec3(4, 100, 1.5), [3]uint8{255, 255, 255}},
		{"NegativeIsBlack", core.NewVec3(-1, -0.25, 0), [3]uint8{0, 0, 0}},
		{"NaNIsBlack", core.NewVec3(nan, 1, nan), [3]uint8{0, 255, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorToRGB8(tt.color)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRenderPixel_GammaRoundTrip(t *testing.T) {
	// A huge diffuse sphere fills the whole view and the sky is uniform white,
	// so a single bounce always escapes and the radiance is exactly the albedo.
	albedo := core.NewVec3(0.25, 0.5, 1.0)
	s := scene.NewScene(lookDownZ(0.5))
	s.TopColor = core.NewVec3(1, 1, 1)
	s.BottomColor = core.NewVec3(1, 1, 1)
	s.AddSphere(core.NewVec3(0, 0, -100), 99, material.NewLambertian(albedo))

	rt := NewRaytracer(s, testConfig(4, 8, 1), nil)
	expected := [3]uint8{
		uint8(math.Floor(math.Sqrt(0.25) * 255.99)),
		uint8(math.Floor(math.Sqrt(0.5) * 255.99)),
		255,
	}

	sampler := core.NewSeededSampler(1)
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			if got := rt.RenderPixel(x, y, sampler); got != expected {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, expected, got)
			}
		}
	}
}

func TestRender_VerticalFlip(t *testing.T) {
	// Empty scene: every ray sees the sky. Row 0 looks up, so it is bluer than the last row.
	s := scene.NewScene(lookDownZ(1))
	rt := NewRaytracer(s, testConfig(8, 8, 4), nil)
	fb, _ := rt.Render()

	top := fb.RGBAt(4, 0)
	bottom := fb.RGBAt(4, 7)
	if top[0] >= bottom[0] {
		t.Errorf("Expected top row red (%d) below bottom row red (%d)", top[0], bottom[0])
	}
	if top[2] != 255 || bottom[2] != 255 {
		t.Errorf("Expected saturated blue channel everywhere, got top %d bottom %d", top[2], bottom[2])
	}
}

func TestRender_Deterministic(t *testing.T) {
	s := scene.NewDefaultScene(geometry.CameraConfig{AspectRatio: 2})

	render := func(tileSize, workers int) []uint8 {
		config := testConfig(24, 12, 4)
		config.MaxDepth = 10
		config.TileSize = tileSize
		config.NumWorkers = workers
		fb, _ := NewRaytracer(s, config, nil).Render()
		return fb.Pix
	}

	reference := render(8, 1)
	tests := []struct {
		name     string
		tileSize int
		workers  int
	}{
		{"Repeat", 8, 1},
		{"ManyWorkers", 8, 4},
		{"SmallTiles", 5, 3},
		{"SingleTile", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(tt.tileSize, tt.workers); !bytes.Equal(got, reference) {
				t.Errorf("Framebuffer differs from the single-worker render")
			}
		})
	}
}

func TestRenderTile_MatchesRenderPixel(t *testing.T) {
	s := scene.NewDefaultScene(geometry.CameraConfig{AspectRatio: 2})
	rt := NewRaytracer(s, testConfig(16, 8, 2), nil)
	fb := NewFramebuffer(16, 8)

	tile := NewTileGrid(16, 8, 4)[5]
	tileSampler := core.NewSeededSampler(0)
	rt.RenderTile(tile, fb, tileSampler)

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			expected := rt.RenderPixel(x, y, core.NewSeededSampler(rt.PixelSeed(x, y)))
			if got := fb.RGBAt(x, y); got != expected {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, expected, got)
			}
		}
	}
}

func TestRender_Stats(t *testing.T) {
	s := scene.NewScene(lookDownZ(1.5))
	config := testConfig(12, 8, 3)
	config.TileSize = 5
	_, stats := NewRaytracer(s, config, nil).Render()

	if stats.TotalPixels != 96 {
		t.Errorf("Expected 96 pixels, got %d", stats.TotalPixels)
	}
	if stats.TotalSamples != 288 {
		t.Errorf("Expected 288 samples, got %d", stats.TotalSamples)
	}
	if stats.AverageSamples != 3 {
		t.Errorf("Expected 3 average samples, got %f", stats.AverageSamples)
	}
	if stats.TotalTiles != 6 {
		t.Errorf("Expected 6 tiles, got %d", stats.TotalTiles)
	}
}

func TestNewRaytracer_Defaults(t *testing.T) {
	config := testConfig(2, 2, 0)
	config.MaxDepth = 0
	rt := NewRaytracer(scene.NewScene(lookDownZ(1)), config, nil)

	if rt.Config().SamplesPerPixel != 1 {
		t.Errorf("Expected non-positive samples to become 1, got %d", rt.Config().SamplesPerPixel)
	}
	if rt.integrator.MaxDepth() != 50 {
		t.Errorf("Expected default depth 50, got %d", rt.integrator.MaxDepth())
	}
}

func TestPixelSeed(t *testing.T) {
	config := testConfig(10, 5, 1)
	config.Seed = 100
	rt := NewRaytracer(scene.NewScene(lookDownZ(2)), config, nil)

	if rt.PixelSeed(3, 2) != rt.PixelSeed(3, 2) {
		t.Error("Expected the same pixel to always get the same seed")
	}

	seen := map[int64]bool{}
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			seed := rt.PixelSeed(x, y)
			if seen[seed] {
				t.Fatalf("Pixel (%d,%d) reuses a seed", x, y)
			}
			seen[seed] = true
		}
	}

	other := config
	other.Seed = 101
	if NewRaytracer(scene.NewScene(lookDownZ(2)), other, nil).PixelSeed(0, 0) == rt.PixelSeed(0, 0) {
		t.Error("Expected the base seed to change pixel seeds")
	}
}

func TestPixelSeed_NeighbourJitterUncorrelated(t *testing.T) {
	const pairs = 10000
	rt := NewRaytracer(scene.NewScene(lookDownZ(1)), testConfig(pairs+1, 1, 1), nil)
	sampler := core.NewSeededSampler(0)

	// Pearson correlation of the first jitter draw of pixel x against pixel x+1
	first := make([]float64, pairs+1)
	for x := range first {
		sampler.Reseed(rt.PixelSeed(x, 0))
		first[x] = float64(sampler.Get1D())
	}

	var sumA, sumB, sumAB, sumAA, sumBB float64
	for i := 0; i < pairs; i++ {
		a, b := first[i], first[i+1]
		sumA += a
		sumB += b
		sumAB += a * b
		sumAA += a * a
		sumBB += b * b
	}
	n := float64(pairs)
	cov := sumAB/n - (sumA/n)*(sumB/n)
	varA := sumAA/n - (sumA/n)*(sumA/n)
	varB := sumBB/n - (sumB/n)*(sumB/n)
	r := cov / math.Sqrt(varA*varB)

	if math.Abs(r) > 0.05 {
		t.Errorf("Expected neighbouring pixels' first draws to be uncorrelated, got r=%.3f", r)
	}
}
