package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-lux-pathtracer/pkg/config"
	"github.com/df07/go-lux-pathtracer/pkg/output"
	"github.com/df07/go-lux-pathtracer/pkg/renderer"
	"github.com/df07/go-lux-pathtracer/pkg/scene"
)

// options are the resolved command line settings
type options struct {
	config.Config
	help bool
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	opts, fs, err := parseFlags(os.Args[1:], cfg)
	if err != nil {
		os.Exit(2)
	}

	// Show help if requested
	if opts.help {
		printHelp(fs)
		return
	}

	if err := run(opts.Config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags defines the command line on top of the loaded configuration, so flags win over env
func parseFlags(args []string, cfg config.Config) (options, *flag.FlagSet, error) {
	opts := options{Config: cfg}
	fs := flag.NewFlagSet("lux", flag.ContinueOnError)

	fs.StringVar(&opts.Scene, "scene", cfg.Scene, "Scene: 'default', 'spheregrid' or a path to a .json scene file")
	fs.IntVar(&opts.Width, "width", cfg.Width, "Image width (0 = scene default)")
	fs.IntVar(&opts.Height, "height", cfg.Height, "Image height (0 = scene default)")
	fs.IntVar(&opts.Samples, "samples", cfg.Samples, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.MaxDepth, "max-depth", cfg.MaxDepth, "Maximum ray bounce depth (0 = scene default)")
	fs.IntVar(&opts.Workers, "workers", cfg.Workers, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.IntVar(&opts.TileSize, "tile-size", cfg.TileSize, "Tile edge length in pixels")
	fs.Int64Var(&opts.Seed, "seed", cfg.Seed, "Base random seed")
	fs.StringVar(&opts.OutputDir, "output", cfg.OutputDir, "Output directory")
	fs.IntVar(&opts.ThumbnailWidth, "thumbnail", cfg.ThumbnailWidth, "Also write a thumbnail of this width (0 = off)")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			// -h and -help print the same help
			opts.help = true
			return opts, fs, nil
		}
		fmt.Fprintln(os.Stderr, "Run with -help for usage")
		return options{}, fs, err
	}
	return opts, fs, nil
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Lux Path Tracer")
	fmt.Println("Usage: lux [options]")
	fmt.Println()
	fmt.Println("Options (defaults come from LUX_* environment variables or .env):")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	fmt.Println("  default    - Diffuse, metal and hollow glass spheres on a large ground sphere")
	fmt.Println("  spheregrid - Seeded random field of small spheres around three large ones")
	fmt.Println("  <file>.json - Scene description, see scenes/")
	fmt.Println()
	fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.png")
}

// createScene creates a scene by builtin name or JSON file path
func createScene(sceneType string) (*scene.Scene, error) {
	switch sceneType {
	case "default":
		return scene.NewDefaultScene(), nil
	case "spheregrid":
		return scene.NewSphereGridScene(), nil
	case "":
		return nil, errors.New("no scene specified")
	}

	if strings.HasSuffix(sceneType, ".json") {
		return scene.Load(sceneType)
	}
	return nil, fmt.Errorf("unknown scene type: %s", sceneType)
}

// sceneName returns the directory name renders of sceneType are stored under
func sceneName(sceneType string) string {
	if strings.HasSuffix(sceneType, ".json") {
		return strings.TrimSuffix(filepath.Base(sceneType), ".json")
	}
	return sceneType
}

// renderConfig resolves the frame settings: explicit values win over the scene's recommendation
func renderConfig(cfg config.Config, s *scene.Scene) renderer.RenderConfig {
	rc := renderer.DefaultRenderConfig()
	rc.Width = pick(cfg.Width, s.SamplingConfig.Width)
	rc.Height = pick(cfg.Height, s.SamplingConfig.Height)
	rc.SamplesPerPixel = pick(cfg.Samples, s.SamplingConfig.SamplesPerPixel)
	rc.MaxDepth = pick(cfg.MaxDepth, s.SamplingConfig.MaxDepth)
	rc.NumWorkers = cfg.Workers
	rc.TileSize = cfg.TileSize
	rc.Seed = cfg.Seed
	return rc
}

func pick(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

// fitCamera matches the camera to the frame when the size was overridden or the
// scene left its aspect ratio unset, keeping pixels square
func fitCamera(s *scene.Scene, rc renderer.RenderConfig, sizeOverridden bool) {
	if sizeOverridden || s.CameraConfig.AspectRatio == 0 {
		s.SetAspectRatio(float32(rc.Width) / float32(rc.Height))
	}
}

func run(cfg config.Config) error {
	fmt.Println("Starting Lux Path Tracer...")

	selectedScene, err := createScene(cfg.Scene)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}

	rc := renderConfig(cfg, selectedScene)
	if rc.Width <= 0 || rc.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", rc.Width, rc.Height)
	}
	fitCamera(selectedScene, rc, cfg.Width > 0 || cfg.Height > 0)

	fmt.Printf("Using %s scene, %dx%d at %d samples per pixel\n", cfg.Scene, rc.Width, rc.Height, rc.SamplesPerPixel)

	raytracer := renderer.NewRaytracer(selectedScene, rc, renderer.NewDefaultLogger())
	fb, stats := raytracer.Render()

	fmt.Printf("Render completed in %v\n", stats.Elapsed)
	fmt.Printf("Samples per pixel: %.1f across %d tiles\n", stats.AverageSamples, stats.TotalTiles)

	filename := output.RenderPath(cfg.OutputDir, sceneName(cfg.Scene), time.Now())
	if err := output.SavePNG(filename, fb); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)

	if cfg.ThumbnailWidth > 0 {
		thumbPath := output.ThumbnailPath(filename)
		if err := output.SavePNG(thumbPath, output.Thumbnail(fb, cfg.ThumbnailWidth)); err != nil {
			return err
		}
		fmt.Printf("Thumbnail saved as %s\n", thumbPath)
	}

	s3Config := output.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Prefix:    cfg.S3Prefix,
	}
	if s3Config.Enabled() {
		if err := upload(s3Config, filename, fb); err != nil {
			return err
		}
	}

	return nil
}

// upload sends the encoded render to S3 under <prefix>/<scene dir>/<file name>
func upload(s3Config output.S3Config, filename string, fb *renderer.Framebuffer) error {
	uploader, err := output.NewS3Uploader(s3Config)
	if err != nil {
		return fmt.Errorf("failed to configure upload: %w", err)
	}

	data, err := output.PNGBytes(fb)
	if err != nil {
		return err
	}

	name := filepath.ToSlash(filepath.Join(filepath.Base(filepath.Dir(filename)), filepath.Base(filename)))
	key, err := uploader.UploadPNG(context.Background(), name, data)
	if err != nil {
		return err
	}
	fmt.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, s3Config.Bucket, len(data))
	return nil
}
