package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the render settings read from the environment
type Config struct {
	Scene          string
	Width          int // 0 = the scene's recommended size
	Height         int
	Samples        int // 0 = the scene's recommended samples
	MaxDepth       int // 0 = the scene's recommended depth
	Workers        int // 0 = one per CPU
	TileSize       int
	Seed           int64
	OutputDir      string
	ThumbnailWidth int // 0 disables the thumbnail

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Prefix    string
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Scene:     "default",
		Workers:   0,
		TileSize:  32,
		Seed:      42,
		OutputDir: "output",
	}
}

// Load reads envFile if it exists and overlays the process environment on top of it
func Load(envFile string) (Config, error) {
	values := map[string]string{}
	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			values = fileValues
		case errors.Is(err, os.ErrNotExist):
			// No file, environment only
		default:
			return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}

	cfg := Default()
	stringKeys := map[string]*string{
		"LUX_SCENE":         &cfg.Scene,
		"LUX_OUTPUT_DIR":    &cfg.OutputDir,
		"LUX_S3_BUCKET":     &cfg.S3Bucket,
		"LUX_S3_REGION":     &cfg.S3Region,
		"LUX_S3_ENDPOINT":   &cfg.S3Endpoint,
		"LUX_S3_ACCESS_KEY": &cfg.S3AccessKey,
		"LUX_S3_SECRET_KEY": &cfg.S3SecretKey,
		"LUX_S3_PREFIX":     &cfg.S3Prefix,
	}
	for key, target := range stringKeys {
		if v, ok := lookup(key); ok && v != "" {
			*target = v
		}
	}

	intKeys := map[string]*int{
		"LUX_WIDTH":           &cfg.Width,
		"LUX_HEIGHT":          &cfg.Height,
		"LUX_SAMPLES":         &cfg.Samples,
		"LUX_MAX_DEPTH":       &cfg.MaxDepth,
		"LUX_WORKERS":         &cfg.Workers,
		"LUX_TILE_SIZE":       &cfg.TileSize,
		"LUX_THUMBNAIL_WIDTH": &cfg.ThumbnailWidth,
	}
	for key, target := range intKeys {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", key, err)
		}
		*target = n
	}

	if v, ok := lookup("LUX_SEED"); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LUX_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	return cfg, nil
}
