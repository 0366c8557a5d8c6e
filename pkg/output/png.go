package output

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"
)

// EncodePNG writes img to w as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// PNGBytes encodes img into memory
func PNGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePNG writes img to path, creating parent directories as needed
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if err := EncodePNG(file, img); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", path, err)
	}
	return nil
}

// RenderPath returns <outputDir>/<sceneName>/render_<timestamp>.png
func RenderPath(outputDir, sceneName string, at time.Time) string {
	timestamp := at.Format("20060102_150405")
	return filepath.Join(outputDir, sceneName, fmt.Sprintf("render_%s.png", timestamp))
}

// ThumbnailPath returns the path of the preview stored next to renderPath
func ThumbnailPath(renderPath string) string {
	ext := filepath.Ext(renderPath)
	return renderPath[:len(renderPath)-len(ext)] + "_thumb" + ext
}
