package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-lux-pathtracer/pkg/core"
	"github.com/df07/go-lux-pathtracer/pkg/geometry"
	"github.com/df07/go-lux-pathtracer/pkg/material"
)

// File is the JSON representation of a scene
type File struct {
	Camera     geometry.CameraConfig `json:"camera"`
	Sampling   *SamplingConfig       `json:"sampling,omitempty"`
	Background *BackgroundFile       `json:"background,omitempty"`
	Objects    []ObjectFile          `json:"objects"`
}

// BackgroundFile overrides the sky gradient
type BackgroundFile struct {
	Top    core.Vec3 `json:"top"`
	Bottom core.Vec3 `json:"bottom"`
}

// ObjectFile describes one object. Only spheres exist today.
type ObjectFile struct {
	Type     string       `json:"type"`
	Center   core.Vec3    `json:"center"`
	Radius   float32      `json:"radius"` // negative radius makes a hollow shell
	Material MaterialFile `json:"material"`
}

// MaterialFile describes a material; fields unused by the type are ignored
type MaterialFile struct {
	Type            string    `json:"type"`
	Albedo          core.Vec3 `json:"albedo"`
	Fuzz            float32   `json:"fuzz"`
	RefractiveIndex float32   `json:"refractiveIndex"`
}

// Load reads a scene from a JSON file
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", path, err)
	}
	return s, nil
}

// Decode parses a JSON scene. Numeric values are taken as given.
func Decode(r io.Reader) (*Scene, error) {
	var file File
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return file.Build()
}

// Build converts the file description into a renderable scene
func (f File) Build() (*Scene, error) {
	s := NewScene(f.Camera)
	if f.Sampling != nil {
		s.SamplingConfig = mergeSamplingConfig(s.SamplingConfig, *f.Sampling)
	}
	if f.Background != nil {
		s.TopColor = f.Background.Top
		s.BottomColor = f.Background.Bottom
	}

	for i, obj := range f.Objects {
		mat, err := obj.Material.build()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		switch obj.Type {
		case "sphere":
			s.AddSphere(obj.Center, obj.Radius, mat)
		default:
			return nil, fmt.Errorf("object %d: unknown geometry type %q", i, obj.Type)
		}
	}
	return s, nil
}

func (m MaterialFile) build() (material.Material, error) {
	switch m.Type {
	case "lambert", "lambertian":
		return material.NewLambertian(m.Albedo), nil
	case "metal", "metallic":
		return material.NewMetal(m.Albedo, m.Fuzz), nil
	case "dielectric", "glass":
		return material.NewDielectric(m.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

func mergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		result.MaxDepth = override.MaxDepth
	}
	return result
}
