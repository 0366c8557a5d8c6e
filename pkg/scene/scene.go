package scene

import (
	"math"

	"github.com/df07/go-lux-pathtracer/pkg/core"
	"github.com/df07/go-lux-pathtracer/pkg/geometry"
	"github.com/df07/go-lux-pathtracer/pkg/material"
)

// Object pairs a surface with the material it scatters light with
type Object struct {
	Shape    geometry.Shape
	Material material.Material
}

// Scene contains all the elements needed for rendering.
// It must not be modified while a render is in progress.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	SamplingConfig SamplingConfig
	TopColor       core.Vec3 // Sky color straight up
	BottomColor    core.Vec3 // Sky color straight down
	objects        []Object
}

// SamplingConfig contains recommended rendering configuration for a scene
type SamplingConfig struct {
	Width           int `json:"width"`           // Image width
	Height          int `json:"height"`          // Image height
	SamplesPerPixel int `json:"samplesPerPixel"` // Number of rays per pixel
	MaxDepth        int `json:"maxDepth"`        // Maximum ray bounce depth
}

// DefaultSamplingConfig returns a 200x100 frame at 100 samples per pixel
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           200,
		Height:          100,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// NewScene creates an empty scene viewed through the given camera, with the default sky
func NewScene(cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		SamplingConfig: DefaultSamplingConfig(),
		TopColor:       core.NewVec3(0.5, 0.7, 1.0),
		BottomColor:    core.NewVec3(1.0, 1.0, 1.0),
	}
}

// AddObject appends an object to the scene
func (s *Scene) AddObject(object Object) {
	s.objects = append(s.objects, object)
}

// AddSphere is shorthand for adding a sphere object
func (s *Scene) AddSphere(center core.Vec3, radius float32, mat material.Material) {
	s.AddObject(Object{Shape: geometry.NewSphere(center, radius), Material: mat})
}

// Objects returns the objects in insertion order. Callers must not modify the slice.
func (s *Scene) Objects() []Object {
	return s.objects
}

// GetBackgroundColors returns the sky gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// ClosestIntersection tests every object and returns the nearest hit.
// Exact ties keep the object added first.
func (s *Scene) ClosestIntersection(ray core.Ray) (material.HitRecord, bool) {
	closestDistance := float32(math.MaxFloat32)
	var closest material.HitRecord
	hitAnything := false

	for _, object := range s.objects {
		distance, isHit := object.Shape.Intersect(ray)
		if !isHit || distance >= closestDistance {
			continue
		}
		closestDistance = distance
		point := ray.At(distance)
		closest = material.HitRecord{
			Distance: distance,
			Point:    point,
			Normal:   object.Shape.NormalAt(point),
			Material: object.Material,
		}
		hitAnything = true
	}

	return closest, hitAnything
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override geometry.CameraConfig) geometry.CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	return result
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// SetAspectRatio rebuilds the camera for a frame of the given width / height
func (s *Scene) SetAspectRatio(aspectRatio float32) {
	s.CameraConfig.AspectRatio = aspectRatio
	s.Camera = geometry.NewCamera(s.CameraConfig)
}
