package material

import (
	"github.com/df07/go-lux-pathtracer/pkg/core"
)

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter returns the outgoing ray and its color attenuation.
	// A false result means the ray was absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray, unit direction
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about the nearest ray-surface intersection
type HitRecord struct {
	Distance float32   // Distance along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal, inverted for negative-radius spheres
	Material Material  // Material of the hit object
}
