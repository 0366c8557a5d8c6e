package geometry

import (
	"github.com/df07/go-lux-pathtracer/pkg/core"
)

// MinHitDistance is the smallest distance along a ray that counts as a hit.
// Rays leaving a surface would otherwise re-hit that surface at t≈0.
const MinHitDistance float32 = 0.001

// Shape interface for surfaces that can be hit by rays.
// Directions passed to Intersect must be unit length.
type Shape interface {
	// Intersect returns the nearest hit distance above MinHitDistance
	Intersect(ray core.Ray) (float32, bool)
	// NormalAt returns the surface normal at a point on the shape
	NormalAt(point core.Vec3) core.Vec3
}
