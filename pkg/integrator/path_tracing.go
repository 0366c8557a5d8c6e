package integrator

import (
	"github.com/df07/go-lux-pathtracer/pkg/core"
	"github.com/df07/go-lux-pathtracer/pkg/material"
)

// MaxDepth is the default bounce budget for a single camera ray
const MaxDepth = 50

// Scene is what the integrator needs from a scene
type Scene interface {
	ClosestIntersection(ray core.Ray) (material.HitRecord, bool)
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
}

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a path tracer with the given bounce budget.
// A non-positive maxDepth selects MaxDepth.
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}
	return &PathTracingIntegrator{maxDepth: maxDepth}
}

// MaxDepth returns the bounce budget
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.maxDepth
}

// Trace estimates the radiance arriving along ray, starting at the given bounce depth.
//
// It computes attenuation₀ ⊙ (attenuation₁ ⊙ (… ⊙ sky)) without recursion: attenuations are
// collected walking down the path and folded back up from the escaping ray, in the same
// multiplication order as the recursive definition. Absorption, or a hit at depth ≥ max,
// yields black.
func (pt *PathTracingIntegrator) Trace(ray core.Ray, scene Scene, sampler core.Sampler, depth int) core.Vec3 {
	var attenuations []core.Vec3

	for {
		hit, isHit := scene.ClosestIntersection(ray)
		if !isHit {
			color := pt.backgroundGradient(ray, scene)
			for i := len(attenuations) - 1; i >= 0; i-- {
				color = attenuations[i].MultiplyVec(color)
			}
			return color
		}

		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter || depth >= pt.maxDepth {
			return core.Vec3{X: 0, Y: 0, Z: 0}
		}

		attenuations = append(attenuations, scatter.Attenuation)
		ray = scatter.Scattered
		depth++
	}
}

// backgroundGradient blends from the bottom color to the top color by direction.y.
// The direction must be unit length.
func (pt *PathTracingIntegrator) backgroundGradient(r core.Ray, scene Scene) core.Vec3 {
	topColor, bottomColor := scene.GetBackgroundColors()
	return SkyColor(r.Direction, topColor, bottomColor)
}

// SkyColor maps direction.y from [-1,1] to t in [0,1] and returns (1-t)*bottom + t*top
func SkyColor(direction, topColor, bottomColor core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Y + 1.0)
	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}
