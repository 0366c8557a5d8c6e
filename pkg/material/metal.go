package material

import (
	"github.com/df07/go-lux-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Vec3 // Metal color
	Fuzz   float32   // 0.0 = perfect mirror; values above 1.0 act as 1.0
}

// NewMetal creates a new metal material. Fuzz is stored as given.
func NewMetal(albedo core.Vec3, fuzz float32) Metal {
	return Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter reflects the incoming ray about the normal and perturbs it by the fuzz.
// Rays perturbed into the surface are absorbed.
func (m Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	fuzz := min(m.Fuzz, 1.0)
	reflected := Reflect(rayIn.Direction, hit.Normal)
	direction := reflected.Add(core.RandomInUnitSphere(sampler).Multiply(fuzz)).Normalize()

	if direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Albedo,
	}, true
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
