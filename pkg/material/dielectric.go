package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-lux-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float32 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float32) Dielectric {
	return Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter chooses between reflection and refraction with Schlick's probability.
// Glass is non-absorbing: attenuation is always white and the ray is never absorbed.
func (d Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := rayIn.Direction
	projected := direction.Dot(hit.Normal)

	var outwardNormal core.Vec3
	var refractionRatio, cosine float32
	if projected > 0 {
		// Exiting the medium
		outwardNormal = hit.Normal.Negate()
		refractionRatio = d.RefractiveIndex
		cosine = d.RefractiveIndex * projected / direction.Length()
	} else {
		// Entering the medium
		outwardNormal = hit.Normal
		refractionRatio = 1.0 / d.RefractiveIndex
		cosine = -projected / direction.Length()
	}

	reflectProbability := float32(1.0) // total internal reflection
	refracted, canRefract := Refract(direction, outwardNormal, refractionRatio)
	if canRefract {
		reflectProbability = Schlick(cosine, d.RefractiveIndex)
	}

	var scattered core.Vec3
	if sampler.Get1D() < reflectProbability {
		scattered = Reflect(direction, hit.Normal).Normalize()
	} else {
		scattered = refracted.Normalize()
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scattered),
		Attenuation: core.NewVec3(1.0, 1.0, 1.0),
	}, true
}

// Refract bends v through a surface with normal n using Snell's law.
// It reports false on total internal reflection.
func Refract(v, n core.Vec3, refractionRatio float32) (core.Vec3, bool) {
	projected := v.Dot(n)
	discriminant := 1.0 - refractionRatio*refractionRatio*(1.0-projected*projected)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	perpendicular := v.Subtract(n.Multiply(projected)).Multiply(refractionRatio)
	return perpendicular.Subtract(n.Multiply(math32.Sqrt(discriminant))), true
}

// Schlick approximates the Fresnel reflectance
func Schlick(cosine, refractiveIndex float32) float32 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}
