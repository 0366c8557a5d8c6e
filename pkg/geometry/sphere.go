package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-lux-pathtracer/pkg/core"
)

// Sphere represents a sphere shape.
// A negative radius describes the same surface with its normal pointing inward,
// which is how hollow glass shells are built.
type Sphere struct {
	Center core.Vec3
	Radius float32
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Intersect solves the ray-sphere intersection using the projection of the
// center onto the ray. The ray direction must be unit length.
func (s *Sphere) Intersect(ray core.Ray) (float32, bool) {
	hypotenuse := s.Center.Subtract(ray.Origin)
	tProj := hypotenuse.Dot(ray.Direction)
	oppositeSq := hypotenuse.Dot(hypotenuse) - tProj*tProj
	radiusSq := s.Radius * s.Radius

	if oppositeSq > radiusSq || tProj < MinHitDistance {
		return 0, false
	}

	halfChord := math32.Sqrt(radiusSq - oppositeSq)
	distance := tProj - halfChord
	if distance < MinHitDistance {
		// Origin is inside the sphere: the far root is at least tProj away
		distance = tProj + halfChord
	}
	return distance, true
}

// NormalAt returns (point - center) / radius, so the sign of the radius flips the normal
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Divide(s.Radius)
}
