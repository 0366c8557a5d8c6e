package geometry

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/df07/go-lux-pathtracer/pkg/core"
)

// CameraConfig describes a look-at pinhole camera
type CameraConfig struct {
	Center      core.Vec3 `json:"center"`      // Camera position
	LookAt      core.Vec3 `json:"lookAt"`      // Point the camera looks at
	Up          core.Vec3 `json:"up"`          // Up direction, must not be parallel to LookAt-Center
	VFov        float32   `json:"vfov"`        // Vertical field of view in degrees
	AspectRatio float32   `json:"aspectRatio"` // Width / height
}

// Camera generates rays for rendering.
// Horizontal and vertical span the full image plane, they are not unit axes.
type Camera struct {
	Origin          core.Vec3
	LowerLeftCorner core.Vec3
	Horizontal      core.Vec3
	Vertical        core.Vec3
}

// NewCamera builds the image plane from a look-at basis one unit in front of the camera.
// An Up vector parallel to the view direction yields a degenerate basis; this is not checked.
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	halfHeight := math32.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	lowerLeftCorner := config.Center.
		Subtract(u.Multiply(halfWidth)).
		Subtract(v.Multiply(halfHeight)).
		Subtract(w)

	return &Camera{
		Origin:          config.Center,
		LowerLeftCorner: lowerLeftCorner,
		Horizontal:      u.Multiply(2 * halfWidth),
		Vertical:        v.Multiply(2 * halfHeight),
	}
}

// GetRay returns a unit-direction ray through image-plane fractions (s, t),
// s measured from the left edge and t from the bottom edge.
func (c *Camera) GetRay(s, t float32) core.Ray {
	direction := c.LowerLeftCorner.
		Add(c.Horizontal.Multiply(s)).
		Add(c.Vertical.Multiply(t)).
		Subtract(c.Origin)

	return core.NewRay(c.Origin, direction.Normalize())
}
