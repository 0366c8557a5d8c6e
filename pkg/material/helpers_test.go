package material

import (
	"github.com/df07/go-lux-pathtracer/pkg/core"
)

// scriptedSampler replays a fixed sequence of values so scattering is reproducible
type scriptedSampler struct {
	values []float32
	next   int
}

func newScriptedSampler(values ...float32) *scriptedSampler {
	return &scriptedSampler{values: values}
}

func (s *scriptedSampler) Get1D() float32 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *scriptedSampler) Get2D() (float32, float32) {
	return s.Get1D(), s.Get1D()
}

func (s *scriptedSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.Get1D(), s.Get1D(), s.Get1D())
}

func upwardHit(m Material) HitRecord {
	return HitRecord{
		Distance: 1,
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		Material: m,
	}
}
