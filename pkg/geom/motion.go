package geom

import "fmt"

// MotionVector is a position sampled at some time plus a constant velocity.
// It extrapolates linearly: the position at time t is start + velocity*(t-t0).
type MotionVector struct {
	t0       Time
	start    Vector3
	velocity Vector3
}

func NewMotionVector(t Time, pos Vector3, vel Vector3) MotionVector {
	return MotionVector{t0: t, start: pos, velocity: vel}
}

func (m MotionVector) UpdateTime() Time {
	return m.t0
}

func (m MotionVector) Position() Vector3 {
	return m.start
}

func (m MotionVector) Velocity() Vector3 {
	return m.velocity
}

// PositionAt extrapolates the position to time t. t may be earlier than the
// sample time; extrapolation runs backwards as well.
func (m MotionVector) PositionAt(t Time) Vector3 {
	dt := t.Sub(m.t0)
	return m.start.Add(m.velocity.Scale(dt.Seconds()))
}

// Update replaces the sample in place. The new sample time must be strictly
// greater than the current one; violating that is a programmer error.
func (m *MotionVector) Update(t Time, pos Vector3, vel Vector3) {
	if t <= m.t0 {
		panic(fmt.Sprintf("geom: motion update at t=%v not after t=%v", t, m.t0))
	}
	m.t0 = t
	m.start = pos
	m.velocity = vel
}
