package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_MotionVectorExtrapolates(t *testing.T) {
	mv := NewMotionVector(Time(2), Vector3{X: 1}, Vector3{X: 3, Y: -1})

	p := mv.PositionAt(Time(4))
	require.InDelta(t, 7, p.X, tolerance)
	require.InDelta(t, -2, p.Y, tolerance)
	require.InDelta(t, 0, p.Z, tolerance)

	// Backwards extrapolation is allowed.
	p = mv.PositionAt(Time(1))
	require.InDelta(t, -2, p.X, tolerance)
}

func Test_MotionVectorUpdateRequiresLaterTime(t *testing.T) {
	mv := NewMotionVector(Time(5), Vector3{}, Vector3{})

	require.Panics(t, func() { mv.Update(Time(5), Vector3{X: 1}, Vector3{}) })
	require.Panics(t, func() { mv.Update(Time(3), Vector3{X: 1}, Vector3{}) })

	mv.Update(Time(6), Vector3{X: 1}, Vector3{Y: 2})
	require.Equal(t, Time(6), mv.UpdateTime())
	require.Equal(t, Vector3{X: 1}, mv.Position())
	require.Equal(t, Vector3{Y: 2}, mv.Velocity())
}

func Test_VectorOps(t *testing.T) {
	a := Vector3{X: 1, Y: 2, Z: 3}
	b := Vector3{X: -4, Y: 0, Z: 2}

	require.Equal(t, Vector3{X: -3, Y: 2, Z: 5}, a.Add(b))
	require.Equal(t, Vector3{X: 5, Y: 2, Z: 1}, a.Sub(b))
	require.InDelta(t, 2, a.Dot(b), tolerance)
	require.InDelta(t, 1, a.Normal().Length(), tolerance)
	require.Equal(t, Vector3{}, Vector3{}.Normal())

	// Cross product is orthogonal to both inputs.
	c := a.Cross(b)
	require.InDelta(t, 0, c.Dot(a), tolerance)
	require.InDelta(t, 0, c.Dot(b), tolerance)
}
