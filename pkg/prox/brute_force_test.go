package prox

import (
	"testing"

	"github.com/danielrh/prox/pkg/geom"
	"github.com/stretchr/testify/require"
)

func Test_EmptyWorldProducesNoEvents(t *testing.T) {
	h := NewBruteForceHandler()
	q := originQuery()
	h.RegisterQuery(q)

	h.Tick(0)
	require.Empty(t, popAll(q))
}

func Test_SingleMatchingObject(t *testing.T) {
	h := NewBruteForceHandler()
	q := originQuery()
	h.RegisterQuery(q)

	obj := stillObject(1, geom.Vector3{X: 10}, 1)
	h.RegisterObject(obj)

	h.Tick(0)
	require.Equal(t, []QueryEvent{{Type: Added, ID: testID(1)}}, popAll(q))

	// Steady state: no further events.
	h.Tick(1)
	require.Empty(t, popAll(q))
}

func Test_ObjectLeavesAngleCone(t *testing.T) {
	h := NewBruteForceHandler()
	q := originQuery()
	h.RegisterQuery(q)

	obj := stillObject(1, geom.Vector3{X: 10}, 1)
	h.RegisterObject(obj)

	h.Tick(0)
	require.Equal(t, []QueryEvent{{Type: Added, ID: testID(1)}}, popAll(q))

	obj.SetPosition(geom.NewMotionVector(1, geom.Vector3{X: 10000}, geom.Vector3{}))
	h.Tick(1)
	require.Equal(t, []QueryEvent{{Type: Removed, ID: testID(1)}}, popAll(q))
}

func Test_QueryMovesToEngulfCluster(t *testing.T) {
	h := NewBruteForceHandler()

	cluster := []geom.Vector3{
		{X: 5, Y: 5}, {X: 5, Y: -5}, {X: -5, Y: 5}, {X: -5, Y: -5},
	}
	for i, pos := range cluster {
		h.RegisterObject(stillObject(byte(i+1), pos, 1))
	}

	q := NewQuery(geom.NewMotionVector(0, geom.Vector3{X: 1000}, geom.Vector3{}), smallAngle())
	h.RegisterQuery(q)

	h.Tick(0)
	require.Empty(t, popAll(q))

	q.SetPosition(geom.NewMotionVector(1, geom.Vector3{}, geom.Vector3{}))
	h.Tick(1)

	require.Equal(t, []QueryEvent{
		{Type: Added, ID: testID(1)},
		{Type: Added, ID: testID(2)},
		{Type: Added, ID: testID(3)},
		{Type: Added, ID: testID(4)},
	}, popAll(q))
}

func Test_MovingObjectCrossesThreshold(t *testing.T) {
	h := NewBruteForceHandler()
	q := originQuery()
	h.RegisterQuery(q)

	// Starts far out, flies toward the query at 1000 units per tick.
	obj := NewObject(
		testID(1),
		geom.NewMotionVector(0, geom.Vector3{X: 10000}, geom.Vector3{X: -1000}),
		geom.NewBoundingSphere(geom.Vector3{}, 1),
	)
	h.RegisterObject(obj)

	h.Tick(0)
	require.Empty(t, popAll(q))

	// At t=9 the object sits at x=1000; angle ≈ 2π(1−cos(atan(1/1000))),
	// still under the threshold. At x=10 it is well over.
	h.Tick(9)
	require.Empty(t, popAll(q))

	h.Tick(9.99)
	require.Equal(t, []QueryEvent{{Type: Added, ID: testID(1)}}, popAll(q))
}

func Test_RadiusConstraintCullsNearObjects(t *testing.T) {
	h := NewBruteForceHandler()

	near := stillObject(1, geom.Vector3{X: 10}, 1)
	far := stillObject(2, geom.Vector3{X: 200}, 1)
	h.RegisterObject(near)
	h.RegisterObject(far)

	// The radius comparison keeps candidates at or beyond the threshold
	// distance and culls the near ones.
	q := NewQueryWithRadius(geom.NewMotionVector(0, geom.Vector3{}, geom.Vector3{}), geom.MinSolidAngle, 100)
	h.RegisterQuery(q)

	h.Tick(0)
	require.Equal(t, []QueryEvent{{Type: Added, ID: testID(2)}}, popAll(q))
}
