package prox

import (
	"math"
	"math/rand"

	"github.com/danielrh/prox/pkg/geom"
)

// testID builds an ObjectID whose leading byte is n, so ids sort by n.
func testID(n byte) ObjectID {
	var id ObjectID
	id[0] = n
	return id
}

// stillObject creates an object with local bounds of the given radius,
// centered on its position, sitting at pos from time 0 with no velocity.
func stillObject(n byte, pos geom.Vector3, radius float64) *Object {
	return NewObject(
		testID(n),
		geom.NewMotionVector(0, pos, geom.Vector3{}),
		geom.NewBoundingSphere(geom.Vector3{}, radius),
	)
}

// smallAngle is the standard test query threshold, one ten-thousandth of the
// full sphere.
func smallAngle() geom.SolidAngle {
	return geom.NewSolidAngle(4 * math.Pi / 10000)
}

func originQuery() *Query {
	return NewQuery(geom.NewMotionVector(0, geom.Vector3{}, geom.Vector3{}), smallAngle())
}

// countingEventListener counts QueryHasEvents callbacks.
type countingEventListener struct {
	calls int
}

func (l *countingEventListener) QueryHasEvents(*Query) {
	l.calls++
}

// drainingEventListener pops from inside the callback, exercising the
// notify-outside-the-lock contract.
type drainingEventListener struct {
	calls  int
	popped []QueryEvent
}

func (l *drainingEventListener) QueryHasEvents(q *Query) {
	l.calls++
	q.PopEvents(&l.popped)
}

// recordingObjectListener records object change notifications.
type recordingObjectListener struct {
	positionUpdates int
	boundsUpdates   int
	deleted         int
}

func (l *recordingObjectListener) ObjectPositionUpdated(*Object, geom.MotionVector, geom.MotionVector) {
	l.positionUpdates++
}

func (l *recordingObjectListener) ObjectBoundsUpdated(*Object, geom.BoundingSphere, geom.BoundingSphere) {
	l.boundsUpdates++
}

func (l *recordingObjectListener) ObjectDeleted(*Object) {
	l.deleted++
}

// randomObject builds a still object with a random id at pos.
func randomObject(rng *rand.Rand, pos geom.Vector3, radius float64) *Object {
	var id ObjectID
	rng.Read(id[:])
	return NewObject(
		id,
		geom.NewMotionVector(0, pos, geom.Vector3{}),
		geom.NewBoundingSphere(geom.Vector3{}, radius),
	)
}

// popAll drains a query into a fresh slice.
func popAll(q *Query) []QueryEvent {
	var out []QueryEvent
	q.PopEvents(&out)
	return out
}

// leafDepths collects the depth of every leaf under node.
func leafDepths(node *rtreeNode, depth int, out *[]int) {
	if node.leaf {
		*out = append(*out, depth)
		return
	}
	for _, child := range node.children {
		leafDepths(child, depth+1, out)
	}
}
