package prox

import "github.com/danielrh/prox/pkg/geom"

// QueryHandler matches a dynamic set of objects against a set of continuous
// queries. External code constructs objects and queries, registers them, and
// calls Tick periodically; each tick pushes the per-query result delta onto
// the query's event queue.
//
// All handler operations (registration, Tick, and the change-listener
// callbacks fired by object/query mutation) run on one driver thread. The
// per-query event queue is the only part safe to touch from elsewhere.
type QueryHandler interface {

	// RegisterObject adds an object to the handler's working set and attaches
	// the handler as a change listener. Registering an already-registered
	// object is a no-op.
	RegisterObject(obj *Object)

	// RegisterQuery adds a query, allocating its result cache, and attaches
	// the handler as a change listener.
	RegisterQuery(query *Query)

	// Tick evaluates every query against the object set at time t and pushes
	// Added/Removed events onto each query. Calls must be monotonic in t.
	Tick(t geom.Time)
}

// satisfiesQuery is the predicate shared by all handlers, applied to a
// candidate region (an object's world bounds, or an R-tree node's sphere).
// The radius test culls candidates with |center−qpos|² < (qradius+r)²; the
// angle test requires the subtended solid angle to reach the query minimum.
func satisfiesQuery(qpos geom.Vector3, qradius float64, qangle geom.SolidAngle, bounds geom.BoundingSphere) bool {
	toObj := bounds.Center.Sub(qpos)

	if qradius != InfiniteRadius {
		reach := qradius + bounds.Radius
		if toObj.LengthSquared() < reach*reach {
			return false
		}
	}

	solidAngle := geom.SolidAngleFromCenterRadius(toObj, bounds.Radius)
	return solidAngle >= qangle
}
