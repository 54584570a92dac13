package prox

import "github.com/danielrh/prox/pkg/geom"

// ObjectChangeListener observes mutations of a single Object. Handlers
// register themselves as listeners when an object is registered; the deleted
// notification is the authoritative removal signal and may arrive without any
// prior unregistration.
type ObjectChangeListener interface {
	ObjectPositionUpdated(obj *Object, oldPos, newPos geom.MotionVector)
	ObjectBoundsUpdated(obj *Object, oldBounds, newBounds geom.BoundingSphere)
	ObjectDeleted(obj *Object)
}

// QueryChangeListener observes mutations of a single Query.
type QueryChangeListener interface {
	QueryPositionUpdated(query *Query, oldPos, newPos geom.MotionVector)
	QueryDeleted(query *Query)
}

// QueryEventListener is the "queue went non-empty" sink. It is called at most
// once per empty→non-empty transition of a query's event queue, never with
// the queue's lock held, so it may pop events directly from the callback.
type QueryEventListener interface {
	QueryHasEvents(query *Query)
}
