package prox

import "github.com/danielrh/prox/pkg/geom"

// BruteForceHandler evaluates every query against every object on each tick.
// It is the baseline the spatial handlers are checked against, and the right
// choice for small worlds.
type BruteForceHandler struct {
	objects map[ObjectID]*Object
	queries map[*Query]*QueryCache
}

var _ QueryHandler = (*BruteForceHandler)(nil)
var _ ObjectChangeListener = (*BruteForceHandler)(nil)
var _ QueryChangeListener = (*BruteForceHandler)(nil)

func NewBruteForceHandler() *BruteForceHandler {
	return &BruteForceHandler{
		objects: make(map[ObjectID]*Object),
		queries: make(map[*Query]*QueryCache),
	}
}

func (h *BruteForceHandler) RegisterObject(obj *Object) {
	if _, ok := h.objects[obj.ID()]; ok {
		return
	}
	h.objects[obj.ID()] = obj
	obj.AddChangeListener(h)
}

func (h *BruteForceHandler) RegisterQuery(query *Query) {
	if _, ok := h.queries[query]; ok {
		return
	}
	h.queries[query] = NewQueryCache()
	query.AddChangeListener(h)
}

func (h *BruteForceHandler) Tick(t geom.Time) {
	for query, cache := range h.queries {
		newCache := NewQueryCache()

		qpos := query.PositionAt(t)
		qradius := query.Radius()
		qangle := query.Angle()

		for _, obj := range h.objects {
			if satisfiesQuery(qpos, qradius, qangle, obj.WorldBounds(t)) {
				newCache.Add(obj.ID())
			}
		}

		var events []QueryEvent
		cache.Exchange(newCache, &events)
		query.PushEvents(events)
	}
}

func (h *BruteForceHandler) ObjectPositionUpdated(obj *Object, oldPos, newPos geom.MotionVector) {
	// Positions are read straight from the object on the next tick.
}

func (h *BruteForceHandler) ObjectBoundsUpdated(obj *Object, oldBounds, newBounds geom.BoundingSphere) {
	// Bounds are read straight from the object on the next tick.
}

func (h *BruteForceHandler) ObjectDeleted(obj *Object) {
	delete(h.objects, obj.ID())
}

func (h *BruteForceHandler) QueryPositionUpdated(query *Query, oldPos, newPos geom.MotionVector) {
	// Positions are read straight from the query on the next tick.
}

func (h *BruteForceHandler) QueryDeleted(query *Query) {
	delete(h.queries, query)
}
