package prox

import "github.com/danielrh/prox/pkg/geom"

// RTreeHandler answers queries through a dynamic R-tree of bounding spheres,
// pruning whole subtrees whose sphere fails the query predicate. Node
// capacity is fixed at construction; 4 is a reasonable default.
//
// Object motion invalidates stored bounds, so the index is rebuilt from the
// registered set at the start of every tick; registration still inserts
// eagerly at the last known time so the tree is inspectable between ticks.
type RTreeHandler struct {
	root     *rtreeNode
	capacity int
	lastTime geom.Time
	objects  map[ObjectID]*Object
	queries  map[*Query]*QueryCache
}

var _ QueryHandler = (*RTreeHandler)(nil)
var _ ObjectChangeListener = (*RTreeHandler)(nil)
var _ QueryChangeListener = (*RTreeHandler)(nil)

func NewRTreeHandler(elementsPerNode int) *RTreeHandler {
	if elementsPerNode < 2 {
		panic("prox: rtree node capacity must be at least 2")
	}
	return &RTreeHandler{
		root:     newRTreeNode(elementsPerNode),
		capacity: elementsPerNode,
		objects:  make(map[ObjectID]*Object),
		queries:  make(map[*Query]*QueryCache),
	}
}

func (h *RTreeHandler) RegisterObject(obj *Object) {
	if _, ok := h.objects[obj.ID()]; ok {
		return
	}
	h.objects[obj.ID()] = obj
	h.root = rtreeInsert(h.root, obj, h.lastTime)
	obj.AddChangeListener(h)
}

func (h *RTreeHandler) RegisterQuery(query *Query) {
	if _, ok := h.queries[query]; ok {
		return
	}
	h.queries[query] = NewQueryCache()
	query.AddChangeListener(h)
}

func (h *RTreeHandler) Tick(t geom.Time) {
	h.rebuild(t)

	for query, cache := range h.queries {
		newCache := NewQueryCache()

		qpos := query.PositionAt(t)
		qradius := query.Radius()
		qangle := query.Angle()

		stack := []*rtreeNode{h.root}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if node.leaf {
				for _, obj := range node.objects {
					if satisfiesQuery(qpos, qradius, qangle, obj.WorldBounds(t)) {
						newCache.Add(obj.ID())
					}
				}
				continue
			}
			for _, child := range node.children {
				if satisfiesQuery(qpos, qradius, qangle, child.bounds) {
					stack = append(stack, child)
				}
			}
		}

		var events []QueryEvent
		cache.Exchange(newCache, &events)
		query.PushEvents(events)
	}

	h.lastTime = t
}

// rebuild reinserts every registered object at time t, refreshing all stored
// bounds in one pass. Simplicity over speed; see DESIGN.md for the
// alternatives considered.
func (h *RTreeHandler) rebuild(t geom.Time) {
	h.root = newRTreeNode(h.capacity)
	for _, obj := range h.objects {
		h.root = rtreeInsert(h.root, obj, t)
	}
}

// VerifyBounds checks the containment invariant over the whole tree at time
// t, logging violations. It returns the number of violations found.
func (h *RTreeHandler) VerifyBounds(t geom.Time) int {
	return verifyBounds(h.root, t)
}

func (h *RTreeHandler) ObjectPositionUpdated(obj *Object, oldPos, newPos geom.MotionVector) {
	// Stored bounds go stale here; the per-tick rebuild refreshes them.
}

func (h *RTreeHandler) ObjectBoundsUpdated(obj *Object, oldBounds, newBounds geom.BoundingSphere) {
	// Stored bounds go stale here; the per-tick rebuild refreshes them.
}

func (h *RTreeHandler) ObjectDeleted(obj *Object) {
	delete(h.objects, obj.ID())
	// The index entry disappears at the next rebuild.
}

func (h *RTreeHandler) QueryPositionUpdated(query *Query, oldPos, newPos geom.MotionVector) {
	// Positions are read straight from the query on the next tick.
}

func (h *RTreeHandler) QueryDeleted(query *Query) {
	delete(h.queries, query)
}
