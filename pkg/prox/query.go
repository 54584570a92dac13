package prox

import (
	"math"
	"sync"

	"github.com/danielrh/prox/pkg/geom"
)

// InfiniteRadius disables a query's maximum-radius constraint.
var InfiniteRadius = math.Inf(1)

// Query is a continuous proximity query: a moving position, a minimum
// apparent solid angle, and an optional maximum radius. Matching objects are
// reported as Added/Removed events through the query's own FIFO queue.
//
// The queue is the only concurrent surface in the library. Pushes come from
// the handler's driver thread; PopEvents may be called from any thread. The
// notified flag is an edge trigger: at most one QueryHasEvents callback is
// outstanding, and the next one can only fire after the queue is drained.
type Query struct {
	position  geom.MotionVector
	minAngle  geom.SolidAngle
	maxRadius float64

	changeListeners []QueryChangeListener

	// mu guards events, notified and eventListener.
	mu            sync.Mutex
	events        []QueryEvent
	notified      bool
	eventListener QueryEventListener
}

func NewQuery(position geom.MotionVector, minAngle geom.SolidAngle) *Query {
	return NewQueryWithRadius(position, minAngle, InfiniteRadius)
}

func NewQueryWithRadius(position geom.MotionVector, minAngle geom.SolidAngle, maxRadius float64) *Query {
	if maxRadius < 0 {
		panic("prox: negative query radius")
	}
	return &Query{
		position:  position,
		minAngle:  minAngle,
		maxRadius: maxRadius,
	}
}

func (q *Query) Position() geom.MotionVector {
	return q.position
}

func (q *Query) PositionAt(t geom.Time) geom.Vector3 {
	return q.position.PositionAt(t)
}

func (q *Query) Angle() geom.SolidAngle {
	return q.minAngle
}

// Radius is the query's maximum radius, or InfiniteRadius when unbounded.
// Candidates are culled when |center−qpos|² < (radius+r)²; both handlers
// apply that same comparison. Maintainers questioning the comparison's
// polarity: see DESIGN.md.
func (q *Query) Radius() float64 {
	return q.maxRadius
}

// SetPosition replaces the query's motion and notifies change listeners.
func (q *Query) SetPosition(newPos geom.MotionVector) {
	oldPos := q.position
	q.position = newPos
	for _, l := range q.changeListeners {
		l.QueryPositionUpdated(q, oldPos, newPos)
	}
}

// SetEventListener installs the queue-went-non-empty sink. Passing nil
// detaches it.
func (q *Query) SetEventListener(listener QueryEventListener) {
	q.mu.Lock()
	q.eventListener = listener
	q.mu.Unlock()
}

// PushEvent appends one event to the queue.
func (q *Query) PushEvent(event QueryEvent) {
	q.PushEvents([]QueryEvent{event})
}

// PushEvents appends a batch of events to the queue. If the queue was empty
// and no notification is outstanding, the event listener is called exactly
// once, after the lock is released.
func (q *Query) PushEvents(events []QueryEvent) {
	if len(events) == 0 {
		return
	}

	q.mu.Lock()
	wasEmpty := len(q.events) == 0
	q.events = append(q.events, events...)
	var notify QueryEventListener
	if wasEmpty && !q.notified && q.eventListener != nil {
		q.notified = true
		notify = q.eventListener
	}
	q.mu.Unlock()

	// Outside the lock so the listener can pop from the callback.
	if notify != nil {
		notify.QueryHasEvents(q)
	}
}

// PopEvents atomically moves all queued events into out (appending) and
// clears the notification flag, re-arming the edge trigger.
func (q *Query) PopEvents(out *[]QueryEvent) {
	q.mu.Lock()
	*out = append(*out, q.events...)
	q.events = nil
	q.notified = false
	q.mu.Unlock()
}

// AddChangeListener registers a listener. Registering the same listener twice
// is a programmer error.
func (q *Query) AddChangeListener(listener QueryChangeListener) {
	if listener == nil {
		panic("prox: nil query change listener")
	}
	for _, l := range q.changeListeners {
		if l == listener {
			panic("prox: query change listener registered twice")
		}
	}
	q.changeListeners = append(q.changeListeners, listener)
}

func (q *Query) RemoveChangeListener(listener QueryChangeListener) {
	for i, l := range q.changeListeners {
		if l == listener {
			q.changeListeners = append(q.changeListeners[:i], q.changeListeners[i+1:]...)
			return
		}
	}
}

// Destroy ends the query's life and notifies change listeners.
func (q *Query) Destroy() {
	listeners := q.changeListeners
	q.changeListeners = nil
	for _, l := range listeners {
		l.QueryDeleted(q)
	}
}
