package prox

import "github.com/danielrh/prox/pkg/geom"

// Object is a moving thing with a bounding sphere in its local frame.
// Objects are owned by external code; handlers hold references and track
// lifetime through the change-listener contract.
type Object struct {
	id        ObjectID
	position  geom.MotionVector
	bounds    geom.BoundingSphere
	listeners []ObjectChangeListener
}

func NewObject(id ObjectID, position geom.MotionVector, bounds geom.BoundingSphere) *Object {
	return &Object{
		id:       id,
		position: position,
		bounds:   bounds,
	}
}

func (o *Object) ID() ObjectID {
	return o.id
}

func (o *Object) Position() geom.MotionVector {
	return o.position
}

func (o *Object) PositionAt(t geom.Time) geom.Vector3 {
	return o.position.PositionAt(t)
}

// Bounds is the bounding sphere in the object's local frame.
func (o *Object) Bounds() geom.BoundingSphere {
	return o.bounds
}

// WorldBounds is the local bounding sphere translated to the object's
// position at time t.
func (o *Object) WorldBounds(t geom.Time) geom.BoundingSphere {
	return geom.BoundingSphere{
		Center: o.bounds.Center.Add(o.position.PositionAt(t)),
		Radius: o.bounds.Radius,
	}
}

// SetPosition replaces the object's motion and notifies listeners with the
// old and new values.
func (o *Object) SetPosition(newPos geom.MotionVector) {
	oldPos := o.position
	o.position = newPos
	for _, l := range o.listeners {
		l.ObjectPositionUpdated(o, oldPos, newPos)
	}
}

// SetBounds replaces the local bounding sphere and notifies listeners.
func (o *Object) SetBounds(newBounds geom.BoundingSphere) {
	oldBounds := o.bounds
	o.bounds = newBounds
	for _, l := range o.listeners {
		l.ObjectBoundsUpdated(o, oldBounds, newBounds)
	}
}

// AddChangeListener registers a listener. Registering the same listener twice
// is a programmer error.
func (o *Object) AddChangeListener(listener ObjectChangeListener) {
	if listener == nil {
		panic("prox: nil object change listener")
	}
	for _, l := range o.listeners {
		if l == listener {
			panic("prox: object change listener registered twice")
		}
	}
	o.listeners = append(o.listeners, listener)
}

func (o *Object) RemoveChangeListener(listener ObjectChangeListener) {
	for i, l := range o.listeners {
		if l == listener {
			o.listeners = append(o.listeners[:i], o.listeners[i+1:]...)
			return
		}
	}
}

// Destroy ends the object's life: every listener receives the deleted
// notification and the listener list is dropped. The owner must not reuse
// the object afterwards.
func (o *Object) Destroy() {
	listeners := o.listeners
	o.listeners = nil
	for _, l := range listeners {
		l.ObjectDeleted(o)
	}
}
