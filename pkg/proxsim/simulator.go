package proxsim

import (
	"math/rand"

	"github.com/danielrh/prox/pkg/geom"
	"github.com/danielrh/prox/pkg/prox"
)

// SimulatorListener observes the simulated population.
type SimulatorListener interface {
	SimulatorAddedObject(obj *prox.Object)
	SimulatorRemovedObject(obj *prox.Object)
	SimulatorAddedQuery(query *prox.Query)
	SimulatorRemovedQuery(query *prox.Query)
}

// Region is an axis-aligned box objects and queries are scattered over.
type Region struct {
	Min geom.Vector3
	Max geom.Vector3
}

func (r Region) Extents() geom.Vector3 {
	return r.Max.Sub(r.Min)
}

func (r Region) randomPoint(rng *rand.Rand) geom.Vector3 {
	e := r.Extents()
	return r.Min.Add(geom.Vector3{
		X: e.X * rng.Float64(),
		Y: e.Y * rng.Float64(),
		Z: e.Z * rng.Float64(),
	})
}

// Simulator owns a population of objects and queries, keeps them registered
// with one query handler, and drives ticks. Scenes are reproducible: all
// randomness flows from the seed.
type Simulator struct {
	handler   prox.QueryHandler
	rng       *rand.Rand
	objects   []*prox.Object
	queries   []*prox.Query
	listeners []SimulatorListener
}

func NewSimulator(handler prox.QueryHandler, seed int64) *Simulator {
	return &Simulator{
		handler: handler,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Initialize scatters nobjects moving objects and nqueries moving queries
// uniformly over the region at time t. Objects get unit local bounds and a
// velocity in [−1,1]³; queries watch for one ten-thousandth of the full
// sphere.
func (s *Simulator) Initialize(t geom.Time, region Region, nobjects, nqueries int) {
	for i := 0; i < nobjects; i++ {
		var id prox.ObjectID
		s.rng.Read(id[:])
		obj := prox.NewObject(
			id,
			geom.NewMotionVector(t, region.randomPoint(s.rng), s.randomVelocity()),
			geom.NewBoundingSphere(geom.Vector3{}, 1),
		)
		s.AddObject(obj)
	}

	for i := 0; i < nqueries; i++ {
		query := prox.NewQuery(
			geom.NewMotionVector(t, region.randomPoint(s.rng), s.randomVelocity()),
			geom.MaxSolidAngle.Div(10000),
		)
		s.AddQuery(query)
	}
}

func (s *Simulator) randomVelocity() geom.Vector3 {
	return geom.Vector3{
		X: s.rng.Float64()*2 - 1,
		Y: s.rng.Float64()*2 - 1,
		Z: s.rng.Float64()*2 - 1,
	}
}

func (s *Simulator) Tick(t geom.Time) {
	s.handler.Tick(t)
}

func (s *Simulator) AddObject(obj *prox.Object) {
	s.objects = append(s.objects, obj)
	s.handler.RegisterObject(obj)
	for _, l := range s.listeners {
		l.SimulatorAddedObject(obj)
	}
}

// RemoveObject destroys the object, which unregisters it from the handler
// through the deleted notification.
func (s *Simulator) RemoveObject(obj *prox.Object) {
	for i, o := range s.objects {
		if o == obj {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}
	obj.Destroy()
	for _, l := range s.listeners {
		l.SimulatorRemovedObject(obj)
	}
}

func (s *Simulator) AddQuery(query *prox.Query) {
	s.queries = append(s.queries, query)
	s.handler.RegisterQuery(query)
	for _, l := range s.listeners {
		l.SimulatorAddedQuery(query)
	}
}

func (s *Simulator) RemoveQuery(query *prox.Query) {
	for i, q := range s.queries {
		if q == query {
			s.queries = append(s.queries[:i], s.queries[i+1:]...)
			break
		}
	}
	query.Destroy()
	for _, l := range s.listeners {
		l.SimulatorRemovedQuery(query)
	}
}

func (s *Simulator) Objects() []*prox.Object {
	return s.objects
}

func (s *Simulator) Queries() []*prox.Query {
	return s.queries
}

func (s *Simulator) AddListener(listener SimulatorListener) {
	for _, l := range s.listeners {
		if l == listener {
			panic("proxsim: simulator listener registered twice")
		}
	}
	s.listeners = append(s.listeners, listener)
}

func (s *Simulator) RemoveListener(listener SimulatorListener) {
	for i, l := range s.listeners {
		if l == listener {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}
