package proxsim

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/danielrh/prox/pkg/geom"
	"github.com/danielrh/prox/pkg/prox"
)

// VerifyEquivalence runs the same scene through a brute-force handler and an
// R-tree handler and reports the first tick at which any query pair
// disagrees. Objects are shared between the handlers (ticks only read them);
// each handler evaluates its own copy of every query. A nil return means the
// handlers agreed on every query at every tick.
func VerifyEquivalence(scene *Scene, seed int64, start geom.Time, ticks int, dt geom.Duration, branching int) error {
	brute := prox.NewBruteForceHandler()
	rtree := prox.NewRTreeHandler(branching)

	bruteSim := NewSimulator(brute, seed)
	if err := scene.Populate(bruteSim, start); err != nil {
		return err
	}
	for _, obj := range bruteSim.Objects() {
		rtree.RegisterObject(obj)
	}

	// Mirror every query with identical parameters for the R-tree side.
	mirrors := make([]*prox.Query, 0, len(bruteSim.Queries()))
	for _, q := range bruteSim.Queries() {
		mirror := prox.NewQueryWithRadius(q.Position(), q.Angle(), q.Radius())
		rtree.RegisterQuery(mirror)
		mirrors = append(mirrors, mirror)
	}

	t := start
	var bruteEvents, rtreeEvents []prox.QueryEvent
	for i := 0; i < ticks; i++ {
		var g errgroup.Group
		tickTime := t
		g.Go(func() error {
			brute.Tick(tickTime)
			return nil
		})
		g.Go(func() error {
			rtree.Tick(tickTime)
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}

		for qi, q := range bruteSim.Queries() {
			bruteEvents = bruteEvents[:0]
			rtreeEvents = rtreeEvents[:0]
			q.PopEvents(&bruteEvents)
			mirrors[qi].PopEvents(&rtreeEvents)

			if len(bruteEvents) != len(rtreeEvents) {
				return fmt.Errorf("tick %d query %d: brute force produced %d events, rtree %d",
					i, qi, len(bruteEvents), len(rtreeEvents))
			}
			for ei := range bruteEvents {
				if bruteEvents[ei] != rtreeEvents[ei] {
					return fmt.Errorf("tick %d query %d event %d: brute force %v %s, rtree %v %s",
						i, qi, ei,
						bruteEvents[ei].Type, bruteEvents[ei].ID,
						rtreeEvents[ei].Type, rtreeEvents[ei].ID)
				}
			}
		}

		t = t.Add(dt)
	}

	return nil
}
