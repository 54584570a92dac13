package proxsim

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/danielrh/prox/pkg/geom"
	"github.com/danielrh/prox/pkg/prox"
)

// Renderer prints per-tick query traffic to a terminal. Instead of drawing
// spheres it reports, per query, how many objects entered and left the
// result set.
type Renderer struct {
	sim *Simulator
	out io.Writer

	added   *color.Color
	removed *color.Color
	header  *color.Color

	scratch []prox.QueryEvent
}

func NewRenderer(sim *Simulator, out io.Writer) *Renderer {
	return &Renderer{
		sim:     sim,
		out:     out,
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
		header:  color.New(color.Bold),
	}
}

// Run advances the simulation by ticks steps of dt, rendering each one.
func (r *Renderer) Run(start geom.Time, ticks int, dt geom.Duration) {
	t := start
	for i := 0; i < ticks; i++ {
		r.sim.Tick(t)
		r.RenderTick(t)
		t = t.Add(dt)
	}
}

// RenderTick drains every query and prints a header line, a one-line summary
// for each query that had events, and a totals line. Queries with no events
// get no line of their own.
func (r *Renderer) RenderTick(t geom.Time) {
	totalAdded, totalRemoved := 0, 0

	fmt.Fprintln(r.out, r.header.Sprintf("t=%g", float64(t)))
	for i, query := range r.sim.Queries() {
		r.scratch = r.scratch[:0]
		query.PopEvents(&r.scratch)

		added, removed := 0, 0
		for _, ev := range r.scratch {
			switch ev.Type {
			case prox.Added:
				added++
			case prox.Removed:
				removed++
			}
		}
		totalAdded += added
		totalRemoved += removed

		if added == 0 && removed == 0 {
			continue
		}
		fmt.Fprintf(r.out, "  query %d: %s %s\n", i,
			r.added.Sprintf("+%d", added),
			r.removed.Sprintf("-%d", removed))
	}

	fmt.Fprintf(r.out, "  total: %s %s\n",
		r.added.Sprintf("+%d", totalAdded),
		r.removed.Sprintf("-%d", totalRemoved))
}
