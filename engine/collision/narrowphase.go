package collision

import (
	"golang.org/x/sync/errgroup"

	"github.com/1siamBot/survivors-engine/engine/core"
	"github.com/1siamBot/survivors-engine/engine/hitstate"
	"github.com/1siamBot/survivors-engine/engine/spatial"
)

// NarrowPhase runs every resolver once per tick and forwards their events to
// the bus in resolver order.
//
// With Parallel set the resolvers run concurrently. That is safe because
// the grid is read-only during the phase, each resolver writes its own
// stream, and a hazard belongs to exactly one resolver, so no two goroutines
// touch the same hit record.
type NarrowPhase struct {
	Broad    *spatial.BroadPhase
	Tracker  *hitstate.Tracker
	Bus      *core.EventBus
	Parallel bool
	Prio     int

	resolvers []Resolver
	streams   []core.EventStream
}

// NewNarrowPhase wires the given resolvers, or DefaultResolvers when none
// are passed.
func NewNarrowPhase(broad *spatial.BroadPhase, tracker *hitstate.Tracker, bus *core.EventBus, resolvers ...Resolver) *NarrowPhase {
	if len(resolvers) == 0 {
		resolvers = DefaultResolvers()
	}
	return &NarrowPhase{
		Broad:     broad,
		Tracker:   tracker,
		Bus:       bus,
		resolvers: resolvers,
		streams:   make([]core.EventStream, len(resolvers)),
	}
}

func (n *NarrowPhase) Priority() int { return n.Prio }

// Resolvers returns the resolvers in run order.
func (n *NarrowPhase) Resolvers() []Resolver { return n.resolvers }

func (n *NarrowPhase) Update(w *core.World, _ float64) {
	f := &Frame{World: w, Broad: n.Broad, Tracker: n.Tracker, Tick: w.TickCount}

	if n.Parallel {
		// Resolve cannot fail; the group is only the join point
		var g errgroup.Group
		for i, r := range n.resolvers {
			g.Go(func() error {
				r.Resolve(f, &n.streams[i])
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, r := range n.resolvers {
			r.Resolve(f, &n.streams[i])
		}
	}

	for i := range n.streams {
		n.streams[i].DrainTo(n.Bus)
	}
}
