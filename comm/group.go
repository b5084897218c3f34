// SPDX-License-Identifier: MIT
// Package comm - the generation-counted rendezvous behind every collective.

package comm

import "sync"

// group is one communicator group: a fixed member list plus the shared
// rendezvous state its collectives synchronize on.
type group struct {
	// ranks lists the members as world-global ranks; position in this
	// slice is the member's group rank.
	ranks []int

	mu      sync.Mutex
	cond    *sync.Cond
	phase   uint64 // completed-collective generation counter
	arrived int
	buf     []any // in-flight contributions, indexed by group rank
	result  any   // published result of the last completed phase
}

func newGroup(ranks []int) *group {
	g := &group{
		ranks: ranks,
		buf:   make([]any, len(ranks)),
	}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// collect is the one rendezvous primitive every collective reduces to.
// The member deposits v under its group rank and blocks until all
// members of the current generation have deposited; the last arrival
// runs reduce over the contribution snapshot (in group-rank order),
// publishes the result, advances the generation and wakes the waiters.
//
// The published result must be treated as read-only by all members.
//
// Safety argument for reusing buf across generations: a member only
// re-enters collect after reading the previous result, and a generation
// only completes once every member has re-entered, so the result of
// generation p cannot be overwritten before the slowest member of p has
// read it.
func (g *group) collect(rank int, v any, reduce func(contrib []any) any) any {
	g.mu.Lock()
	defer g.mu.Unlock()

	ph := g.phase
	g.buf[rank] = v
	g.arrived++
	if g.arrived == len(g.ranks) {
		snapshot := append([]any(nil), g.buf...)
		g.result = reduce(snapshot)
		g.arrived = 0
		g.phase++
		g.cond.Broadcast()
	} else {
		for g.phase == ph {
			g.cond.Wait()
		}
	}
	return g.result
}

// identity is the reduce used by gather-style collectives: the raw
// contribution snapshot itself.
func identity(contrib []any) any { return contrib }
