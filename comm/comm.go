// SPDX-License-Identifier: MIT
// Package comm - World, Comm and the collective operations.

package comm

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// World is a fixed-size set of cooperating in-process workers.
type World struct {
	size int
	root *group
}

// NewWorld creates a world of size workers sharing one root
// communicator group.
//
// Errors: ErrBadWorldSize.
func NewWorld(size int) (*World, error) {
	if size < 1 {
		return nil, fmt.Errorf("NewWorld: size %d: %w", size, ErrBadWorldSize)
	}
	ranks := make([]int, size)
	for i := range ranks {
		ranks[i] = i
	}
	return &World{size: size, root: newGroup(ranks)}, nil
}

// Size returns the worker count.
func (w *World) Size() int { return w.size }

// Run starts one goroutine per rank, hands each its Comm handle, and
// blocks until every worker returns. The first non-nil worker error is
// returned. A worker that returns early while its peers sit in a
// collective leaves those peers blocked, so workers must fail at the
// same collective boundaries (the construction pipeline guarantees this
// by validating the same data on every rank).
func (w *World) Run(fn func(c *Comm) error) error {
	var eg errgroup.Group
	for r := 0; r < w.size; r++ {
		c := &Comm{g: w.root, rank: r, globalRank: r}
		eg.Go(func() error { return fn(c) })
	}
	return eg.Wait()
}

// Comm is one worker's handle onto a communicator group. Handles are
// rank-private and must not be shared across goroutines.
type Comm struct {
	g          *group
	rank       int // rank within g
	globalRank int // rank within the world's root group
}

// Rank returns the caller's rank within this communicator group.
func (c *Comm) Rank() int { return c.rank }

// Size returns the member count of this communicator group.
func (c *Comm) Size() int { return len(c.g.ranks) }

// GlobalRank returns the caller's world-wide rank, stable across Split.
func (c *Comm) GlobalRank() int { return c.globalRank }

// Barrier blocks until every group member has entered it.
func (c *Comm) Barrier() {
	c.g.collect(c.rank, nil, identity)
}

// splitReq is the per-member contribution to Split.
type splitReq struct {
	color int
	key   int
}

// Split partitions the group into subgroups of members sharing a color,
// ordered within each subgroup by (key, parent rank) - the MPI
// comm-split contract. Every member receives a handle onto its own
// subgroup; subgroups are shared objects, so collectives on them
// rendezvous correctly across members.
//
// Complexity: O(P log P) in the completing member, O(P) elsewhere.
func (c *Comm) Split(color, key int) *Comm {
	parent := c.g
	res := parent.collect(c.rank, splitReq{color: color, key: key}, func(contrib []any) any {
		type member struct {
			key        int
			parentRank int
		}
		byColor := make(map[int][]member)
		for pr, a := range contrib {
			req := a.(splitReq)
			byColor[req.color] = append(byColor[req.color], member{key: req.key, parentRank: pr})
		}
		groups := make(map[int]*group, len(byColor))
		for col, members := range byColor {
			sort.Slice(members, func(i, j int) bool {
				if members[i].key != members[j].key {
					return members[i].key < members[j].key
				}
				return members[i].parentRank < members[j].parentRank
			})
			ranks := make([]int, len(members))
			for i, m := range members {
				ranks[i] = parent.ranks[m.parentRank]
			}
			groups[col] = newGroup(ranks)
		}
		return groups
	})

	sub := res.(map[int]*group)[color]
	for i, gr := range sub.ranks {
		if gr == c.globalRank {
			return &Comm{g: sub, rank: i, globalRank: c.globalRank}
		}
	}
	// Unreachable: the caller's own contribution always places it in
	// the subgroup of its color.
	panic("comm: Split lost its caller")
}

// AllGather collects one value from every member and returns them
// indexed by group rank, identically on every member.
func AllGather[T any](c *Comm, v T) []T {
	raw := c.g.collect(c.rank, v, identity).([]any)
	out := make([]T, len(raw))
	for i, a := range raw {
		out[i] = a.(T)
	}
	return out
}

// AllToAll performs the personalized exchange behind the ownership
// shuffle: send[i] is destined for group rank i, and the result holds,
// at position i, what rank i sent to the caller. len(send) must equal
// the group size.
//
// Errors: ErrBadSendCount. The error is returned before entering the
// rendezvous, so a caller that validates lengths beforehand cannot
// desynchronize the group.
func AllToAll[T any](c *Comm, send [][]T) ([][]T, error) {
	if len(send) != c.Size() {
		return nil, fmt.Errorf("AllToAll: %d send slices for %d ranks: %w",
			len(send), c.Size(), ErrBadSendCount)
	}
	raw := c.g.collect(c.rank, send, identity).([]any)
	out := make([][]T, len(raw))
	for i, a := range raw {
		out[i] = a.([][]T)[c.rank]
	}
	return out, nil
}

// AllReduce folds one value per member with op in ascending rank order
// and returns the identical result on every member. op must be
// associative; rank-order folding keeps float reductions deterministic.
func AllReduce[T any](c *Comm, v T, op func(a, b T) T) T {
	raw := c.g.collect(c.rank, v, identity).([]any)
	acc := raw[0].(T)
	for _, a := range raw[1:] {
		acc = op(acc, a.(T))
	}
	return acc
}

// Gather collects one value per member onto root (by group rank): root
// receives the rank-indexed slice, everyone else receives nil.
//
// Errors: ErrBadRoot, returned before entering the rendezvous.
func Gather[T any](c *Comm, v T, root int) ([]T, error) {
	if root < 0 || root >= c.Size() {
		return nil, fmt.Errorf("Gather: root %d of %d: %w", root, c.Size(), ErrBadRoot)
	}
	raw := c.g.collect(c.rank, v, identity).([]any)
	if c.rank != root {
		return nil, nil
	}
	out := make([]T, len(raw))
	for i, a := range raw {
		out[i] = a.(T)
	}
	return out, nil
}

// SumInt64 is the AllReduce op for edge-count cross-checks.
func SumInt64(a, b int64) int64 { return a + b }

// MaxFloat64 is the AllReduce op for fill-ratio reductions.
func MaxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// MaxInt64 is the AllReduce op for deriving global vertex bounds.
func MaxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
