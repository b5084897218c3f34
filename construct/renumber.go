// SPDX-License-Identifier: MIT
// Package construct: vertex renumbering and its inverse.

package construct

import (
	"fmt"

	"github.com/jfcg/sorty"

	"github.com/avellane/edgepress/comm"
	"github.com/avellane/edgepress/edgelist"
	"github.com/avellane/edgepress/graph"
	"github.com/avellane/edgepress/parallel"
)

// applyRenumbering computes the dense renumbering of the global
// endpoint set, ordered by descending total degree with ties broken by
// ascending external id, remaps el's endpoints in place, and returns
// the external-id-by-new-id table. Degree counts and the resulting
// table are identical on every worker; the (degree, id) sort key is a
// strict total order, so the non-stable sort is still deterministic.
func applyRenumbering(c *comm.Comm, el edgelist.Edgelist) []int64 {
	counts := make(map[int64]int64, el.Len())
	for i := range el.Src {
		counts[el.Src[i]]++
		counts[el.Dst[i]]++
	}
	total := make(map[int64]int64, len(counts))
	for _, m := range comm.AllGather(c, counts) {
		for id, n := range m {
			total[id] += n
		}
	}

	ids := make([]int64, 0, len(total))
	deg := make([]int64, 0, len(total))
	for id, n := range total {
		ids = append(ids, id)
		deg = append(deg, n)
	}
	sorty.Sort(len(ids), func(i, k, r, s int) bool {
		if deg[i] != deg[k] {
			if deg[i] > deg[k] {
				if r != s {
					ids[r], ids[s] = ids[s], ids[r]
					deg[r], deg[s] = deg[s], deg[r]
				}
				return true
			}
			return false
		}
		if ids[i] < ids[k] {
			if r != s {
				ids[r], ids[s] = ids[s], ids[r]
				deg[r], deg[s] = deg[s], deg[r]
			}
			return true
		}
		return false
	})

	newByExt := make(map[int64]int64, len(ids))
	for n, id := range ids {
		newByExt[id] = int64(n)
	}
	parallel.For(el.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			el.Src[i] = newByExt[el.Src[i]]
			el.Dst[i] = newByExt[el.Dst[i]]
		}
	})
	return ids
}

// Unrenumber translates internal dense vertex ids back to the external
// ids they replaced; the result is parallel to ids. For a distributed
// graph this is a collective lookup (each id is resolved by the worker
// owning its vertex range) and every worker must call it with its own
// query slice; c must match the graph's grid. Single-worker graphs
// resolve locally and accept a nil c.
//
// Errors: ErrNoRenumberMap, ErrCommMismatch, ErrInvalidInput for ids
// outside [0, NumVertices).
func Unrenumber(c *comm.Comm, g *graph.Graph, ids []int64) ([]int64, error) {
	local := g.RenumberMap()
	if local == nil {
		return nil, fmt.Errorf("Unrenumber: %w", ErrNoRenumberMap)
	}
	grid := g.Grid()
	if grid.Size() == 1 {
		out := make([]int64, len(ids))
		for i, v := range ids {
			if v < 0 || v >= int64(len(local)) {
				return nil, fmt.Errorf("Unrenumber: id %d of %d: %w", v, len(local), ErrInvalidInput)
			}
			out[i] = local[v]
		}
		return out, nil
	}
	if c == nil || c.Size() != grid.Size() {
		return nil, fmt.Errorf("Unrenumber: %w", ErrCommMismatch)
	}

	r := c.Rank()
	first, _, _ := grid.VertexRange(r)

	// Route each query to its owner, remembering where the answer goes.
	sendIDs := make([][]int64, c.Size())
	sendPos := make([][]int, c.Size())
	var berr error
	for i, v := range ids {
		owner, err := grid.VertexOwner(v)
		if err != nil {
			berr = fmt.Errorf("Unrenumber: id %d: %w", v, ErrInvalidInput)
			break
		}
		sendIDs[owner] = append(sendIDs[owner], v)
		sendPos[owner] = append(sendPos[owner], i)
	}
	if err := agree(c, berr); err != nil {
		return nil, err
	}

	queries, err := comm.AllToAll(c, sendIDs)
	if err != nil {
		return nil, err
	}
	answers := make([][]int64, c.Size())
	for from, q := range queries {
		a := make([]int64, len(q))
		for i, v := range q {
			a[i] = local[v-first]
		}
		answers[from] = a
	}
	back, err := comm.AllToAll(c, answers)
	if err != nil {
		return nil, err
	}

	out := make([]int64, len(ids))
	for owner, a := range back {
		for i, ext := range a {
			out[sendPos[owner][i]] = ext
		}
	}
	return out, nil
}
