// SPDX-License-Identifier: MIT
// Package edgelist - the COO edge-list value type and its cheap invariants.

package edgelist

import (
	"fmt"

	"github.com/jfcg/sorty"
)

// Edgelist is an unordered sequence of (source, destination[, weight])
// triples stored as parallel flat buffers.
//
// Weight == nil means the list is unweighted; weight-carrying code paths
// downstream are skipped entirely in that case (weights are never
// materialized as zero-filled).
//
// The zero value is a valid empty, unweighted list.
type Edgelist struct {
	// Src holds the source vertex id of every edge.
	Src []int64

	// Dst holds the destination vertex id of every edge.
	Dst []int64

	// Weight holds the edge weights, parallel to Src/Dst, or nil for an
	// unweighted list.
	Weight []float64
}

// Len returns the number of edges.
// Complexity: O(1).
func (el Edgelist) Len() int { return len(el.Src) }

// Weighted reports whether the list carries a weight buffer.
// Complexity: O(1).
func (el Edgelist) Weighted() bool { return el.Weight != nil }

// Clone returns a deep copy; the result shares no memory with el.
// Complexity: O(E) time and space.
func (el Edgelist) Clone() Edgelist {
	out := Edgelist{
		Src: append([]int64(nil), el.Src...),
		Dst: append([]int64(nil), el.Dst...),
	}
	if el.Weight != nil {
		out.Weight = append([]float64(nil), el.Weight...)
	}
	return out
}

// Reverse returns a new list with every edge's endpoints swapped.
// Weights are carried over unchanged.
// Complexity: O(E) time and space.
func (el Edgelist) Reverse() Edgelist {
	out := Edgelist{
		Src: append([]int64(nil), el.Dst...),
		Dst: append([]int64(nil), el.Src...),
	}
	if el.Weight != nil {
		out.Weight = append([]float64(nil), el.Weight...)
	}
	return out
}

// Concat merges several chunks (one per sending worker, in distributed
// construction) into a single list. Mixing non-empty weighted and
// unweighted chunks is a contract violation on the caller's side: every
// construction path fixes per-graph weightedness before chunks are
// exchanged, so Concat does not report the mix. It normalizes instead:
// the result carries weights only when every non-empty chunk does, and
// any weights present in a mixed call are discarded.
// Complexity: O(ΣE) time and space.
func Concat(chunks ...Edgelist) Edgelist {
	var total int
	weighted := true
	nonEmpty := 0
	for _, c := range chunks {
		total += c.Len()
		if c.Len() > 0 {
			nonEmpty++
			if !c.Weighted() {
				weighted = false
			}
		}
	}
	out := Edgelist{
		Src: make([]int64, 0, total),
		Dst: make([]int64, 0, total),
	}
	if weighted && nonEmpty > 0 {
		out.Weight = make([]float64, 0, total)
	}
	for _, c := range chunks {
		out.Src = append(out.Src, c.Src...)
		out.Dst = append(out.Dst, c.Dst...)
		if out.Weight != nil {
			out.Weight = append(out.Weight, c.Weight...)
		}
	}
	return out
}

// CheapCheck runs the always-on consistency checks: parallel buffers must
// agree in length, the weight buffer must be nil or full-length, and no
// vertex id may be negative.
//
// Errors: ErrSizeMismatch, ErrNegativeVertex (both wrap ErrInvalidInput).
// Complexity: O(E) time, O(1) space.
func (el Edgelist) CheapCheck() error {
	if len(el.Src) != len(el.Dst) {
		return fmt.Errorf("CheapCheck: src has %d entries, dst has %d: %w",
			len(el.Src), len(el.Dst), ErrSizeMismatch)
	}
	if el.Weight != nil && len(el.Weight) != len(el.Src) {
		return fmt.Errorf("CheapCheck: weight has %d entries, src has %d: %w",
			len(el.Weight), len(el.Src), ErrSizeMismatch)
	}
	for i := range el.Src {
		if el.Src[i] < 0 || el.Dst[i] < 0 {
			return fmt.Errorf("CheapCheck: edge %d = (%d,%d): %w",
				i, el.Src[i], el.Dst[i], ErrNegativeVertex)
		}
	}
	return nil
}

// SortTriples sorts the list in place into ascending (src, dst, weight)
// order using a parallel sort. Canonical ordering is what the expensive
// validator checks and the symmetrize helpers build on.
// Complexity: O(E log E) time, O(1) extra space; parallel across cores.
func (el Edgelist) SortTriples() {
	if el.Len() < 2 {
		return
	}
	sorty.Sort(el.Len(), func(i, k, r, s int) bool {
		if el.tripleLess(i, k) {
			if r != s {
				el.swap(r, s)
			}
			return true
		}
		return false
	})
}

// tripleLess orders by (src, dst, weight); an absent weight buffer
// compares equal on the weight component.
func (el Edgelist) tripleLess(i, k int) bool {
	if el.Src[i] != el.Src[k] {
		return el.Src[i] < el.Src[k]
	}
	if el.Dst[i] != el.Dst[k] {
		return el.Dst[i] < el.Dst[k]
	}
	if el.Weight != nil {
		return el.Weight[i] < el.Weight[k]
	}
	return false
}

// swap exchanges triples r and s across all parallel buffers.
func (el Edgelist) swap(r, s int) {
	el.Src[r], el.Src[s] = el.Src[s], el.Src[r]
	el.Dst[r], el.Dst[s] = el.Dst[s], el.Dst[r]
	if el.Weight != nil {
		el.Weight[r], el.Weight[s] = el.Weight[s], el.Weight[r]
	}
}
