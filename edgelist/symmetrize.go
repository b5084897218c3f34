// SPDX-License-Identifier: MIT
// Package edgelist - symmetrization helpers.
//
// These are the exact procedures the production builder uses for
// Symmetrize(reciprocal) and the validator reuses for its symmetry
// round-trip check, so check and build can never drift apart.

package edgelist

// pairKey is an ordered (src,dst) pair used for reverse-edge presence
// lookups during symmetrization. Using ints keeps the key compact and
// hash-friendly.
type pairKey struct {
	u int64
	v int64
}

// pairSet indexes the ordered (src,dst) pairs of a list.
// Complexity: O(E) time and space.
func pairSet(el Edgelist) map[pairKey]struct{} {
	set := make(map[pairKey]struct{}, el.Len())
	for i := range el.Src {
		set[pairKey{el.Src[i], el.Dst[i]}] = struct{}{}
	}
	return set
}

// SymmetrizeUnion returns the symmetric closure of el: every original
// edge is kept with its weight, and for every edge (u,v) whose reverse
// pair (v,u) is absent from el a reverse edge (v,u) with the same weight
// is added. Where the reverse pair already exists nothing is added, so
// already-bidirectional pairs are merged rather than duplicated.
// Self-loops need no counterpart and are kept as-is.
//
// The result is a fresh list; el is not modified.
// Complexity: O(E) expected time, O(E) space.
func SymmetrizeUnion(el Edgelist) Edgelist {
	present := pairSet(el)
	out := Edgelist{
		Src: make([]int64, 0, 2*el.Len()),
		Dst: make([]int64, 0, 2*el.Len()),
	}
	if el.Weight != nil {
		out.Weight = make([]float64, 0, 2*el.Len())
	}
	appendEdge := func(u, v int64, i int) {
		out.Src = append(out.Src, u)
		out.Dst = append(out.Dst, v)
		if out.Weight != nil {
			out.Weight = append(out.Weight, el.Weight[i])
		}
	}
	for i := range el.Src {
		u, v := el.Src[i], el.Dst[i]
		appendEdge(u, v, i)
		if u == v {
			continue
		}
		if _, ok := present[pairKey{v, u}]; !ok {
			// Reverse edge carries the original weight.
			appendEdge(v, u, i)
		}
	}
	return out
}

// SymmetrizeReciprocal keeps only the edges whose reverse pair is also
// present in el (any weight), i.e. the intersection of el with its own
// reverse. Kept edges preserve their own direction's weight. Self-loops
// are trivially reciprocal and always kept.
//
// The result is a fresh list; el is not modified.
// Complexity: O(E) expected time, O(E) space.
func SymmetrizeReciprocal(el Edgelist) Edgelist {
	present := pairSet(el)
	out := Edgelist{Src: []int64{}, Dst: []int64{}}
	if el.Weight != nil {
		out.Weight = []float64{}
	}
	for i := range el.Src {
		u, v := el.Src[i], el.Dst[i]
		if u != v {
			if _, ok := present[pairKey{v, u}]; !ok {
				continue
			}
		}
		out.Src = append(out.Src, u)
		out.Dst = append(out.Dst, v)
		if out.Weight != nil {
			out.Weight = append(out.Weight, el.Weight[i])
		}
	}
	return out
}
