// SPDX-License-Identifier: MIT
// Package csr - edge-list → block compression and its inverse.

package csr

import (
	"fmt"
	"sync/atomic"

	"github.com/avellane/edgepress/edgelist"
	"github.com/avellane/edgepress/parallel"
)

// Compress converts an edge-list block (Src = major endpoints, Dst =
// minor endpoints) into a compressed adjacency block over the half-open
// major range [majorFirst, majorLast). Majors at or beyond hyperFirst
// form the hypersparse tail candidate; pass hyperFirst == majorLast to
// disable the tail entirely.
//
// The input buffers are consumed conceptually: Compress reads them once
// and the caller must not reuse them afterwards (move semantics, to
// bound peak memory across pipeline stages).
//
// Majors with zero local edges still get a valid empty slice in the
// dense region; an empty input yields an all-zero offsets array of full
// length and empty indices. Neighbor order within a major is arrival
// order - run segsort.SortAdjacency before exposing the block.
//
// Errors: ErrBadRange for an inconsistent range, ErrOutOfRange for a
// major outside the range, plus edgelist cheap-check failures.
// Complexity: O(E + majorRange) work across two parallel passes.
func Compress(el edgelist.Edgelist, majorFirst, majorLast, hyperFirst int64) (*Block, error) {
	if majorFirst > majorLast || hyperFirst < majorFirst || hyperFirst > majorLast {
		return nil, fmt.Errorf("Compress: range [%d,%d) hyper %d: %w",
			majorFirst, majorLast, hyperFirst, ErrBadRange)
	}
	if err := el.CheapCheck(); err != nil {
		return nil, fmt.Errorf("Compress: %w", err)
	}

	majorRange := int(majorLast - majorFirst)
	for i := range el.Src {
		if el.Src[i] < majorFirst || el.Src[i] >= majorLast {
			return nil, fmt.Errorf("Compress: edge %d major %d outside [%d,%d): %w",
				i, el.Src[i], majorFirst, majorLast, ErrOutOfRange)
		}
	}

	// Pass 1: histogram by major, one atomic increment per edge.
	counts := make([]int64, majorRange)
	parallel.For(el.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			atomic.AddInt64(&counts[el.Src[i]-majorFirst], 1)
		}
	})
	offsets := parallel.ExclusiveScan(counts)

	// Pass 2: scatter, claiming slots through a separate cursor array so
	// the output buffer is write-once.
	indices := make([]int64, el.Len())
	var weights []float64
	if el.Weighted() {
		weights = make([]float64, el.Len())
	}
	cursors := make([]int64, majorRange)
	parallel.For(el.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			b := el.Src[i] - majorFirst
			slot := offsets[b] + atomic.AddInt64(&cursors[b], 1) - 1
			indices[slot] = el.Dst[i]
			if weights != nil {
				weights[slot] = el.Weight[i]
			}
		}
	})

	blk := &Block{
		MajorFirst: majorFirst,
		MajorLast:  majorLast,
		HyperFirst: majorLast, // dense unless the tail pays off below
		Offsets:    offsets,
		Indices:    indices,
		Weights:    weights,
	}

	// Hypersparse derivation: keep only non-zero-degree majors of the
	// tail, and shrink offsets when the packed list is shorter than the
	// dense run it replaces.
	if hyperFirst < majorLast {
		dense := int(hyperFirst - majorFirst)
		tail := majorRange - dense
		mask := make([]bool, tail)
		parallel.For(tail, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				mask[i] = counts[dense+i] > 0
			}
		})
		packed := parallel.PackIndex(mask)
		if len(packed) < tail {
			hyperVertices := make([]int64, len(packed))
			squeezed := make([]int64, dense+len(packed)+1)
			copy(squeezed, offsets[:dense+1])
			for i, p := range packed {
				hyperVertices[i] = hyperFirst + p
				// All majors removed between entries have zero degree,
				// so copying the span ends down preserves every slice.
				squeezed[dense+1+i] = offsets[dense+int(p)+1]
			}
			blk.HyperFirst = hyperFirst
			blk.HyperVertices = hyperVertices
			blk.Offsets = squeezed
		}
	}

	return blk, nil
}

// Decompress expands the block back into (major, minor[, weight])
// triples. Output order is unspecified (currently position order) and in
// particular not sorted; round-trip comparisons must treat the result as
// an unordered multiset.
//
// destroy releases the block's buffers as soon as they are copied out,
// letting transform operators trade a live-source-plus-destination peak
// for a freed-source-then-build peak.
// Complexity: O(E + positions), parallel over positions.
func Decompress(b *Block, destroy bool) edgelist.Edgelist {
	total := b.EdgeCount()
	out := edgelist.Edgelist{
		Src: make([]int64, total),
		Dst: make([]int64, total),
	}
	if b.Weighted() {
		out.Weight = make([]float64, total)
	}

	parallel.For(b.PositionCount(), func(lo, hi int) {
		for p := lo; p < hi; p++ {
			major := b.MajorAt(p)
			for s := b.Offsets[p]; s < b.Offsets[p+1]; s++ {
				out.Src[s] = major
				out.Dst[s] = b.Indices[s]
				if out.Weight != nil {
					out.Weight[s] = b.Weights[s]
				}
			}
		}
	})

	if destroy {
		b.Offsets = nil
		b.Indices = nil
		b.Weights = nil
		b.HyperVertices = nil
	}
	return out
}

// NonZeroDegreeMajors returns the sorted majors with at least one edge
// in this block: the dense majors with edges plus the entire hypersparse
// vertex list. This is the per-block ingredient of the sparse
// ("hot vertex") property-index derivation.
// Complexity: O(positions).
func (b *Block) NonZeroDegreeMajors() []int64 {
	dense := int(b.HyperFirst - b.MajorFirst)
	mask := make([]bool, dense)
	parallel.For(dense, func(lo, hi int) {
		for p := lo; p < hi; p++ {
			mask[p] = b.Offsets[p+1] > b.Offsets[p]
		}
	})
	packed := parallel.PackIndex(mask)
	out := make([]int64, 0, len(packed)+len(b.HyperVertices))
	for _, p := range packed {
		out = append(out, b.MajorFirst+p)
	}
	out = append(out, b.HyperVertices...)
	return out
}
