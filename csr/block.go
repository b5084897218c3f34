// SPDX-License-Identifier: MIT
// Package csr - the Block type and its read-side accessors.

package csr

import (
	"fmt"
	"sort"
)

// Block is one compressed adjacency block: the edges of a single
// partition cell, grouped by major index.
//
// Storage positions 0..PositionCount() map onto majors as follows: the
// first HyperFirst-MajorFirst positions are the dense range
// [MajorFirst, HyperFirst), one position per major whether or not it
// has edges; the remaining positions are the hypersparse tail, one
// position per entry of HyperVertices (majors in [HyperFirst,
// MajorLast) with at least one edge). Offsets has exactly
// PositionCount()+1 entries.
//
// A block is immutable once built apart from the in-place neighbor sort
// (package segsort). Buffers are owned by the block and moved, not
// copied, through the pipeline.
type Block struct {
	// MajorFirst and MajorLast bound the half-open major range this
	// block covers.
	MajorFirst int64
	MajorLast  int64

	// HyperFirst is the hypersparse boundary: majors at or beyond it
	// are stored through HyperVertices. HyperFirst == MajorLast means
	// the whole range is dense.
	HyperFirst int64

	// HyperVertices lists the non-zero-degree majors of the hypersparse
	// tail in strictly increasing order; nil when the tail is empty or
	// the block is fully dense.
	HyperVertices []int64

	// Offsets holds, per storage position, a half-open slice into
	// Indices: position p's neighbors are Indices[Offsets[p]:Offsets[p+1]].
	Offsets []int64

	// Indices holds the minor endpoints, grouped by position.
	Indices []int64

	// Weights is parallel to Indices, or nil for an unweighted block.
	Weights []float64
}

// EdgeCount returns the number of edges stored in the block.
func (b *Block) EdgeCount() int64 {
	if len(b.Offsets) == 0 {
		return 0
	}
	return b.Offsets[len(b.Offsets)-1]
}

// Weighted reports whether the block carries edge weights.
func (b *Block) Weighted() bool { return b.Weights != nil }

// Hypersparse reports whether the block has a hypersparse tail.
func (b *Block) Hypersparse() bool { return b.HyperFirst < b.MajorLast }

// PositionCount returns the number of storage positions (dense majors
// plus hypersparse entries).
func (b *Block) PositionCount() int {
	return int(b.HyperFirst-b.MajorFirst) + len(b.HyperVertices)
}

// MajorAt returns the major index stored at position p.
// Panics on p outside [0, PositionCount()) - positions are an internal
// coordinate system, so a bad p is a programmer error.
func (b *Block) MajorAt(p int) int64 {
	dense := int(b.HyperFirst - b.MajorFirst)
	if p < dense {
		return b.MajorFirst + int64(p)
	}
	return b.HyperVertices[p-dense]
}

// PositionOf returns the storage position of the given major, or
// ok=false when the major lies in the hypersparse tail without edges
// (or outside the block's range entirely). The hypersparse lookup is a
// binary search over HyperVertices.
// Complexity: O(1) dense, O(log H) hypersparse.
func (b *Block) PositionOf(major int64) (pos int, ok bool) {
	if major < b.MajorFirst || major >= b.MajorLast {
		return 0, false
	}
	if major < b.HyperFirst {
		return int(major - b.MajorFirst), true
	}
	dense := int(b.HyperFirst - b.MajorFirst)
	i := sort.Search(len(b.HyperVertices), func(k int) bool { return b.HyperVertices[k] >= major })
	if i == len(b.HyperVertices) || b.HyperVertices[i] != major {
		return 0, false
	}
	return dense + i, true
}

// NeighborRange returns the half-open [lo,hi) slice of Indices holding
// the given major's neighbors. ok=false means the major stores no edges
// in this block (including hypersparse-absent majors); callers must
// treat that as an empty list, not an error.
func (b *Block) NeighborRange(major int64) (lo, hi int64, ok bool) {
	p, ok := b.PositionOf(major)
	if !ok {
		return 0, 0, false
	}
	return b.Offsets[p], b.Offsets[p+1], true
}

// DegreeOf returns the local degree of the given major (0 for absent
// hypersparse majors).
func (b *Block) DegreeOf(major int64) int64 {
	lo, hi, ok := b.NeighborRange(major)
	if !ok {
		return 0
	}
	return hi - lo
}

// SegmentOffsets returns the density-tier table [0, e1, e2, n] over the
// block's storage positions: e1 positions have degree ≥ highDegree, e2
// additionally counts positions with 0 < degree < highDegree, n is
// PositionCount(). When the graph was renumbered by descending degree
// these are genuine tier boundaries; otherwise they are tier
// cardinalities. The table is non-decreasing either way.
// Complexity: O(n).
func (b *Block) SegmentOffsets(highDegree int64) []int64 {
	var high, low int64
	for p := 0; p < b.PositionCount(); p++ {
		d := b.Offsets[p+1] - b.Offsets[p]
		switch {
		case d >= highDegree && highDegree > 0:
			high++
		case d > 0:
			low++
		}
	}
	return []int64{0, high, high + low, int64(b.PositionCount())}
}

// Verify checks the block's structural invariants: offsets
// non-decreasing with Offsets[0]==0 and Offsets[last]==len(Indices),
// weights parallel to indices when present, hypersparse vertices
// strictly increasing within [HyperFirst, MajorLast) and all of
// non-zero degree, and every minor endpoint within [minorFirst,
// minorLast).
//
// Errors: ErrBadRange, ErrCorruptBlock, ErrOutOfRange.
// Complexity: O(positions + edges).
func (b *Block) Verify(minorFirst, minorLast int64) error {
	if b.MajorFirst > b.HyperFirst || b.HyperFirst > b.MajorLast {
		return fmt.Errorf("Verify: range [%d,%d) hyper %d: %w",
			b.MajorFirst, b.MajorLast, b.HyperFirst, ErrBadRange)
	}
	if len(b.Offsets) != b.PositionCount()+1 {
		return fmt.Errorf("Verify: %d offsets for %d positions: %w",
			len(b.Offsets), b.PositionCount(), ErrCorruptBlock)
	}
	if b.Offsets[0] != 0 {
		return fmt.Errorf("Verify: offsets[0] == %d: %w", b.Offsets[0], ErrCorruptBlock)
	}
	for p := 1; p < len(b.Offsets); p++ {
		if b.Offsets[p] < b.Offsets[p-1] {
			return fmt.Errorf("Verify: offsets decrease at %d: %w", p, ErrCorruptBlock)
		}
	}
	if got := b.Offsets[len(b.Offsets)-1]; got != int64(len(b.Indices)) {
		return fmt.Errorf("Verify: offsets end at %d, %d indices: %w",
			got, len(b.Indices), ErrCorruptBlock)
	}
	if b.Weights != nil && len(b.Weights) != len(b.Indices) {
		return fmt.Errorf("Verify: %d weights for %d indices: %w",
			len(b.Weights), len(b.Indices), ErrCorruptBlock)
	}

	dense := int(b.HyperFirst - b.MajorFirst)
	for i, h := range b.HyperVertices {
		if h < b.HyperFirst || h >= b.MajorLast {
			return fmt.Errorf("Verify: hypersparse vertex %d outside [%d,%d): %w",
				h, b.HyperFirst, b.MajorLast, ErrCorruptBlock)
		}
		if i > 0 && h <= b.HyperVertices[i-1] {
			return fmt.Errorf("Verify: hypersparse vertices not strictly increasing at %d: %w",
				i, ErrCorruptBlock)
		}
		p := dense + i
		if b.Offsets[p+1] == b.Offsets[p] {
			return fmt.Errorf("Verify: hypersparse vertex %d has zero degree: %w",
				h, ErrCorruptBlock)
		}
	}

	for i, minor := range b.Indices {
		if minor < minorFirst || minor >= minorLast {
			return fmt.Errorf("Verify: index %d minor %d outside [%d,%d): %w",
				i, minor, minorFirst, minorLast, ErrOutOfRange)
		}
	}
	return nil
}
