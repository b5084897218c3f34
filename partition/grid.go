// SPDX-License-Identifier: MIT
// Package partition - the Grid2D descriptor and its ownership arithmetic.

package partition

import (
	"fmt"
	"sort"
)

// Grid2D is an immutable descriptor of a 2-D worker grid over a vertex
// space. Construct with NewGrid2D; the zero value is not valid.
type Grid2D struct {
	size int // total workers, rows*cols
	rows int // column-communicator-group size
	cols int // row-communicator-group size

	numVertices int64
	// bounds[k] is the first vertex owned by global rank k; bounds has
	// size+1 entries with bounds[size] == numVertices.
	bounds []int64
}

// NewGrid2D factors size workers into a rows × cols grid (cols = largest
// divisor of size that is ≤ √size) and splits [0, numVertices) into size
// contiguous near-equal ranges, spreading the remainder over the lowest
// ranks.
//
// Errors: ErrBadGrid if size < 1, ErrBadVertexCount if numVertices < 0.
// Complexity: O(√size + size) time, O(size) space.
func NewGrid2D(size int, numVertices int64) (Grid2D, error) {
	if size < 1 {
		return Grid2D{}, fmt.Errorf("NewGrid2D: size %d: %w", size, ErrBadGrid)
	}
	if numVertices < 0 {
		return Grid2D{}, fmt.Errorf("NewGrid2D: numVertices %d: %w", numVertices, ErrBadVertexCount)
	}

	cols := 1
	for c := 2; int64(c)*int64(c) <= int64(size); c++ {
		if size%c == 0 {
			cols = c
		}
	}

	bounds := make([]int64, size+1)
	base := numVertices / int64(size)
	rem := numVertices % int64(size)
	for k := 0; k <= size; k++ {
		k64 := int64(k)
		bounds[k] = k64 * base
		if k64 < rem {
			bounds[k] += k64
		} else {
			bounds[k] += rem
		}
	}

	return Grid2D{
		size:        size,
		rows:        size / cols,
		cols:        cols,
		numVertices: numVertices,
		bounds:      bounds,
	}, nil
}

// Size returns the total worker count.
func (g Grid2D) Size() int { return g.size }

// Rows returns the number of grid rows (= column-group size).
func (g Grid2D) Rows() int { return g.rows }

// Cols returns the number of grid columns (= row-group size).
func (g Grid2D) Cols() int { return g.cols }

// NumVertices returns the size of the vertex space.
func (g Grid2D) NumVertices() int64 { return g.numVertices }

// RowOf returns the grid row of rank r.
func (g Grid2D) RowOf(rank int) int { return rank / g.cols }

// ColOf returns the grid column of rank r.
func (g Grid2D) ColOf(rank int) int { return rank % g.cols }

// LocalCellCount returns how many compressed adjacency cells one worker
// holds: one per column-communicator-group member.
func (g Grid2D) LocalCellCount() int { return g.rows }

// VertexRange returns the half-open vertex interval [first,last) owned
// by global rank r.
//
// Errors: ErrRankOutOfRange.
// Complexity: O(1).
func (g Grid2D) VertexRange(rank int) (first, last int64, err error) {
	if rank < 0 || rank >= g.size {
		return 0, 0, fmt.Errorf("VertexRange: rank %d of %d: %w", rank, g.size, ErrRankOutOfRange)
	}
	return g.bounds[rank], g.bounds[rank+1], nil
}

// VertexRangeLast returns the last vertex index (exclusive) of rank r's
// range, the worldwide quantity ownership binary searches key on.
//
// Errors: ErrRankOutOfRange.
func (g Grid2D) VertexRangeLast(rank int) (int64, error) {
	if rank < 0 || rank >= g.size {
		return 0, fmt.Errorf("VertexRangeLast: rank %d of %d: %w", rank, g.size, ErrRankOutOfRange)
	}
	return g.bounds[rank+1], nil
}

// VertexPartitionOffsets returns a copy of the full boundary table
// (length Size()+1): entry k is the first vertex of rank k's range.
// Complexity: O(size) time and space.
func (g Grid2D) VertexPartitionOffsets() []int64 {
	return append([]int64(nil), g.bounds...)
}

// VertexOwner returns the global rank whose vertex range contains v, by
// binary search over the boundary table.
//
// Errors: ErrVertexOutOfRange.
// Complexity: O(log size).
func (g Grid2D) VertexOwner(v int64) (int, error) {
	if v < 0 || v >= g.numVertices {
		return 0, fmt.Errorf("VertexOwner: vertex %d of %d: %w", v, g.numVertices, ErrVertexOutOfRange)
	}
	// First boundary strictly greater than v, minus one range.
	idx := sort.Search(g.size, func(k int) bool { return g.bounds[k+1] > v })
	return idx, nil
}

// CellMajorRange returns the major interval covered by local cell k of
// the worker with the given rank: the vertex range of global rank
// k*Cols()+ColOf(rank), the k-th member of the worker's column group.
//
// Errors: ErrRankOutOfRange for a bad rank or cell index.
// Complexity: O(1).
func (g Grid2D) CellMajorRange(rank, cell int) (first, last int64, err error) {
	if rank < 0 || rank >= g.size {
		return 0, 0, fmt.Errorf("CellMajorRange: rank %d of %d: %w", rank, g.size, ErrRankOutOfRange)
	}
	if cell < 0 || cell >= g.rows {
		return 0, 0, fmt.Errorf("CellMajorRange: cell %d of %d: %w", cell, g.rows, ErrRankOutOfRange)
	}
	owner := cell*g.cols + g.ColOf(rank)
	return g.bounds[owner], g.bounds[owner+1], nil
}

// MinorRange returns the aggregate minor interval of the worker with the
// given rank: the contiguous union of its grid row's vertex ranges.
//
// Errors: ErrRankOutOfRange.
// Complexity: O(1).
func (g Grid2D) MinorRange(rank int) (first, last int64, err error) {
	if rank < 0 || rank >= g.size {
		return 0, 0, fmt.Errorf("MinorRange: rank %d of %d: %w", rank, g.size, ErrRankOutOfRange)
	}
	row := g.RowOf(rank)
	return g.bounds[row*g.cols], g.bounds[(row+1)*g.cols], nil
}

// EdgeOwner maps an edge to the worker that stores it and the local cell
// it lands in: the major endpoint picks the grid column and cell, the
// minor endpoint picks the grid row.
//
// Errors: ErrVertexOutOfRange for either endpoint.
// Complexity: O(log size).
func (g Grid2D) EdgeOwner(major, minor int64) (rank, cell int, err error) {
	majorOwner, err := g.VertexOwner(major)
	if err != nil {
		return 0, 0, fmt.Errorf("EdgeOwner: major: %w", err)
	}
	minorOwner, err := g.VertexOwner(minor)
	if err != nil {
		return 0, 0, fmt.Errorf("EdgeOwner: minor: %w", err)
	}
	col := majorOwner % g.cols
	cell = majorOwner / g.cols
	row := minorOwner / g.cols
	return row*g.cols + col, cell, nil
}
