// SPDX-License-Identifier: MIT
// Package graph - the read-only consumer surface.

package graph

import (
	"fmt"

	"github.com/avellane/edgepress/csr"
)

// View is the read-only surface algorithms consume: the compressed
// blocks plus the partition metadata needed to interpret them. Slices
// returned by a View are the graph's own buffers; mutating them is a
// contract violation, not a detected error - views exist to avoid
// copying multi-gigabyte adjacency.
type View struct {
	g *Graph
}

// View returns the consumer surface of g.
func (g *Graph) View() View { return View{g: g} }

// CellCount returns the number of local partition cells.
func (v View) CellCount() int { return len(v.g.blocks) }

// Block returns the compressed block of one local cell. The block must
// be treated as read-only.
//
// Errors: ErrBadAssembly for a cell index outside [0, CellCount()).
func (v View) Block(cell int) (*csr.Block, error) {
	if cell < 0 || cell >= len(v.g.blocks) {
		return nil, fmt.Errorf("Block: cell %d of %d: %w", cell, len(v.g.blocks), ErrBadAssembly)
	}
	return v.g.blocks[cell], nil
}

// CellMajorRange returns the major interval covered by one local cell.
func (v View) CellMajorRange(cell int) (first, last int64, err error) {
	return v.g.grid.CellMajorRange(v.g.rank, cell)
}

// MinorRange returns the worker's aggregate minor interval.
func (v View) MinorRange() (first, last int64, err error) {
	return v.g.grid.MinorRange(v.g.rank)
}

// SegmentOffsets returns the density-tier table of one cell (nil when
// tier tracking is disabled). Treat as read-only.
func (v View) SegmentOffsets(cell int) []int64 {
	if v.g.segments == nil || cell < 0 || cell >= len(v.g.segments) {
		return nil
	}
	return v.g.segments[cell]
}

// SparseMajorIndex returns the sorted unique-major "hot vertex" list
// and its per-group offset table, or ok=false when construction kept
// dense property addressing. Treat both slices as read-only.
func (v View) SparseMajorIndex() (vertices, groupOffsets []int64, ok bool) {
	if v.g.uniqueMajors == nil {
		return nil, nil, false
	}
	return v.g.uniqueMajors, v.g.uniqueMajorOffsets, true
}

// SparseMinorIndex is the minor-side counterpart of SparseMajorIndex.
func (v View) SparseMinorIndex() (vertices, groupOffsets []int64, ok bool) {
	if v.g.uniqueMinors == nil {
		return nil, nil, false
	}
	return v.g.uniqueMinors, v.g.uniqueMinorOffsets, true
}
