// SPDX-License-Identifier: MIT
// Package graph - the Graph object, its assembly and local decompression.

package graph

import (
	"fmt"

	"github.com/avellane/edgepress/csr"
	"github.com/avellane/edgepress/edgelist"
	"github.com/avellane/edgepress/partition"
)

// Orientation selects the storage convention of every block: which
// endpoint plays the major (grouped) role. It is the runtime rendering
// of a compile-time "store transposed" switch: one enum plus shared
// code paths instead of two specialized types.
type Orientation uint8

const (
	// StoreBySource groups edges by source (CSR-like).
	StoreBySource Orientation = iota

	// StoreByDestination groups edges by destination (CSC-like).
	StoreByDestination
)

// Flip returns the opposite orientation.
func (o Orientation) Flip() Orientation {
	if o == StoreBySource {
		return StoreByDestination
	}
	return StoreBySource
}

// Valid reports whether o is a member of the enum.
func (o Orientation) Valid() bool { return o <= StoreByDestination }

// String implements fmt.Stringer.
func (o Orientation) String() string {
	if o == StoreBySource {
		return "by-source"
	}
	return "by-destination"
}

// Properties are the caller-declared graph-wide property flags. They
// are declarations, not observations: the builder verifies them only
// when expensive checks are enabled.
type Properties struct {
	// IsSymmetric declares that every (u,v) edge has a (v,u)
	// counterpart with equal weight.
	IsSymmetric bool

	// IsMultigraph declares that parallel (u,v) duplicates are allowed.
	IsMultigraph bool
}

// Assembly carries everything the builder hands over to New. Buffers
// are moved, not copied: the caller must not retain them.
type Assembly struct {
	Props       Properties
	Orientation Orientation
	Grid        partition.Grid2D
	Rank        int

	NumVertices int64 // graph-wide
	NumEdges    int64 // graph-wide, across all workers

	// Blocks holds one compressed block per local partition cell, in
	// cell order; length must equal Grid.LocalCellCount().
	Blocks []*csr.Block

	// Segments holds, per cell, the density-tier table assembled across
	// the column communicator group (4 entries per member,
	// concatenated in group-rank order). May be nil when tier tracking
	// is disabled.
	Segments [][]int64

	// UniqueMajors / UniqueMinors are the optional sparse "hot vertex"
	// index sets: sorted unique edge endpoints, with per-group offset
	// tables splitting them by owning member. All four nil when the
	// fill ratio did not warrant sparse property storage.
	UniqueMajors       []int64
	UniqueMajorOffsets []int64
	UniqueMinors       []int64
	UniqueMinorOffsets []int64

	// RenumberMap is the local slice of the global-to-local vertex
	// renumbering (local index - VertexRange(rank) first → original
	// external id), or nil when construction ran without renumbering.
	RenumberMap []int64
}

// Graph owns the compressed adjacency of one worker's share of the
// graph. Construct with New (normally via the construct package).
type Graph struct {
	props  Properties
	orient Orientation
	grid   partition.Grid2D
	rank   int

	numVertices int64
	numEdges    int64

	blocks   []*csr.Block
	segments [][]int64

	uniqueMajors       []int64
	uniqueMajorOffsets []int64
	uniqueMinors       []int64
	uniqueMinorOffsets []int64

	renumber []int64
}

// New validates an Assembly and wraps it into a Graph. Validation here
// is cheap and structural; per-block invariants are the builder's job
// (csr.Block.Verify under expensive checks).
//
// Errors: ErrBadAssembly, ErrBadOrientation.
// Complexity: O(cells).
func New(a Assembly) (*Graph, error) {
	if !a.Orientation.Valid() {
		return nil, fmt.Errorf("New: orientation %d: %w", a.Orientation, ErrBadOrientation)
	}
	if a.Grid.Size() == 0 {
		return nil, fmt.Errorf("New: zero-value grid: %w", ErrBadAssembly)
	}
	if a.Rank < 0 || a.Rank >= a.Grid.Size() {
		return nil, fmt.Errorf("New: rank %d of %d: %w", a.Rank, a.Grid.Size(), ErrBadAssembly)
	}
	if len(a.Blocks) != a.Grid.LocalCellCount() {
		return nil, fmt.Errorf("New: %d blocks for %d cells: %w",
			len(a.Blocks), a.Grid.LocalCellCount(), ErrBadAssembly)
	}
	var local int64
	for i, b := range a.Blocks {
		if b == nil {
			return nil, fmt.Errorf("New: nil block for cell %d: %w", i, ErrBadAssembly)
		}
		local += b.EdgeCount()
	}
	if a.Grid.Size() == 1 && local != a.NumEdges {
		return nil, fmt.Errorf("New: %d local edges, %d declared: %w",
			local, a.NumEdges, ErrBadAssembly)
	}
	if a.Segments != nil && len(a.Segments) != len(a.Blocks) {
		return nil, fmt.Errorf("New: %d segment tables for %d cells: %w",
			len(a.Segments), len(a.Blocks), ErrBadAssembly)
	}

	return &Graph{
		props:              a.Props,
		orient:             a.Orientation,
		grid:               a.Grid,
		rank:               a.Rank,
		numVertices:        a.NumVertices,
		numEdges:           a.NumEdges,
		blocks:             a.Blocks,
		segments:           a.Segments,
		uniqueMajors:       a.UniqueMajors,
		uniqueMajorOffsets: a.UniqueMajorOffsets,
		uniqueMinors:       a.UniqueMinors,
		uniqueMinorOffsets: a.UniqueMinorOffsets,
		renumber:           a.RenumberMap,
	}, nil
}

// Properties returns the declared property flags.
func (g *Graph) Properties() Properties { return g.props }

// IsSymmetric reports the declared symmetry flag.
func (g *Graph) IsSymmetric() bool { return g.props.IsSymmetric }

// IsMultigraph reports the declared multigraph flag.
func (g *Graph) IsMultigraph() bool { return g.props.IsMultigraph }

// Orientation returns the storage orientation.
func (g *Graph) Orientation() Orientation { return g.orient }

// Grid returns the partition descriptor (a value; callers cannot
// mutate the graph through it).
func (g *Graph) Grid() partition.Grid2D { return g.grid }

// Rank returns the owning worker's global rank.
func (g *Graph) Rank() int { return g.rank }

// NumVertices returns the graph-wide vertex count.
func (g *Graph) NumVertices() int64 { return g.numVertices }

// NumEdges returns the graph-wide edge count.
func (g *Graph) NumEdges() int64 { return g.numEdges }

// LocalEdgeCount returns the edges stored by this worker.
func (g *Graph) LocalEdgeCount() int64 {
	var n int64
	for _, b := range g.blocks {
		n += b.EdgeCount()
	}
	return n
}

// RenumberMap returns the local renumber-map slice (nil without
// renumbering). Index i maps local vertex VertexRange(rank).first+i to
// its original external id. The slice is shared; treat as read-only.
func (g *Graph) RenumberMap() []int64 { return g.renumber }

// Destroyed reports whether the graph's storage was released.
func (g *Graph) Destroyed() bool {
	for _, b := range g.blocks {
		if b != nil && b.Offsets != nil {
			return false
		}
	}
	return len(g.blocks) > 0
}

// DecompressToEdgelist expands every local block back into (major,
// minor[, weight]) triples in unspecified order. Vertex ids are the
// graph's internal (possibly renumbered) ids; translating back to
// external ids is a distributed operation, see construct.Unrenumber.
//
// destroy releases each block's buffers as soon as it is expanded,
// trading the live-source-plus-result memory peak for a
// freed-source-then-build one.
//
// Errors: ErrDestroyed when storage was already released.
// Complexity: O(local edges).
func (g *Graph) DecompressToEdgelist(destroy bool) (edgelist.Edgelist, error) {
	if g.Destroyed() {
		return edgelist.Edgelist{}, fmt.Errorf("DecompressToEdgelist: %w", ErrDestroyed)
	}
	chunks := make([]edgelist.Edgelist, len(g.blocks))
	for i, b := range g.blocks {
		chunks[i] = csr.Decompress(b, destroy)
	}
	return edgelist.Concat(chunks...), nil
}
