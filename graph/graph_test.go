// SPDX-License-Identifier: MIT
package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avellane/edgepress/csr"
	"github.com/avellane/edgepress/edgelist"
	"github.com/avellane/edgepress/graph"
	"github.com/avellane/edgepress/partition"
)

// singleAssembly builds a valid one-worker assembly around the wheel
// scenario block.
func singleAssembly(t *testing.T) graph.Assembly {
	t.Helper()
	grid, err := partition.NewGrid2D(1, 6)
	require.NoError(t, err)
	b, err := csr.Compress(edgelist.Edgelist{
		Src: []int64{0, 1, 1, 2, 2, 2, 3, 4},
		Dst: []int64{1, 3, 4, 0, 1, 3, 5, 5},
	}, 0, 6, 6)
	require.NoError(t, err)
	return graph.Assembly{
		Props:       graph.Properties{IsSymmetric: false, IsMultigraph: false},
		Orientation: graph.StoreBySource,
		Grid:        grid,
		Rank:        0,
		NumVertices: 6,
		NumEdges:    8,
		Blocks:      []*csr.Block{b},
	}
}

func TestOrientation(t *testing.T) {
	t.Parallel()

	require.Equal(t, graph.StoreByDestination, graph.StoreBySource.Flip())
	require.Equal(t, graph.StoreBySource, graph.StoreByDestination.Flip())
	require.True(t, graph.StoreBySource.Valid())
	require.False(t, graph.Orientation(9).Valid())
	require.Equal(t, "by-source", graph.StoreBySource.String())
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	// 1. Valid assembly.
	g, err := graph.New(singleAssembly(t))
	require.NoError(t, err)
	require.Equal(t, int64(6), g.NumVertices())
	require.Equal(t, int64(8), g.NumEdges())
	require.Equal(t, int64(8), g.LocalEdgeCount())
	require.False(t, g.IsSymmetric())
	require.False(t, g.IsMultigraph())
	require.False(t, g.Destroyed())
	require.Nil(t, g.RenumberMap())

	// 2. Bad orientation.
	a := singleAssembly(t)
	a.Orientation = graph.Orientation(7)
	_, err = graph.New(a)
	require.ErrorIs(t, err, graph.ErrBadOrientation)

	// 3. Zero-value grid.
	a = singleAssembly(t)
	a.Grid = partition.Grid2D{}
	_, err = graph.New(a)
	require.ErrorIs(t, err, graph.ErrBadAssembly)

	// 4. Rank outside the grid.
	a = singleAssembly(t)
	a.Rank = 5
	_, err = graph.New(a)
	require.ErrorIs(t, err, graph.ErrBadAssembly)

	// 5. Cell/block count mismatch.
	a = singleAssembly(t)
	a.Blocks = nil
	_, err = graph.New(a)
	require.ErrorIs(t, err, graph.ErrBadAssembly)

	// 6. Declared edge total disagreeing with the single-worker block.
	a = singleAssembly(t)
	a.NumEdges = 11
	_, err = graph.New(a)
	require.ErrorIs(t, err, graph.ErrBadAssembly)
	require.ErrorIs(t, err, graph.ErrInvalidInput)
}

func TestDecompressToEdgelist_LocalAndDestroy(t *testing.T) {
	t.Parallel()

	g, err := graph.New(singleAssembly(t))
	require.NoError(t, err)

	el, err := g.DecompressToEdgelist(false)
	require.NoError(t, err)
	require.Equal(t, 8, el.Len())
	require.False(t, g.Destroyed())

	// Destructive pass.
	el, err = g.DecompressToEdgelist(true)
	require.NoError(t, err)
	require.Equal(t, 8, el.Len())
	require.True(t, g.Destroyed())

	// A destroyed graph refuses further decompression.
	_, err = g.DecompressToEdgelist(false)
	require.ErrorIs(t, err, graph.ErrDestroyed)
}

func TestView(t *testing.T) {
	t.Parallel()

	a := singleAssembly(t)
	a.Segments = [][]int64{{0, 1, 5, 6}}
	g, err := graph.New(a)
	require.NoError(t, err)
	v := g.View()

	require.Equal(t, 1, v.CellCount())

	b, err := v.Block(0)
	require.NoError(t, err)
	require.Equal(t, int64(8), b.EdgeCount())
	_, err = v.Block(1)
	require.ErrorIs(t, err, graph.ErrBadAssembly)

	first, last, err := v.CellMajorRange(0)
	require.NoError(t, err)
	require.Equal(t, int64(0), first)
	require.Equal(t, int64(6), last)

	nf, nl, err := v.MinorRange()
	require.NoError(t, err)
	require.Equal(t, int64(0), nf)
	require.Equal(t, int64(6), nl)

	require.Equal(t, []int64{0, 1, 5, 6}, v.SegmentOffsets(0))
	require.Nil(t, v.SegmentOffsets(3))

	_, _, ok := v.SparseMajorIndex()
	require.False(t, ok)
	_, _, ok = v.SparseMinorIndex()
	require.False(t, ok)
}
