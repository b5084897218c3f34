// SPDX-License-Identifier: MIT
package partition_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avellane/edgepress/partition"
)

func TestNewGrid2D_Factoring(t *testing.T) {
	t.Parallel()

	cases := []struct {
		size, rows, cols int
	}{
		{1, 1, 1},
		{2, 2, 1},
		{4, 2, 2},
		{6, 3, 2},
		{12, 4, 3},
		{7, 7, 1}, // prime: degenerate 7×1 grid
		{16, 4, 4},
	}
	for _, c := range cases {
		g, err := partition.NewGrid2D(c.size, 100)
		require.NoError(t, err)
		require.Equal(t, c.rows, g.Rows(), "size=%d", c.size)
		require.Equal(t, c.cols, g.Cols(), "size=%d", c.size)
		require.Equal(t, c.size, g.Rows()*g.Cols())
		require.Equal(t, g.Rows(), g.LocalCellCount())
	}

	_, err := partition.NewGrid2D(0, 100)
	require.ErrorIs(t, err, partition.ErrBadGrid)
	_, err = partition.NewGrid2D(4, -1)
	require.ErrorIs(t, err, partition.ErrBadVertexCount)
}

func TestVertexRanges_CoverAndNest(t *testing.T) {
	t.Parallel()

	// 10 vertices over 4 ranks: 3,3,2,2.
	g, err := partition.NewGrid2D(4, 10)
	require.NoError(t, err)

	offsets := g.VertexPartitionOffsets()
	require.Equal(t, []int64{0, 3, 6, 8, 10}, offsets)

	var covered int64
	for r := 0; r < g.Size(); r++ {
		first, last, err := g.VertexRange(r)
		require.NoError(t, err)
		require.LessOrEqual(t, first, last)
		require.Equal(t, offsets[r], first)
		require.Equal(t, offsets[r+1], last)
		covered += last - first

		rangeLast, err := g.VertexRangeLast(r)
		require.NoError(t, err)
		require.Equal(t, last, rangeLast)
	}
	require.Equal(t, int64(10), covered)

	_, _, err = g.VertexRange(4)
	require.ErrorIs(t, err, partition.ErrRankOutOfRange)
}

func TestVertexOwner(t *testing.T) {
	t.Parallel()

	g, err := partition.NewGrid2D(4, 10)
	require.NoError(t, err)

	for v := int64(0); v < 10; v++ {
		owner, err := g.VertexOwner(v)
		require.NoError(t, err)
		first, last, err := g.VertexRange(owner)
		require.NoError(t, err)
		require.True(t, first <= v && v < last, "vertex %d owner %d", v, owner)
	}

	_, err = g.VertexOwner(-1)
	require.ErrorIs(t, err, partition.ErrVertexOutOfRange)
	_, err = g.VertexOwner(10)
	require.ErrorIs(t, err, partition.ErrVertexOutOfRange)
}

func TestEdgeOwner_ConsistentWithCellRanges(t *testing.T) {
	t.Parallel()

	// 2×3 grid over 13 vertices; every possible edge must land on
	// exactly one worker, inside one of its cells' major range and
	// inside its aggregate minor range.
	g, err := partition.NewGrid2D(6, 13)
	require.NoError(t, err)

	for major := int64(0); major < 13; major++ {
		for minor := int64(0); minor < 13; minor++ {
			rank, cell, err := g.EdgeOwner(major, minor)
			require.NoError(t, err)
			require.GreaterOrEqual(t, rank, 0)
			require.Less(t, rank, g.Size())
			require.Less(t, cell, g.LocalCellCount())

			mf, ml, err := g.CellMajorRange(rank, cell)
			require.NoError(t, err)
			require.True(t, mf <= major && major < ml,
				"major %d not in cell %d range [%d,%d) of rank %d", major, cell, mf, ml, rank)

			nf, nl, err := g.MinorRange(rank)
			require.NoError(t, err)
			require.True(t, nf <= minor && minor < nl,
				"minor %d not in minor range [%d,%d) of rank %d", minor, nf, nl, rank)
		}
	}
}

func TestSingleWorkerGrid(t *testing.T) {
	t.Parallel()

	g, err := partition.NewGrid2D(1, 42)
	require.NoError(t, err)
	require.Equal(t, 1, g.LocalCellCount())

	first, last, err := g.CellMajorRange(0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(0), first)
	require.Equal(t, int64(42), last)

	nf, nl, err := g.MinorRange(0)
	require.NoError(t, err)
	require.Equal(t, int64(0), nf)
	require.Equal(t, int64(42), nl)

	rank, cell, err := g.EdgeOwner(41, 0)
	require.NoError(t, err)
	require.Zero(t, rank)
	require.Zero(t, cell)
}

func TestEmptyVertexSpace(t *testing.T) {
	t.Parallel()

	g, err := partition.NewGrid2D(3, 0)
	require.NoError(t, err)
	for r := 0; r < 3; r++ {
		first, last, err := g.VertexRange(r)
		require.NoError(t, err)
		require.Equal(t, first, last)
	}
	_, err = g.VertexOwner(0)
	require.ErrorIs(t, err, partition.ErrVertexOutOfRange)
}
