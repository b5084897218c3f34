// SPDX-License-Identifier: MIT
package construct_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avellane/edgepress/comm"
	"github.com/avellane/edgepress/construct"
	"github.com/avellane/edgepress/edgelist"
	"github.com/avellane/edgepress/graph"
)

// scatter deals el's edges round-robin into parts chunks, simulating
// arbitrary arrival placement before the ownership shuffle.
func scatter(el edgelist.Edgelist, parts int) []edgelist.Edgelist {
	out := make([]edgelist.Edgelist, parts)
	if el.Weighted() {
		for p := range out {
			out[p].Weight = []float64{}
		}
	}
	for i := range el.Src {
		p := i % parts
		out[p].Src = append(out[p].Src, el.Src[i])
		out[p].Dst = append(out[p].Dst, el.Dst[i])
		if el.Weighted() {
			out[p].Weight = append(out[p].Weight, el.Weight[i])
		}
	}
	return out
}

// gatherEdges merges every worker's local decompression into the global
// edge list, identically on every rank.
func gatherEdges(c *comm.Comm, el edgelist.Edgelist) edgelist.Edgelist {
	return edgelist.Concat(comm.AllGather(c, el)...)
}

func TestFromEdgelist_Distributed(t *testing.T) {
	t.Parallel()

	in := weightedWheel()
	chunks := scatter(in, 4)
	want := sorted(in)

	w, err := comm.NewWorld(4)
	require.NoError(t, err)
	require.NoError(t, w.Run(func(c *comm.Comm) error {
		g, err := construct.FromEdgelist(c, chunks[c.Rank()].Clone(), graph.Properties{},
			construct.WithExpensiveChecks())
		require.NoError(t, err)

		// 1. 4 workers factor into a 2x2 grid, one cell per grid row.
		require.Equal(t, 2, g.Grid().Rows())
		require.Equal(t, 2, g.Grid().Cols())
		require.Equal(t, 2, g.View().CellCount())

		// 2. Globals match the single-worker result.
		require.Equal(t, int64(6), g.NumVertices())
		require.Equal(t, int64(8), g.NumEdges())

		// 3. Tier tables carry one 4-entry row per column-group member.
		require.Len(t, g.View().SegmentOffsets(0), 8)

		// 4. Partitioning is transparent: the aggregated decompression
		// reproduces the input multiset on every rank.
		local, err := construct.DecompressToEdgelist(c, g, false, false)
		require.NoError(t, err)
		require.Equal(t, want, sorted(gatherEdges(c, local)))
		return nil
	}))
}

func TestFromEdgelist_DistributedRenumbering(t *testing.T) {
	t.Parallel()

	in := weightedWheel()
	chunks := scatter(in, 4)
	want := sorted(in)

	w, err := comm.NewWorld(4)
	require.NoError(t, err)
	require.NoError(t, w.Run(func(c *comm.Comm) error {
		g, err := construct.FromEdgelist(c, chunks[c.Rank()].Clone(), graph.Properties{},
			construct.WithRenumbering())
		require.NoError(t, err)

		// Concatenating the per-rank map slices rebuilds the global
		// degree-ordered table.
		full := gatherInt64s(c, g.RenumberMap())
		require.Equal(t, []int64{1, 2, 3, 0, 4, 5}, full)

		// The distributed un-renumbering lookup restores external ids.
		local, err := construct.DecompressToEdgelist(c, g, true, false)
		require.NoError(t, err)
		require.Equal(t, want, sorted(gatherEdges(c, local)))
		return nil
	}))
}

func gatherInt64s(c *comm.Comm, v []int64) []int64 {
	var out []int64
	for _, part := range comm.AllGather(c, v) {
		out = append(out, part...)
	}
	return out
}

func TestSymmetrize_Distributed(t *testing.T) {
	t.Parallel()

	in := weightedWheel()
	chunks := scatter(in, 4)
	want := sorted(edgelist.SymmetrizeUnion(in))

	w, err := comm.NewWorld(4)
	require.NoError(t, err)
	require.NoError(t, w.Run(func(c *comm.Comm) error {
		g, err := construct.FromEdgelist(c, chunks[c.Rank()].Clone(), graph.Properties{})
		require.NoError(t, err)

		gs, err := construct.Symmetrize(c, g, false, true)
		require.NoError(t, err)
		require.True(t, gs.IsSymmetric())
		require.Equal(t, int64(16), gs.NumEdges())

		local, err := construct.DecompressToEdgelist(c, gs, false, false)
		require.NoError(t, err)
		require.Equal(t, want, sorted(gatherEdges(c, local)))
		return nil
	}))
}

func TestFromEdgelist_DistributedSparseIndex(t *testing.T) {
	t.Parallel()

	// 2x2 grid over 6 vertices: bounds [0,2,4,5,6]. Column 0 owns the
	// major ranges [0,2) and [4,5), column 1 owns [2,4) and [5,6); grid
	// row 0 covers minors [0,4), row 1 covers [4,6).
	in := weightedWheel()
	chunks := scatter(in, 4)
	want := sorted(in)

	w, err := comm.NewWorld(4)
	require.NoError(t, err)
	require.NoError(t, w.Run(func(c *comm.Comm) error {
		g, err := construct.FromEdgelist(c, chunks[c.Rank()].Clone(), graph.Properties{},
			construct.WithSparseIndexThreshold(1.0),
			construct.WithHypersparseThreshold(10.0),
			construct.WithExpensiveChecks())
		require.NoError(t, err)
		v := g.View()
		grid := g.Grid()

		// 1. Major index merged across the column group, one offset
		// entry per column-group member. Column 0 sees majors {0,1,4}
		// over a 3-vertex span (fill 1.0, the worst rank, still within
		// the threshold); column 1 sees {2,3}.
		majors, majorOff, ok := v.SparseMajorIndex()
		require.True(t, ok)
		require.Len(t, majorOff, grid.Rows()+1)
		if grid.ColOf(c.Rank()) == 0 {
			require.Equal(t, []int64{0, 1, 4}, majors)
			require.Equal(t, []int64{0, 2, 3}, majorOff)
		} else {
			require.Equal(t, []int64{2, 3}, majors)
			require.Equal(t, []int64{0, 2, 2}, majorOff)
		}

		// 2. Minor index merged across the row group, one offset entry
		// per row-group member.
		minors, minorOff, ok := v.SparseMinorIndex()
		require.True(t, ok)
		require.Len(t, minorOff, grid.Cols()+1)
		if grid.RowOf(c.Rank()) == 0 {
			require.Equal(t, []int64{0, 1, 3}, minors)
			require.Equal(t, []int64{0, 2, 3}, minorOff)
		} else {
			require.Equal(t, []int64{4, 5}, minors)
			require.Equal(t, []int64{0, 1, 2}, minorOff)
		}

		// 3. Sparse cells switched to the explicit vertex list; a cell
		// whose packed list would not shrink the offsets stays dense.
		switch c.Rank() {
		case 1:
			// Cell 0 covers [2,4) but only vertex 2 carries edges.
			b, err := v.Block(0)
			require.NoError(t, err)
			require.True(t, b.Hypersparse())
			require.Equal(t, []int64{2}, b.HyperVertices)
			require.Equal(t, []int64{0, 3}, b.Offsets)
			require.Equal(t, []int64{0, 1, 3}, b.Indices)
		case 2:
			b, err := v.Block(0)
			require.NoError(t, err)
			require.True(t, b.Hypersparse())
			require.Equal(t, []int64{1}, b.HyperVertices)
			// Cell 1 is [4,5) with vertex 4 present: break-even, dense.
			b, err = v.Block(1)
			require.NoError(t, err)
			require.False(t, b.Hypersparse())
			require.Equal(t, []int64{0, 1}, b.Offsets)
		}

		// 4. The layout switch is invisible to decompression.
		local, err := construct.DecompressToEdgelist(c, g, false, false)
		require.NoError(t, err)
		require.Equal(t, want, sorted(gatherEdges(c, local)))
		return nil
	}))
}

func TestFromEdgelist_DistributedFailuresAgree(t *testing.T) {
	t.Parallel()

	// Rank 2 contributes a negative vertex id; every rank must surface
	// an error instead of hanging in a half-entered collective.
	chunks := scatter(wheel(), 4)
	chunks[2].Src[0] = -7

	w, err := comm.NewWorld(4)
	require.NoError(t, err)
	errs := make([]error, 4)
	require.NoError(t, w.Run(func(c *comm.Comm) error {
		_, err := construct.FromEdgelist(c, chunks[c.Rank()].Clone(), graph.Properties{})
		errs[c.Rank()] = err
		return nil
	}))

	require.ErrorIs(t, errs[2], edgelist.ErrNegativeVertex)
	for _, r := range []int{0, 1, 3} {
		require.ErrorIs(t, errs[r], construct.ErrPeerAbort)
	}
}

func TestFromEdgelist_CommMismatch(t *testing.T) {
	t.Parallel()

	g, err := construct.FromEdgelist(nil, wheel(), graph.Properties{})
	require.NoError(t, err)

	// A single-worker graph accepts a nil communicator; a distributed
	// operation does not fit a mismatched one.
	w, err := comm.NewWorld(2)
	require.NoError(t, err)
	require.NoError(t, w.Run(func(c *comm.Comm) error {
		_, err := construct.Symmetrize(c, g, false, false)
		require.ErrorIs(t, err, construct.ErrCommMismatch)
		return nil
	}))
}
