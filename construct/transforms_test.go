// SPDX-License-Identifier: MIT
package construct_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avellane/edgepress/construct"
	"github.com/avellane/edgepress/edgelist"
	"github.com/avellane/edgepress/graph"
)

func TestSymmetrize_Union(t *testing.T) {
	t.Parallel()

	in := weightedWheel()
	g, err := construct.FromEdgelist(nil, in.Clone(), graph.Properties{})
	require.NoError(t, err)

	gs, err := construct.Symmetrize(nil, g, false, false, construct.WithExpensiveChecks())
	require.NoError(t, err)
	require.True(t, gs.IsSymmetric())

	// No pair of the input is bidirectional, so the closure doubles it:
	// every edge plus its reverse, reverse weights copied over.
	require.Equal(t, int64(16), gs.NumEdges())
	out, err := construct.DecompressToEdgelist(nil, gs, false, false)
	require.NoError(t, err)
	require.Equal(t, sorted(edgelist.SymmetrizeUnion(in)), sorted(out))
}

func TestSymmetrize_Idempotent(t *testing.T) {
	t.Parallel()

	g, err := construct.FromEdgelist(nil, weightedWheel(), graph.Properties{})
	require.NoError(t, err)
	once, err := construct.Symmetrize(nil, g, false, false)
	require.NoError(t, err)

	// A graph already declared symmetric is returned as-is.
	twice, err := construct.Symmetrize(nil, once, false, false)
	require.NoError(t, err)
	require.Same(t, once, twice)
}

func TestSymmetrize_Reciprocal(t *testing.T) {
	t.Parallel()

	in := edgelist.Edgelist{
		Src:    []int64{0, 1, 2},
		Dst:    []int64{1, 0, 3},
		Weight: []float64{1.5, 2.5, 3.5},
	}
	g, err := construct.FromEdgelist(nil, in.Clone(), graph.Properties{})
	require.NoError(t, err)

	gs, err := construct.Symmetrize(nil, g, true, false)
	require.NoError(t, err)
	require.True(t, gs.IsSymmetric())
	require.Equal(t, int64(2), gs.NumEdges())

	out, err := construct.DecompressToEdgelist(nil, gs, false, false)
	require.NoError(t, err)
	require.Equal(t, sorted(edgelist.SymmetrizeReciprocal(in)), sorted(out))
}

func TestTranspose(t *testing.T) {
	t.Parallel()

	in := weightedWheel()
	g, err := construct.FromEdgelist(nil, in.Clone(), graph.Properties{})
	require.NoError(t, err)

	gt, err := construct.Transpose(nil, g, false)
	require.NoError(t, err)
	require.Equal(t, g.Orientation(), gt.Orientation())
	require.Equal(t, int64(8), gt.NumEdges())

	out, err := construct.DecompressToEdgelist(nil, gt, false, false)
	require.NoError(t, err)
	require.Equal(t, sorted(in.Reverse()), sorted(out))

	// A symmetric graph is its own transpose.
	gs, err := construct.Symmetrize(nil, gt, false, false)
	require.NoError(t, err)
	same, err := construct.Transpose(nil, gs, false)
	require.NoError(t, err)
	require.Same(t, gs, same)
}

func TestTransposeStorage(t *testing.T) {
	t.Parallel()

	in := weightedWheel()
	g, err := construct.FromEdgelist(nil, in.Clone(), graph.Properties{})
	require.NoError(t, err)

	flipped, err := construct.TransposeStorage(nil, g, true)
	require.NoError(t, err)
	require.Equal(t, graph.StoreByDestination, flipped.Orientation())
	require.True(t, g.Destroyed())

	// The storage convention changed; the edge set did not.
	out, err := construct.DecompressToEdgelist(nil, flipped, false, false)
	require.NoError(t, err)
	require.Equal(t, sorted(in), sorted(out))

	// Flipping back restores the original orientation.
	back, err := construct.TransposeStorage(nil, flipped, false)
	require.NoError(t, err)
	require.Equal(t, graph.StoreBySource, back.Orientation())
}

func TestTransforms_KeepRenumberMap(t *testing.T) {
	t.Parallel()

	in := weightedWheel()
	g, err := construct.FromEdgelist(nil, in.Clone(), graph.Properties{}, construct.WithRenumbering())
	require.NoError(t, err)

	gs, err := construct.Symmetrize(nil, g, false, true)
	require.NoError(t, err)
	require.Equal(t, g.RenumberMap(), gs.RenumberMap())

	// External-id decompression still works after the rebuild.
	out, err := construct.DecompressToEdgelist(nil, gs, true, false)
	require.NoError(t, err)
	require.Equal(t, sorted(edgelist.SymmetrizeUnion(in)), sorted(out))
}
