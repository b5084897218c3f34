// SPDX-License-Identifier: MIT
// Package construct: the build-then-replace transform operators.

package construct

import (
	"fmt"

	"github.com/avellane/edgepress/comm"
	"github.com/avellane/edgepress/edgelist"
	"github.com/avellane/edgepress/graph"
)

// decompressSrcDst expands g's local blocks into (src, dst[, weight])
// triples, undoing the storage orientation's major/minor role swap.
func decompressSrcDst(g *graph.Graph, destroy bool) (edgelist.Edgelist, error) {
	el, err := g.DecompressToEdgelist(destroy)
	if err != nil {
		return edgelist.Edgelist{}, err
	}
	if g.Orientation() == graph.StoreByDestination {
		el = el.Reverse()
	}
	return el, nil
}

// rebuild is the shared decompress-edit-reconstruct path of the
// transform operators. The new graph keeps g's vertex space and
// renumber map; renumbering never reruns here.
func rebuild(c *comm.Comm, g *graph.Graph, destroy bool, props graph.Properties, orient graph.Orientation, opts []Option, edit func(*comm.Comm, edgelist.Edgelist, bool) (edgelist.Edgelist, error)) (*graph.Graph, error) {
	cfg := resolve(opts)
	cfg.renumber = false
	cfg.numVertices = g.NumVertices()
	cfg.orientation = orient
	carried := g.RenumberMap()
	return withComm(c, g.Grid().Size(), func(cc *comm.Comm) (*graph.Graph, error) {
		el, derr := decompressSrcDst(g, destroy)
		if err := agree(cc, derr); err != nil {
			return nil, err
		}
		weighted := comm.AllReduce(cc, boolToInt64(el.Weighted()), comm.MaxInt64) == 1
		el, eerr := edit(cc, el, weighted)
		if err := agree(cc, eerr); err != nil {
			return nil, err
		}
		return build(cc, el, props, cfg, carried)
	})
}

// Symmetrize returns a symmetric version of g: the union closure (a
// reverse edge added wherever the reverse pair is absent), or with
// reciprocal the intersection (only edges present in both directions
// survive). A graph already declared symmetric is returned unchanged.
// destroy releases g's blocks during decompression; see
// Graph.DecompressToEdgelist.
//
// Distributed mode colocates every (u,v) with its reverse at the owner
// of min(u,v) before symmetrizing, then rebuilds through the full
// pipeline. Collective; same arguments required on every worker.
func Symmetrize(c *comm.Comm, g *graph.Graph, reciprocal, destroy bool, opts ...Option) (*graph.Graph, error) {
	if g.IsSymmetric() {
		return g, nil
	}
	props := graph.Properties{IsSymmetric: true, IsMultigraph: g.IsMultigraph()}
	grid := g.Grid()
	return rebuild(c, g, destroy, props, g.Orientation(), opts,
		func(cc *comm.Comm, el edgelist.Edgelist, weighted bool) (edgelist.Edgelist, error) {
			routed, err := routeByPair(cc, grid, el, weighted)
			if err != nil {
				return edgelist.Edgelist{}, err
			}
			if reciprocal {
				return edgelist.SymmetrizeReciprocal(routed), nil
			}
			return edgelist.SymmetrizeUnion(routed), nil
		})
}

// Transpose returns g with every edge reversed. A symmetric graph is
// its own transpose and is returned unchanged. Collective in
// distributed mode (the reversed edges move to new owners).
func Transpose(c *comm.Comm, g *graph.Graph, destroy bool, opts ...Option) (*graph.Graph, error) {
	if g.IsSymmetric() {
		return g, nil
	}
	return rebuild(c, g, destroy, g.Properties(), g.Orientation(), opts,
		func(_ *comm.Comm, el edgelist.Edgelist, _ bool) (edgelist.Edgelist, error) {
			return el.Reverse(), nil
		})
}

// TransposeStorage returns a graph with the same edges under the
// opposite storage orientation (CSR-like to CSC-like or back). Unlike
// Transpose it always executes: it changes the storage convention, not
// the edge set. Collective in distributed mode.
func TransposeStorage(c *comm.Comm, g *graph.Graph, destroy bool, opts ...Option) (*graph.Graph, error) {
	return rebuild(c, g, destroy, g.Properties(), g.Orientation().Flip(), opts,
		func(_ *comm.Comm, el edgelist.Edgelist, _ bool) (edgelist.Edgelist, error) {
			return el, nil
		})
}

// DecompressToEdgelist expands g's local blocks into (src, dst[,
// weight]) triples in unspecified order. With unrenumber the endpoints
// are translated back to external ids through the graph's renumber map
// (a collective lookup in distributed mode, so every worker must call
// this together; c must match the graph's grid). destroy releases g's
// storage during expansion.
func DecompressToEdgelist(c *comm.Comm, g *graph.Graph, unrenumber, destroy bool) (edgelist.Edgelist, error) {
	distributed := g.Grid().Size() > 1
	if distributed && (c == nil || c.Size() != g.Grid().Size()) {
		return edgelist.Edgelist{}, fmt.Errorf("DecompressToEdgelist: %w", ErrCommMismatch)
	}

	el, err := decompressSrcDst(g, destroy)
	if distributed {
		// Peers must not be abandoned before the lookup collectives.
		err = agree(c, err)
	}
	if err != nil {
		return edgelist.Edgelist{}, err
	}
	if !unrenumber {
		return el, nil
	}

	el.Src, err = Unrenumber(c, g, el.Src)
	if err != nil {
		return edgelist.Edgelist{}, err
	}
	el.Dst, err = Unrenumber(c, g, el.Dst)
	if err != nil {
		return edgelist.Edgelist{}, err
	}
	return el, nil
}
