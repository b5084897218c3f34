// SPDX-License-Identifier: MIT
// Package construct: collective edge routing.

package construct

import (
	"github.com/avellane/edgepress/comm"
	"github.com/avellane/edgepress/edgelist"
	"github.com/avellane/edgepress/partition"
)

// wireEdge is the unit of the all-to-all exchanges. Weight is dead
// cargo for unweighted graphs.
type wireEdge struct {
	Major  int64
	Minor  int64
	Weight float64
}

func bucketAppend(send [][]wireEdge, rank int, major, minor int64, w float64) {
	send[rank] = append(send[rank], wireEdge{Major: major, Minor: minor, Weight: w})
}

// shuffleByOwner redistributes el so each worker receives exactly the
// edges it owns under grid, split into per-cell lists. el's Src is the
// major endpoint. The agree call inside keeps a rank with unroutable
// edges from abandoning peers already inside the exchange.
func shuffleByOwner(c *comm.Comm, grid partition.Grid2D, el edgelist.Edgelist, weighted bool) ([]edgelist.Edgelist, error) {
	send := make([][]wireEdge, c.Size())
	var berr error
	for i := range el.Src {
		rank, _, err := grid.EdgeOwner(el.Src[i], el.Dst[i])
		if err != nil {
			berr = err
			break
		}
		var w float64
		if weighted {
			w = el.Weight[i]
		}
		bucketAppend(send, rank, el.Src[i], el.Dst[i], w)
	}
	if err := agree(c, berr); err != nil {
		return nil, err
	}

	recv, err := comm.AllToAll(c, send)
	if err != nil {
		return nil, err
	}

	cells := make([]edgelist.Edgelist, grid.LocalCellCount())
	if weighted {
		for k := range cells {
			cells[k].Weight = []float64{}
		}
	}
	for _, chunk := range recv {
		for _, e := range chunk {
			// Owner is this rank; only the cell index is needed.
			_, cell, oerr := grid.EdgeOwner(e.Major, e.Minor)
			if oerr != nil {
				return nil, oerr
			}
			cl := &cells[cell]
			cl.Src = append(cl.Src, e.Major)
			cl.Dst = append(cl.Dst, e.Minor)
			if weighted {
				cl.Weight = append(cl.Weight, e.Weight)
			}
		}
	}
	return cells, nil
}

// routeByPair colocates every (u,v) with its reverse (v,u) by routing
// both to the owner of min(u,v), so pair-local symmetrization sees the
// whole pair. Identity on a single-worker group.
func routeByPair(c *comm.Comm, grid partition.Grid2D, el edgelist.Edgelist, weighted bool) (edgelist.Edgelist, error) {
	if c.Size() == 1 {
		return el, nil
	}
	send := make([][]wireEdge, c.Size())
	var berr error
	for i := range el.Src {
		canon := el.Src[i]
		if el.Dst[i] < canon {
			canon = el.Dst[i]
		}
		owner, err := grid.VertexOwner(canon)
		if err != nil {
			berr = err
			break
		}
		var w float64
		if weighted {
			w = el.Weight[i]
		}
		bucketAppend(send, owner, el.Src[i], el.Dst[i], w)
	}
	if err := agree(c, berr); err != nil {
		return edgelist.Edgelist{}, err
	}

	recv, err := comm.AllToAll(c, send)
	if err != nil {
		return edgelist.Edgelist{}, err
	}
	out := edgelist.Edgelist{}
	if weighted {
		out.Weight = []float64{}
	}
	for _, chunk := range recv {
		for _, e := range chunk {
			out.Src = append(out.Src, e.Major)
			out.Dst = append(out.Dst, e.Minor)
			if weighted {
				out.Weight = append(out.Weight, e.Weight)
			}
		}
	}
	return out, nil
}
