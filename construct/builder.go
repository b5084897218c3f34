// SPDX-License-Identifier: MIT
// Package construct - the FromEdgelist pipeline.

package construct

import (
	"fmt"
	"time"

	"github.com/avellane/edgepress/comm"
	"github.com/avellane/edgepress/csr"
	"github.com/avellane/edgepress/edgelist"
	"github.com/avellane/edgepress/graph"
	"github.com/avellane/edgepress/partition"
	"github.com/avellane/edgepress/segsort"
)

// FromEdgelist builds a compressed graph from an edge list.
//
// In distributed mode c is the world communicator (one call per worker,
// same props and options everywhere) and el is the caller's local edge
// chunk; edges are shuffled to their owning workers regardless of which
// chunk they arrive in. With c == nil the same pipeline runs on a
// private single-worker world.
//
// The builder takes ownership of el's buffers; the caller must not
// reuse them. The renumber map, when requested, is carried on the
// returned graph (RenumberMap, Unrenumber).
//
// Errors: ErrInvalidInput and its construct sentinels, plus validation
// failures from edgelist, csr and graph surfaced as-is. In distributed
// mode a failure on any worker surfaces on every worker (ErrPeerAbort
// on the ranks whose own inputs were fine).
func FromEdgelist(c *comm.Comm, el edgelist.Edgelist, props graph.Properties, opts ...Option) (*graph.Graph, error) {
	cfg := resolve(opts)
	want := 1
	if c != nil {
		want = c.Size()
	}
	return withComm(c, want, func(cc *comm.Comm) (*graph.Graph, error) {
		return build(cc, el, props, cfg, nil)
	})
}

// withComm dispatches fn onto the caller's communicator, or onto a
// private single-worker world when c is nil.
func withComm(c *comm.Comm, want int, fn func(*comm.Comm) (*graph.Graph, error)) (*graph.Graph, error) {
	if c != nil {
		if c.Size() != want {
			return nil, fmt.Errorf("withComm: communicator size %d for %d partitions: %w",
				c.Size(), want, ErrCommMismatch)
		}
		return fn(c)
	}
	if want != 1 {
		return nil, fmt.Errorf("withComm: nil communicator for %d partitions: %w", want, ErrCommMismatch)
	}
	w, err := comm.NewWorld(1)
	if err != nil {
		return nil, err
	}
	var g *graph.Graph
	runErr := w.Run(func(cc *comm.Comm) error {
		var e error
		g, e = fn(cc)
		return e
	})
	if runErr != nil {
		return nil, runErr
	}
	return g, nil
}

// agree synchronizes failure decisions across the group so that every
// rank leaves the pipeline at the same collective boundary. A rank with
// a local error keeps it; a rank whose peers failed gets ErrPeerAbort.
func agree(c *comm.Comm, err error) error {
	flag := int64(0)
	if err != nil {
		flag = 1
	}
	if comm.AllReduce(c, flag, comm.MaxInt64) == 0 {
		return nil
	}
	if err != nil {
		return err
	}
	return ErrPeerAbort
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// build runs the construction pipeline on one worker. Every collective
// below is reached by every rank in the same order; local failures are
// funneled through agree before any early return.
func build(c *comm.Comm, el edgelist.Edgelist, props graph.Properties, cfg config, carried []int64) (*graph.Graph, error) {
	r := c.Rank()
	log := cfg.log.With().Int("rank", r).Logger()
	start := time.Now()

	err := el.CheapCheck()
	if err = agree(c, err); err != nil {
		return nil, err
	}

	weighted := comm.AllReduce(c, boolToInt64(el.Weighted()), comm.MaxInt64) == 1
	if weighted && !el.Weighted() && el.Len() > 0 {
		err = fmt.Errorf("build: weighted peers, unweighted local chunk: %w", ErrInvalidInput)
	}
	if err = agree(c, err); err != nil {
		return nil, err
	}

	numEdges := comm.AllReduce(c, int64(el.Len()), comm.SumInt64)

	// From here on Src plays the major (grouping) role.
	if cfg.orientation == graph.StoreByDestination {
		el = el.Reverse()
	}

	var extByNew []int64
	var numVertices int64
	if cfg.renumber {
		extByNew = applyRenumbering(c, el)
		numVertices = int64(len(extByNew))
	} else {
		maxID := int64(-1)
		for i := range el.Src {
			if el.Src[i] > maxID {
				maxID = el.Src[i]
			}
			if el.Dst[i] > maxID {
				maxID = el.Dst[i]
			}
		}
		derived := comm.AllReduce(c, maxID, comm.MaxInt64) + 1
		numVertices = derived
		if cfg.numVertices > 0 {
			if cfg.numVertices < derived {
				err = fmt.Errorf("build: %d vertices declared, max id %d: %w",
					cfg.numVertices, derived-1, ErrVertexCount)
			} else {
				numVertices = cfg.numVertices
			}
		}
	}
	if err = agree(c, err); err != nil {
		return nil, err
	}

	grid, gerr := partition.NewGrid2D(c.Size(), numVertices)
	if err = agree(c, gerr); err != nil {
		return nil, err
	}

	var localExt []int64
	if cfg.renumber {
		first, last, _ := grid.VertexRange(r)
		localExt = append([]int64(nil), extByNew[first:last]...)
	} else if carried != nil {
		localExt = carried
	}

	cells, serr := shuffleByOwner(c, grid, el, weighted)
	if err = agree(c, serr); err != nil {
		return nil, err
	}
	el = edgelist.Edgelist{} // shuffled copies own the edges now

	var localAfter int64
	for _, cl := range cells {
		localAfter += int64(cl.Len())
	}
	if got := comm.AllReduce(c, localAfter, comm.SumInt64); got != numEdges {
		return nil, fmt.Errorf("build: %d edges after shuffle, %d declared: %w",
			got, numEdges, ErrCountMismatch)
	}
	log.Debug().Int64("local_edges", localAfter).Dur("elapsed", time.Since(start)).
		Msg("ownership shuffle complete")

	if cfg.expensive {
		verr := validateCells(c, grid, r, cells, props, cfg)
		if err = agree(c, verr); err != nil {
			return nil, err
		}
	}

	minorFirst, minorLast, _ := grid.MinorRange(r)
	blocks := make([]*csr.Block, len(cells))
	var cerr error
	for k := range cells {
		first, last, e := grid.CellMajorRange(r, k)
		if e != nil {
			cerr = e
			break
		}
		b, e := csr.Compress(cells[k], first, last, hyperFirstOf(cfg, first, last, int64(cells[k].Len())))
		if e != nil {
			cerr = e
			break
		}
		var sopts []segsort.Option
		if cfg.sortChunkBytes > 0 {
			sopts = append(sopts, segsort.WithChunkBytes(cfg.sortChunkBytes))
		}
		segsort.SortAdjacency(b, sopts...)
		if cfg.expensive {
			if e := b.Verify(minorFirst, minorLast); e != nil {
				cerr = e
				break
			}
		}
		blocks[k] = b
		cells[k] = edgelist.Edgelist{} // compressed now, release the triples
	}
	if err = agree(c, cerr); err != nil {
		return nil, err
	}

	colComm := c.Split(grid.ColOf(r), grid.RowOf(r))
	segments := make([][]int64, len(blocks))
	for k, b := range blocks {
		tables := comm.AllGather(colComm, b.SegmentOffsets(cfg.highDegree))
		flat := make([]int64, 0, 4*len(tables))
		for _, t := range tables {
			flat = append(flat, t...)
		}
		segments[k] = flat
	}

	var uniqueMajors, uniqueMajorOffsets, uniqueMinors, uniqueMinorOffsets []int64
	if cfg.sparseIndexFill > 0 && numEdges > 0 {
		uniqueMajors, uniqueMajorOffsets = deriveSparseMajors(c, colComm, grid, r, blocks, cfg.sparseIndexFill)
		uniqueMinors, uniqueMinorOffsets = deriveSparseMinors(c, grid, r, blocks, cfg.sparseIndexFill)
	}

	g, aerr := graph.New(graph.Assembly{
		Props:              props,
		Orientation:        cfg.orientation,
		Grid:               grid,
		Rank:               r,
		NumVertices:        numVertices,
		NumEdges:           numEdges,
		Blocks:             blocks,
		Segments:           segments,
		UniqueMajors:       uniqueMajors,
		UniqueMajorOffsets: uniqueMajorOffsets,
		UniqueMinors:       uniqueMinors,
		UniqueMinorOffsets: uniqueMinorOffsets,
		RenumberMap:        localExt,
	})
	if err = agree(c, aerr); err != nil {
		return nil, err
	}
	log.Debug().Int64("vertices", numVertices).Int64("edges", numEdges).
		Dur("elapsed", time.Since(start)).Msg("graph constructed")
	return g, nil
}

// hyperFirstOf places the hypersparse boundary of one cell: when the
// cell's average local major degree falls below the threshold the whole
// cell stores an explicit vertex list, otherwise it stays dense.
func hyperFirstOf(cfg config, first, last, edges int64) int64 {
	span := last - first
	if cfg.hypersparseDeg <= 0 || span == 0 {
		return last
	}
	if float64(edges) < cfg.hypersparseDeg*float64(span) {
		return first
	}
	return last
}

// validateCells runs the expensive checks over the shuffled cells. The
// symmetry check needs the global edge set, so when the graph claims
// symmetry every rank enters the allgather below regardless of local
// check outcomes; the first local error still wins.
func validateCells(c *comm.Comm, grid partition.Grid2D, rank int, cells []edgelist.Edgelist, props graph.Properties, cfg config) error {
	minorFirst, minorLast, _ := grid.MinorRange(rank)
	var localErr error
	for k := range cells {
		first, last, err := grid.CellMajorRange(rank, k)
		if err != nil {
			localErr = err
			break
		}
		checks := []edgelist.CheckOption{
			edgelist.WithRange(first, last, minorFirst, minorLast),
		}
		if !props.IsMultigraph {
			checks = append(checks, edgelist.WithNoParallelEdges())
		}
		if err := edgelist.Validate(cells[k], checks...); err != nil {
			localErr = err
			break
		}
	}
	if props.IsSymmetric {
		all := comm.AllGather(c, edgelist.Concat(cells...))
		if localErr == nil {
			localErr = edgelist.Validate(edgelist.Concat(all...),
				edgelist.WithSymmetry(), edgelist.WithEpsilon(cfg.symmetryEpsilon))
		}
	}
	return localErr
}
