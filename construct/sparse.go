// SPDX-License-Identifier: MIT
// Package construct: sparse "hot vertex" index derivation.
//
// When the unique edge endpoints cover only a small fraction of the
// addressable vertex range, per-vertex property storage is cheaper as
// sorted (key, value) pairs than as dense full-range arrays. The
// derivation below materializes the sorted unique endpoint lists plus
// per-group-member offset partitions, and only when the worst fill
// ratio across all workers stays at or below the configured threshold,
// so every worker makes the same dense-versus-sparse decision.

package construct

import (
	"sort"

	"github.com/jfcg/sorty"

	"github.com/avellane/edgepress/comm"
	"github.com/avellane/edgepress/csr"
	"github.com/avellane/edgepress/partition"
)

func sortInt64s(a []int64) {
	sorty.Sort(len(a), func(i, k, r, s int) bool {
		if a[i] < a[k] {
			if r != s {
				a[r], a[s] = a[s], a[r]
			}
			return true
		}
		return false
	})
}

// mergeUnique flattens several int64 lists into one sorted duplicate-free
// slice. The inputs are not modified.
func mergeUnique(lists [][]int64) []int64 {
	var total int
	for _, l := range lists {
		total += len(l)
	}
	all := make([]int64, 0, total)
	for _, l := range lists {
		all = append(all, l...)
	}
	sortInt64s(all)
	out := all[:0]
	for i, v := range all {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// lowerBounds builds the per-member offset partition of a sorted unique
// list: off[i] is the first position at or above member i's first owned
// vertex, per firstOf.
func lowerBounds(unique []int64, members int, firstOf func(i int) int64) []int64 {
	off := make([]int64, members+1)
	for i := 0; i < members; i++ {
		first := firstOf(i)
		off[i] = int64(sort.Search(len(unique), func(j int) bool { return unique[j] >= first }))
	}
	off[members] = int64(len(unique))
	return off
}

// deriveSparseMajors merges the locally-present major sets across the
// column communicator group (every member addresses the same major
// ranges) and materializes the sorted unique list when the worst fill
// ratio across all workers allows. Returns nils otherwise; the
// allreduce makes that decision identical everywhere.
func deriveSparseMajors(c, colComm *comm.Comm, grid partition.Grid2D, rank int, blocks []*csr.Block, fill float64) (unique, offsets []int64) {
	local := make([]int64, 0)
	var span int64
	for _, b := range blocks {
		local = append(local, b.NonZeroDegreeMajors()...)
		span += b.MajorLast - b.MajorFirst
	}
	merged := mergeUnique(comm.AllGather(colComm, local))

	var ratio float64
	if span > 0 {
		ratio = float64(len(merged)) / float64(span)
	}
	if comm.AllReduce(c, ratio, comm.MaxFloat64) > fill {
		return nil, nil
	}

	// Column-group member i owns the major range of local cell i.
	offsets = lowerBounds(merged, colComm.Size(), func(i int) int64 {
		first, _, _ := grid.CellMajorRange(rank, i)
		return first
	})
	return merged, offsets
}

// deriveSparseMinors is the minor-side counterpart: unique values
// appearing anywhere in the local indices arrays, merged across the row
// communicator group (whose members share this worker's minor range).
func deriveSparseMinors(c *comm.Comm, grid partition.Grid2D, rank int, blocks []*csr.Block, fill float64) (unique, offsets []int64) {
	rowComm := c.Split(grid.RowOf(rank), grid.ColOf(rank))

	lists := make([][]int64, 0, len(blocks))
	for _, b := range blocks {
		lists = append(lists, b.Indices)
	}
	local := mergeUnique(lists)
	merged := mergeUnique(comm.AllGather(rowComm, local))

	minorFirst, minorLast, _ := grid.MinorRange(rank)
	var ratio float64
	if span := minorLast - minorFirst; span > 0 {
		ratio = float64(len(merged)) / float64(span)
	}
	if comm.AllReduce(c, ratio, comm.MaxFloat64) > fill {
		return nil, nil
	}

	// Row-group member j owns the j-th vertex range of this grid row.
	row := grid.RowOf(rank)
	cols := grid.Cols()
	offsets = lowerBounds(merged, rowComm.Size(), func(j int) int64 {
		first, _, _ := grid.VertexRange(row*cols + j)
		return first
	})
	return merged, offsets
}
