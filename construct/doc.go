// SPDX-License-Identifier: MIT

// Package construct builds compressed graphs out of edge lists, single
// worker or partitioned across an in-process worker world.
//
// FromEdgelist is the entry point. Each worker contributes its own edge
// chunk; the builder shuffles every edge to the worker owning its major
// endpoint (per the partition.Grid2D scheme), optionally renumbers
// vertex ids into a dense [0, V) range, validates, compresses one block
// per local partition cell, sorts every neighbor list, aggregates
// density-tier tables across the column communicator group, derives the
// optional sparse "hot vertex" index sets, and assembles a graph.Graph.
//
// Collective discipline: in distributed mode every worker must call the
// same construct functions in the same order with the same options, or
// the collectives underneath desynchronize. Failures are agreed upon
// through an extra allreduce before any rank leaves the pipeline, so a
// bad input on one worker surfaces as an error on all of them instead
// of a hang.
//
// The transform operators (Symmetrize, Transpose, TransposeStorage)
// follow a build-then-replace contract: they decompress, edit the edge
// list, and rebuild through the same pipeline, returning a new Graph.
// The destroy flag releases the source graph's blocks during
// decompression to bound peak memory.
package construct
