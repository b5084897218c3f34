// SPDX-License-Identifier: MIT

// Package parallel provides the small set of intra-worker data-parallel
// primitives the compression pipeline is built from: a chunked
// ParallelFor over index ranges, a PackIndex compaction (dense boolean
// mask → packed index list), and an exclusive prefix sum.
//
// The primitives follow the classic parallel-for recipe: split [0,n)
// into GOMAXPROCS near-equal chunks, run one goroutine per chunk with a
// private accumulator, then merge deterministically in chunk order. The
// merge order guarantee is what makes PackIndex output sorted, which the
// hypersparse vertex list relies on.
//
// Atomic coordination stays out of this package: callers that need it
// (the compressor's bucket histogram and slot cursors) use sync/atomic
// directly over their own arrays.
package parallel
