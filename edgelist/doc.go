// SPDX-License-Identifier: MIT

// Package edgelist defines the COO (coordinate-form) edge-list value type
// that feeds every construction pipeline in edgepress, together with its
// validator and the symmetrization helpers shared with the graph
// transform operators.
//
// An Edgelist is three parallel flat buffers: sources, destinations and
// (optionally) weights. It is deliberately a dumb value: no adjacency, no
// ordering guarantees, no ownership of vertex ranges. Everything smarter
// lives downstream (csr, construct).
//
// Validation is split in two tiers, mirroring the cost model of the
// engine:
//
//   - Cheap checks always run: parallel-array length agreement, weight
//     buffer either absent or full-length, non-negative vertex ids.
//   - Expensive checks are opt-in and independently toggleable:
//     endpoint-range checks (WithRange), a symmetry round-trip check
//     (WithSymmetry), and a no-parallel-edge check
//     (WithNoParallelEdges).
//
// Every failure is reported through the single ErrInvalidInput root
// sentinel so callers can branch with one errors.Is, while the more
// specific sentinels (ErrOutOfRange, ErrAsymmetric, ...) identify which
// invariant broke. The validator never repairs and never retries.
//
// Determinism: SortTriples and the symmetrize helpers produce identical
// output for identical input on any hardware; the sort is a parallel
// in-place sort over (src, dst, weight) triples.
package edgelist
